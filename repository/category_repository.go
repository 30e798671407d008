package repository

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List() ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.Order("name ASC").Find(&out).Error
	return out, err
}

// FindWithMaterials loads a category and its visible materials.
func (r *CategoryRepository) FindWithMaterials(id uint) (*entity.Category, error) {
	var c entity.Category
	err := r.DB.
		Preload("Materials", "is_deleted = ?", false).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) CountByName(name string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Category{}).Where("name = ?", name).Count(&n).Error
	return n, err
}

func (r *CategoryRepository) Exists(id uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) Create(c *entity.Category) error {
	return r.DB.Create(c).Error
}

// CountMaterials counts every material row, soft-deleted ones included.
func (r *CategoryRepository) CountMaterials(id uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Material{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

func (r *CategoryRepository) Delete(id uint) (int64, error) {
	res := r.DB.Delete(&entity.Category{}, id)
	return res.RowsAffected, res.Error
}
