package repository

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) ListActive() ([]entity.Material, error) {
	var out []entity.Material
	err := r.DB.
		Preload("Category").
		Where("is_deleted = ?", false).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListAll includes soft-deleted rows; used by the admin export.
func (r *MaterialRepository) ListAll() ([]entity.Material, error) {
	var out []entity.Material
	err := r.DB.Preload("Category").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *MaterialRepository) FindByID(id uint) (*entity.Material, error) {
	var m entity.Material
	if err := r.DB.Preload("Category").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Exists(id uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.Material{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.DB.Create(m).Error
}

func (r *MaterialRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Material{}).Where("id = ?", id).Updates(updates).Error
}

func (r *MaterialRepository) CountOrderRefs(tx *gorm.DB, id uint) (int64, error) {
	var n int64
	err := tx.Model(&entity.OrderItem{}).Where("material_id = ?", id).Count(&n).Error
	return n, err
}

// PurgeFromCarts removes every cart line pointing at the material.
func (r *MaterialRepository) PurgeFromCarts(tx *gorm.DB, id uint) error {
	return tx.Where("material_id = ?", id).Delete(&entity.CartItem{}).Error
}

func (r *MaterialRepository) MarkDeleted(tx *gorm.DB, id uint) error {
	return tx.Model(&entity.Material{}).Where("id = ?", id).Update("is_deleted", true).Error
}

// Delete physically removes the material with its ratings and likes.
func (r *MaterialRepository) Delete(tx *gorm.DB, id uint) error {
	if err := tx.Where("material_id = ?", id).Delete(&entity.Rating{}).Error; err != nil {
		return err
	}
	if err := tx.Where("material_id = ?", id).Delete(&entity.Like{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Material{}, id).Error
}

func (r *MaterialRepository) UpdateRatingStats(tx *gorm.DB, id uint, avg float64, count int64) error {
	return tx.Model(&entity.Material{}).Where("id = ?", id).Updates(map[string]any{
		"average_rating": avg,
		"rating_count":   count,
	}).Error
}

func (r *MaterialRepository) TopRated(limit int) ([]entity.Material, error) {
	var out []entity.Material
	err := r.DB.
		Preload("Category").
		Where("rating_count > 0 AND is_deleted = ?", false).
		Order("average_rating DESC, rating_count DESC, id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
