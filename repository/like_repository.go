package repository

import (
	"errors"

	"github.com/Fenet-Ab/fen-one-shop/entity"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

func (r *LikeRepository) Find(userID, materialID uint) (*entity.Like, error) {
	var l entity.Like
	err := r.DB.Where("user_id = ? AND material_id = ?", userID, materialID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LikeRepository) Create(l *entity.Like) error {
	return r.DB.Create(l).Error
}

func (r *LikeRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Like{}, id).Error
}

func (r *LikeRepository) ListForUser(userID uint) ([]entity.Like, error) {
	var out []entity.Like
	err := r.DB.Preload("Material").
		Preload("Material.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LikeRepository) DeleteForUser(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.Like{}).Error
}
