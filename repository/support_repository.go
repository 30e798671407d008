package repository

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"

	"gorm.io/gorm"
)

type SupportRepository struct {
	DB *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{DB: db}
}

func (r *SupportRepository) Create(m *entity.SupportMessage) error {
	return r.DB.Create(m).Error
}

func (r *SupportRepository) FindByID(id uint) (*entity.SupportMessage, error) {
	var m entity.SupportMessage
	if err := r.DB.Preload("User").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForUser returns one conversation, oldest first.
func (r *SupportRepository) ListForUser(userID uint) ([]entity.SupportMessage, error) {
	var out []entity.SupportMessage
	err := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

// LatestPerUser returns the newest message of every conversation, newest first.
func (r *SupportRepository) LatestPerUser() ([]entity.SupportMessage, error) {
	latest := r.DB.Model(&entity.SupportMessage{}).
		Select("MAX(id)").
		Group("user_id")

	var out []entity.SupportMessage
	err := r.DB.Preload("User").
		Where("id IN (?)", latest).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *SupportRepository) DeleteForUser(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.SupportMessage{}).Error
}
