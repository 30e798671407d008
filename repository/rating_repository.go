package repository

import (
	"errors"

	"github.com/Fenet-Ab/fen-one-shop/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert keeps one rating per (user, material); a repeat overwrites value and comment.
func (r *RatingRepository) Upsert(tx *gorm.DB, rt *entity.Rating) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "material_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "comment", "updated_at"}),
	}).Create(rt).Error
}

func (r *RatingRepository) Find(tx *gorm.DB, userID, materialID uint) (*entity.Rating, error) {
	var rt entity.Rating
	err := tx.Preload("User").Where("user_id = ? AND material_id = ?", userID, materialID).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RatingRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Rating{}, id).Error
}

func (r *RatingRepository) ListForMaterial(materialID uint) ([]entity.Rating, error) {
	var out []entity.Rating
	err := r.DB.Preload("User").
		Where("material_id = ?", materialID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *RatingRepository) ListForUser(userID uint) ([]entity.Rating, error) {
	var out []entity.Rating
	err := r.DB.Preload("Material").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Aggregate returns the average and count of a material's ratings.
func (r *RatingRepository) Aggregate(tx *gorm.DB, materialID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Total int64
	}
	err := tx.Model(&entity.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS total").
		Where("material_id = ?", materialID).
		Scan(&row).Error
	return row.Avg, row.Total, err
}

// Distribution counts ratings per star value; absent values are missing from the map.
func (r *RatingRepository) Distribution(materialID uint) (map[int]int64, error) {
	var rows []struct {
		Value int
		Total int64
	}
	err := r.DB.Model(&entity.Rating{}).
		Select("value, COUNT(*) AS total").
		Where("material_id = ?", materialID).
		Group("value").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Value] = row.Total
	}
	return out, nil
}

// MaterialIDsForUser lists the materials a user has rated.
func (r *RatingRepository) MaterialIDsForUser(tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&entity.Rating{}).Where("user_id = ?", userID).Pluck("material_id", &ids).Error
	return ids, err
}

func (r *RatingRepository) DeleteForUser(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.Rating{}).Error
}
