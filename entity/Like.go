package entity

import "time"

type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"uniqueIndex:idx_like_user_material"`
	MaterialID uint      `json:"materialId" gorm:"uniqueIndex:idx_like_user_material"`
	Material   *Material `json:"material,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
