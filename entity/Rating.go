package entity

import "time"

type Rating struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Value   int    `json:"value" gorm:"not null"`
	Comment string `json:"comment"`

	UserID     uint      `json:"userId" gorm:"uniqueIndex:idx_rating_user_material"`
	User       *User     `json:"user,omitempty"`
	MaterialID uint      `json:"materialId" gorm:"uniqueIndex:idx_rating_user_material"`
	Material   *Material `json:"material,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
