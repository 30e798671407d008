package entity

import "time"

type CartItem struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	CartID uint `json:"cartId" gorm:"index"`

	MaterialID uint      `json:"materialId" gorm:"index"`
	Material   *Material `json:"material,omitempty"`

	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
