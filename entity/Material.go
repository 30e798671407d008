package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material is a catalog product. Rows referenced by orders are never removed,
// they are flagged with IsDeleted instead so OrderItem history stays intact.
type Material struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	ImageURL    string          `json:"imageUrl"`
	IsDeleted   bool            `json:"isDeleted" gorm:"not null;default:false;index"`

	AverageRating float64 `json:"averageRating" gorm:"not null;default:0"`
	RatingCount   int     `json:"ratingCount" gorm:"not null;default:0"`

	CategoryID uint      `json:"categoryId" gorm:"index"`
	Category   *Category `json:"category,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
