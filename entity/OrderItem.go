package entity

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	OrderID uint `json:"orderId" gorm:"index"`

	MaterialID uint      `json:"materialId" gorm:"index"`
	Material   *Material `json:"material,omitempty"`

	Quantity int `json:"quantity"`
	// price of the material at checkout time, not a live reference
	Price decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
