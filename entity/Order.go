package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"

	DeliveryNotDelivered = "NOT_DELIVERED"
	DeliveryShipped      = "SHIPPED"
	DeliveryDelivered    = "DELIVERED"
)

// Order is a price-locked snapshot of a cart. TotalPrice is fixed at checkout.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	TotalPrice      decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentStatus   string          `json:"paymentStatus" gorm:"not null;default:PENDING;index"`
	DeliveryStatus  string          `json:"deliveryStatus" gorm:"not null;default:NOT_DELIVERED"`
	TxRef           *string         `json:"txRef"`

	UserID uint  `json:"userId" gorm:"index"`
	User   *User `json:"user,omitempty"`

	Items []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) IsPaid() bool { return o.PaymentStatus == PaymentPaid }
