package entity

import "time"

const (
	NotificationNewOrder    = "NEW_ORDER"
	NotificationOrderUpdate = "ORDER_UPDATE"
)

type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	OrderID   *uint     `json:"orderId"`
	Link      *string   `json:"link"`
	IsRead    bool      `json:"isRead" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}
