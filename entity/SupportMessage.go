package entity

import "time"

// SupportMessage belongs to the conversation of UserID. IsAdmin marks replies
// written by staff into that conversation.
type SupportMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index"`
	User      *User     `json:"user,omitempty"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsAdmin   bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}
