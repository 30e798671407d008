package entity

import (
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	Password      string    `json:"-"`
	Role          string    `json:"role" gorm:"not null;default:USER"`
	LoyaltyPoints int       `json:"loyaltyPoints" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// preload only when needed
	Orders        []Order        `json:"-"`
	Notifications []Notification `json:"-"`
	Ratings       []Rating       `json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
