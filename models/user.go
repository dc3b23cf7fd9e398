package models

import "time"

type AppUser struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"` // empty for guest identities
	IsAdmin      bool   `json:"isAdmin"`
	Guest        bool   `json:"guest"`
	CreatedAt    time.Time
}
