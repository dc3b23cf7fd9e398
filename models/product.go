package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"` // Required, must be positive
	ImageURL    string  `gorm:"not null" json:"imageUrl"`
	ExtraImages string  `json:"extraImages"` // comma-separated additional image URLs
	Category    string  `gorm:"index" json:"category"`
	Featured    bool    `json:"featured"`
	Stock       int     `json:"stock"` // never negative, adjusted by the order workflow
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
