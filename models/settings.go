package models

import "time"

// Settings is the single site-configuration record. Every field is
// optional from the admin's point of view; DefaultSettings supplies the
// fallbacks. Version increments on every admin write.
type Settings struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	Version         int    `json:"version"`
	HeroImageURL    string `json:"heroImageUrl"`
	HeroHeadline    string `json:"heroHeadline"`
	HeroSubheadline string `json:"heroSubheadline"`
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	InstagramURL    string `json:"instagramUrl"`
	TikTokURL       string `json:"tiktokUrl"`
	FacebookURL     string `json:"facebookUrl"`
	WhatsAppNumber  string `json:"whatsappNumber"`
	AboutText       string `json:"aboutText"`
	DeliveryText    string `json:"deliveryText"`
	ReturnsText     string `json:"returnsText"`
	UpdatedAt       time.Time
}

const settingsRowID = 1

func DefaultSettings() Settings {
	return Settings{
		ID:              settingsRowID,
		Version:         1,
		HeroHeadline:    "Glow starts here",
		HeroSubheadline: "Skincare essentials, delivered across The Gambia",
		PrimaryColor:    "#2e7d6f",
		AccentColor:     "#f4a259",
	}
}
