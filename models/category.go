package models

import (
	"fmt"

	"gorm.io/gorm"
)

type Category struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"unique;not null" json:"name"`
	ImageURL string `json:"imageUrl"`
}

// CategoryNames is the fixed vocabulary for product categories.
var CategoryNames = []string{"Sunscreens", "Cleansers", "Moisturizers", "Serums"}

// SeedCategories inserts the fixed category set, keeping any
// admin-uploaded image overrides on rows that already exist.
func SeedCategories(db *gorm.DB) error {
	for i, name := range CategoryNames {
		cat := Category{
			ID:       fmt.Sprintf("cat%d", i+1),
			Name:     name,
			ImageURL: "/uploads/categories/placeholder.png",
		}
		if err := db.Where("name = ?", name).FirstOrCreate(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}

// ValidCategory reports whether name is in the fixed vocabulary.
func ValidCategory(name string) bool {
	for _, n := range CategoryNames {
		if n == name {
			return true
		}
	}
	return false
}
