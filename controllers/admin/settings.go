package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/glowcare-gm/glowcare-api/storage"
	"gorm.io/gorm"
)

// UpdateSettingsInput uses pointer fields so an admin can change one
// setting without resending the rest.
type UpdateSettingsInput struct {
	HeroImageURL    *string `json:"heroImageUrl"`
	HeroHeadline    *string `json:"heroHeadline"`
	HeroSubheadline *string `json:"heroSubheadline"`
	PrimaryColor    *string `json:"primaryColor"`
	AccentColor     *string `json:"accentColor"`
	InstagramURL    *string `json:"instagramUrl"`
	TikTokURL       *string `json:"tiktokUrl"`
	FacebookURL     *string `json:"facebookUrl"`
	WhatsAppNumber  *string `json:"whatsappNumber"`
	AboutText       *string `json:"aboutText"`
	DeliveryText    *string `json:"deliveryText"`
	ReturnsText     *string `json:"returnsText"`
}

// EnsureSettings loads the site configuration row, creating it with
// defaults on first run.
func EnsureSettings(db *gorm.DB) (*models.Settings, error) {
	var settings models.Settings
	err := db.First(&settings, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GET /settings (public) and GET /admin/settings
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := EnsureSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// PUT /admin/settings
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := EnsureSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}

		var input UpdateSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		applyIfSet := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		applyIfSet(&settings.HeroImageURL, input.HeroImageURL)
		applyIfSet(&settings.HeroHeadline, input.HeroHeadline)
		applyIfSet(&settings.HeroSubheadline, input.HeroSubheadline)
		applyIfSet(&settings.PrimaryColor, input.PrimaryColor)
		applyIfSet(&settings.AccentColor, input.AccentColor)
		applyIfSet(&settings.InstagramURL, input.InstagramURL)
		applyIfSet(&settings.TikTokURL, input.TikTokURL)
		applyIfSet(&settings.FacebookURL, input.FacebookURL)
		applyIfSet(&settings.WhatsAppNumber, input.WhatsAppNumber)
		applyIfSet(&settings.AboutText, input.AboutText)
		applyIfSet(&settings.DeliveryText, input.DeliveryText)
		applyIfSet(&settings.ReturnsText, input.ReturnsText)

		settings.Version++
		if err := db.Save(settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// POST /admin/settings/hero-image — appearance upload.
func UploadHeroImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}
		imageURL, err := storage.SaveUpload(c, file, "appearance")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		settings, err := EnsureSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}
		settings.HeroImageURL = imageURL
		settings.Version++
		if err := db.Save(settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Hero image updated", "data": settings})
	}
}
