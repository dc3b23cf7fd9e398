package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/glowcare-gm/glowcare-api/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProduct creates a new product from a multipart form with an
// image upload. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		category := c.PostForm("category")
		if name == "" || priceStr == "" || category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, and category are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		if !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}

		var stock int
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock, err = strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}
		featured := c.PostForm("featured") == "true"

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		imageURL, err := storage.SaveUpload(c, file, "products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Additional gallery images are optional.
		var extra []string
		if form, err := c.MultipartForm(); err == nil {
			for _, f := range form.File["extra_images"] {
				url, err := storage.SaveUpload(c, f, "products")
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				extra = append(extra, url)
			}
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
			ImageURL:    imageURL,
			ExtraImages: strings.Join(extra, ","),
			Category:    category,
			Featured:    featured,
			Stock:       stock,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
