package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/glowcare-gm/glowcare-api/storage"
	"gorm.io/gorm"
)

// UpdateProduct edits a product from a multipart form. Only supplied
// fields change; a new image replaces the stored URL. Admin only.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		if name := c.PostForm("name"); name != "" {
			product.Name = name
		}
		if description, ok := c.GetPostForm("description"); ok {
			product.Description = description
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if category := c.PostForm("category"); category != "" {
			if !models.ValidCategory(category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
			product.Category = category
		}
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock, err := strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = stock
		}
		if featured, ok := c.GetPostForm("featured"); ok {
			product.Featured = featured == "true"
		}

		if file, err := c.FormFile("image"); err == nil {
			imageURL, err := storage.SaveUpload(c, file, "products")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			product.ImageURL = imageURL
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
