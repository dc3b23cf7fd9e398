package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/glowcare-gm/glowcare-api/controllers/admin"
	categoryControllers "github.com/glowcare-gm/glowcare-api/controllers/category"
	productcontroller "github.com/glowcare-gm/glowcare-api/controllers/product"
	"github.com/glowcare-gm/glowcare-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Dashboard & Activity ───────────
		adminGroup.GET("/dashboard", adminController.GetDashboard(db))
		adminGroup.GET("/events", adminController.GetEvents(db))
		adminGroup.GET("/users", adminController.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Artwork ───────────
		adminGroup.POST("/categories/:id/image", categoryControllers.UpdateCategoryImage(db))

		// ─────────── Appearance & Content ───────────
		adminGroup.GET("/settings", adminController.GetSettings(db))
		adminGroup.PUT("/settings", adminController.UpdateSettings(db))
		adminGroup.POST("/settings/hero-image", adminController.UploadHeroImage(db))
	}
}
