package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/glowcare-gm/glowcare-api/controllers/admin"
	cartControllers "github.com/glowcare-gm/glowcare-api/controllers/cart"
	categoryControllers "github.com/glowcare-gm/glowcare-api/controllers/category"
	productcontroller "github.com/glowcare-gm/glowcare-api/controllers/product"
	userControllers "github.com/glowcare-gm/glowcare-api/controllers/user"
	"github.com/glowcare-gm/glowcare-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the public storefront endpoints and the
// JWT-protected "/user/*" account area.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Public storefront ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", categoryControllers.GetAllCategories(db))
	r.GET("/settings", adminController.GetSettings(db))

	// ──────────────── Account area ────────────────
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))
			cartGroup.PUT("/", cartControllers.ReplaceUserCart(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}
	}
}
