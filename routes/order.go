package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/glowcare-gm/glowcare-api/controllers/order"
	"github.com/glowcare-gm/glowcare-api/live"
	"github.com/glowcare-gm/glowcare-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *live.Hub) {
	orders := r.Group("/orders")
	{
		// Checkout (user or guest)
		orders.POST("/place", middleware.ValidateToken, orderControllers.PlaceOrderHandler(db, hub))
		orders.GET("/mine", middleware.ValidateToken, orderControllers.GetMyOrdersHandler(db))

		// Admin order management
		admin := orders.Group("")
		admin.Use(middleware.ValidateAPIKey)
		{
			admin.GET("", orderControllers.GetAllOrdersHandler(db))
			admin.GET("/ws", orderControllers.OrderWebSocketHandler(hub))
			admin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			admin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			admin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		}
	}
}
