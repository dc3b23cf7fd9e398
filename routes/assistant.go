package routes

import (
	"github.com/gin-gonic/gin"
	assistantControllers "github.com/glowcare-gm/glowcare-api/controllers/assistant"
	"github.com/glowcare-gm/glowcare-api/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func SetupAssistantRoutes(r *gin.Engine, db *gorm.DB, ai *assistantControllers.Client) {
	assistant := r.Group("/assistant")
	assistant.Use(middleware.ModelRateLimit(rate.Limit(2), 5))
	{
		assistant.POST("/chat", assistantControllers.ChatHandler(db, ai))
		assistant.POST("/verify-id", assistantControllers.VerifyIDHandler(db, ai))
	}
}
