package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
