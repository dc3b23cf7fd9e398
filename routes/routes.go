package routes

import (
	"github.com/gin-gonic/gin"
	assistantControllers "github.com/glowcare-gm/glowcare-api/controllers/assistant"
	"github.com/glowcare-gm/glowcare-api/live"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *live.Hub, ai *assistantControllers.Client) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog + authenticated user routes
	SetupUserRoutes(r, db)

	// Order placement and admin order management
	SetupOrderRoutes(r, db, hub)

	// Admin back-office (API-key-protected)
	SetupAdminRoutes(r, db)

	// AI assistant endpoints (rate-limited)
	SetupAssistantRoutes(r, db, ai)
}
