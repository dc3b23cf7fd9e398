package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/models"
	"gorm.io/gorm"
)

// DashboardSummary is the admin landing-page aggregate: plain counts
// and sums over current collection state, recomputed on every request.
type DashboardSummary struct {
	ProductCount  int64          `json:"product_count"`
	OrderCount    int64          `json:"order_count"`
	PendingOrders int64          `json:"pending_orders"`
	Revenue       float64        `json:"revenue"`
	RecentEvents  []models.Event `json:"recent_events"`
}

// BuildDashboard computes the summary; split out of the handler so the
// aggregation properties can be checked directly.
func BuildDashboard(db *gorm.DB) (*DashboardSummary, error) {
	var summary DashboardSummary

	if err := db.Model(&models.Product{}).Count(&summary.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Count(&summary.OrderCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&summary.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&summary.Revenue).Error; err != nil {
		return nil, err
	}

	events, err := models.RecentEvents(db, 10)
	if err != nil {
		return nil, err
	}
	summary.RecentEvents = events
	return &summary, nil
}

// GET /admin/dashboard
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := BuildDashboard(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.AppUser
		if err := db.
			Select("id", "email", "is_admin", "guest", "created_at").
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
