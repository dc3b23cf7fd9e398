package adminController

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Product{}, &models.Order{}, &models.OrderItem{},
		&models.Settings{}, &models.Event{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus, payment models.PaymentStatus, total float64) {
	t.Helper()
	order := models.Order{
		ID:             uuid.NewString(),
		Number:         strings.ToUpper(uuid.NewString()[:10]),
		IdempotencyKey: uuid.NewString(),
		UserID:         "u1",
		Total:          total,
		PaymentMethod:  models.PaymentMethodCashOnDelivery,
		Status:         status,
		PaymentStatus:  payment,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func TestDashboardPendingCountMatchesFilter(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, models.OrderStatusPending, models.PaymentStatusUnpaid, 10)
	seedOrder(t, db, models.OrderStatusPending, models.PaymentStatusUnpaid, 20)
	seedOrder(t, db, models.OrderStatusShipped, models.PaymentStatusPaid, 30)
	seedOrder(t, db, models.OrderStatusCancelled, models.PaymentStatusUnpaid, 40)

	summary, err := BuildDashboard(db)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if summary.PendingOrders != 2 {
		t.Errorf("pending = %d, want 2", summary.PendingOrders)
	}
	if summary.OrderCount != 4 {
		t.Errorf("orders = %d, want 4", summary.OrderCount)
	}
}

func TestDashboardRevenueSumsPaidOnly(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, models.OrderStatusCompleted, models.PaymentStatusPaid, 100)
	seedOrder(t, db, models.OrderStatusShipped, models.PaymentStatusPaid, 50)
	seedOrder(t, db, models.OrderStatusPending, models.PaymentStatusUnpaid, 999)

	summary, err := BuildDashboard(db)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if summary.Revenue != 150 {
		t.Errorf("revenue = %v, want 150", summary.Revenue)
	}
}

func TestDashboardEmptyStore(t *testing.T) {
	db := newTestDB(t)
	summary, err := BuildDashboard(db)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if summary.ProductCount != 0 || summary.OrderCount != 0 || summary.Revenue != 0 {
		t.Errorf("empty store summary not zeroed: %+v", summary)
	}
}

func TestEnsureSettingsDefaultsAndVersioning(t *testing.T) {
	db := newTestDB(t)

	settings, err := EnsureSettings(db)
	if err != nil {
		t.Fatalf("EnsureSettings: %v", err)
	}
	if settings.Version != 1 {
		t.Errorf("fresh settings version = %d, want 1", settings.Version)
	}
	if settings.PrimaryColor == "" || settings.HeroHeadline == "" {
		t.Errorf("defaults not applied: %+v", settings)
	}

	// A second load returns the same row, not a new one.
	again, err := EnsureSettings(db)
	if err != nil {
		t.Fatalf("EnsureSettings again: %v", err)
	}
	if again.ID != settings.ID || again.Version != settings.Version {
		t.Errorf("EnsureSettings created a second row: %+v", again)
	}
}
