package cartControllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glowcare-gm/glowcare-api/models"
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

	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProducts(t *testing.T, db *gorm.DB, ids ...string) {
	t.Helper()
	for i, id := range ids {
		product := models.Product{
			ID: id, Name: "Product " + id, Price: float64(10 + i),
			ImageURL: "/uploads/products/" + id + ".png", Category: "Cleansers", Stock: 10,
		}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("seed product %s: %v", id, err)
		}
	}
}

func TestReplaceCartRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, "p1", "p2", "p3")

	// Deliberately not in id order: the stored cart must reproduce the
	// client's sequence exactly.
	input := []CartItemInput{
		{ProductID: "p3", Quantity: 2},
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 4},
	}
	if _, err := ReplaceCart(db, "u1", input); err != nil {
		t.Fatalf("ReplaceCart: %v", err)
	}

	items, err := CartItems(db, "u1")
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(items) != len(input) {
		t.Fatalf("items = %d, want %d", len(items), len(input))
	}
	for i, want := range input {
		if items[i].ProductID != want.ProductID || items[i].Quantity != want.Quantity {
			t.Errorf("line %d = %s x%d, want %s x%d",
				i, items[i].ProductID, items[i].Quantity, want.ProductID, want.Quantity)
		}
	}
}

func TestReplaceCartUnknownProductRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, "p1")

	if _, err := ReplaceCart(db, "u1", []CartItemInput{{ProductID: "p1", Quantity: 1}}); err != nil {
		t.Fatalf("initial ReplaceCart: %v", err)
	}

	_, err := ReplaceCart(db, "u1", []CartItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "ghost", Quantity: 1},
	})
	if err == nil {
		t.Fatal("expected unknown-product error")
	}

	// The failed replace must not have touched the stored cart.
	items, err := CartItems(db, "u1")
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p1" || items[0].Quantity != 1 {
		t.Errorf("cart mutated by failed replace: %+v", items)
	}
}

func TestReplaceCartRefreshesDenormalizedFields(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, "p1")

	items, err := ReplaceCart(db, "u1", []CartItemInput{{ProductID: "p1", Quantity: 3}})
	if err != nil {
		t.Fatalf("ReplaceCart: %v", err)
	}
	if items[0].Name != "Product p1" || items[0].Price != 10 {
		t.Errorf("line not snapshotted from live product: %+v", items[0])
	}
}

func TestCartItemsEmptyForUnknownIdentity(t *testing.T) {
	db := newTestDB(t)
	items, err := CartItems(db, "nobody")
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}
