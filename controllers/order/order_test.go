package orderControllers

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

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
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// a single connection keeps the shared in-memory database alive and
	// serializes writers the way sqlite expects
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.AppUser{}, &models.Product{}, &models.Category{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Settings{}, &models.Event{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id, name string, price float64, stock int) {
	t.Helper()
	product := models.Product{
		ID: id, Name: name, Price: price, Stock: stock,
		ImageURL: "/uploads/products/" + id + ".png", Category: "Serums",
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", id, err)
	}
}

func seedCart(t *testing.T, db *gorm.DB, userID string, lines ...models.CartItem) {
	t.Helper()
	cart := models.Cart{UserID: userID}
	if err := db.FirstOrCreate(&cart, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("seed cart for %s: %v", userID, err)
	}
	for i := range lines {
		lines[i].CartID = cart.CartID
		lines[i].Position = i
		lines[i].AddedAt = time.Now()
		if err := db.Create(&lines[i]).Error; err != nil {
			t.Fatalf("seed cart line: %v", err)
		}
	}
}

func placeReq(key string) PlaceOrderRequest {
	return PlaceOrderRequest{
		IdempotencyKey: key,
		PaymentMethod:  "cash_on_delivery",
		Customer: CustomerInput{
			Name:    "Awa Ceesay",
			Phone:   "+2207001122",
			Address: "12 Kairaba Avenue, Serrekunda",
		},
	}
}

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "Daily Sunscreen SPF50", 25.5, 10)
	seedProduct(t, db, "p2", "Gentle Cleanser", 10, 5)
	seedCart(t, db, "u1",
		models.CartItem{ProductID: "p1", Name: "Daily Sunscreen SPF50", Price: 25.5, Quantity: 2},
		models.CartItem{ProductID: "p2", Name: "Gentle Cleanser", Price: 10, Quantity: 1},
	)

	order, replayed, err := PlaceOrder(db, "u1", placeReq("key-1"))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if replayed {
		t.Fatal("fresh order reported as replay")
	}
	if got, want := order.Total, 2*25.5+10; got != want {
		t.Errorf("total = %v, want %v", got, want)
	}
	if order.Status != models.OrderStatusPending || order.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("new order state = %s/%s, want Pending/Unpaid", order.Status, order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if order.Items[0].ProductID != "p1" || order.Items[0].Quantity != 2 || order.Items[0].Price != 25.5 {
		t.Errorf("item 0 not a verbatim snapshot: %+v", order.Items[0])
	}
	if order.Items[1].ProductID != "p2" || order.Items[1].Quantity != 1 {
		t.Errorf("item 1 not a verbatim snapshot: %+v", order.Items[1])
	}
	for _, item := range order.Items {
		if item.FulfilledQty != item.Quantity {
			t.Errorf("item %s fulfilled %d of %d with ample stock", item.ProductID, item.FulfilledQty, item.Quantity)
		}
	}

	var stock1, stock2 models.Product
	db.First(&stock1, "id = ?", "p1")
	db.First(&stock2, "id = ?", "p2")
	if stock1.Stock != 8 || stock2.Stock != 4 {
		t.Errorf("stock after order = %d/%d, want 8/4", stock1.Stock, stock2.Stock)
	}

	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	if remaining != 0 {
		t.Errorf("cart not cleared, %d lines remain", remaining)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)

	_, _, err := PlaceOrder(db, "u-empty", placeReq("key-empty"))
	if err != ErrEmptyCart {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("order created despite empty cart")
	}
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	req := placeReq("key-pm")
	req.PaymentMethod = "card"
	if _, _, err := PlaceOrder(db, "u1", req); err == nil {
		t.Fatal("expected invalid payment method error")
	}
}

func TestPlaceOrderReplaySameKey(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "Vitamin C Serum", 30, 10)
	seedCart(t, db, "u1", models.CartItem{ProductID: "p1", Name: "Vitamin C Serum", Price: 30, Quantity: 1})

	first, _, err := PlaceOrder(db, "u1", placeReq("retry-key"))
	if err != nil {
		t.Fatalf("first PlaceOrder: %v", err)
	}

	// Simulate the client retrying after a timeout: same key, cart
	// refilled by an unsuspecting re-submit.
	seedCart(t, db, "u1", models.CartItem{ProductID: "p1", Name: "Vitamin C Serum", Price: 30, Quantity: 1})

	second, replayed, err := PlaceOrder(db, "u1", placeReq("retry-key"))
	if err != nil {
		t.Fatalf("replayed PlaceOrder: %v", err)
	}
	if !replayed {
		t.Error("replay not detected")
	}
	if second.ID != first.ID {
		t.Errorf("replay returned a different order: %s vs %s", second.ID, first.ID)
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 1 {
		t.Errorf("order count = %d, want 1", orders)
	}
	var product models.Product
	db.First(&product, "id = ?", "p1")
	if product.Stock != 9 {
		t.Errorf("stock = %d, want 9 (decremented exactly once)", product.Stock)
	}
}

func TestPlaceOrderClampsShortfall(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "Night Moisturizer", 18, 2)
	seedCart(t, db, "u1", models.CartItem{ProductID: "p1", Name: "Night Moisturizer", Price: 18, Quantity: 5})

	order, _, err := PlaceOrder(db, "u1", placeReq("short-key"))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.Items[0].FulfilledQty != 2 {
		t.Errorf("fulfilled = %d, want 2", order.Items[0].FulfilledQty)
	}
	var product models.Product
	db.First(&product, "id = ?", "p1")
	if product.Stock != 0 {
		t.Errorf("stock = %d, want 0 (never negative)", product.Stock)
	}
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	db := newTestDB(t)
	const buyers = 5
	const stock = 3
	seedProduct(t, db, "p1", "Limited Serum", 40, stock)
	for i := 0; i < buyers; i++ {
		user := fmt.Sprintf("u%d", i)
		seedCart(t, db, user, models.CartItem{ProductID: "p1", Name: "Limited Serum", Price: 40, Quantity: 1})
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", i)
			_, _, errs[i] = PlaceOrder(db, user, placeReq(fmt.Sprintf("ckey-%d", i)))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("buyer %d: %v", i, err)
		}
	}

	var product models.Product
	db.First(&product, "id = ?", "p1")
	if product.Stock != 0 {
		t.Errorf("final stock = %d, want 0", product.Stock)
	}
	if product.Stock < 0 {
		t.Errorf("stock underflowed: %d", product.Stock)
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != buyers {
		t.Errorf("orders = %d, want %d", orders, buyers)
	}

	// Exactly `stock` units were fulfilled against available stock
	// across all orders; the rest are recorded shortfalls.
	var fulfilled int
	var items []models.OrderItem
	db.Find(&items)
	for _, item := range items {
		fulfilled += item.FulfilledQty
	}
	if fulfilled != stock {
		t.Errorf("fulfilled units = %d, want %d", fulfilled, stock)
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := NewOrderNumber()
		if len(number) != 10 {
			t.Fatalf("number %q has length %d, want 10", number, len(number))
		}
		for _, r := range number {
			if !strings.ContainsRune(numberCharset, r) {
				t.Fatalf("number %q contains invalid rune %q", number, r)
			}
		}
		seen[number] = true
	}
	if len(seen) < 99 {
		t.Errorf("generator produced heavy collisions: %d distinct of 100", len(seen))
	}
}
