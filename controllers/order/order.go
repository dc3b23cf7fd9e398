package orderControllers

import (
	"crypto/rand"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/live"
	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNumberExhausted means every generated order number collided,
	// which is effectively unreachable with a 36^10 keyspace.
	ErrNumberExhausted = errors.New("could not generate a unique order number")
)

const numberRetries = 5

// -------- Request Structs --------

type CustomerInput struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	IDFrontURL string `json:"idFrontUrl"`
	IDBackURL  string `json:"idBackUrl"`
}

type PlaceOrderRequest struct {
	IdempotencyKey string        `json:"idempotency_key" binding:"required"`
	PaymentMethod  string        `json:"payment_method" binding:"required"`
	Customer       CustomerInput `json:"customer" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case "pending":
		return models.OrderStatusPending, nil
	case "processing":
		return models.OrderStatusProcessing, nil
	case "shipped":
		return models.OrderStatusShipped, nil
	case "completed":
		return models.OrderStatusCompleted, nil
	case "cancelled":
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case "unpaid":
		return models.PaymentStatusUnpaid, nil
	case "paid":
		return models.PaymentStatusPaid, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch models.PaymentMethod(strings.ToLower(method)) {
	case models.PaymentMethodCashOnDelivery:
		return models.PaymentMethodCashOnDelivery, nil
	case models.PaymentMethodWave:
		return models.PaymentMethodWave, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

const numberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber returns a short human-readable order code. Uniqueness
// is enforced by the database, not the generator; PlaceOrder retries on
// the (vanishingly rare) collision.
func NewOrderNumber() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return strings.ToUpper(uuid.NewString()[:10])
	}
	for i, b := range buf {
		buf[i] = numberCharset[int(b)%len(numberCharset)]
	}
	return string(buf)
}

// -------- Core Logic --------

// PlaceOrder turns the caller's cart into a persisted order and adjusts
// each product's stock, all inside one transaction. The cart is only
// cleared after the order row is committed. The returned bool is true
// when the idempotency key matched a previously placed order, in which
// case that order is returned untouched: a retried submission never
// creates a second order or decrements stock twice.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, bool, error) {
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, false, err
	}

	// Cheap replay check before doing any work.
	var prior models.Order
	if err := db.Preload("Items").Where("idempotency_key = ?", req.IdempotencyKey).First(&prior).Error; err == nil {
		return &prior, true, nil
	}

	// The order must land on some identity even if the shopper never
	// registered; heal a missing user row with a guest stub.
	user := models.AppUser{ID: userID, Email: userID + "@guest.glowcare.gm", Guest: true}
	if err := db.FirstOrCreate(&user, "id = ?", userID).Error; err != nil {
		return nil, false, err
	}

	for attempt := 0; attempt < numberRetries; attempt++ {
		order := &models.Order{
			ID:             uuid.NewString(),
			Number:         NewOrderNumber(),
			IdempotencyKey: req.IdempotencyKey,
			UserID:         userID,
			Customer: models.Customer{
				Name:       req.Customer.Name,
				Phone:      req.Customer.Phone,
				Address:    req.Customer.Address,
				UserID:     userID,
				IDFrontURL: req.Customer.IDFrontURL,
				IDBackURL:  req.Customer.IDBackURL,
			},
			PaymentMethod: method,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			if err := tx.
				Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
				Where("user_id = ?", userID).
				First(&cart).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEmptyCart
				}
				return err
			}
			if len(cart.Items) == 0 {
				return ErrEmptyCart
			}

			// Snapshot the cart lines verbatim, in order.
			var total float64
			for _, item := range cart.Items {
				total += item.Price * float64(item.Quantity)
				order.Items = append(order.Items, models.OrderItem{
					ProductID:    item.ProductID,
					Name:         item.Name,
					Price:        item.Price,
					ImageURL:     item.ImageURL,
					Quantity:     item.Quantity,
					FulfilledQty: item.Quantity, // provisional, corrected below on shortfall
				})
			}
			order.Total = total

			if err := tx.Create(order).Error; err != nil {
				return err
			}

			for i := range order.Items {
				taken, err := adjustStock(tx, order.Items[i].ProductID, order.Items[i].Quantity)
				if err != nil {
					return err
				}
				if taken != order.Items[i].Quantity {
					order.Items[i].FulfilledQty = taken
					if err := tx.Model(&models.OrderItem{}).
						Where("id = ?", order.Items[i].ID).
						UpdateColumn("fulfilled_qty", taken).Error; err != nil {
						return err
					}
				}
			}

			// Clear the cart only now that the order row exists.
			return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
		})
		if err == nil {
			return order, false, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either a concurrent replay of the same idempotency key
			// or an order-number collision; only the former has an
			// existing order to hand back.
			var existing models.Order
			if lookupErr := db.Preload("Items").
				Where("idempotency_key = ?", req.IdempotencyKey).
				First(&existing).Error; lookupErr == nil {
				return &existing, true, nil
			}
			continue
		}
		return nil, false, err
	}
	return nil, false, ErrNumberExhausted
}

// adjustStock applies new_stock = max(0, old_stock - qty) as a
// conditional update against the live value, never a blind decrement
// from a stale read. Returns how many units were actually covered.
func adjustStock(tx *gorm.DB, productID string, qty int) (int, error) {
	// Fast path: full quantity available.
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 1 {
		return qty, nil
	}

	// Shortfall: take whatever is left. The guarded update re-checks
	// the live value, so a concurrent checkout racing between our read
	// and write just sends us around the loop again.
	for attempt := 0; attempt < numberRetries; attempt++ {
		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil // product removed since it was carted
			}
			return 0, err
		}
		take := product.Stock
		if take > qty {
			take = qty
		}
		if take <= 0 {
			return 0, nil
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, take).
			UpdateColumn("stock", gorm.Expr("stock - ?", take))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			return take, nil
		}
	}
	return 0, errors.New("stock adjustment kept conflicting for product " + productID)
}

// -------- Handlers --------

// Place order (user or guest)
func PlaceOrderHandler(db *gorm.DB, hub *live.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID, _ := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, replayed, err := PlaceOrder(db, userID, req)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "There was an issue placing your order. Please try again."})
			return
		}

		if replayed {
			c.JSON(http.StatusOK, order)
			return
		}

		models.LogEvent(db, models.EventNewOrder,
			"New order "+order.Number+" placed by "+order.Customer.Name,
			map[string]any{"order_id": order.ID, "total": order.Total})
		BroadcastOrder(hub, order)

		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders/mine — a caller can only enumerate their own orders.
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch your orders. Please try again later."})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", mapped)
		}
		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID (admin) — accepts the store id or the short number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ? OR number = ?", id, strings.ToUpper(id)).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// Update order status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update payment status (admin)
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("payment_status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}
