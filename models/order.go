package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"

	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"

	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodWave           PaymentMethod = "wave"
)

// Customer is the delivery record embedded in an order.
type Customer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	UserID     string `json:"userId"`
	IDFrontURL string `json:"idFrontUrl,omitempty"`
	IDBackURL  string `json:"idBackUrl,omitempty"`
}

type Order struct {
	ID             string        `gorm:"primaryKey" json:"id"`
	Number         string        `gorm:"uniqueIndex;not null" json:"number"`
	IdempotencyKey string        `gorm:"uniqueIndex;not null" json:"-"`
	UserID         string        `gorm:"index;not null" json:"user_id"`
	Customer       Customer      `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total          float64       `json:"total"`
	PaymentMethod  PaymentMethod `gorm:"type:VARCHAR(20)" json:"paymentMethod"`
	Status         OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"orderStatus"`
	PaymentStatus  PaymentStatus `gorm:"type:VARCHAR(20);default:'Unpaid'" json:"paymentStatus"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// OrderItem is a verbatim snapshot of one cart line at checkout time.
// FulfilledQty records how many units the stock adjustment actually
// covered; it is less than Quantity when the product ran short.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	OrderID      string  `gorm:"index" json:"-"`
	ProductID    string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"imageUrl"`
	Quantity     int     `json:"quantity"`
	FulfilledQty int     `json:"fulfilledQty"`
}
