package models

import "time"

const (
	StatusRequested = "requested"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusPreparing = "preparing"
	StatusDelivery  = "delivery"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderStatuses is the linear fulfillment sequence. Cancellation sits outside
// it and is reachable from any point.
var OrderStatuses = []string{
	StatusRequested,
	StatusPending,
	StatusApproved,
	StatusPreparing,
	StatusDelivery,
	StatusCompleted,
}

// ValidStatus reports whether s is a known order status, cancelled included.
func ValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	OrderNumber      string      `gorm:"uniqueIndex" json:"order_number"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	CustomerPhone    string      `json:"customer_phone"`
	CustomerAddress  string      `json:"customer_address"`
	CustomerTelegram string      `json:"customer_telegram,omitempty"`
	Subtotal         float64     `json:"subtotal"`
	ShippingFee      float64     `json:"shipping_fee"`
	Total            float64     `json:"total"`
	Status           string      `json:"status"`
	Notes            string      `json:"notes"`
	TelegramSent     bool        `json:"telegram_sent"`
	CancelledAt      *time.Time  `json:"cancelled_at"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems       []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// OrderItem carries a denormalized snapshot of the product at checkout time,
// so placed orders survive later product edits and deletion. ProductID is
// nulled out when the product goes away.
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `json:"order_id"`
	ProductID    *uint     `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	Quantity     int       `json:"quantity" validate:"required,gte=1"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
