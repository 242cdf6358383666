package models

import "time"

// CartItem is keyed by an anonymous, client-generated user id. The composite
// unique index lets cart adds run as a single conditional upsert instead of a
// racy check-then-act.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_cart_user_product" json:"user_id" validate:"required"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product" json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
