package models

import "time"

// Slide pins a product into the homepage banner rotation. Position defines
// the display order, lowest first.
type Slide struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"uniqueIndex" json:"product_id" validate:"required"`
	Position  int       `json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
