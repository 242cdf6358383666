package models

import "time"

type Product struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `json:"name" validate:"required"`
	Slug             string    `gorm:"uniqueIndex" json:"slug" validate:"required"`
	Description      string    `json:"description"`
	Price            float64   `json:"price" validate:"required,gt=0"`
	CompareAtPrice   *float64  `json:"compare_at_price"`
	CategoryID       *uint     `json:"category_id"`
	Category         *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ImageURL         string    `json:"image_url"`
	AdditionalImages []string  `gorm:"type:text;serializer:json" json:"additional_images"`
	Stock            uint      `json:"stock"`
	IsActive         bool      `json:"is_active"`
	IsFeatured       bool      `json:"is_featured"`
	IsTrending       bool      `json:"is_trending"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Images returns the primary image followed by the gallery images.
func (p *Product) Images() []string {
	images := make([]string, 0, len(p.AdditionalImages)+1)
	if p.ImageURL != "" {
		images = append(images, p.ImageURL)
	}
	return append(images, p.AdditionalImages...)
}
