package routes

import (
	"time"

	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddToCartRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID uint   `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartRequest struct {
	ID       uint `json:"id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gte=1"`
}

func getCart(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID required",
		})
	}

	// Product attributes are joined live, so a price change shows up in an
	// open cart immediately, unlike a placed order.
	var items []models.CartItem
	if err := db.DB.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	return c.JSON(items)
}

// addToCart increments the quantity of an existing (user, product) row or
// inserts a new one, as a single conditional write. Two concurrent adds for
// the same product can no longer race into two rows or a lost increment.
func addToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	item := models.CartItem{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", req.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add to cart",
		})
	}

	// Re-read to return the accumulated quantity
	var saved models.CartItem
	if err := db.DB.Preload("Product").
		Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).
		First(&saved).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart item",
		})
	}

	return c.JSON(saved)
}

func updateCartItem(c *fiber.Ctx) error {
	var req UpdateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	var item models.CartItem
	if err := db.DB.Preload("Product").First(&item, req.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Cart item not found",
		})
	}

	// The quantity selector clamps in the UI too, but the API is the one
	// place a bypass can't skip.
	if item.Product != nil && uint(req.Quantity) > item.Product.Stock {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quantity exceeds available stock",
		})
	}

	if err := db.DB.Model(&models.CartItem{}).Where("id = ?", item.ID).
		Update("quantity", req.Quantity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	item.Quantity = req.Quantity
	return c.JSON(item)
}

func removeCartItem(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Item ID required",
		})
	}

	if err := db.DB.Delete(&models.CartItem{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete item",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
