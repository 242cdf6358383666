package routes

import (
	"fmt"
	"log"
	"strings"
	"time"

	"lumina/db"
	"lumina/models"
	"lumina/telegram"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CheckoutItem struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name" validate:"required"`
	ProductImage string  `json:"product_image"`
	Quantity     int     `json:"quantity" validate:"required,gte=1"`
	Price        float64 `json:"price" validate:"gte=0"`
}

type CheckoutCustomer struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Telegram string `json:"telegram"`
	Notes    string `json:"notes"`
}

type CheckoutRequest struct {
	UserID      string           `json:"userId" validate:"required"`
	Customer    CheckoutCustomer `json:"customer" validate:"required"`
	Subtotal    float64          `json:"subtotal" validate:"gte=0"`
	ShippingFee float64          `json:"shippingFee" validate:"gte=0"`
	Total       float64          `json:"total" validate:"gte=0"`
	Items       []CheckoutItem   `json:"items" validate:"required,min=1,dive"`
}

// newOrderNumber builds a human-readable order code. The uuid fragment plus
// the unique index on order_number make collisions a non-issue even under
// concurrent checkouts.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// placeOrder inserts the order and its line items in one transaction and
// clears the originating cart. Either everything lands or nothing does; an
// order row can never exist without its items.
func placeOrder(order *models.Order, items []models.OrderItem, cartUserID string) error {
	tx := db.DB.Begin()
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return err
	}
	if cartUserID != "" {
		if err := tx.Where("user_id = ?", cartUserID).Delete(&models.CartItem{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// notifyOrderPlaced is the single notification policy for every order path:
// best-effort Telegram message, flag the row on success, push the dashboard
// event. A notification failure never fails the order.
func notifyOrderPlaced(order *models.Order, items []models.OrderItem) {
	if err := telegram.NotifyOrder(order, items); err != nil {
		if err != telegram.ErrNotConfigured {
			log.Println("Telegram notification failed:", err)
		}
	} else {
		if err := db.DB.Model(order).Update("telegram_sent", true).Error; err != nil {
			log.Println("Failed to flag telegram_sent:", err)
		}
	}
	broadcastOrderEvent("order.created", order.ID, order.OrderNumber, order.Status)
}

func checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
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

	order := models.Order{
		OrderNumber:      newOrderNumber(),
		CustomerName:     req.Customer.Name,
		CustomerEmail:    req.Customer.Email,
		CustomerPhone:    req.Customer.Phone,
		CustomerAddress:  req.Customer.Address,
		CustomerTelegram: req.Customer.Telegram,
		Subtotal:         req.Subtotal,
		ShippingFee:      req.ShippingFee,
		Total:            req.Total,
		Status:           models.StatusPending,
		Notes:            req.Customer.Notes,
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItem := models.OrderItem{
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Price:        item.Price,
		}
		if item.ProductID != 0 {
			pid := item.ProductID
			orderItem.ProductID = &pid
		}
		items = append(items, orderItem)
	}

	if err := placeOrder(&order, items, req.UserID); err != nil {
		log.Println("Checkout error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order",
		})
	}

	notifyOrderPlaced(&order, items)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
	})
}
