package routes

import (
	"log"

	"lumina/models"
	"lumina/telegram"

	"github.com/gofiber/fiber/v2"
)

type ContactCustomer struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message"`
}

type ContactOrderItem struct {
	ID          uint    `json:"id"`
	ProductName string  `json:"product_name" validate:"required"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// ContactOrderRequest serves two modes: a simplified order placement
// (isOrder true) or a plain contact message relayed to the operator chat.
type ContactOrderRequest struct {
	IsOrder  bool               `json:"isOrder"`
	Customer ContactCustomer    `json:"customer" validate:"required"`
	Total    float64            `json:"total" validate:"gte=0"`
	Items    []ContactOrderItem `json:"items" validate:"omitempty,dive"`
}

func contactOrder(c *fiber.Ctx) error {
	var req ContactOrderRequest
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

	if !req.IsOrder {
		if err := telegram.NotifyContact(req.Customer.Name, req.Customer.Contact, req.Customer.Email, req.Customer.Message); err != nil {
			log.Println("Contact message failed:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to send message",
			})
		}
		return c.JSON(fiber.Map{"success": true})
	}

	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Order must contain at least one item",
		})
	}

	// The single contact field doubles as phone and Telegram handle.
	order := models.Order{
		OrderNumber:      newOrderNumber(),
		CustomerName:     req.Customer.Name,
		CustomerEmail:    req.Customer.Email,
		CustomerPhone:    req.Customer.Contact,
		CustomerTelegram: req.Customer.Contact,
		Subtotal:         req.Total,
		Total:            req.Total,
		Status:           models.StatusRequested,
		Notes:            req.Customer.Message,
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItem := models.OrderItem{
			ProductName:  item.ProductName,
			ProductImage: item.ImageURL,
			Quantity:     item.Quantity,
			Price:        item.Price,
		}
		if item.ID != 0 {
			pid := item.ID
			orderItem.ProductID = &pid
		}
		items = append(items, orderItem)
	}

	if err := placeOrder(&order, items, ""); err != nil {
		log.Println("Contact order error:", err)
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

func contactMessage(c *fiber.Ctx) error {
	var req ContactCustomer
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

	if err := telegram.NotifyContact(req.Name, req.Contact, req.Email, req.Message); err != nil {
		log.Println("Contact message failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
