package routes

import (
	"time"

	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int            `json:"total"`
}

type UpdateOrderStatusRequest struct {
	OrderID uint   `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

func getAllOrders(c *fiber.Ctx) error {
	dbQuery := db.DB.Preload("OrderItems").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		dbQuery = dbQuery.Where("status = ?", status)
	}

	var orders []models.Order
	if err := dbQuery.Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(OrderListResponse{
		Orders: orders,
		Total:  len(orders),
	})
}

func getOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var order models.Order

	if err := db.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(fiber.Map{
		"order": order,
		"items": order.OrderItems,
	})
}

// updateOrderStatus sets the status directly. Any known status can follow any
// other; the linear sequence is advisory in the dashboard, not enforced here.
func updateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
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

	if !models.ValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown order status",
		})
	}

	var order models.Order
	if err := db.DB.First(&order, req.OrderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusCancelled {
		updates["cancelled_at"] = time.Now()
	}

	if err := db.DB.Model(&order).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order",
		})
	}

	broadcastOrderEvent("order.updated", order.ID, order.OrderNumber, req.Status)

	order.Status = req.Status
	return c.JSON(order)
}

func cancelOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if err := db.DB.Model(&order).Updates(map[string]interface{}{
		"status":       models.StatusCancelled,
		"cancelled_at": time.Now(),
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel order",
		})
	}

	broadcastOrderEvent("order.updated", order.ID, order.OrderNumber, models.StatusCancelled)

	return c.JSON(fiber.Map{"success": true})
}

// restoreOrder reverses a cancellation. The dashboard only offers this as a
// short-lived undo, but the endpoint itself is not time-bounded.
func restoreOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if err := db.DB.Model(&order).Updates(map[string]interface{}{
		"status":       models.StatusRequested,
		"cancelled_at": nil,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to restore order",
		})
	}

	broadcastOrderEvent("order.updated", order.ID, order.OrderNumber, models.StatusRequested)

	return c.JSON(fiber.Map{"success": true})
}

type LoadToCartRequest struct {
	CartUserID string `json:"cart_user_id"`
}

// loadOrderToCart copies an order's line items back into a cart, generating
// an anonymous cart id when the caller has none. Items whose product has
// since been deleted are skipped.
func loadOrderToCart(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	var req LoadToCartRequest
	_ = c.BodyParser(&req) // body is optional

	cartUserID := req.CartUserID
	if cartUserID == "" {
		cartUserID = uuid.NewString()
	}

	for _, item := range order.OrderItems {
		if item.ProductID == nil {
			continue
		}
		cartItem := models.CartItem{
			UserID:    cartUserID,
			ProductID: *item.ProductID,
			Quantity:  item.Quantity,
		}
		if err := db.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", item.Quantity),
				"updated_at": time.Now(),
			}),
		}).Create(&cartItem).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to insert cart items",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"cart_user_id": cartUserID,
	})
}

func deleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	tx := db.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order items",
		})
	}
	if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order",
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
