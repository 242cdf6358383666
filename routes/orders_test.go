package routes

import (
	"fmt"
	"net/http"
	"testing"

	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
)

func seedOrder(t *testing.T, status string, items []models.OrderItem) models.Order {
	t.Helper()
	if len(items) == 0 {
		items = []models.OrderItem{{ProductName: "Gold Ring", Quantity: 1, Price: 35}}
	}
	order := models.Order{
		OrderNumber:  newOrderNumber(),
		CustomerName: "Ada",
		Status:       status,
		Total:        35,
	}
	if err := placeOrder(&order, items, ""); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestOrderListRequiresAuth(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/orders", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOrderListFiltersByStatus(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	seedOrder(t, models.StatusPending, nil)
	seedOrder(t, models.StatusCompleted, nil)

	var body OrderListResponse
	resp := doRequest(t, app, http.MethodGet, "/api/orders?status=completed", nil, cookie)
	decodeBody(t, resp, &body)

	if body.Total != 1 || body.Orders[0].Status != models.StatusCompleted {
		t.Fatalf("expected only the completed order, got %+v", body.Orders)
	}
}

func TestStatusTransitionsArePermissive(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	order := seedOrder(t, models.StatusCompleted, nil)

	// Moving backwards through the sequence is allowed
	resp := doRequest(t, app, http.MethodPatch, "/api/orders", fiber.Map{
		"orderId": order.ID, "status": models.StatusRequested,
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("backward transition: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	var reloaded models.Order
	db.DB.First(&reloaded, order.ID)
	if reloaded.Status != models.StatusRequested {
		t.Fatalf("expected requested, got %s", reloaded.Status)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	order := seedOrder(t, models.StatusPending, nil)

	resp := doRequest(t, app, http.MethodPatch, "/api/orders", fiber.Map{
		"orderId": order.ID, "status": "shipped-to-mars",
	}, cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCancelAndRestoreOrder(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	order := seedOrder(t, models.StatusPending, nil)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.ID), nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel order: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	var cancelled models.Order
	db.DB.First(&cancelled, order.ID)
	if cancelled.Status != models.StatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %+v", cancelled)
	}

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%d/restore", order.ID), nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restore order: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	var restored models.Order
	db.DB.First(&restored, order.ID)
	if restored.Status != models.StatusRequested || restored.CancelledAt != nil {
		t.Fatalf("expected requested with cleared timestamp, got %+v", restored)
	}
}

func TestLoadOrderToCart(t *testing.T) {
	app := setupApp(t)
	product := seedProduct(t, "Gold Ring", "gold-ring", 10, 10, true)
	order := seedOrder(t, models.StatusCompleted, []models.OrderItem{{
		ProductID:   &product.ID,
		ProductName: product.Name,
		Quantity:    2,
		Price:       10,
	}})

	var result struct {
		Success    bool   `json:"success"`
		CartUserID string `json:"cart_user_id"`
	}
	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%d/load-to-cart", order.ID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load to cart: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &result)

	if result.CartUserID == "" {
		t.Fatal("expected a generated cart user id")
	}

	var items []models.CartItem
	db.DB.Where("user_id = ?", result.CartUserID).Find(&items)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one cart row with quantity 2, got %+v", items)
	}
}

func TestLoadOrderToCartSkipsDeletedProducts(t *testing.T) {
	app := setupApp(t)
	order := seedOrder(t, models.StatusCompleted, []models.OrderItem{{
		ProductID:   nil, // product was deleted after the purchase
		ProductName: "Gone Ring",
		Quantity:    1,
		Price:       10,
	}})

	var result struct {
		CartUserID string `json:"cart_user_id"`
	}
	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/orders/%d/load-to-cart", order.ID), nil, "")
	decodeBody(t, resp, &result)

	var count int64
	db.DB.Model(&models.CartItem{}).Where("user_id = ?", result.CartUserID).Count(&count)
	if count != 0 {
		t.Fatal("cart row created for a deleted product")
	}
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	product := seedProduct(t, "Gold Ring", "gold-ring", 10, 10, true)
	order := seedOrder(t, models.StatusCompleted, []models.OrderItem{{
		ProductID:   &product.ID,
		ProductName: product.Name,
		Quantity:    1,
		Price:       10,
	}})

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete order: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	var orderCount, itemCount int64
	db.DB.Model(&models.Order{}).Where("id = ?", order.ID).Count(&orderCount)
	db.DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("order %d items %d left behind", orderCount, itemCount)
	}
}

func TestGetOrderByIDIsPublic(t *testing.T) {
	app := setupApp(t)
	order := seedOrder(t, models.StatusPending, nil)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("order confirmation page needs the order without a session, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
