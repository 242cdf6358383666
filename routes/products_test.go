package routes

import (
	"fmt"
	"net/http"
	"testing"

	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
)

func TestCatalogExcludesInactiveProducts(t *testing.T) {
	app := setupApp(t)
	seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)
	hidden := seedProduct(t, "Hidden Ring", "hidden-ring", 80, 5, false)

	var body ProductListResponse
	resp := doRequest(t, app, http.MethodGet, "/api/products", nil, "")
	decodeBody(t, resp, &body)

	if body.Total != 1 {
		t.Fatalf("expected 1 product, got %d", body.Total)
	}
	for _, p := range body.Products {
		if p.ID == hidden.ID {
			t.Fatalf("inactive product %d leaked into the catalog", hidden.ID)
		}
	}
}

func TestCatalogUnknownCategorySlugReturnsUnfilteredSet(t *testing.T) {
	app := setupApp(t)
	seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)
	seedProduct(t, "Silver Chain", "silver-chain", 60, 5, true)

	var body ProductListResponse
	resp := doRequest(t, app, http.MethodGet, "/api/products?category=no-such-category", nil, "")
	decodeBody(t, resp, &body)

	if body.Total != 2 {
		t.Fatalf("unknown category slug should be ignored, got %d products", body.Total)
	}
}

func TestCatalogCategoryFilter(t *testing.T) {
	app := setupApp(t)
	rings := seedCategory(t, "Rings", "rings")

	ring := seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)
	db.DB.Model(&ring).Update("category_id", rings.ID)
	seedProduct(t, "Silver Chain", "silver-chain", 60, 5, true)

	var body ProductListResponse
	resp := doRequest(t, app, http.MethodGet, "/api/products?category=rings", nil, "")
	decodeBody(t, resp, &body)

	if body.Total != 1 || body.Products[0].ID != ring.ID {
		t.Fatalf("expected only the ring, got %+v", body.Products)
	}
}

func TestCatalogPriceBoundsAndSort(t *testing.T) {
	app := setupApp(t)
	seedProduct(t, "Cheap", "cheap", 10, 5, true)
	seedProduct(t, "Mid", "mid", 20, 5, true)
	seedProduct(t, "Dear", "dear", 30, 5, true)

	var body ProductListResponse
	resp := doRequest(t, app, http.MethodGet, "/api/products?min=15&sort=price-asc", nil, "")
	decodeBody(t, resp, &body)

	if body.Total != 2 {
		t.Fatalf("expected 2 products above 15, got %d", body.Total)
	}
	if body.Products[0].Price != 20 || body.Products[1].Price != 30 {
		t.Fatalf("expected ascending price order, got %v then %v", body.Products[0].Price, body.Products[1].Price)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/products?max=15", nil, "")
	decodeBody(t, resp, &body)
	if body.Total != 1 || body.Products[0].Slug != "cheap" {
		t.Fatalf("expected only the cheap product under 15, got %+v", body.Products)
	}
}

func TestSearchActiveOnlyCappedAtTen(t *testing.T) {
	app := setupApp(t)
	for i := 0; i < 12; i++ {
		seedProduct(t, fmt.Sprintf("Pearl Item %d", i), fmt.Sprintf("pearl-%d", i), 25, 5, true)
	}
	seedProduct(t, "Pearl Hidden", "pearl-hidden", 25, 5, false)

	var results []SearchResult
	resp := doRequest(t, app, http.MethodGet, "/api/products/search?query=pearl", nil, "")
	decodeBody(t, resp, &results)

	if len(results) != 10 {
		t.Fatalf("expected 10 capped results, got %d", len(results))
	}
	for _, r := range results {
		if r.Href == "/products/pearl-hidden" {
			t.Fatal("inactive product leaked into search results")
		}
	}
}

func TestSearchEmptyQueryReturnsEmptyList(t *testing.T) {
	app := setupApp(t)
	seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)

	var results []SearchResult
	resp := doRequest(t, app, http.MethodGet, "/api/products/search", nil, "")
	decodeBody(t, resp, &results)

	if len(results) != 0 {
		t.Fatalf("expected no results without a query, got %d", len(results))
	}
}

func TestProductBySlugHidesInactive(t *testing.T) {
	app := setupApp(t)
	seedProduct(t, "Hidden Ring", "hidden-ring", 80, 5, false)

	resp := doRequest(t, app, http.MethodGet, "/api/products/slug/hidden-ring", nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for inactive product, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateProductRequiresAuth(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name": "Gold Ring", "slug": "gold-ring", "price": 120,
		"image_urls": []string{"https://cdn.example.com/a.jpg"},
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateProductRequiresImage(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name": "Gold Ring", "slug": "gold-ring", "price": 120,
		"image_urls": []string{},
	}, cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without images, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateProductSlugConflict(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)

	resp := doRequest(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name": "Another Ring", "slug": "gold-ring", "price": 90,
		"image_urls": []string{"https://cdn.example.com/b.jpg"},
	}, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate slug, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDeleteProductPreservesOrderSnapshot(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	product := seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)

	order := models.Order{OrderNumber: newOrderNumber(), CustomerName: "Ada", Status: models.StatusPending, Total: 240}
	items := []models.OrderItem{{
		ProductID:    &product.ID,
		ProductName:  product.Name,
		ProductImage: product.ImageURL,
		Quantity:     2,
		Price:        120,
	}}
	if err := placeOrder(&order, items, ""); err != nil {
		t.Fatalf("place order: %v", err)
	}

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete product: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	var count int64
	db.DB.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatal("product row still present after delete")
	}

	var body struct {
		Items []models.OrderItem `json:"items"`
	}
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil, "")
	decodeBody(t, resp, &body)

	if len(body.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(body.Items))
	}
	item := body.Items[0]
	if item.ProductID != nil {
		t.Fatal("order item should have a nulled product reference after product deletion")
	}
	if item.ProductName != "Gold Ring" || item.Price != 120 {
		t.Fatalf("order item snapshot damaged: %+v", item)
	}
}

func TestUpdateProductReflectsNewFields(t *testing.T) {
	app := setupApp(t)
	cookie := adminCookie(t, app)
	product := seedProduct(t, "Gold Ring", "gold-ring", 120, 5, true)

	resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), fiber.Map{
		"name": "Gold Ring II", "slug": "gold-ring", "price": 140,
		"stock":      3,
		"is_active":  false,
		"image_urls": []string{product.ImageURL, "https://cdn.example.com/extra.jpg"},
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update product: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	var updated models.Product
	if err := db.DB.First(&updated, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if updated.Name != "Gold Ring II" || updated.Price != 140 || updated.Stock != 3 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.IsActive {
		t.Fatal("is_active=false was not applied")
	}
	if len(updated.AdditionalImages) != 1 || updated.AdditionalImages[0] != "https://cdn.example.com/extra.jpg" {
		t.Fatalf("gallery images not stored: %v", updated.AdditionalImages)
	}
}
