package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Product{}, &models.Category{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Slide{}, &models.Admin{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db.DB = gdb

	app := fiber.New()
	SetupRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func seedProduct(t *testing.T, name, slug string, price float64, stock uint, active bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Slug:     slug,
		Price:    price,
		ImageURL: "https://cdn.example.com/images/" + slug + ".jpg",
		Stock:    stock,
		IsActive: active,
	}
	if err := db.DB.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", slug, err)
	}
	return product
}

func seedCategory(t *testing.T, name, slug string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug}
	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("seed category %s: %v", slug, err)
	}
	return category
}

// adminCookie bootstraps an admin, logs in and returns the session cookie
// header value.
func adminCookie(t *testing.T, app *fiber.App) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	resp := doRequest(t, app, http.MethodPost, "/api/admin", fiber.Map{
		"name":     "Store Owner",
		"email":    "owner@example.com",
		"password": "sufficiently-long",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create admin: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/admin/login", fiber.Map{
		"email":    "owner@example.com",
		"password": "sufficiently-long",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == "admin_auth" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("admin login did not set session cookie")
	return ""
}
