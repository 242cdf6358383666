package routes

import (
	"log"
	"regexp"
	"strconv"

	"lumina/cloudinary"
	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

type SearchResult struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Href  string  `json:"href"`
}

type ProductRequest struct {
	Name           string   `json:"name" validate:"required"`
	Slug           string   `json:"slug" validate:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	CompareAtPrice *float64 `json:"compare_at_price" validate:"omitempty,gt=0"`
	CategoryID     *uint    `json:"category_id"`
	Stock          uint     `json:"stock"`
	IsActive       *bool    `json:"is_active"`
	IsFeatured     bool     `json:"is_featured"`
	IsTrending     bool     `json:"is_trending"`
	ImageURLs      []string `json:"image_urls" validate:"required,min=1"`
}

// getCatalog translates the storefront filters into one filtered, sorted
// query. Only active products are ever returned here.
func getCatalog(c *fiber.Ctx) error {
	dbQuery := db.DB.Preload("Category").Where("is_active = ?", true)

	// A category slug with no matching row is silently ignored: the shop page
	// falls back to the unfiltered set rather than erroring.
	if slug := c.Query("category"); slug != "" {
		var category models.Category
		if err := db.DB.Where("slug = ?", slug).First(&category).Error; err == nil {
			dbQuery = dbQuery.Where("category_id = ?", category.ID)
		}
	}

	if minStr := c.Query("min"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid min parameter",
			})
		}
		dbQuery = dbQuery.Where("price >= ?", min)
	}
	if maxStr := c.Query("max"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid max parameter",
			})
		}
		dbQuery = dbQuery.Where("price <= ?", max)
	}

	if c.Query("featured") == "true" {
		dbQuery = dbQuery.Where("is_featured = ?", true)
	}
	if c.Query("trending") == "true" {
		dbQuery = dbQuery.Where("is_trending = ?", true)
	}
	if exclude := c.Query("exclude"); exclude != "" {
		dbQuery = dbQuery.Where("id != ?", exclude)
	}

	switch c.Query("sort") {
	case "price-asc":
		dbQuery = dbQuery.Order("price asc")
	case "price-desc":
		dbQuery = dbQuery.Order("price desc")
	case "name":
		dbQuery = dbQuery.Order("name asc")
	default:
		dbQuery = dbQuery.Order("created_at desc")
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit := c.QueryInt("limit", 0)
		if limit <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit parameter",
			})
		}
		dbQuery = dbQuery.Limit(limit)
	}

	var products []models.Product
	if err := dbQuery.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// getAdminProducts lists everything, inactive products included.
func getAdminProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := db.DB.Preload("Category").Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

func getProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var product models.Product

	if err := db.DB.Preload("Category").First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(product)
}

func getProductBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	var product models.Product

	if err := db.DB.Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(product)
}

// searchProducts does a case-insensitive name match over active products,
// capped at 10 results.
func searchProducts(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.JSON([]SearchResult{})
	}

	var products []models.Product
	if err := db.DB.
		Where("LOWER(name) LIKE LOWER(?) AND is_active = ?", "%"+query+"%", true).
		Limit(10).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products",
		})
	}

	results := make([]SearchResult, 0, len(products))
	for _, p := range products {
		results = append(results, SearchResult{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.ImageURL,
			Href:  "/products/" + p.Slug,
		})
	}

	return c.JSON(results)
}

func createProduct(c *fiber.Ctx) error {
	var req ProductRequest
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

	if !slugPattern.MatchString(req.Slug) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slug must contain only lowercase letters, digits and hyphens",
		})
	}

	var existing models.Product
	if err := db.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Slug already in use",
		})
	} else if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check slug",
		})
	}

	// Validate if the CategoryID exists if provided
	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.First(&category, *req.CategoryID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := models.Product{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		Price:            req.Price,
		CompareAtPrice:   req.CompareAtPrice,
		CategoryID:       req.CategoryID,
		ImageURL:         req.ImageURLs[0],
		AdditionalImages: req.ImageURLs[1:],
		Stock:            req.Stock,
		IsActive:         isActive,
		IsFeatured:       req.IsFeatured,
		IsTrending:       req.IsTrending,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var req ProductRequest
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

	if !slugPattern.MatchString(req.Slug) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slug must contain only lowercase letters, digits and hyphens",
		})
	}

	var existingProduct models.Product
	if err := db.DB.First(&existingProduct, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	var conflicting models.Product
	if err := db.DB.Where("slug = ? AND id != ?", req.Slug, id).First(&conflicting).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Slug already in use",
		})
	} else if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check slug",
		})
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.First(&category, *req.CategoryID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
	}

	previousImages := existingProduct.Images()

	existingProduct.Name = req.Name
	existingProduct.Slug = req.Slug
	existingProduct.Description = req.Description
	existingProduct.Price = req.Price
	existingProduct.CompareAtPrice = req.CompareAtPrice
	existingProduct.CategoryID = req.CategoryID
	existingProduct.ImageURL = req.ImageURLs[0]
	existingProduct.AdditionalImages = req.ImageURLs[1:]
	existingProduct.Stock = req.Stock
	existingProduct.IsFeatured = req.IsFeatured
	existingProduct.IsTrending = req.IsTrending
	if req.IsActive != nil {
		existingProduct.IsActive = *req.IsActive
	}

	if err := db.DB.Save(&existingProduct).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}

	// Every image that was attached before but is gone from the submitted
	// list gets removed from the CDN. Best-effort, off the request path.
	removed := removedImages(previousImages, req.ImageURLs)
	if len(removed) > 0 {
		go cloudinary.DestroyURLs(removed)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
	})
}

func deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	// Detach references that must survive the product: order items keep their
	// snapshot, cart rows and slides lose their meaning and go away.
	tx := db.DB.Begin()
	if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).
		Update("product_id", nil).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detach order items",
		})
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove cart items",
		})
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.Slide{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove slideshow entries",
		})
	}
	if err := tx.Delete(&models.Product{}, product.ID).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product",
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	// The row is gone; CDN cleanup runs after so a failed delete can no
	// longer leave an imageless product behind.
	if images := product.Images(); len(images) > 0 {
		go cloudinary.DestroyURLs(images)
	}
	log.Printf("product %d deleted, %d images queued for cleanup", product.ID, len(product.Images()))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func removedImages(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	var removed []string
	for _, u := range before {
		if !keep[u] {
			removed = append(removed, u)
		}
	}
	return removed
}
