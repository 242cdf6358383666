package routes

import (
	"lumina/db"
	"lumina/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddSlideRequest struct {
	ProductID uint `json:"productId" validate:"required"`
}

// getSlideshow returns the banner products in display order. Entries whose
// product went inactive or disappeared are silently dropped.
func getSlideshow(c *fiber.Ctx) error {
	var slides []models.Slide
	if err := db.DB.Order("position asc").Find(&slides).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get slideshow",
		})
	}

	if len(slides) == 0 {
		return c.JSON(fiber.Map{"products": []models.Product{}})
	}

	ids := make([]uint, 0, len(slides))
	for _, s := range slides {
		ids = append(ids, s.ProductID)
	}

	var products []models.Product
	if err := db.DB.Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get slideshow products",
		})
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]models.Product, 0, len(slides))
	for _, s := range slides {
		if p, ok := byID[s.ProductID]; ok {
			ordered = append(ordered, p)
		}
	}

	return c.JSON(fiber.Map{"products": ordered})
}

func addSlide(c *fiber.Ctx) error {
	var req AddSlideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "productId required",
		})
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	// Adding the same product twice is a no-op
	var existing models.Slide
	if err := db.DB.Where("product_id = ?", req.ProductID).First(&existing).Error; err == nil {
		return c.JSON(fiber.Map{"success": true})
	} else if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check slideshow",
		})
	}

	// New slides go to the end of the rotation
	nextPos := 0
	var last models.Slide
	if err := db.DB.Order("position desc").First(&last).Error; err == nil {
		nextPos = last.Position + 1
	}

	slide := models.Slide{
		ProductID: req.ProductID,
		Position:  nextPos,
	}
	if err := db.DB.Create(&slide).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add slide",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func removeSlide(c *fiber.Ctx) error {
	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "productId required",
		})
	}

	if err := db.DB.Where("product_id = ?", productID).Delete(&models.Slide{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove slide",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
