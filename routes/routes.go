package routes

import (
	"lumina/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func SetupRoutes(app *fiber.App) {
	// Order-event feed for admin dashboards
	app.Get("/ws", orderFeedHandler())
	startBroadcaster()

	api := app.Group("/api")

	// Admin account and session
	api.Post("/admin", createAdmin)
	api.Post("/admin/login", middleware.RateLimit(5), adminLogin)
	api.Post("/admin/logout", adminLogout)
	api.Get("/admin/products", middleware.RequireAdmin, getAdminProducts)

	// Slideshow: homepage reads it, only admins change it
	api.Get("/admin/slideshow", getSlideshow)
	api.Post("/admin/slideshow", middleware.RequireAdmin, addSlide)
	api.Delete("/admin/slideshow", middleware.RequireAdmin, removeSlide)

	// Product routes
	products := api.Group("/products")
	products.Get("/search", searchProducts)
	products.Get("/slug/:slug", getProductBySlug)
	products.Get("/", getCatalog)
	products.Post("/", middleware.RequireAdmin, createProduct)
	products.Get("/:id", getProduct)
	products.Put("/:id", middleware.RequireAdmin, updateProduct)
	products.Delete("/:id", middleware.RequireAdmin, deleteProduct)

	// Category routes
	categories := api.Group("/categories")
	categories.Get("/", getAllCategories)
	categories.Post("/", middleware.RequireAdmin, createCategory)
	categories.Get("/:id", getCategory)
	categories.Patch("/:id", middleware.RequireAdmin, updateCategory)
	categories.Delete("/:id", middleware.RequireAdmin, deleteCategory)

	// Cart routes, keyed by the anonymous cart identifier
	cart := api.Group("/cart")
	cart.Get("/", getCart)
	cart.Post("/", addToCart)
	cart.Patch("/", updateCartItem)
	cart.Delete("/", removeCartItem)

	// Checkout and contact flows
	api.Post("/checkout", middleware.RateLimit(10), checkout)
	api.Post("/contact-order", contactOrder)
	api.Post("/contact-message", contactMessage)

	// Order routes
	orders := api.Group("/orders")
	orders.Get("/", middleware.RequireAdmin, getAllOrders)
	orders.Patch("/", middleware.RequireAdmin, updateOrderStatus)
	orders.Get("/:id", getOrder)
	orders.Post("/:id/cancel", middleware.RequireAdmin, cancelOrder)
	orders.Post("/:id/restore", middleware.RequireAdmin, restoreOrder)
	orders.Post("/:id/load-to-cart", loadOrderToCart)
	orders.Delete("/:id", middleware.RequireAdmin, deleteOrder)
}
