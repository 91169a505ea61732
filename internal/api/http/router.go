package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/aueb-cf/inventory-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Catalog        *handlers.CatalogHandler
	LoginThrottle  fiber.Handler
	MetricsHandler http.Handler
}

// RegisterRoutes wires HTTP routes. Access control is applied globally by the
// authorization middleware, so routes carry no per-route role checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.MetricsHandler))
	}

	api := app.Group("/api")

	login := []fiber.Handler{cfg.Auth.Authenticate}
	if cfg.LoginThrottle != nil {
		login = append([]fiber.Handler{cfg.LoginThrottle}, login...)
	}
	api.Post("/auth/authenticate", login...)
	api.Post("/users/register", cfg.Users.Register)

	categories := api.Group("/categories")
	categories.Get("", cfg.Catalog.ListCategories)
	categories.Get("/getAll", cfg.Catalog.ListCategories)
	categories.Post("/all", cfg.Catalog.ListCategories)
	categories.Post("/save", cfg.Catalog.SaveCategory)
	categories.Get("/:id", cfg.Catalog.GetCategory)
	categories.Delete("/:id", cfg.Catalog.DeleteCategory)

	suppliers := api.Group("/suppliers")
	suppliers.Get("", cfg.Catalog.ListSuppliers)
	suppliers.Get("/getAll", cfg.Catalog.ListSuppliers)
	suppliers.Post("/all", cfg.Catalog.ListSuppliers)
	suppliers.Post("/save", cfg.Catalog.SaveSupplier)
	suppliers.Get("/:id", cfg.Catalog.GetSupplier)
	suppliers.Delete("/:id", cfg.Catalog.DeleteSupplier)

	products := api.Group("/products")
	products.Get("", cfg.Catalog.ListProducts)
	products.Get("/getAll", cfg.Catalog.ListProducts)
	products.Get("/:id", cfg.Catalog.GetProduct)

	orders := api.Group("/orders")
	orders.Get("", cfg.Catalog.ListOrders)
	orders.Get("/getAll", cfg.Catalog.ListOrders)
	orders.Get("/:id", cfg.Catalog.GetOrder)
}
