package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nueltech/catalog-service/internal/api/http/handlers"
	"github.com/nueltech/catalog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	AuthRateLimit  fiber.Handler
}

// RegisterRoutes wires HTTP routes. Catalog reads are public; catalog
// writes require a valid bearer token whose claims carry the admin flag.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	if cfg.AuthRateLimit != nil {
		authGroup.Use(cfg.AuthRateLimit)
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)

	adminProducts := products.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminProducts.Post("/", cfg.Products.Create)
	adminProducts.Put("/:id", cfg.Products.Update)
	adminProducts.Delete("/:id", cfg.Products.Delete)
}
