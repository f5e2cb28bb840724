package routes

import (
	"github.com/bookshelfapp/bookshelf-server/internal/config"
	"github.com/bookshelfapp/bookshelf-server/internal/handlers"
	"github.com/bookshelfapp/bookshelf-server/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	shelfHandler *handlers.ShelfHandler,
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
	setupHandler *handlers.SetupHandler,
) {
	api := app.Group("/api")

	// Health and catalog search are public.
	api.Get("/health", healthHandler.Check)
	api.Get("/search", searchHandler.Search)

	// Setup is idempotent and create-if-absent only, so it stays public
	// to allow first-run bootstrap from the web client.
	api.Post("/setup", setupHandler.Run)

	// Auth - public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Post("/demo", authHandler.DemoLogin)

	// Protected routes (JWT required) - apply middleware per route so the
	// public routes above stay untouched.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	shelf := api.Group("/shelf", middleware.JWTProtected(cfg))
	shelf.Get("/", shelfHandler.List)
	shelf.Post("/", shelfHandler.Add)
	shelf.Patch("/:id", shelfHandler.UpdateStatus)
	shelf.Delete("/:id", shelfHandler.Remove)
}
