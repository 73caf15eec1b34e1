package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Guard     *SessionGuard
	Auth      *AuthHandler
	Users     *UserHandler
	Resources *ResourceHandler
}

// Router registra las rutas de la API. Solo /api/auth/login es público;
// todo lo demás pasa por el SessionGuard y sale sin cache.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", deps.Auth.Login)

	// Rutas protegidas (Bearer + cookie de sesión)
	protected := api.Group("/", deps.Guard.Handler(), NoStore())

	protected.Post("/auth/logout", deps.Auth.Logout)

	users := protected.Group("/users")
	users.Post("/", deps.Users.Create)
	users.Patch("/:id", deps.Users.Update)
	users.Delete("/:id", deps.Users.Delete)

	protected.Get("/orders", deps.Resources.Orders)
	protected.Get("/payments", deps.Resources.Payments)
}
