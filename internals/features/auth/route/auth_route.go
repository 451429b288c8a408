// file: internals/features/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "akcert_backend/internals/features/auth/controller"
	authService "akcert_backend/internals/features/auth/service"
)

// Base: /api/auth
func AuthRoutes(app fiber.Router, authority *authService.Authority, cookieSecure bool) {
	authController := controller.NewAuthController(authority, cookieSecure)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", authController.Login)
	baseAuth.Post("/logout", authController.Logout)
	baseAuth.Get("/check", authController.Check)
}
