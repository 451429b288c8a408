// file: internals/route/index.go
package routes

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"akcert_backend/internals/configs"
	authRoute "akcert_backend/internals/features/auth/route"
	authService "akcert_backend/internals/features/auth/service"
	certificateRoute "akcert_backend/internals/features/certificates/route"
	certificateService "akcert_backend/internals/features/certificates/service"
	authMiddleware "akcert_backend/internals/middlewares/auth"
)

var startTime time.Time

// Services are the components the routes are mounted on.
type Services struct {
	Authority *authService.Authority
	Registry  *certificateService.Registry
	QRIssuer  *certificateService.QRIssuer
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, svc Services) {
	startTime = time.Now()

	log.Info().Msg("Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Info().Msg("Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, svc.Authority, cfg.CookieSecure)

	api := app.Group("/api")

	log.Info().Msg("Mounting Certificate routes...")
	requireAdmin := authMiddleware.RequireAdminSession(svc.Authority)
	certificateRoute.CertificateAdminRoutes(api, svc.Registry, requireAdmin)
	certificateRoute.CertificatePublicRoutes(api, svc.Registry, svc.QRIssuer)

	if cfg.StaticDir != "" {
		log.Info().Str("dir", cfg.StaticDir).Msg("Serving static files")
		app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})
		app.Use(SPAFallback(cfg.StaticDir))
	}
}

// SPAFallback answers unknown non-API GETs with index.html from dir.
func SPAFallback(dir string) fiber.Handler {
	index := filepath.Join(dir, "index.html")
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || strings.HasPrefix(c.Path(), "/api/") {
			return c.Next()
		}
		return c.SendFile(index)
	}
}
