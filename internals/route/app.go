package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"

	"akcert_backend/internals/configs"
	authService "akcert_backend/internals/features/auth/service"
	certificateRepo "akcert_backend/internals/features/certificates/repository"
	certificateService "akcert_backend/internals/features/certificates/service"
	helper "akcert_backend/internals/helpers"
	middlewares "akcert_backend/internals/middlewares"
	"akcert_backend/internals/middlewares/logger"
)

const requestTimeout = 5 * time.Second

// NewServices wires the domain components from cfg and db.
func NewServices(cfg *configs.Config, db *gorm.DB) (Services, error) {
	ids, err := certificateService.NewIdentifierGenerator(cfg.CertIDMode)
	if err != nil {
		return Services{}, err
	}
	return Services{
		Authority: authService.NewAuthority(db, cfg.AdminPasswordHash, cfg.SessionSecret, cfg.SessionTTL),
		Registry:  certificateService.NewRegistry(certificateRepo.NewCertificateRepository(db), ids),
		QRIssuer:  certificateService.NewQRIssuer(cfg.PublicBaseURL, cfg.QREmbedID),
	}, nil
}

// NewApp builds the fiber app with middleware and routes mounted.
func NewApp(cfg *configs.Config, db *gorm.DB, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(logger.RequestLogger(requestTimeout))
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	SetupRoutes(app, db, cfg, svc)
	return app
}
