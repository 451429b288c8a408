package route

import (
	certificateController "akcert_backend/internals/features/certificates/controller"
	"akcert_backend/internals/features/certificates/service"

	"github.com/gofiber/fiber/v2"
)

// Admin: list / issue / delete. requireAdmin gates every route here.
func CertificateAdminRoutes(api fiber.Router, registry *service.Registry, requireAdmin fiber.Handler) {
	certCtrl := certificateController.NewCertificateController(registry)

	certs := api.Group("/certificates")
	certs.Get("/", requireAdmin, certCtrl.GetAll)
	certs.Post("/", requireAdmin, certCtrl.Create)
	certs.Delete("/:id", requireAdmin, certCtrl.Delete)
}
