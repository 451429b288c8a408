package route

import (
	certificateController "akcert_backend/internals/features/certificates/controller"
	"akcert_backend/internals/features/certificates/service"

	"github.com/gofiber/fiber/v2"
)

// 🌐 Public: verification + QR
func CertificatePublicRoutes(api fiber.Router, registry *service.Registry, issuer *service.QRIssuer) {
	certCtrl := certificateController.NewCertificateController(registry)
	qrCtrl := certificateController.NewQRCodeController(issuer)

	api.Get("/certificates/:certificateId", certCtrl.GetByCertificateID)
	api.Get("/qrcode/:certificateId", qrCtrl.Generate)
}
