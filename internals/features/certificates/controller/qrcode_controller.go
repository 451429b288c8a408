package controller

import (
	"akcert_backend/internals/features/certificates/dto"
	"akcert_backend/internals/features/certificates/service"
	helper "akcert_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type QRCodeController struct {
	Issuer *service.QRIssuer
}

func NewQRCodeController(issuer *service.QRIssuer) *QRCodeController {
	return &QRCodeController{Issuer: issuer}
}

// GET /api/qrcode/:certificateId?format=png|webp
func (ctrl *QRCodeController) Generate(c *fiber.Ctx) error {
	dataURI, err := ctrl.Issuer.RenderVerificationQR(c.BaseURL(), c.Params("certificateId"), c.Query("format"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, dto.QRCodeResponse{QRCode: dataURI})
}
