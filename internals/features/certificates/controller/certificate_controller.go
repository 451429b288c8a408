package controller

import (
	"errors"
	"strconv"

	"akcert_backend/internals/features/certificates/dto"
	"akcert_backend/internals/features/certificates/service"
	helper "akcert_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type CertificateController struct {
	Registry *service.Registry
}

func NewCertificateController(registry *service.Registry) *CertificateController {
	return &CertificateController{Registry: registry}
}

// ✅ GET ALL (admin)
func (ctrl *CertificateController) GetAll(c *fiber.Ctx) error {
	rows, err := ctrl.Registry.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonList(c, dto.FromModels(rows))
}

// ✅ CREATE (admin)
func (ctrl *CertificateController) Create(c *fiber.Ctx) error {
	var body dto.CreateCertificateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}

	cert, err := ctrl.Registry.Create(c.UserContext(), body)
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Info().Str("certificate_id", cert.CertificateID).Msg("certificate issued")
	return helper.JsonCreated(c, dto.FromModel(*cert))
}

// ✅ DELETE (admin) by internal key
func (ctrl *CertificateController) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrNotFound.Error())
	}

	if err := ctrl.Registry.Delete(c.UserContext(), uint(id)); err != nil {
		return writeServiceError(c, err)
	}

	log.Info().Uint64("id", id).Msg("certificate deleted")
	return helper.JsonSuccess(c)
}

// ✅ GET BY PUBLIC ID (public verification)
func (ctrl *CertificateController) GetByCertificateID(c *fiber.Ctx) error {
	cert, err := ctrl.Registry.GetByPublicID(c.UserContext(), c.Params("certificateId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, dto.FromModel(*cert))
}

func writeServiceError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		if len(ve.Fields) > 0 {
			return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, ve.Error(), ve.Fields)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrNotFound.Error())
	case errors.Is(err, service.ErrConstraintViolation):
		log.Warn().Err(err).Msg("certificate id collision")
		return helper.JsonError(c, fiber.StatusConflict, service.ErrConstraintViolation.Error())
	case errors.Is(err, service.ErrUnsupportedFormat):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
