package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// FromFiberError turns any handler error into the JSON error shape.
// *fiber.Error keeps its code; anything else is a 500 without leaking details.
// Also used as fiber.Config.ErrorHandler.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}
