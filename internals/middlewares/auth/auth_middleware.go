// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authService "akcert_backend/internals/features/auth/service"
	helper "akcert_backend/internals/helpers"
)

// RequireAdminSession rejects the request with 401 unless it carries a live
// admin session. It runs before body parsing, so payload validity never
// matters for an unauthenticated caller.
func RequireAdminSession(authority *authService.Authority) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := authority.Check(c.UserContext(), helper.GetRawSessionToken(c))
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("session check failed")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, authService.ErrUnauthorized.Error())
		}
		return c.Next()
	}
}
