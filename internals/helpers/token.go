// helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const SessionCookieName = "akcert_session"

// GetRawSessionToken returns the session token from:
// 1) cookie "akcert_session"
// 2) Authorization header "Bearer <token>"
func GetRawSessionToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies(SessionCookieName)); v != "" {
		return v
	}
	const p = "Bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}
