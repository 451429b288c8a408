package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authService "akcert_backend/internals/features/auth/service"
	helper "akcert_backend/internals/helpers"
)

type AuthController struct {
	Authority    *authService.Authority
	CookieSecure bool
}

func NewAuthController(authority *authService.Authority, cookieSecure bool) *AuthController {
	return &AuthController{Authority: authority, CookieSecure: cookieSecure}
}

type loginRequest struct {
	Password string `json:"password"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	grant, err := ac.Authority.Authenticate(c.UserContext(), input.Password, authService.ClientMeta{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IP:        c.IP(),
	})
	if errors.Is(err, authService.ErrInvalidCredential) {
		log.Info().Str("ip", c.IP()).Msg("admin login rejected")
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return err
	}

	ac.setSessionCookie(c, grant.Token, grant.ExpiresAt)
	log.Info().Str("sid", grant.SessionID.String()).Msg("admin session granted")
	return helper.JsonSuccess(c)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Authority.Revoke(c.UserContext(), helper.GetRawSessionToken(c)); err != nil {
		// the cookie is cleared regardless; a stale row ages out
		log.Warn().Err(err).Msg("failed to revoke admin session")
	}
	ac.clearSessionCookie(c)
	return helper.JsonSuccess(c)
}

// GET /api/auth/check
func (ac *AuthController) Check(c *fiber.Ctx) error {
	ok, err := ac.Authority.Check(c.UserContext(), helper.GetRawSessionToken(c))
	if err != nil {
		return err
	}
	if !ok {
		ac.clearSessionCookie(c)
	}
	return helper.JsonOK(c, fiber.Map{"authenticated": ok})
}

func (ac *AuthController) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   ac.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  expires,
	})
}

func (ac *AuthController) clearSessionCookie(c *fiber.Ctx) {
	if c.Cookies(helper.SessionCookieName) == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   ac.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
}
