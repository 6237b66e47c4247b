package user

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// Session cookie names and the sentinel value both flags carry. The cookies
// are opaque presence flags, not tokens; nothing is derived from their value
// beyond the exact match.
const (
	UserSessionCookie  = "user_session"
	AdminSessionCookie = "admin_session"
	SessionSentinel    = "logged_in"
)

// HasUserSession reports whether the request carries the user sentinel.
func HasUserSession(c *fiber.Ctx) bool {
	return c.Cookies(UserSessionCookie) == SessionSentinel
}

// HasAdminSession reports whether the request carries the admin sentinel.
func HasAdminSession(c *fiber.Ctx) bool {
	return c.Cookies(AdminSessionCookie) == SessionSentinel
}

// AdminGuard protects admin routes. Browser clients pass with the admin
// session cookie; everything else must present the bearer token issued at
// admin login, verified by the JWT middleware.
func AdminGuard(jwtSecret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(jwtSecret),
		Filter: func(c *fiber.Ctx) bool {
			// cookie sentinel already authenticates the request, skip JWT
			return HasAdminSession(c)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
		},
	})
}

func setSessionCookie(c *fiber.Ctx, name, sameSite string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    SessionSentinel,
		Path:     "/",
		HTTPOnly: true,
		SameSite: sameSite,
		Expires:  time.Now().Add(maxAge),
	})
}

func clearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
}
