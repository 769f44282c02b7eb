package jwt

import (
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CookieName is where the browser client carries the credential.
const CookieName = "auth_token"

// NewAuthMiddleware returns a Fiber middleware that validates the session
// credential from the auth cookie or an Authorization header.
// On success sets user id into c.Locals("userId") and email into
// c.Locals("userEmail").
//
// All failures answer with the same message regardless of the internal
// kind (expired vs invalid); the kind is logged server-side only.
func NewAuthMiddleware(codec *Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			tokenStr = tokenFromHeader(c.Get("Authorization"))
		}
		if tokenStr == "" {
			return unauthorized(c)
		}
		id, err := codec.Verify(tokenStr)
		if err != nil {
			log.Printf("auth: rejected credential for %s %s: %v", c.Method(), c.Path(), err)
			return unauthorized(c)
		}
		c.Locals("userId", id.UserID.String())
		c.Locals("userEmail", id.Email)
		return c.Next()
	}
}

// tokenFromHeader accepts both "Bearer <token>" and a bare "<token>"
// (for non-standard clients).
func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}

// SessionCookie builds the HTTP-only cookie carrying a freshly issued token.
// Secure is off only in local development so the cookie survives plain HTTP.
func SessionCookie(token string, codec *Codec, devMode bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(codec.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   !devMode,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ClearSessionCookie instructs the client to discard the credential.
// There is no server-side denylist: a copy of the raw token taken before
// logout keeps working until its natural expiry.
func ClearSessionCookie(devMode bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   !devMode,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
