package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"

	"votepulse/internal/identity"
)

// VisitorKey is the Locals key under which the resolved visitor token is
// stored.
const VisitorKey = "visitor"

// VisitorMiddleware resolves the calling browser to a stable visitor token.
type VisitorMiddleware struct {
	provider *identity.Provider
}

// NewVisitorMiddleware creates a visitor middleware instance.
func NewVisitorMiddleware(provider *identity.Provider) *VisitorMiddleware {
	return &VisitorMiddleware{provider: provider}
}

// Resolve derives the visitor token from the client address and stores it in
// Locals. Resolution never fails the request; handlers that need an identity
// check for the unavailable sentinel themselves.
func (m *VisitorMiddleware) Resolve(c fiber.Ctx) error {
	c.Locals(VisitorKey, m.provider.Resolve(c.IP()))
	return c.Next()
}

// Visitor returns the resolved token for the current request.
func Visitor(c fiber.Ctx) string {
	token, _ := c.Locals(VisitorKey).(string)
	if token == "" {
		return identity.Unavailable
	}
	return token
}

// AdminMiddleware gates the destructive administrative surface behind a
// shared key.
type AdminMiddleware struct {
	key string
}

// NewAdminMiddleware creates an admin middleware instance. An empty key
// disables the admin surface entirely.
func NewAdminMiddleware(key string) *AdminMiddleware {
	return &AdminMiddleware{key: key}
}

// RequireAdmin rejects requests that do not carry the configured key in the
// X-Admin-Key header.
func (m *AdminMiddleware) RequireAdmin(c fiber.Ctx) error {
	if m.key == "" {
		return fiber.NewError(fiber.StatusNotFound, "admin surface is disabled")
	}
	supplied := c.Get("X-Admin-Key")
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(m.key)) != 1 {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid admin key")
	}
	return c.Next()
}
