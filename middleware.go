package credentials

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenFromHeader extracts the raw token from an Authorization header value
// using the given scheme. Missing header or wrong scheme fails with
// ErrUnauthenticated.
func TokenFromHeader(header, scheme string) (string, error) {
	if header == "" {
		return "", ErrUnauthenticated
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrUnauthenticated
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrUnauthenticated
	}

	return token, nil
}

// RequireAuth guards a route with bearer token authentication. On success the
// resolved Identity is stored in Locals under the configured context key.
func RequireAuth(auther Authenticator, cfg Config) fiber.Handler {
	scheme := cfg.GetAuthScheme()
	contextKey := cfg.GetContextKey()

	return func(c *fiber.Ctx) error {
		raw, err := TokenFromHeader(c.Get(fiber.HeaderAuthorization), scheme)
		if err != nil {
			return unauthenticatedResponse(c)
		}

		identity, err := auther.ResolveCurrentUser(c.Context(), raw)
		if err != nil {
			return unauthenticatedResponse(c)
		}

		c.Locals(contextKey, identity)
		c.SetUserContext(WithContext(c.UserContext(), identity))

		return c.Next()
	}
}

// IdentityFromLocals returns the Identity stashed by RequireAuth
func IdentityFromLocals(c *fiber.Ctx, contextKey string) (Identity, bool) {
	identity, ok := c.Locals(contextKey).(Identity)
	return identity, ok
}

func unauthenticatedResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Not authenticated",
	})
}
