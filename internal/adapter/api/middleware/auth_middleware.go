package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextUserID is the echo context key holding the caller's user id.
const ContextUserID = "uid"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// OptionalAuth records the caller's user id when a valid bearer token is
// present. Requests without one, or with a bad one, continue anonymously.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return next(c)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return next(c)
		}

		uid, err := m.verifier.Verify(parts[1])
		if err != nil {
			return next(c)
		}

		c.Set(ContextUserID, uid)
		return next(c)
	}
}

// UserID returns the id set by OptionalAuth, or "".
func UserID(c echo.Context) string {
	uid, _ := c.Get(ContextUserID).(string)
	return uid
}
