package middleware // reusable HTTP middleware shared by all route groups

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kadrfilm/booking-server/internal/utils"
)

// Context keys under which the authenticated principal is stored.
const (
	CtxClientID   = "client_id"
	CtxAdminID    = "admin_id"
	CtxAdminEmail = "admin_email"
)

// ClientAuth validates a Bearer token against the client-portal secret and
// injects the client ID into the request context. A missing header fails
// closed with 401; a token that does not verify under the client secret
// (including admin tokens, which are signed with a different secret) gets
// 403.
func ClientAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Brak tokenu uwierzytelniającego"})
			}
			clientID, err := utils.ParseClientToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Nieprawidłowy lub wygasły token"})
			}
			c.Set(CtxClientID, clientID)
			return next(c)
		}
	}
}

// AdminAuth is the back-office counterpart of ClientAuth, keyed to the admin
// secret. Client tokens are rejected here for the same reason admin tokens
// fail ClientAuth.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Brak tokenu uwierzytelniającego"})
			}
			claims, err := utils.ParseAdminToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Nieprawidłowy lub wygasły token"})
			}
			c.Set(CtxAdminID, claims.ID)
			c.Set(CtxAdminEmail, claims.Email)
			return next(c)
		}
	}
}

// ClientID returns the authenticated client ID set by ClientAuth.
func ClientID(c echo.Context) string {
	id, _ := c.Get(CtxClientID).(string)
	return id
}

func bearer(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}
