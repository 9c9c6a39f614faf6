package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Shared Polish response messages. Authentication failures are deliberately
// identical for unknown principals and wrong passwords.
const (
	msgInvalidBody        = "Nieprawidłowe dane żądania"
	msgInvalidCredentials = "Nieprawidłowy identyfikator lub hasło"
	msgInvalidID          = "Nieprawidłowy identyfikator zasobu"
	msgNotFound           = "Nie znaleziono zasobu"
	msgServerError        = "Wystąpił błąd serwera"
)

// reqCtx bounds every database call with a 5 second timeout derived from the
// request context.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// messagePreview shortens message content for event payloads. Truncation is
// by rune, not byte, so multi-byte Polish characters are never split.
func messagePreview(s string) string {
	const maxRunes = 80
	if len(s) <= maxRunes {
		return s
	}
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes])
}
