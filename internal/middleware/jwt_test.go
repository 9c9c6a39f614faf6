package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadrfilm/booking-server/internal/utils"
)

const (
	testClientSecret = "client-test-secret"
	testAdminSecret  = "admin-test-secret"
)

func runProtected(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestClientAuthMissingHeader(t *testing.T) {
	rec, _ := runProtected(t, ClientAuth(testClientSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brak tokenu")
}

func TestClientAuthGarbageToken(t *testing.T) {
	rec, _ := runProtected(t, ClientAuth(testClientSecret), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nieprawidłowy lub wygasły token")
}

func TestClientAuthValidToken(t *testing.T) {
	tok, _, err := utils.NewClientToken(testClientSecret, "4321")
	require.NoError(t, err)

	rec, c := runProtected(t, ClientAuth(testClientSecret), "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "4321", ClientID(c))
}

func TestClientAuthRejectsAdminToken(t *testing.T) {
	tok, _, err := utils.NewAdminToken(testAdminSecret, 3, "studio@example.com")
	require.NoError(t, err)

	rec, _ := runProtected(t, ClientAuth(testClientSecret), "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAuthValidToken(t *testing.T) {
	tok, _, err := utils.NewAdminToken(testAdminSecret, 3, "studio@example.com")
	require.NoError(t, err)

	rec, c := runProtected(t, AdminAuth(testAdminSecret), "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(3), c.Get(CtxAdminID))
	assert.Equal(t, "studio@example.com", c.Get(CtxAdminEmail))
}

func TestAdminAuthRejectsClientToken(t *testing.T) {
	tok, _, err := utils.NewClientToken(testClientSecret, "4321")
	require.NoError(t, err)

	rec, _ := runProtected(t, AdminAuth(testAdminSecret), "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerHeaderShapes(t *testing.T) {
	rec, _ := runProtected(t, ClientAuth(testClientSecret), "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = runProtected(t, ClientAuth(testClientSecret), "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
