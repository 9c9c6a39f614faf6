package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadrfilm/booking-server/internal/config"
)

func TestEncodeDecodeCached(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Set("X-Custom", "val")
	body := []byte(`[{"id":1}]`)

	payload, err := encodeCached(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodeCached(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, "val", gotHdr.Get("X-Custom"))
	assert.Equal(t, body, gotBody)
}

func TestDecodeCachedRejectsTruncated(t *testing.T) {
	_, _, _, ok := decodeCached([]byte{0, 0, 0})
	assert.False(t, ok)

	// Header length pointing past the end of the payload.
	_, _, _, ok = decodeCached([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/packages")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}

	// Query string is ignored under the route strategy.
	assert.Equal(t,
		cacheKey(cfg, newCtx("/api/packages?x=1")),
		cacheKey(cfg, newCtx("/api/packages?x=2")))

	cfg.KeyStrategy = "route_query"
	assert.NotEqual(t,
		cacheKey(cfg, newCtx("/api/packages?x=1")),
		cacheKey(cfg, newCtx("/api/packages?x=2")))
}

func TestResponseCacheDisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := ResponseCache(config.CacheConfig{Enabled: false}, nil)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	})
	require.NoError(t, handler(c))
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
