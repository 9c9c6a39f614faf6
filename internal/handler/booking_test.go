package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestMissingBookingField(t *testing.T) {
	complete := createBookingReq{
		AccessKey:   "ABC123",
		Password:    "sekret",
		PackageName: "Pakiet Złoty",
		TotalPrice:  4500,
		Email:       "para@example.com",
		PhoneNumber: "+48 600 100 200",
	}
	assert.Empty(t, missingBookingField(complete))

	cases := []struct {
		name   string
		mutate func(*createBookingReq)
		want   string
	}{
		{"no access key", func(r *createBookingReq) { r.AccessKey = "  " }, "accessKey"},
		{"no password", func(r *createBookingReq) { r.Password = "" }, "password"},
		{"no package", func(r *createBookingReq) { r.PackageName = "" }, "packageName"},
		{"zero price", func(r *createBookingReq) { r.TotalPrice = 0 }, "totalPrice"},
		{"negative price", func(r *createBookingReq) { r.TotalPrice = -1 }, "totalPrice"},
		{"no email", func(r *createBookingReq) { r.Email = "" }, "email"},
		{"no phone", func(r *createBookingReq) { r.PhoneNumber = "" }, "phoneNumber"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := complete
			tc.mutate(&req)
			assert.Equal(t, tc.want, missingBookingField(req))
		})
	}
}

func postBooking(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Validation failures return before the repository or the publisher is
	// touched, so both can stay nil here.
	h := &BookingHandler{Log: zap.NewNop()}
	require.NoError(t, h.Create(c))
	return rec
}

func TestCreateBookingRejectsMissingField(t *testing.T) {
	rec := postBooking(t, `{"password":"sekret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pole accessKey jest wymagane")
}

func TestCreateBookingRejectsMalformedDate(t *testing.T) {
	rec := postBooking(t, `{
		"accessKey":"ABC123","password":"sekret","packageName":"Pakiet Złoty",
		"totalPrice":4500,"email":"para@example.com","phoneNumber":"600100200",
		"weddingDate":"31-12-2026"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "weddingDate")
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	rec := postBooking(t, `{"totalPrice":"dużo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
