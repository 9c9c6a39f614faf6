package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/config"
	"github.com/kadrfilm/booking-server/internal/queue"
	"github.com/kadrfilm/booking-server/internal/repository"
	"github.com/kadrfilm/booking-server/internal/service"
)

// BookingHandler implements the public booking submission. The access key is
// intentionally not cross-checked against the access_keys table here: the
// calculator frontend validates it through POST /api/validate-key before
// showing the form, and the key on the booking row is informational.
type BookingHandler struct {
	Cfg       config.Config
	Bookings  *repository.BookingRepo
	Publisher *service.Publisher
	Log       *zap.Logger
}

func NewBookingHandler(cfg config.Config, b *repository.BookingRepo, p *service.Publisher, log *zap.Logger) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Bookings: b, Publisher: p, Log: log}
}

type createBookingReq struct {
	AccessKey      string   `json:"accessKey"`
	Password       string   `json:"password"`
	PackageName    string   `json:"packageName"`
	TotalPrice     float64  `json:"totalPrice"`
	SelectedItems  []string `json:"selectedItems"`
	BrideName      string   `json:"brideName"`
	GroomName      string   `json:"groomName"`
	WeddingDate    string   `json:"weddingDate"`
	BrideAddress   string   `json:"brideAddress"`
	GroomAddress   string   `json:"groomAddress"`
	Locations      string   `json:"locations"`
	Schedule       string   `json:"schedule"`
	Email          string   `json:"email"`
	PhoneNumber    string   `json:"phoneNumber"`
	AdditionalInfo string   `json:"additionalInfo"`
	DiscountCode   string   `json:"discountCode"`
}

// missingBookingField returns the name of the first absent mandatory field,
// or "" when the request is complete.
func missingBookingField(req createBookingReq) string {
	switch {
	case strings.TrimSpace(req.AccessKey) == "":
		return "accessKey"
	case req.Password == "":
		return "password"
	case strings.TrimSpace(req.PackageName) == "":
		return "packageName"
	case req.TotalPrice <= 0:
		return "totalPrice"
	case strings.TrimSpace(req.Email) == "":
		return "email"
	case strings.TrimSpace(req.PhoneNumber) == "":
		return "phoneNumber"
	}
	return ""
}

// Create handles POST /api/bookings. On success it returns 201 with the new
// surrogate booking ID and the generated four-digit client ID.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if field := missingBookingField(req); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole " + field + " jest wymagane"})
	}

	var weddingDate *time.Time
	if s := strings.TrimSpace(req.WeddingDate); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole weddingDate ma nieprawidłowy format (RRRR-MM-DD)"})
		}
		weddingDate = &t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	in := repository.CreateBookingInput{
		AccessKey:      strings.ToUpper(strings.TrimSpace(req.AccessKey)),
		Password:       req.Password,
		PackageName:    strings.TrimSpace(req.PackageName),
		TotalPrice:     req.TotalPrice,
		SelectedItems:  req.SelectedItems,
		BrideName:      strings.TrimSpace(req.BrideName),
		GroomName:      strings.TrimSpace(req.GroomName),
		WeddingDate:    weddingDate,
		BrideAddress:   strings.TrimSpace(req.BrideAddress),
		GroomAddress:   strings.TrimSpace(req.GroomAddress),
		Locations:      req.Locations,
		Schedule:       req.Schedule,
		Email:          strings.TrimSpace(req.Email),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		AdditionalInfo: req.AdditionalInfo,
		DiscountCode:   strings.ToUpper(strings.TrimSpace(req.DiscountCode)),
	}
	bookingID, clientID, err := h.Bookings.Create(ctx, in, h.Cfg.BcryptCost)
	if err != nil {
		h.Log.Error("booking create failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}

	ev := queue.BookingCreatedEvent{
		BookingID:   bookingID,
		ClientID:    clientID,
		PackageName: in.PackageName,
		TotalPrice:  in.TotalPrice,
		Email:       in.Email,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if weddingDate != nil {
		ev.WeddingDate = weddingDate.Format("2006-01-02")
	}
	// Best-effort: the booking is committed, a broker outage is not the
	// caller's problem.
	_ = h.Publisher.BookingCreated(ctx, ev)

	return c.JSON(http.StatusCreated, echo.Map{
		"bookingId": bookingID,
		"clientId":  clientID,
	})
}
