package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/middleware"
	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/queue"
	"github.com/kadrfilm/booking-server/internal/repository"
	"github.com/kadrfilm/booking-server/internal/service"
)

// ClientHandler serves the client portal. Every method reads the
// authenticated client ID that ClientAuth put on the context, so a couple
// can only ever touch their own booking.
type ClientHandler struct {
	Bookings  *repository.BookingRepo
	Stages    *repository.StageRepo
	Messages  *repository.MessageRepo
	Guests    *repository.GuestRepo
	Publisher *service.Publisher
	Log       *zap.Logger
}

// MyBooking handles GET /api/my-booking. The password hash is excluded by
// the model's serialization rules.
func (h *ClientHandler) MyBooking(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByClientID(ctx, middleware.ClientID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("my-booking lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, b)
}

type clientBookingUpdateReq struct {
	BrideAddress   *string `json:"brideAddress"`
	GroomAddress   *string `json:"groomAddress"`
	Locations      *string `json:"locations"`
	Schedule       *string `json:"schedule"`
	AdditionalInfo *string `json:"additionalInfo"`
	PhoneNumber    *string `json:"phoneNumber"`
}

// UpdateMyBooking handles PATCH /api/my-booking. Only the logistics subset
// is writable from the portal; pricing, package and identity fields need an
// admin.
func (h *ClientHandler) UpdateMyBooking(c echo.Context) error {
	var req clientBookingUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	clientID := middleware.ClientID(c)
	err := h.Bookings.UpdateByClient(ctx, clientID, repository.ClientUpdate{
		BrideAddress:   req.BrideAddress,
		GroomAddress:   req.GroomAddress,
		Locations:      req.Locations,
		Schedule:       req.Schedule,
		AdditionalInfo: req.AdditionalInfo,
		PhoneNumber:    req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("my-booking update failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	b, err := h.Bookings.GetByClientID(ctx, clientID)
	if err != nil {
		h.Log.Error("my-booking reload failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, b)
}

// MyStages handles GET /api/my-stages: the production pipeline, read-only.
func (h *ClientHandler) MyStages(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	stages, err := h.Stages.ListByClient(ctx, middleware.ClientID(c))
	if err != nil {
		h.Log.Error("my-stages lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, stages)
}

// MyMessages handles GET /api/my-messages. Reading the thread marks the
// studio's messages as read.
func (h *ClientHandler) MyMessages(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	msgs, err := h.Messages.ListByClient(ctx, middleware.ClientID(c), model.SenderClient)
	if err != nil {
		h.Log.Error("my-messages lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, msgs)
}

type sendMessageReq struct {
	Content string `json:"content"`
}

// SendMessage handles POST /api/my-messages.
func (h *ClientHandler) SendMessage(c echo.Context) error {
	var req sendMessageReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole content jest wymagane"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	clientID := middleware.ClientID(c)
	m, err := h.Messages.Create(ctx, clientID, model.SenderClient, strings.TrimSpace(req.Content))
	if err != nil {
		h.Log.Error("send message failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}

	_ = h.Publisher.MessageSent(ctx, queue.MessageSentEvent{
		ClientID: clientID,
		Sender:   model.SenderClient,
		Preview:  messagePreview(m.Content),
		SentAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, m)
}

// MyGuests handles GET /api/my-guests.
func (h *ClientHandler) MyGuests(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	guests, err := h.Guests.ListByClient(ctx, middleware.ClientID(c))
	if err != nil {
		h.Log.Error("my-guests lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, guests)
}

// DeleteMyGuest handles DELETE /api/my-guests/:id. The delete is scoped to
// the caller's client ID so foreign rows look like 404.
func (h *ClientHandler) DeleteMyGuest(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Guests.DeleteForClient(ctx, id, middleware.ClientID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("delete guest failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
