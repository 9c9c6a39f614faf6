package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/queue"
	"github.com/kadrfilm/booking-server/internal/repository"
	"github.com/kadrfilm/booking-server/internal/service"
)

// AdminMessageHandler is the back-office side of client messaging.
type AdminMessageHandler struct {
	Messages  *repository.MessageRepo
	Bookings  *repository.BookingRepo
	Publisher *service.Publisher
	Log       *zap.Logger
}

// ListThreads handles GET /api/admin/messages: one row per couple with the
// unread count and last-message preview.
func (h *AdminMessageHandler) ListThreads(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	threads, err := h.Messages.ListThreads(ctx)
	if err != nil {
		h.Log.Error("list threads failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, threads)
}

// Thread handles GET /api/admin/messages/:clientId. Reading marks the
// couple's messages as read.
func (h *AdminMessageHandler) Thread(c echo.Context) error {
	clientID := strings.TrimSpace(c.Param("clientId"))
	if clientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Bookings.ClientIDExists(ctx, clientID)
	if err != nil {
		h.Log.Error("thread client check failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
	}
	msgs, err := h.Messages.ListByClient(ctx, clientID, model.SenderAdmin)
	if err != nil {
		h.Log.Error("thread lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, msgs)
}

type adminReplyReq struct {
	Content string `json:"content"`
}

// Reply handles POST /api/admin/messages/:clientId.
func (h *AdminMessageHandler) Reply(c echo.Context) error {
	clientID := strings.TrimSpace(c.Param("clientId"))
	if clientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req adminReplyReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole content jest wymagane"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Bookings.ClientIDExists(ctx, clientID)
	if err != nil {
		h.Log.Error("reply client check failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
	}
	m, err := h.Messages.Create(ctx, clientID, model.SenderAdmin, strings.TrimSpace(req.Content))
	if err != nil {
		h.Log.Error("admin reply failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}

	_ = h.Publisher.MessageSent(ctx, queue.MessageSentEvent{
		ClientID: clientID,
		Sender:   model.SenderAdmin,
		Preview:  messagePreview(m.Content),
		SentAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, m)
}
