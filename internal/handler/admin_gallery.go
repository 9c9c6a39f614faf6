package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/repository"
	"github.com/kadrfilm/booking-server/internal/storage"
)

// BlobStore is the slice of the image store the gallery handler needs.
// Satisfied by *storage.BlobStore.
type BlobStore interface {
	Upload(ctx context.Context, base64Image, publicID string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// AdminGalleryHandler manages the portfolio. Uploads go to the blob store
// first, then the row is written; deletes run the other way round inside a
// transaction so the database never references a blob that is gone.
type AdminGalleryHandler struct {
	Gallery *repository.GalleryRepo
	Blobs   BlobStore
	Log     *zap.Logger
}

// List handles GET /api/admin/gallery.
func (h *AdminGalleryHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Gallery.List(ctx)
	if err != nil {
		h.Log.Error("list gallery failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, items)
}

type uploadGalleryReq struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Position int    `json:"position"`
}

// Upload handles POST /api/admin/gallery. The image arrives as a base64
// payload (raw or data-URL form).
func (h *AdminGalleryHandler) Upload(c echo.Context) error {
	var req uploadGalleryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole title jest wymagane"})
	}
	if req.Image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole image jest wymagane"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	publicID := uuid.NewString()
	url, err := h.Blobs.Upload(ctx, req.Image, publicID)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "Magazyn zdjęć nie jest skonfigurowany"})
		}
		h.Log.Error("gallery upload failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Przesyłanie zdjęcia nie powiodło się"})
	}

	item, err := h.Gallery.Create(ctx, model.GalleryItem{
		Title:    strings.TrimSpace(req.Title),
		ImageURL: url,
		PublicID: publicID,
		Position: req.Position,
	})
	if err != nil {
		// The row failed after the blob landed, clean the blob up so it
		// does not leak.
		_ = h.Blobs.Destroy(ctx, publicID)
		h.Log.Error("gallery insert failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, item)
}

// Delete handles DELETE /api/admin/gallery/:id. The row delete runs inside
// a transaction that only commits once the blob is gone; if the blob store
// call fails the row stays and the item remains visible.
func (h *AdminGalleryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	item, err := h.Gallery.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("gallery lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}

	tx, err := h.Gallery.DB().BeginTx(ctx, nil)
	if err != nil {
		h.Log.Error("gallery delete tx failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Gallery.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("gallery row delete failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}

	if err := h.Blobs.Destroy(ctx, item.PublicID); err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		h.Log.Error("gallery blob delete failed", zap.Error(err), zap.String("publicId", item.PublicID))
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Usuwanie zdjęcia nie powiodło się"})
	}

	if err := tx.Commit(); err != nil {
		h.Log.Error("gallery delete commit failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}
