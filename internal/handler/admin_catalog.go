package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/repository"
)

// AdminCatalogHandler manages packages, addons and the links between them.
type AdminCatalogHandler struct {
	Catalog *repository.CatalogRepo
	Log     *zap.Logger
}

// ListPackages handles GET /api/admin/packages, with addon details.
func (h *AdminCatalogHandler) ListPackages(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	pkgs, err := h.Catalog.ListPackagesWithAddons(ctx)
	if err != nil {
		h.Log.Error("admin list packages failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, pkgs)
}

type packageReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CreatePackage handles POST /api/admin/packages.
func (h *AdminCatalogHandler) CreatePackage(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole name jest wymagane"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole price nie może być ujemne"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Catalog.CreatePackage(ctx, model.Package{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.Log.Error("create package failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

type packageUpdateReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// UpdatePackage handles PATCH /api/admin/packages/:id.
func (h *AdminCatalogHandler) UpdatePackage(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req packageUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Catalog.UpdatePackage(ctx, id, repository.PackageUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("update package failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePackage handles DELETE /api/admin/packages/:id.
func (h *AdminCatalogHandler) DeletePackage(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.DeletePackage(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("delete package failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAddons handles GET /api/admin/addons.
func (h *AdminCatalogHandler) ListAddons(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	addons, err := h.Catalog.ListAddons(ctx)
	if err != nil {
		h.Log.Error("list addons failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, addons)
}

type addonReq struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CreateAddon handles POST /api/admin/addons.
func (h *AdminCatalogHandler) CreateAddon(c echo.Context) error {
	var req addonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole name jest wymagane"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole price nie może być ujemne"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Catalog.CreateAddon(ctx, model.Addon{Name: strings.TrimSpace(req.Name), Price: req.Price})
	if err != nil {
		h.Log.Error("create addon failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

type addonUpdateReq struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// UpdateAddon handles PATCH /api/admin/addons/:id.
func (h *AdminCatalogHandler) UpdateAddon(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req addonUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Catalog.UpdateAddon(ctx, id, repository.AddonUpdate{Name: req.Name, Price: req.Price})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("update addon failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAddon handles DELETE /api/admin/addons/:id.
func (h *AdminCatalogHandler) DeleteAddon(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.DeleteAddon(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("delete addon failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}

type linkAddonReq struct {
	AddonID  uint64 `json:"addonId"`
	IsLocked bool   `json:"isLocked"`
}

// LinkAddon handles POST /api/admin/packages/:id/addons.
func (h *AdminCatalogHandler) LinkAddon(c echo.Context) error {
	pkgID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req linkAddonReq
	if err := c.Bind(&req); err != nil || req.AddonID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Catalog.LinkAddon(ctx, model.PackageAddon{
		PackageID: pkgID,
		AddonID:   req.AddonID,
		IsLocked:  req.IsLocked,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Dodatek jest już przypisany do tego pakietu"})
		}
		h.Log.Error("link addon failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusCreated)
}

// UnlinkAddon handles DELETE /api/admin/packages/:id/addons/:addonId.
func (h *AdminCatalogHandler) UnlinkAddon(c echo.Context) error {
	pkgID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	addonID, err := strconv.ParseUint(c.Param("addonId"), 10, 64)
	if err != nil || addonID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Catalog.UnlinkAddon(ctx, pkgID, addonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("unlink addon failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
