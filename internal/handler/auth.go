package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/config"
	"github.com/kadrfilm/booking-server/internal/repository"
	"github.com/kadrfilm/booking-server/internal/utils"
)

// AuthHandler implements both login endpoints. Clients authenticate with
// their four-digit client ID, admins with their email; the two principal
// types get tokens signed with independent secrets.
type AuthHandler struct {
	Cfg      config.Config
	Bookings *repository.BookingRepo
	Admins   *repository.AdminRepo
	Log      *zap.Logger
}

func NewAuthHandler(cfg config.Config, b *repository.BookingRepo, a *repository.AdminRepo, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Bookings: b, Admins: a, Log: log}
}

type clientLoginReq struct {
	ClientID string `json:"clientId"`
	Password string `json:"password"`
}

type adminLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ClientLogin handles POST /api/login. Unknown client IDs and wrong
// passwords return the identical status and message so client IDs cannot be
// enumerated.
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	var req clientLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identyfikator i hasło są wymagane"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByClientID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidCredentials})
		}
		h.Log.Error("client login: lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !utils.VerifyPassword(b.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidCredentials})
	}

	token, exp, err := utils.NewClientToken(h.Cfg.JWTSecret, b.ClientID)
	if err != nil {
		h.Log.Error("client login: token issue failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"expires":  exp,
		"clientId": b.ClientID,
	})
}

// AdminLogin handles POST /api/admin/login with the same
// no-enumeration policy as the client login.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email i hasło są wymagane"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidCredentials})
		}
		h.Log.Error("admin login: lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidCredentials})
	}

	token, exp, err := utils.NewAdminToken(h.Cfg.AdminJWTSecret, a.ID, a.Email)
	if err != nil {
		h.Log.Error("admin login: token issue failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"expires": exp,
		"email":   a.Email,
	})
}
