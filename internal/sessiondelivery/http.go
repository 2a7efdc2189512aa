// Package sessiondelivery manages delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{
		service: ss,
	}
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func bindRefreshToken(gctx *gin.Context) (string, bool) {
	var req refreshTokenRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return "", false
	}

	return req.RefreshToken, true
}

// RenewAccessToken exchanges a refresh token for a fresh access token.
func (h *Handler) RenewAccessToken(gctx *gin.Context) {
	refreshToken, ok := bindRefreshToken(gctx)
	if !ok {
		return
	}

	accessToken, expiresAt, err := h.service.RenewAccessToken(gctx.Request.Context(), refreshToken)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: &expiresAt,
	})
}

// Revoke signs the device out by blocking the session of the refresh token.
func (h *Handler) Revoke(gctx *gin.Context) {
	refreshToken, ok := bindRefreshToken(gctx)
	if !ok {
		return
	}

	if err := h.service.Revoke(gctx.Request.Context(), refreshToken); err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.Status(http.StatusNoContent)
}
