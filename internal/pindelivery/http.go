// Package pindelivery manages delivery layer of account PINs.
package pindelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by pin delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package pindelivery
type Service interface {
	SetPin(ctx context.Context, accountID, pin string) error
	VerifyPin(ctx context.Context, accountID, pin string) error
	ChangePin(ctx context.Context, accountID, currentPin, newPin string) error
}

// Handler facilitates pin delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns pin handler.
func NewHandler(ps Service) *Handler {
	return &Handler{service: ps}
}

// Format checks are left to the service so that a malformed PIN on verify
// still counts as a failed attempt.
type pinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

type changePinRequest struct {
	CurrentPin string `json:"current_pin" binding:"required"`
	NewPin     string `json:"new_pin" binding:"required"`
}

type pinData struct {
	HasPin   bool `json:"has_pin,omitempty"`
	Verified bool `json:"verified,omitempty"`
}

// SetPin handles http request to set the caller's first PIN.
func (h *Handler) SetPin(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req pinRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	if err := h.service.SetPin(ctx, middleware.AccountID(gctx), req.Pin); err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: pinData{HasPin: true}})
}

// VerifyPin handles http request to check the caller's PIN.
func (h *Handler) VerifyPin(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req pinRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	if err := h.service.VerifyPin(ctx, middleware.AccountID(gctx), req.Pin); err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: pinData{HasPin: true, Verified: true}})
}

// ChangePin handles http request to replace the caller's PIN.
func (h *Handler) ChangePin(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req changePinRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	if err := h.service.ChangePin(ctx, middleware.AccountID(gctx), req.CurrentPin, req.NewPin); err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: pinData{HasPin: true}})
}
