// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, accountID, username, displayName string) (domain.Account, error)
	Get(ctx context.Context, accountID string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type profileData struct {
	Account domain.Profile `json:"account"`
}

type createRequest struct {
	Username    string `json:"username" binding:"required,username"`
	DisplayName string `json:"display_name" binding:"required,max=64"`
}

// Create handles http request to create the caller's account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	account, err := h.service.Create(ctx, middleware.AccountID(gctx), req.Username, req.DisplayName)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: profileData{domain.NewProfile(account)}})
}

// Get handles http request to get the caller's profile.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	account, err := h.service.Get(ctx, middleware.AccountID(gctx))
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: profileData{domain.NewProfile(account)}})
}
