// Package directorydelivery manages delivery layer of the username directory.
package directorydelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by directory delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package directorydelivery
type Service interface {
	Register(ctx context.Context, accountID, username string) error
	Resolve(ctx context.Context, username string) (string, error)
}

// Handler facilitates directory delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns directory handler.
func NewHandler(ds Service) *Handler {
	return &Handler{service: ds}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
}

type resolveRequest struct {
	Username string `uri:"username" binding:"required,username"`
}

type directoryData struct {
	Username  string `json:"username"`
	AccountID string `json:"account_id"`
}

// Register handles http request to assign a username to the caller's account.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	accountID := middleware.AccountID(gctx)

	if err := h.service.Register(ctx, accountID, req.Username); err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: directoryData{Username: req.Username, AccountID: accountID}})
}

// Resolve handles http request to look up the account registered under a username.
func (h *Handler) Resolve(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req resolveRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	accountID, err := h.service.Resolve(ctx, req.Username)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: directoryData{Username: req.Username, AccountID: accountID}})
}
