// Package verificationdelivery manages delivery layer of the login handshake.
package verificationdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by verification delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package verificationdelivery
type Service interface {
	Start(ctx context.Context, accountID string) (domain.StartedVerification, error)
	Complete(ctx context.Context, id uuid.UUID, code string) (string, error)
}

// SessionMaker opens a session for a verified account.
type SessionMaker interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error)
}

// Handler facilitates verification delivery layer logic.
type Handler struct {
	service      Service
	sessionMaker SessionMaker
}

// NewHandler returns verification handler.
func NewHandler(vs Service, sm SessionMaker) *Handler {
	return &Handler{
		service:      vs,
		sessionMaker: sm,
	}
}

type startRequest struct {
	AccountID string `json:"account_id" binding:"required,max=128"`
}

type completeURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type completeRequest struct {
	Code string `json:"code" binding:"required,numeric"`
}

type verificationData struct {
	Verification domain.StartedVerification `json:"verification"`
}

type sessionData struct {
	AccountID string    `json:"account_id"`
	SessionID uuid.UUID `json:"session_id"`
}

// Start handles http request to send a verification code to the account holder.
func (h *Handler) Start(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req startRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	started, err := h.service.Start(ctx, req.AccountID)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: verificationData{Verification: started}})
}

// Complete handles http request to finish the handshake and returns session data.
func (h *Handler) Complete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri completeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	var req completeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	accountID, err := h.service.Complete(ctx, uuid.MustParse(uri.ID), req.Code)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	arg := domain.CreateSessionParams{
		AccountID: accountID,
		UserAgent: gctx.Request.UserAgent(),
		ClientIP:  gctx.ClientIP(),
	}

	accessToken, accessTokenExpiresAt, session, err := h.sessionMaker.Create(ctx, arg)
	if err != nil {
		l.Warn().Err(err).Send()
		gctx.JSON(web.ErrorResponse(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  &accessTokenExpiresAt,
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: &session.ExpiresAt,
		Data: sessionData{
			AccountID: accountID,
			SessionID: session.ID,
		},
	})
}
