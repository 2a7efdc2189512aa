// Package ledgerdelivery manages delivery layer of balances, transfers and deposits.
//
// Every handler verifies the caller's PIN before it reaches the ledger.
package ledgerdelivery

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/moneypkg"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error)
	Deposit(ctx context.Context, accountID string, amount int64) (domain.DepositResult, error)
	GetBalance(ctx context.Context, accountID string) (int64, error)
	ListHistory(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// PinVerifier authorizes balance-revealing and balance-mutating requests.
type PinVerifier interface {
	VerifyPin(ctx context.Context, accountID, pin string) error
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
	pins    PinVerifier
}

// NewHandler returns ledger handler.
func NewHandler(ls Service, pv PinVerifier) *Handler {
	return &Handler{service: ls, pins: pv}
}

type balanceRequest struct {
	Pin string `json:"pin" binding:"required"`
}

type historyRequest struct {
	Pin    string `json:"pin" binding:"required"`
	Limit  int32  `json:"limit" binding:"min=0"`
	Offset int32  `json:"offset" binding:"min=0"`
}

type transferRequest struct {
	Pin               string      `json:"pin" binding:"required"`
	RecipientUsername string      `json:"recipient_username" binding:"required,username"`
	Amount            json.Number `json:"amount" binding:"required"`
}

type depositRequest struct {
	Pin    string      `json:"pin" binding:"required"`
	Amount json.Number `json:"amount" binding:"required"`
}

type balanceData struct {
	Balance int64 `json:"balance"`
}

type historyData struct {
	Entries []domain.Entry `json:"entries"`
}

// transferData carries the sender's side only. The recipient's balance is not
// disclosed to the sender.
type transferData struct {
	TransferID        uuid.UUID    `json:"transfer_id"`
	RecipientUsername string       `json:"recipient_username"`
	Balance           int64        `json:"balance"`
	Entry             domain.Entry `json:"entry"`
}

type depositData struct {
	Balance int64        `json:"balance"`
	Entry   domain.Entry `json:"entry"`
}

func (h *Handler) authorize(gctx *gin.Context, pin string) (string, bool) {
	accountID := middleware.AccountID(gctx)

	if err := h.pins.VerifyPin(gctx.Request.Context(), accountID, pin); err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return "", false
	}

	return accountID, true
}

func parseAmount(gctx *gin.Context, n json.Number) (int64, bool) {
	amount, err := moneypkg.ParseAmount(n.String())
	if err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Str("amount", n.String()).Send()
		gctx.JSON(web.ErrorResponse(domain.ErrInvalidAmount))

		return 0, false
	}

	return amount, true
}

// GetBalance handles http request to read the caller's balance.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req balanceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	accountID, ok := h.authorize(gctx, req.Pin)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(ctx, accountID)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{Balance: balance}})
}

// ListHistory handles http request to read the caller's entries, newest first.
func (h *Handler) ListHistory(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req historyRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	accountID, ok := h.authorize(gctx, req.Pin)
	if !ok {
		return
	}

	entries, err := h.service.ListHistory(ctx, domain.ListEntriesParams{
		AccountID: accountID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	gctx.JSON(http.StatusOK, web.Response{Data: historyData{Entries: entries}})
}

// Transfer handles http request to move money from the caller to another account.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	amount, ok := parseAmount(gctx, req.Amount)
	if !ok {
		return
	}

	accountID, ok := h.authorize(gctx, req.Pin)
	if !ok {
		return
	}

	result, err := h.service.Transfer(ctx, domain.TransferParams{
		SenderID:          accountID,
		RecipientUsername: req.RecipientUsername,
		Amount:            amount,
	})
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: transferData{
		TransferID:        result.TransferID,
		RecipientUsername: result.Recipient.Username,
		Balance:           result.Sender.Balance,
		Entry:             result.SentEntry,
	}})
}

// Deposit handles http request to add money to the caller's account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	amount, ok := parseAmount(gctx, req.Amount)
	if !ok {
		return
	}

	accountID, ok := h.authorize(gctx, req.Pin)
	if !ok {
		return
	}

	result, err := h.service.Deposit(ctx, accountID, amount)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: depositData{
		Balance: result.Account.Balance,
		Entry:   result.Entry,
	}})
}
