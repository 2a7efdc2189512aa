package domain

import (
	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/google/uuid"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errorspkg.New(errorspkg.KindValidation, "invalid amount")
	// ErrAmountExceedsLimit indicates that the amount is above the operation ceiling.
	ErrAmountExceedsLimit = errorspkg.New(errorspkg.KindValidation, "amount exceeds limit")
	// ErrRecipientNotFound indicates that the recipient username does not resolve.
	ErrRecipientNotFound = errorspkg.New(errorspkg.KindNotFound, "recipient not found")
	// ErrSelfTransfer indicates that the sender and the recipient are the same account.
	ErrSelfTransfer = errorspkg.New(errorspkg.KindValidation, "self transfer rejected")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errorspkg.New(errorspkg.KindInsufficientFunds, "insufficient balance")
	// ErrTransferAborted indicates that the operation kept conflicting with
	// concurrent writes and was given up. It left no trace and may be retried.
	ErrTransferAborted = errorspkg.New(errorspkg.KindConflict, "transfer aborted")
)

// TransferParams is the caller input of a transfer.
type TransferParams struct {
	SenderID          string `json:"sender_id"`
	RecipientUsername string `json:"recipient_username"`
	Amount            int64  `json:"amount"`
}

// TransferTxParams is the input data for the transfer transaction.
type TransferTxParams struct {
	TransferID        uuid.UUID
	SenderID          string
	RecipientID       string
	RecipientUsername string
	Amount            int64
}

// TransferResult is the result of the transfer transaction.
type TransferResult struct {
	TransferID    uuid.UUID `json:"transfer_id"`
	Sender        Account   `json:"sender"`
	Recipient     Account   `json:"recipient"`
	SentEntry     Entry     `json:"sent_entry"`
	ReceivedEntry Entry     `json:"received_entry"`
}

// DepositTxParams is the input data for the deposit transaction.
type DepositTxParams struct {
	AccountID string
	Amount    int64
}

// DepositResult is the result of the deposit transaction.
type DepositResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}
