package domain

import (
	"time"

	"github.com/go-petr/snapledger/pkg/errorspkg"

	"github.com/google/uuid"
)

// EntryKind tells what kind of balance change an entry records.
type EntryKind string

// Entry kinds.
const (
	EntrySent      EntryKind = "sent"
	EntryReceived  EntryKind = "received"
	EntryDeposited EntryKind = "deposited"
)

// DepositCounterparty is the counterparty label of deposit entries.
const DepositCounterparty = "deposit"

// Entry is one immutable record of a balance-affecting event on an account.
type Entry struct {
	ID           uuid.UUID  `json:"id"`
	AccountID    string     `json:"account_id"`
	Kind         EntryKind  `json:"kind"`
	Counterparty string     `json:"counterparty"`
	Amount       int64      `json:"amount"` // always positive, Kind gives the direction
	TransferID   *uuid.UUID `json:"transfer_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateEntryParams is the input data to append an entry.
type CreateEntryParams struct {
	ID           uuid.UUID
	AccountID    string
	Kind         EntryKind
	Counterparty string
	Amount       int64
	TransferID   *uuid.UUID
}

// ListEntriesParams is the input data to read an account history.
//
// Zero Limit means no limit.
type ListEntriesParams struct {
	AccountID string
	Limit     int32
	Offset    int32
}

var (
	// ErrEntryNotFound indicates that the entry is not found.
	ErrEntryNotFound = errorspkg.New(errorspkg.KindNotFound, "entry not found")
	// ErrInvalidPage indicates a negative limit or offset.
	ErrInvalidPage = errorspkg.New(errorspkg.KindValidation, "invalid page")
)
