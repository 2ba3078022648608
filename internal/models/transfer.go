package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is a ledger transfer as read back from the store.
type Transfer struct {
	ID              uuid.UUID       `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Code            uint16          `json:"code"`
	Ledger          uint32          `json:"ledger"`
	Flags           uint16          `json:"flags"`
	DebitAccountID  uuid.UUID       `json:"debitAccountId"`
	CreditAccountID uuid.UUID       `json:"creditAccountId"`
	Timestamp       string          `json:"timestamp"`
	UserData32      uint32          `json:"userData32"`
	UserData64      uint64          `json:"userData64"`
	UserData128     uuid.UUID       `json:"userData128"`
	PendingID       uuid.UUID       `json:"pendingId"`
	Timeout         uint32          `json:"timeout,omitempty"`
}

// TransferRequest moves Amount from the debit account to the credit account.
type TransferRequest struct {
	DebitAccountID  uuid.UUID       `json:"debitAccountId"`
	CreditAccountID uuid.UUID       `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Ledger          uint32          `json:"ledger"`
	Code            uint16          `json:"code"`
	UserData128     uuid.UUID       `json:"userData128"`
	UserData64      uint64          `json:"userData64"`
	UserData32      uint32          `json:"userData32"`
	// Timeout in seconds, pending transfers only. Zero never expires.
	Timeout uint32 `json:"timeout,omitempty"`
}

type ResolutionAction string

const (
	ActionPost ResolutionAction = "post"
	ActionVoid ResolutionAction = "void"
)

// Resolution posts or voids the pending transfer PendingID. A nil Amount
// posts the full reserved amount. Account ids, ledger and code may be left
// zero; when set they must match the pending transfer.
type Resolution struct {
	PendingID       uuid.UUID        `json:"pendingId"`
	Action          ResolutionAction `json:"action"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	DebitAccountID  uuid.UUID        `json:"debitAccountId"`
	CreditAccountID uuid.UUID        `json:"creditAccountId"`
	Ledger          uint32           `json:"ledger"`
	Code            uint16           `json:"code"`
	UserData128     uuid.UUID        `json:"userData128"`
	UserData64      uint64           `json:"userData64"`
	UserData32      uint32           `json:"userData32"`
}

// PendingState is where a transfer stands in the two-phase lifecycle.
type PendingState string

const (
	StatePlain   PendingState = "plain"
	StatePending PendingState = "pending"
	StatePosted  PendingState = "posted"
	StateVoided  PendingState = "voided"
)
