package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountCreated struct {
	AccountID  uuid.UUID `json:"account_id"`
	Ledger     uint32    `json:"ledger"`
	Code       uint16    `json:"code"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TransferCommitted is emitted once the store confirmed a transfer. Kind is
// the two-phase state the transfer created: plain, pending, posted or voided.
type TransferCommitted struct {
	TransferID  uuid.UUID       `json:"transfer_id"`
	Kind        string          `json:"kind"`
	PendingID   *uuid.UUID      `json:"pending_id,omitempty"`
	FromAccount uuid.UUID       `json:"from_account"`
	ToAccount   uuid.UUID       `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Ledger      uint32          `json:"ledger"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
