package models

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a ledger account as read back from the store. Balances are
// maintained by the store only.
type Account struct {
	ID uuid.UUID `json:"id"`
	// AccountNumber correlates the account with an external entity.
	AccountNumber  *big.Int        `json:"accountNumber"`
	Code           uint16          `json:"code"`
	Ledger         uint32          `json:"ledger"`
	UserData32     uint32          `json:"userData32"`
	UserData64     uint64          `json:"userData64"`
	CreditsPosted  decimal.Decimal `json:"creditsPosted"`
	CreditsPending decimal.Decimal `json:"creditsPending"`
	DebitsPosted   decimal.Decimal `json:"debitsPosted"`
	DebitsPending  decimal.Decimal `json:"debitsPending"`
	Flags          uint16          `json:"flags"`
	// Timestamp is the store-assigned creation time in nanoseconds since epoch.
	Timestamp uint64 `json:"timestamp"`
}

// AccountRequest carries the caller-supplied fields of a new account.
type AccountRequest struct {
	AccountNumber *big.Int `json:"accountNumber"`
	Code          uint16   `json:"code"`
	Ledger        uint32   `json:"ledger"`
	UserData32    uint32   `json:"userData32"`
	UserData64    uint64   `json:"userData64"`
	Flags         uint16   `json:"flags"`
}

// Balance is one point of an account's balance history.
type Balance struct {
	AccountID      uuid.UUID       `json:"accountId"`
	Timestamp      string          `json:"timestamp"`
	CreditsPosted  decimal.Decimal `json:"creditsPosted"`
	CreditsPending decimal.Decimal `json:"creditsPending"`
	DebitsPosted   decimal.Decimal `json:"debitsPosted"`
	DebitsPending  decimal.Decimal `json:"debitsPending"`
}
