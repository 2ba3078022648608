package models

import (
	"math/big"

	"github.com/google/uuid"
)

// QueryFilter scans accounts or transfers by their tags. Dates are
// milliseconds since epoch; nil bounds are open.
type QueryFilter struct {
	AccountNumber *big.Int `json:"accountNumber,omitempty"`
	UserData64    uint64   `json:"userData64"`
	UserData32    uint32   `json:"userData32"`
	Code          uint16   `json:"code"`
	Ledger        uint32   `json:"ledger"`
	FromDate      *int64   `json:"fromDate,omitempty"`
	ToDate        *int64   `json:"toDate,omitempty"`
	Limit         uint32   `json:"limit"`
	Reversed      bool     `json:"reversed"`
}

// AccountFilter scans the transfer or balance history of one account.
type AccountFilter struct {
	AccountID uuid.UUID `json:"accountId"`
	Credits   bool      `json:"credits"`
	Debits    bool      `json:"debits"`
	FromDate  *int64    `json:"fromDate,omitempty"`
	ToDate    *int64    `json:"toDate,omitempty"`
	Limit     uint32    `json:"limit"`
	Reversed  bool      `json:"reversed"`
}
