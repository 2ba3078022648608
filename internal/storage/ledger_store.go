// Package storage holds the wire types exchanged with the remote ledger store.
// Records are fixed-size and mirror the store's layout field for field.
package storage

import "errors"

// MaxBatchSize is the most entries the store accepts in one create or lookup
// request, and the most rows it returns for one query.
const MaxBatchSize = 8189

// ErrUnconfirmed reports that a store call did not complete. A create may or
// may not have been applied; only a later lookup can tell.
var ErrUnconfirmed = errors.New("ledger store call unconfirmed")

type AccountFlags uint16

const (
	AccountLinked AccountFlags = 1 << iota
	AccountDebitsMustNotExceedCredits
	AccountCreditsMustNotExceedDebits
	AccountHistory
	AccountImported
	AccountClosed

	accountFlagsMask = AccountLinked | AccountDebitsMustNotExceedCredits | AccountCreditsMustNotExceedDebits |
		AccountHistory | AccountImported | AccountClosed
)

func (f AccountFlags) Has(flag AccountFlags) bool { return f&flag == flag }

type TransferFlags uint16

const (
	TransferLinked TransferFlags = 1 << iota
	TransferPending
	TransferPostPending
	TransferVoidPending
	TransferBalancingDebit
	TransferBalancingCredit
	TransferClosingDebit
	TransferClosingCredit
	TransferImported

	transferFlagsMask = TransferLinked | TransferPending | TransferPostPending | TransferVoidPending |
		TransferBalancingDebit | TransferBalancingCredit | TransferClosingDebit | TransferClosingCredit |
		TransferImported
)

func (f TransferFlags) Has(flag TransferFlags) bool { return f&flag == flag }

// Reserved reports whether f sets bits the store does not define.
func (f TransferFlags) Reserved() bool { return f&^transferFlagsMask != 0 }

// Reserved reports whether f sets bits the store does not define.
func (f AccountFlags) Reserved() bool { return f&^accountFlagsMask != 0 }

type QueryFilterFlags uint32

const QueryReversed QueryFilterFlags = 1

type AccountFilterFlags uint32

const (
	FilterDebits AccountFilterFlags = 1 << iota
	FilterCredits
	FilterReversed
)

func (f AccountFilterFlags) Has(flag AccountFilterFlags) bool { return f&flag == flag }

type AccountRecord struct {
	ID             Uint128
	DebitsPending  Uint128
	DebitsPosted   Uint128
	CreditsPending Uint128
	CreditsPosted  Uint128
	UserData128    Uint128
	UserData64     uint64
	UserData32     uint32
	Ledger         uint32
	Code           uint16
	Flags          AccountFlags
	Timestamp      uint64
}

type TransferRecord struct {
	ID              Uint128
	DebitAccountID  Uint128
	CreditAccountID Uint128
	Amount          Uint128
	PendingID       Uint128
	UserData128     Uint128
	UserData64      uint64
	UserData32      uint32
	// Timeout is in seconds and only meaningful for pending transfers.
	Timeout   uint32
	Ledger    uint32
	Code      uint16
	Flags     TransferFlags
	Timestamp uint64
}

// BalanceRecord is one point of an account's balance history.
type BalanceRecord struct {
	DebitsPending  Uint128
	DebitsPosted   Uint128
	CreditsPending Uint128
	CreditsPosted  Uint128
	Timestamp      uint64
}

// QueryFilter selects accounts or transfers by their user data, ledger and
// code. Zero fields do not constrain; zero timestamps are unbounded.
type QueryFilter struct {
	UserData128  Uint128
	UserData64   uint64
	UserData32   uint32
	Ledger       uint32
	Code         uint16
	TimestampMin uint64
	TimestampMax uint64
	Limit        uint32
	Flags        QueryFilterFlags
}

// AccountFilter selects the transfers or balance history of one account.
type AccountFilter struct {
	AccountID    Uint128
	TimestampMin uint64
	TimestampMax uint64
	Limit        uint32
	Flags        AccountFilterFlags
}

// AccountEventResult is reported only for entries that did not succeed.
type AccountEventResult struct {
	Index  uint32
	Result CreateAccountResult
}

// TransferEventResult is reported only for entries that did not succeed.
type TransferEventResult struct {
	Index  uint32
	Result CreateTransferResult
}
