package ledger

import (
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// timestampLayout renders store timestamps truncated to milliseconds.
const timestampLayout = "2006-01-02 15:04:05.000 MST"

func formatTimestamp(ns uint64) string {
	return time.Unix(0, int64(ns)).UTC().Format(timestampLayout)
}

func toAmount(d decimal.Decimal) (storage.Uint128, error) {
	if d.Sign() < 0 || !d.IsInteger() {
		return storage.Uint128{}, ErrInvalidAmount
	}
	u, err := storage.BigToUint128(d.BigInt())
	if err != nil {
		return storage.Uint128{}, ErrInvalidAmount
	}
	return u, nil
}

func fromAmount(u storage.Uint128) decimal.Decimal {
	return decimal.NewFromBigInt(u.Big(), 0)
}

func toTag(n *big.Int) (storage.Uint128, error) {
	u, err := storage.BigToUint128(n)
	if err != nil {
		return storage.Uint128{}, ErrInvalidTag
	}
	return u, nil
}

func storeIDs(ids []uuid.UUID) []storage.Uint128 {
	out := make([]storage.Uint128, len(ids))
	for i, id := range ids {
		out[i] = storage.UUIDToUint128(id)
	}
	return out
}

func toAccount(r storage.AccountRecord) models.Account {
	return models.Account{
		ID:             r.ID.UUID(),
		AccountNumber:  r.UserData128.Big(),
		Code:           r.Code,
		Ledger:         r.Ledger,
		UserData32:     r.UserData32,
		UserData64:     r.UserData64,
		CreditsPosted:  fromAmount(r.CreditsPosted),
		CreditsPending: fromAmount(r.CreditsPending),
		DebitsPosted:   fromAmount(r.DebitsPosted),
		DebitsPending:  fromAmount(r.DebitsPending),
		Flags:          uint16(r.Flags),
		Timestamp:      r.Timestamp,
	}
}

func toTransfer(r storage.TransferRecord) models.Transfer {
	return models.Transfer{
		ID:              r.ID.UUID(),
		Amount:          fromAmount(r.Amount),
		Code:            r.Code,
		Ledger:          r.Ledger,
		Flags:           uint16(r.Flags),
		DebitAccountID:  r.DebitAccountID.UUID(),
		CreditAccountID: r.CreditAccountID.UUID(),
		Timestamp:       formatTimestamp(r.Timestamp),
		UserData32:      r.UserData32,
		UserData64:      r.UserData64,
		UserData128:     r.UserData128.UUID(),
		PendingID:       r.PendingID.UUID(),
		Timeout:         r.Timeout,
	}
}

func toBalance(accountID uuid.UUID) func(storage.BalanceRecord) models.Balance {
	return func(r storage.BalanceRecord) models.Balance {
		return models.Balance{
			AccountID:      accountID,
			Timestamp:      formatTimestamp(r.Timestamp),
			CreditsPosted:  fromAmount(r.CreditsPosted),
			CreditsPending: fromAmount(r.CreditsPending),
			DebitsPosted:   fromAmount(r.DebitsPosted),
			DebitsPending:  fromAmount(r.DebitsPending),
		}
	}
}

// StateOf reports the two-phase role of a transfer from its flags.
func StateOf(t models.Transfer) models.PendingState {
	flags := storage.TransferFlags(t.Flags)
	switch {
	case flags.Has(storage.TransferPending):
		return models.StatePending
	case flags.Has(storage.TransferPostPending):
		return models.StatePosted
	case flags.Has(storage.TransferVoidPending):
		return models.StateVoided
	}
	return models.StatePlain
}
