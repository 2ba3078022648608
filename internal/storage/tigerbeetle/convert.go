package tigerbeetle

import (
	tbt "github.com/tigerbeetle/tigerbeetle-go/pkg/types"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// toIDs relies on both Uint128 types being 16 little-endian bytes.
func toIDs(ids []storage.Uint128) []tbt.Uint128 {
	out := make([]tbt.Uint128, len(ids))
	for i, id := range ids {
		out[i] = tbt.Uint128(id)
	}
	return out
}

func convert[S, D any](rows []S, fn func(S) D) []D {
	out := make([]D, len(rows))
	for i, r := range rows {
		out[i] = fn(r)
	}
	return out
}

func toAccount(a storage.AccountRecord) tbt.Account {
	return tbt.Account{
		ID:             tbt.Uint128(a.ID),
		DebitsPending:  tbt.Uint128(a.DebitsPending),
		DebitsPosted:   tbt.Uint128(a.DebitsPosted),
		CreditsPending: tbt.Uint128(a.CreditsPending),
		CreditsPosted:  tbt.Uint128(a.CreditsPosted),
		UserData128:    tbt.Uint128(a.UserData128),
		UserData64:     a.UserData64,
		UserData32:     a.UserData32,
		Ledger:         a.Ledger,
		Code:           a.Code,
		Flags:          uint16(a.Flags),
		Timestamp:      a.Timestamp,
	}
}

func fromAccount(a tbt.Account) storage.AccountRecord {
	return storage.AccountRecord{
		ID:             storage.Uint128(a.ID),
		DebitsPending:  storage.Uint128(a.DebitsPending),
		DebitsPosted:   storage.Uint128(a.DebitsPosted),
		CreditsPending: storage.Uint128(a.CreditsPending),
		CreditsPosted:  storage.Uint128(a.CreditsPosted),
		UserData128:    storage.Uint128(a.UserData128),
		UserData64:     a.UserData64,
		UserData32:     a.UserData32,
		Ledger:         a.Ledger,
		Code:           a.Code,
		Flags:          storage.AccountFlags(a.Flags),
		Timestamp:      a.Timestamp,
	}
}

func toTransfer(t storage.TransferRecord) tbt.Transfer {
	return tbt.Transfer{
		ID:              tbt.Uint128(t.ID),
		DebitAccountID:  tbt.Uint128(t.DebitAccountID),
		CreditAccountID: tbt.Uint128(t.CreditAccountID),
		Amount:          tbt.Uint128(t.Amount),
		PendingID:       tbt.Uint128(t.PendingID),
		UserData128:     tbt.Uint128(t.UserData128),
		UserData64:      t.UserData64,
		UserData32:      t.UserData32,
		Timeout:         t.Timeout,
		Ledger:          t.Ledger,
		Code:            t.Code,
		Flags:           uint16(t.Flags),
		Timestamp:       t.Timestamp,
	}
}

func fromTransfer(t tbt.Transfer) storage.TransferRecord {
	return storage.TransferRecord{
		ID:              storage.Uint128(t.ID),
		DebitAccountID:  storage.Uint128(t.DebitAccountID),
		CreditAccountID: storage.Uint128(t.CreditAccountID),
		Amount:          storage.Uint128(t.Amount),
		PendingID:       storage.Uint128(t.PendingID),
		UserData128:     storage.Uint128(t.UserData128),
		UserData64:      t.UserData64,
		UserData32:      t.UserData32,
		Timeout:         t.Timeout,
		Ledger:          t.Ledger,
		Code:            t.Code,
		Flags:           storage.TransferFlags(t.Flags),
		Timestamp:       t.Timestamp,
	}
}

func fromBalance(b tbt.AccountBalance) storage.BalanceRecord {
	return storage.BalanceRecord{
		DebitsPending:  storage.Uint128(b.DebitsPending),
		DebitsPosted:   storage.Uint128(b.DebitsPosted),
		CreditsPending: storage.Uint128(b.CreditsPending),
		CreditsPosted:  storage.Uint128(b.CreditsPosted),
		Timestamp:      b.Timestamp,
	}
}

func toQueryFilter(f storage.QueryFilter) tbt.QueryFilter {
	return tbt.QueryFilter{
		UserData128:  tbt.Uint128(f.UserData128),
		UserData64:   f.UserData64,
		UserData32:   f.UserData32,
		Ledger:       f.Ledger,
		Code:         f.Code,
		TimestampMin: f.TimestampMin,
		TimestampMax: f.TimestampMax,
		Limit:        f.Limit,
		Flags:        uint32(f.Flags),
	}
}

func toAccountFilter(f storage.AccountFilter) tbt.AccountFilter {
	return tbt.AccountFilter{
		AccountID:    tbt.Uint128(f.AccountID),
		TimestampMin: f.TimestampMin,
		TimestampMax: f.TimestampMax,
		Limit:        f.Limit,
		Flags:        uint32(f.Flags),
	}
}
