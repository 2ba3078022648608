package memory

import "github.com/sheikh-saqib/ledger-orchestrator/internal/storage"

func inRange(ts, lo, hi uint64) bool {
	return (lo == 0 || ts >= lo) && (hi == 0 || ts <= hi)
}

// validRange rejects filters the remote store answers with no rows.
func validRange(lo, hi uint64, limit uint32) bool {
	if limit == 0 {
		return false
	}
	return lo == 0 || hi == 0 || lo <= hi
}

func validAccountFilter(f storage.AccountFilter) bool {
	if f.AccountID.IsZero() || f.AccountID == storage.AmountMax {
		return false
	}
	if !f.Flags.Has(storage.FilterDebits) && !f.Flags.Has(storage.FilterCredits) {
		return false
	}
	return validRange(f.TimestampMin, f.TimestampMax, f.Limit)
}

func matchQuery(f storage.QueryFilter, ud128 storage.Uint128, ud64 uint64, ud32, ledger uint32, code uint16, ts uint64) bool {
	switch {
	case !f.UserData128.IsZero() && f.UserData128 != ud128:
		return false
	case f.UserData64 != 0 && f.UserData64 != ud64:
		return false
	case f.UserData32 != 0 && f.UserData32 != ud32:
		return false
	case f.Ledger != 0 && f.Ledger != ledger:
		return false
	case f.Code != 0 && f.Code != code:
		return false
	}
	return inRange(ts, f.TimestampMin, f.TimestampMax)
}

// scan walks log in timestamp order, or newest first when reversed, and keeps
// up to limit records accepted by pick.
func scan[T any](log []storage.Uint128, reversed bool, limit uint32, pick func(storage.Uint128) (T, bool)) []T {
	out := make([]T, 0)
	for i := range log {
		id := log[i]
		if reversed {
			id = log[len(log)-1-i]
		}
		if rec, ok := pick(id); ok {
			out = append(out, rec)
			if uint32(len(out)) == limit {
				break
			}
		}
	}
	return out
}
