package ledger

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

const nanosPerMilli = 1_000_000

// millisToNanos converts a caller bound in milliseconds to a store bound in
// nanoseconds. Absent and non-positive bounds are open. Bounds past the
// store's range saturate at its last timestamp.
func millisToNanos(ms *int64) uint64 {
	if ms == nil || *ms <= 0 {
		return 0
	}
	if uint64(*ms) > math.MaxUint64/nanosPerMilli {
		return math.MaxUint64
	}
	return uint64(*ms) * nanosPerMilli
}

// clampLimit treats 0 as "as many as one reply can carry".
func clampLimit(limit uint32) uint32 {
	if limit == 0 || limit > storage.MaxBatchSize {
		return storage.MaxBatchSize
	}
	return limit
}

func toQueryFilter(f models.QueryFilter) (storage.QueryFilter, error) {
	tag, err := toTag(f.AccountNumber)
	if err != nil {
		return storage.QueryFilter{}, err
	}
	out := storage.QueryFilter{
		UserData128:  tag,
		UserData64:   f.UserData64,
		UserData32:   f.UserData32,
		Ledger:       f.Ledger,
		Code:         f.Code,
		TimestampMin: millisToNanos(f.FromDate),
		TimestampMax: millisToNanos(f.ToDate),
		Limit:        clampLimit(f.Limit),
	}
	if f.Reversed {
		out.Flags |= storage.QueryReversed
	}
	return out, nil
}

// toAccountFilter selects both sides when the caller selected neither.
func toAccountFilter(f models.AccountFilter) storage.AccountFilter {
	out := storage.AccountFilter{
		AccountID:    storage.UUIDToUint128(f.AccountID),
		TimestampMin: millisToNanos(f.FromDate),
		TimestampMax: millisToNanos(f.ToDate),
		Limit:        clampLimit(f.Limit),
	}
	if f.Debits || !f.Credits {
		out.Flags |= storage.FilterDebits
	}
	if f.Credits || !f.Debits {
		out.Flags |= storage.FilterCredits
	}
	if f.Reversed {
		out.Flags |= storage.FilterReversed
	}
	return out
}

// QueryAccounts returns accounts matching every non-zero field of the filter,
// in creation order.
func (l *Ledger) QueryAccounts(ctx context.Context, f models.QueryFilter) (*Records[models.Account], error) {
	filter, err := toQueryFilter(f)
	if err != nil {
		return nil, err
	}
	rows, err := l.store.QueryAccounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	l.log.Debug("queried accounts", zap.Int("rows", len(rows)))
	return newRecords(rows, toAccount), nil
}

// QueryTransfers returns transfers matching every non-zero field of the
// filter, in timestamp order.
func (l *Ledger) QueryTransfers(ctx context.Context, f models.QueryFilter) (*Records[models.Transfer], error) {
	filter, err := toQueryFilter(f)
	if err != nil {
		return nil, err
	}
	rows, err := l.store.QueryTransfers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	l.log.Debug("queried transfers", zap.Int("rows", len(rows)))
	return newRecords(rows, toTransfer), nil
}

// AccountTransfers returns the transfers that debited and/or credited one
// account.
func (l *Ledger) AccountTransfers(ctx context.Context, f models.AccountFilter) (*Records[models.Transfer], error) {
	rows, err := l.store.GetAccountTransfers(ctx, toAccountFilter(f))
	if err != nil {
		return nil, fmt.Errorf("account transfers: %w", err)
	}
	l.log.Debug("read account transfers", zap.Stringer("account", f.AccountID), zap.Int("rows", len(rows)))
	return newRecords(rows, toTransfer), nil
}

// AccountBalances returns the balance history of one account. Only accounts
// created with history enabled have one.
func (l *Ledger) AccountBalances(ctx context.Context, f models.AccountFilter) (*Records[models.Balance], error) {
	rows, err := l.store.GetAccountBalances(ctx, toAccountFilter(f))
	if err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}
	l.log.Debug("read account balances", zap.Stringer("account", f.AccountID), zap.Int("rows", len(rows)))
	return newRecords(rows, toBalance(f.AccountID)), nil
}
