package interfaces

import (
	"context"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// LedgerStore is the remote ledger store client. Create calls return only the
// results of entries that did not succeed. Every call returns an error
// wrapping storage.ErrUnconfirmed when no response was received.
type LedgerStore interface {
	CreateAccounts(ctx context.Context, accounts []storage.AccountRecord) ([]storage.AccountEventResult, error)
	CreateTransfers(ctx context.Context, transfers []storage.TransferRecord) ([]storage.TransferEventResult, error)
	LookupAccounts(ctx context.Context, ids []storage.Uint128) ([]storage.AccountRecord, error)
	LookupTransfers(ctx context.Context, ids []storage.Uint128) ([]storage.TransferRecord, error)
	QueryAccounts(ctx context.Context, filter storage.QueryFilter) ([]storage.AccountRecord, error)
	QueryTransfers(ctx context.Context, filter storage.QueryFilter) ([]storage.TransferRecord, error)
	GetAccountTransfers(ctx context.Context, filter storage.AccountFilter) ([]storage.TransferRecord, error)
	GetAccountBalances(ctx context.Context, filter storage.AccountFilter) ([]storage.BalanceRecord, error)
}
