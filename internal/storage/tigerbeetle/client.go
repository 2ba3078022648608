// Package tigerbeetle adapts the TigerBeetle Go client to the ledger store
// interface.
package tigerbeetle

import (
	"context"
	"fmt"
	"time"

	tb "github.com/tigerbeetle/tigerbeetle-go"
	tbt "github.com/tigerbeetle/tigerbeetle-go/pkg/types"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// api is the part of tb.Client the adapter uses.
type api interface {
	CreateAccounts(accounts []tbt.Account) ([]tbt.AccountEventResult, error)
	CreateTransfers(transfers []tbt.Transfer) ([]tbt.TransferEventResult, error)
	LookupAccounts(accountIDs []tbt.Uint128) ([]tbt.Account, error)
	LookupTransfers(transferIDs []tbt.Uint128) ([]tbt.Transfer, error)
	GetAccountTransfers(filter tbt.AccountFilter) ([]tbt.Transfer, error)
	GetAccountBalances(filter tbt.AccountFilter) ([]tbt.AccountBalance, error)
	QueryAccounts(filter tbt.QueryFilter) ([]tbt.Account, error)
	QueryTransfers(filter tbt.QueryFilter) ([]tbt.Transfer, error)
	Close()
}

// Client is a ledger store backed by a TigerBeetle cluster. One Client is
// opened per process and shared by all requests.
type Client struct {
	tb      api
	timeout time.Duration
	log     *zap.Logger
}

// Open connects to the cluster. Every call is bounded by timeout when it is
// positive, in addition to the caller's context.
func Open(clusterID uint64, addresses []string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	c, err := tb.NewClient(tbt.ToUint128(clusterID), addresses)
	if err != nil {
		return nil, fmt.Errorf("connect to tigerbeetle cluster %d at %v: %w", clusterID, addresses, err)
	}
	log.Info("connected to tigerbeetle", zap.Uint64("cluster", clusterID), zap.Strings("addresses", addresses))
	return newClient(c, timeout, log), nil
}

func newClient(c api, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{tb: c, timeout: timeout, log: log}
}

func (c *Client) Close() {
	c.tb.Close()
}

// call runs fn, returning early when ctx is done. An early return leaves fn
// running; its reply is discarded and the outcome stays unknown.
func call[T any](ctx context.Context, c *Client, op string, fn func() (T, error)) (T, error) {
	var zero T
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%s: %w: %w", op, storage.ErrUnconfirmed, err)
	}

	type reply struct {
		v   T
		err error
	}
	done := make(chan reply, 1)
	go func() {
		v, err := fn()
		done <- reply{v: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			c.log.Error("tigerbeetle request failed", zap.String("op", op), zap.Error(r.err))
			return zero, fmt.Errorf("%s: %w: %w", op, storage.ErrUnconfirmed, r.err)
		}
		return r.v, nil
	case <-ctx.Done():
		c.log.Warn("tigerbeetle request abandoned", zap.String("op", op), zap.Error(ctx.Err()))
		return zero, fmt.Errorf("%s: %w: %w", op, storage.ErrUnconfirmed, ctx.Err())
	}
}

func checkSize(op string, n int) error {
	if n > storage.MaxBatchSize {
		return fmt.Errorf("%s: batch of %d exceeds %d entries", op, n, storage.MaxBatchSize)
	}
	return nil
}

func (c *Client) CreateAccounts(ctx context.Context, accounts []storage.AccountRecord) ([]storage.AccountEventResult, error) {
	if err := checkSize("create accounts", len(accounts)); err != nil {
		return nil, err
	}
	batch := make([]tbt.Account, len(accounts))
	for i, a := range accounts {
		batch[i] = toAccount(a)
	}
	results, err := call(ctx, c, "create accounts", func() ([]tbt.AccountEventResult, error) {
		return c.tb.CreateAccounts(batch)
	})
	if err != nil {
		return nil, err
	}
	out := make([]storage.AccountEventResult, len(results))
	for i, r := range results {
		out[i] = storage.AccountEventResult{Index: r.Index, Result: storage.CreateAccountResult(r.Result)}
	}
	return out, nil
}

func (c *Client) CreateTransfers(ctx context.Context, transfers []storage.TransferRecord) ([]storage.TransferEventResult, error) {
	if err := checkSize("create transfers", len(transfers)); err != nil {
		return nil, err
	}
	batch := make([]tbt.Transfer, len(transfers))
	for i, t := range transfers {
		batch[i] = toTransfer(t)
	}
	results, err := call(ctx, c, "create transfers", func() ([]tbt.TransferEventResult, error) {
		return c.tb.CreateTransfers(batch)
	})
	if err != nil {
		return nil, err
	}
	out := make([]storage.TransferEventResult, len(results))
	for i, r := range results {
		out[i] = storage.TransferEventResult{Index: r.Index, Result: storage.CreateTransferResult(r.Result)}
	}
	return out, nil
}

func (c *Client) LookupAccounts(ctx context.Context, ids []storage.Uint128) ([]storage.AccountRecord, error) {
	if err := checkSize("lookup accounts", len(ids)); err != nil {
		return nil, err
	}
	rows, err := call(ctx, c, "lookup accounts", func() ([]tbt.Account, error) {
		return c.tb.LookupAccounts(toIDs(ids))
	})
	if err != nil {
		return nil, err
	}
	return convert(rows, fromAccount), nil
}

func (c *Client) LookupTransfers(ctx context.Context, ids []storage.Uint128) ([]storage.TransferRecord, error) {
	if err := checkSize("lookup transfers", len(ids)); err != nil {
		return nil, err
	}
	rows, err := call(ctx, c, "lookup transfers", func() ([]tbt.Transfer, error) {
		return c.tb.LookupTransfers(toIDs(ids))
	})
	if err != nil {
		return nil, err
	}
	return convert(rows, fromTransfer), nil
}

func (c *Client) QueryAccounts(ctx context.Context, filter storage.QueryFilter) ([]storage.AccountRecord, error) {
	rows, err := call(ctx, c, "query accounts", func() ([]tbt.Account, error) {
		return c.tb.QueryAccounts(toQueryFilter(filter))
	})
	if err != nil {
		return nil, err
	}
	return convert(rows, fromAccount), nil
}

func (c *Client) QueryTransfers(ctx context.Context, filter storage.QueryFilter) ([]storage.TransferRecord, error) {
	rows, err := call(ctx, c, "query transfers", func() ([]tbt.Transfer, error) {
		return c.tb.QueryTransfers(toQueryFilter(filter))
	})
	if err != nil {
		return nil, err
	}
	return convert(rows, fromTransfer), nil
}

func (c *Client) GetAccountTransfers(ctx context.Context, filter storage.AccountFilter) ([]storage.TransferRecord, error) {
	rows, err := call(ctx, c, "get account transfers", func() ([]tbt.Transfer, error) {
		return c.tb.GetAccountTransfers(toAccountFilter(filter))
	})
	if err != nil {
		return nil, err
	}
	return convert(rows, fromTransfer), nil
}

func (c *Client) GetAccountBalances(ctx context.Context, filter storage.AccountFilter) ([]storage.BalanceRecord, error) {
	rows, err := call(ctx, c, "get account balances", func() ([]tbt.AccountBalance, error) {
		return c.tb.GetAccountBalances(toAccountFilter(filter))
	})
	if err != nil {
		return nil, err
	}
	return convert(rows, fromBalance), nil
}

var _ interfaces.LedgerStore = (*Client)(nil)
