package tigerbeetle

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tbt "github.com/tigerbeetle/tigerbeetle-go/pkg/types"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// fakeCluster records what it was sent and answers from canned replies.
type fakeCluster struct {
	api

	block     chan struct{}
	err       error
	transfers []tbt.Transfer
	results   []tbt.TransferEventResult
	accounts  []tbt.Account
	filter    tbt.AccountFilter
}

func (f *fakeCluster) CreateTransfers(transfers []tbt.Transfer) ([]tbt.TransferEventResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.transfers = transfers
	return f.results, f.err
}

func (f *fakeCluster) LookupAccounts(ids []tbt.Uint128) ([]tbt.Account, error) {
	return f.accounts, f.err
}

func (f *fakeCluster) GetAccountTransfers(filter tbt.AccountFilter) ([]tbt.Transfer, error) {
	f.filter = filter
	return nil, f.err
}

func TestUint128LayoutMatches(t *testing.T) {
	assert.Equal(t, tbt.ToUint128(12345), tbt.Uint128(storage.ToUint128(12345)))

	n, ok := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	require.True(t, ok)
	largest, err := storage.BigToUint128(n)
	require.NoError(t, err)
	assert.Equal(t, storage.AmountMax, largest)
	for _, b := range tbt.Uint128(largest) {
		assert.Equal(t, byte(0xff), b)
	}
}

func TestCreateTransfersMapsRecordsAndResults(t *testing.T) {
	fake := &fakeCluster{results: []tbt.TransferEventResult{{Index: 1, Result: tbt.TransferExceedsCredits}}}
	c := newClient(fake, 0, zap.NewNop())

	records := []storage.TransferRecord{
		{ID: storage.ToUint128(1), DebitAccountID: storage.ToUint128(10), CreditAccountID: storage.ToUint128(11),
			Amount: storage.ToUint128(500), Ledger: 1, Code: 2, Flags: storage.TransferLinked | storage.TransferPending, Timeout: 30},
		{ID: storage.ToUint128(2), PendingID: storage.ToUint128(1), Amount: storage.AmountMax, Flags: storage.TransferPostPending},
	}
	results, err := c.CreateTransfers(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, []storage.TransferEventResult{{Index: 1, Result: storage.TransferExceedsCredits}}, results)

	require.Len(t, fake.transfers, 2)
	sent := fake.transfers[0]
	assert.Equal(t, tbt.ToUint128(500), sent.Amount)
	assert.Equal(t, uint32(30), sent.Timeout)
	assert.True(t, sent.TransferFlags().Linked)
	assert.True(t, sent.TransferFlags().Pending)
	assert.True(t, fake.transfers[1].TransferFlags().PostPendingTransfer)
	assert.Equal(t, tbt.ToUint128(1), fake.transfers[1].PendingID)
}

func TestAccountFilterFlagsMatchClient(t *testing.T) {
	fake := &fakeCluster{}
	c := newClient(fake, 0, zap.NewNop())

	_, err := c.GetAccountTransfers(context.Background(), storage.AccountFilter{
		AccountID: storage.ToUint128(7),
		Limit:     10,
		Flags:     storage.FilterDebits | storage.FilterReversed,
	})
	require.NoError(t, err)

	want := tbt.AccountFilterFlags{Debits: true, Reversed: true}.ToUint32()
	assert.Equal(t, want, fake.filter.Flags)
	assert.Equal(t, uint32(10), fake.filter.Limit)
}

func TestClientErrorIsUnconfirmed(t *testing.T) {
	fake := &fakeCluster{err: errors.New("client closed")}
	c := newClient(fake, 0, zap.NewNop())

	_, err := c.LookupAccounts(context.Background(), []storage.Uint128{storage.ToUint128(1)})
	assert.ErrorIs(t, err, storage.ErrUnconfirmed)
}

func TestTimeoutIsUnconfirmed(t *testing.T) {
	fake := &fakeCluster{block: make(chan struct{})}
	defer close(fake.block)
	c := newClient(fake, 20*time.Millisecond, zap.NewNop())

	_, err := c.CreateTransfers(context.Background(), []storage.TransferRecord{{ID: storage.ToUint128(1)}})
	assert.ErrorIs(t, err, storage.ErrUnconfirmed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOversizedBatchIsRefused(t *testing.T) {
	c := newClient(&fakeCluster{}, 0, zap.NewNop())
	_, err := c.LookupAccounts(context.Background(), make([]storage.Uint128, storage.MaxBatchSize+1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrUnconfirmed)
}
