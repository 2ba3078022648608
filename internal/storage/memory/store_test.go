package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func u(v uint64) storage.Uint128 { return storage.ToUint128(v) }

func account(id uint64) storage.AccountRecord {
	return storage.AccountRecord{ID: u(id), Ledger: 1, Code: 1, Flags: storage.AccountHistory}
}

func transfer(id, debit, credit, amount uint64) storage.TransferRecord {
	return storage.TransferRecord{ID: u(id), DebitAccountID: u(debit), CreditAccountID: u(credit), Amount: u(amount), Ledger: 1, Code: 1}
}

func newStore(t *testing.T) (*MemoryLedgerStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryLedgerStore(WithClock(clock.now))
	res, err := store.CreateAccounts(context.Background(), []storage.AccountRecord{account(1), account(2)})
	require.NoError(t, err)
	require.Empty(t, res)
	return store, clock
}

func lookup(t *testing.T, s *MemoryLedgerStore, id uint64) storage.AccountRecord {
	t.Helper()
	found, err := s.LookupAccounts(context.Background(), []storage.Uint128{u(id)})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return found[0]
}

func TestCreateAccountsValidation(t *testing.T) {
	store := NewMemoryLedgerStore()
	zeroLedger := account(3)
	zeroLedger.Ledger = 0

	res, err := store.CreateAccounts(context.Background(), []storage.AccountRecord{account(0), zeroLedger, account(4)})
	require.NoError(t, err)
	assert.Equal(t, []storage.AccountEventResult{
		{Index: 0, Result: storage.AccountIDMustNotBeZero},
		{Index: 1, Result: storage.AccountLedgerMustNotBeZero},
	}, res)

	res, err = store.CreateAccounts(context.Background(), []storage.AccountRecord{account(4)})
	require.NoError(t, err)
	assert.Equal(t, []storage.AccountEventResult{{Index: 0, Result: storage.AccountExists}}, res)
}

func TestLinkedChainIsAtomic(t *testing.T) {
	store := NewMemoryLedgerStore()
	first, bad, last := account(10), account(11), account(12)
	first.Flags |= storage.AccountLinked
	bad.Flags |= storage.AccountLinked
	bad.Code = 0

	res, err := store.CreateAccounts(context.Background(), []storage.AccountRecord{first, bad, last, account(13)})
	require.NoError(t, err)
	assert.Equal(t, []storage.AccountEventResult{
		{Index: 0, Result: storage.AccountLinkedEventFailed},
		{Index: 1, Result: storage.AccountCodeMustNotBeZero},
		{Index: 2, Result: storage.AccountLinkedEventFailed},
	}, res)

	found, err := store.LookupAccounts(context.Background(), []storage.Uint128{u(10), u(11), u(12), u(13)})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, u(13), found[0].ID)
}

func TestLinkedChainOpenAtEndOfBatch(t *testing.T) {
	store, _ := newStore(t)
	a, b := transfer(100, 1, 2, 5), transfer(101, 1, 2, 5)
	a.Flags = storage.TransferLinked
	b.Flags = storage.TransferLinked

	res, err := store.CreateTransfers(context.Background(), []storage.TransferRecord{a, b})
	require.NoError(t, err)
	assert.Equal(t, []storage.TransferEventResult{
		{Index: 0, Result: storage.TransferLinkedEventFailed},
		{Index: 1, Result: storage.TransferLinkedEventChainOpen},
	}, res)
	assert.True(t, lookup(t, store, 1).DebitsPosted.IsZero())
}

func TestFailedChainRollsBackBalancesAndHistory(t *testing.T) {
	store, _ := newStore(t)
	ok, missing := transfer(100, 1, 2, 50), transfer(101, 1, 9, 50)
	ok.Flags = storage.TransferLinked

	res, err := store.CreateTransfers(context.Background(), []storage.TransferRecord{ok, missing})
	require.NoError(t, err)
	assert.Equal(t, []storage.TransferEventResult{
		{Index: 0, Result: storage.TransferLinkedEventFailed},
		{Index: 1, Result: storage.TransferCreditAccountNotFound},
	}, res)

	assert.True(t, lookup(t, store, 1).DebitsPosted.IsZero())
	assert.True(t, lookup(t, store, 2).CreditsPosted.IsZero())
	transfers, err := store.LookupTransfers(context.Background(), []storage.Uint128{u(100)})
	require.NoError(t, err)
	assert.Empty(t, transfers)

	balances, err := store.GetAccountBalances(context.Background(), storage.AccountFilter{
		AccountID: u(1), Limit: 10, Flags: storage.FilterDebits | storage.FilterCredits,
	})
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestTwoPhaseTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("post partial amount releases the remainder", func(t *testing.T) {
		store, _ := newStore(t)
		p := transfer(100, 1, 2, 500)
		p.Flags = storage.TransferPending
		res, err := store.CreateTransfers(ctx, []storage.TransferRecord{p})
		require.NoError(t, err)
		require.Empty(t, res)

		a := lookup(t, store, 1)
		assert.Equal(t, u(500), a.DebitsPending)
		assert.True(t, a.DebitsPosted.IsZero())
		assert.Equal(t, u(500), lookup(t, store, 2).CreditsPending)

		post := storage.TransferRecord{ID: u(101), PendingID: u(100), Amount: u(100), Flags: storage.TransferPostPending}
		res, err = store.CreateTransfers(ctx, []storage.TransferRecord{post})
		require.NoError(t, err)
		require.Empty(t, res)

		a = lookup(t, store, 1)
		assert.Equal(t, u(100), a.DebitsPosted)
		assert.True(t, a.DebitsPending.IsZero())
		b := lookup(t, store, 2)
		assert.Equal(t, u(100), b.CreditsPosted)
		assert.True(t, b.CreditsPending.IsZero())

		resolved, err := store.LookupTransfers(ctx, []storage.Uint128{u(101)})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, u(1), resolved[0].DebitAccountID)
		assert.Equal(t, uint32(1), resolved[0].Ledger)
	})

	t.Run("post with amount max posts the reservation", func(t *testing.T) {
		store, _ := newStore(t)
		p := transfer(100, 1, 2, 500)
		p.Flags = storage.TransferPending
		post := storage.TransferRecord{ID: u(101), PendingID: u(100), Amount: storage.AmountMax, Flags: storage.TransferPostPending}
		res, err := store.CreateTransfers(ctx, []storage.TransferRecord{p})
		require.NoError(t, err)
		require.Empty(t, res)
		res, err = store.CreateTransfers(ctx, []storage.TransferRecord{post})
		require.NoError(t, err)
		require.Empty(t, res)

		assert.Equal(t, u(500), lookup(t, store, 1).DebitsPosted)
	})

	t.Run("resolution states are terminal", func(t *testing.T) {
		cases := []struct {
			name       string
			first      storage.TransferFlags
			second     storage.TransferFlags
			wantResult storage.CreateTransferResult
		}{
			{"post then post", storage.TransferPostPending, storage.TransferPostPending, storage.TransferPendingTransferAlreadyPosted},
			{"post then void", storage.TransferPostPending, storage.TransferVoidPending, storage.TransferPendingTransferAlreadyPosted},
			{"void then post", storage.TransferVoidPending, storage.TransferPostPending, storage.TransferPendingTransferAlreadyVoided},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				store, _ := newStore(t)
				p := transfer(100, 1, 2, 500)
				p.Flags = storage.TransferPending
				_, err := store.CreateTransfers(ctx, []storage.TransferRecord{p})
				require.NoError(t, err)

				first := storage.TransferRecord{ID: u(101), PendingID: u(100), Amount: storage.AmountMax, Flags: tc.first}
				res, err := store.CreateTransfers(ctx, []storage.TransferRecord{first})
				require.NoError(t, err)
				require.Empty(t, res)
				before := lookup(t, store, 1)

				second := storage.TransferRecord{ID: u(102), PendingID: u(100), Amount: storage.AmountMax, Flags: tc.second}
				res, err = store.CreateTransfers(ctx, []storage.TransferRecord{second})
				require.NoError(t, err)
				assert.Equal(t, []storage.TransferEventResult{{Index: 0, Result: tc.wantResult}}, res)
				assert.Equal(t, before, lookup(t, store, 1))
			})
		}
	})

	t.Run("expired reservation is released and cannot be resolved", func(t *testing.T) {
		store, clock := newStore(t)
		p := transfer(100, 1, 2, 500)
		p.Flags = storage.TransferPending
		p.Timeout = 30
		_, err := store.CreateTransfers(ctx, []storage.TransferRecord{p})
		require.NoError(t, err)

		clock.advance(31 * time.Second)
		assert.True(t, lookup(t, store, 1).DebitsPending.IsZero())

		post := storage.TransferRecord{ID: u(101), PendingID: u(100), Amount: storage.AmountMax, Flags: storage.TransferPostPending}
		res, err := store.CreateTransfers(ctx, []storage.TransferRecord{post})
		require.NoError(t, err)
		assert.Equal(t, []storage.TransferEventResult{{Index: 0, Result: storage.TransferPendingTransferExpired}}, res)
	})

	t.Run("post above the reservation is rejected", func(t *testing.T) {
		store, _ := newStore(t)
		p := transfer(100, 1, 2, 500)
		p.Flags = storage.TransferPending
		_, err := store.CreateTransfers(ctx, []storage.TransferRecord{p})
		require.NoError(t, err)

		post := storage.TransferRecord{ID: u(101), PendingID: u(100), Amount: u(501), Flags: storage.TransferPostPending}
		res, err := store.CreateTransfers(ctx, []storage.TransferRecord{post})
		require.NoError(t, err)
		assert.Equal(t, []storage.TransferEventResult{{Index: 0, Result: storage.TransferExceedsPendingTransferAmount}}, res)
	})
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	store, clock := newStore(t)
	for i := uint64(0); i < 3; i++ {
		clock.advance(time.Second)
		tr := transfer(100+i, 1, 2, 10)
		tr.UserData64 = 7
		res, err := store.CreateTransfers(ctx, []storage.TransferRecord{tr})
		require.NoError(t, err)
		require.Empty(t, res)
	}

	t.Run("account transfers honour side, limit and order", func(t *testing.T) {
		got, err := store.GetAccountTransfers(ctx, storage.AccountFilter{AccountID: u(1), Limit: 2, Flags: storage.FilterDebits | storage.FilterReversed})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, u(102), got[0].ID)
		assert.Equal(t, u(101), got[1].ID)

		got, err = store.GetAccountTransfers(ctx, storage.AccountFilter{AccountID: u(1), Limit: 10, Flags: storage.FilterCredits})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("timestamp bounds are inclusive", func(t *testing.T) {
		all, err := store.QueryTransfers(ctx, storage.QueryFilter{UserData64: 7, Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 3)

		got, err := store.QueryTransfers(ctx, storage.QueryFilter{TimestampMin: all[1].Timestamp, TimestampMax: all[1].Timestamp, Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, all[1].ID, got[0].ID)
	})

	t.Run("balance history follows each transfer", func(t *testing.T) {
		got, err := store.GetAccountBalances(ctx, storage.AccountFilter{AccountID: u(2), Limit: 10, Flags: storage.FilterCredits})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, u(10), got[0].CreditsPosted)
		assert.Equal(t, u(30), got[2].CreditsPosted)
	})

	t.Run("zero limit returns nothing", func(t *testing.T) {
		got, err := store.QueryAccounts(ctx, storage.QueryFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCancelledContextIsUnconfirmed(t *testing.T) {
	store := NewMemoryLedgerStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.CreateAccounts(ctx, []storage.AccountRecord{account(1)})
	require.ErrorIs(t, err, storage.ErrUnconfirmed)
	require.ErrorIs(t, err, context.Canceled)
}
