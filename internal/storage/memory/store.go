package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

type pendingStatus uint8

const (
	statusPending pendingStatus = iota + 1
	statusPosted
	statusVoided
	statusExpired
)

// historyPoint is an account balance snapshot taken after a transfer touched
// the account on the debit and/or credit side.
type historyPoint struct {
	balance storage.BalanceRecord
	debit   bool
	credit  bool
}

// MemoryLedgerStore is an in-process ledger store. It follows the remote
// store's contract: linked chains apply atomically, pending transfers reserve
// funds until posted, voided or expired, and create calls report only the
// entries that failed. It is safe for concurrent use.
type MemoryLedgerStore struct {
	mu  sync.Mutex
	now func() time.Time

	lastTimestamp uint64

	accounts   map[storage.Uint128]*storage.AccountRecord
	accountLog []storage.Uint128 // creation order, which is timestamp order

	transfers   map[storage.Uint128]*storage.TransferRecord
	transferLog []storage.Uint128

	pending map[storage.Uint128]pendingStatus
	history map[storage.Uint128][]historyPoint
}

type Option func(*MemoryLedgerStore)

// WithClock replaces the wall clock used for timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(m *MemoryLedgerStore) {
		m.now = now
	}
}

// NewMemoryLedgerStore creates an empty store.
func NewMemoryLedgerStore(opts ...Option) *MemoryLedgerStore {
	m := &MemoryLedgerStore{
		now:       time.Now,
		accounts:  make(map[storage.Uint128]*storage.AccountRecord),
		transfers: make(map[storage.Uint128]*storage.TransferRecord),
		pending:   make(map[storage.Uint128]pendingStatus),
		history:   make(map[storage.Uint128][]historyPoint),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func unconfirmed(err error) error {
	return fmt.Errorf("%w: %w", storage.ErrUnconfirmed, err)
}

func checkBatch(ctx context.Context, n int) error {
	if err := ctx.Err(); err != nil {
		return unconfirmed(err)
	}
	if n > storage.MaxBatchSize {
		return fmt.Errorf("batch of %d exceeds %d entries", n, storage.MaxBatchSize)
	}
	return nil
}

// tick returns a fresh timestamp, strictly after every timestamp issued so far.
func (m *MemoryLedgerStore) tick() uint64 {
	ts := uint64(m.now().UnixNano())
	if ts <= m.lastTimestamp {
		ts = m.lastTimestamp + 1
	}
	m.lastTimestamp = ts
	return ts
}

func (m *MemoryLedgerStore) CreateAccounts(ctx context.Context, accounts []storage.AccountRecord) ([]storage.AccountEventResult, error) {
	if err := checkBatch(ctx, len(accounts)); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	failures := applyChains(len(accounts),
		func(i int) bool { return accounts[i].Flags.Has(storage.AccountLinked) },
		func(i int, undo *undoLog) storage.CreateAccountResult { return m.createAccount(accounts[i], undo) },
		chainCodes[storage.CreateAccountResult]{
			ok:         storage.AccountOK,
			linkFailed: storage.AccountLinkedEventFailed,
			chainOpen:  storage.AccountLinkedEventChainOpen,
		},
	)

	results := make([]storage.AccountEventResult, 0, len(failures))
	for _, f := range failures {
		results = append(results, storage.AccountEventResult{Index: uint32(f.index), Result: f.result})
	}
	return results, nil
}

func (m *MemoryLedgerStore) CreateTransfers(ctx context.Context, transfers []storage.TransferRecord) ([]storage.TransferEventResult, error) {
	if err := checkBatch(ctx, len(transfers)); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire()
	failures := applyChains(len(transfers),
		func(i int) bool { return transfers[i].Flags.Has(storage.TransferLinked) },
		func(i int, undo *undoLog) storage.CreateTransferResult { return m.createTransfer(transfers[i], undo) },
		chainCodes[storage.CreateTransferResult]{
			ok:         storage.TransferOK,
			linkFailed: storage.TransferLinkedEventFailed,
			chainOpen:  storage.TransferLinkedEventChainOpen,
		},
	)

	results := make([]storage.TransferEventResult, 0, len(failures))
	for _, f := range failures {
		results = append(results, storage.TransferEventResult{Index: uint32(f.index), Result: f.result})
	}
	return results, nil
}

func (m *MemoryLedgerStore) LookupAccounts(ctx context.Context, ids []storage.Uint128) ([]storage.AccountRecord, error) {
	if err := checkBatch(ctx, len(ids)); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire()
	found := make([]storage.AccountRecord, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			found = append(found, *a)
		}
	}
	return found, nil
}

func (m *MemoryLedgerStore) LookupTransfers(ctx context.Context, ids []storage.Uint128) ([]storage.TransferRecord, error) {
	if err := checkBatch(ctx, len(ids)); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	found := make([]storage.TransferRecord, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.transfers[id]; ok {
			found = append(found, *t)
		}
	}
	return found, nil
}

func (m *MemoryLedgerStore) QueryAccounts(ctx context.Context, filter storage.QueryFilter) ([]storage.AccountRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, unconfirmed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !validRange(filter.TimestampMin, filter.TimestampMax, filter.Limit) {
		return []storage.AccountRecord{}, nil
	}
	m.expire()
	return scan(m.accountLog, filter.Flags&storage.QueryReversed != 0, filter.Limit,
		func(id storage.Uint128) (storage.AccountRecord, bool) {
			a := m.accounts[id]
			return *a, matchQuery(filter, a.UserData128, a.UserData64, a.UserData32, a.Ledger, a.Code, a.Timestamp)
		}), nil
}

func (m *MemoryLedgerStore) QueryTransfers(ctx context.Context, filter storage.QueryFilter) ([]storage.TransferRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, unconfirmed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !validRange(filter.TimestampMin, filter.TimestampMax, filter.Limit) {
		return []storage.TransferRecord{}, nil
	}
	return scan(m.transferLog, filter.Flags&storage.QueryReversed != 0, filter.Limit,
		func(id storage.Uint128) (storage.TransferRecord, bool) {
			t := m.transfers[id]
			return *t, matchQuery(filter, t.UserData128, t.UserData64, t.UserData32, t.Ledger, t.Code, t.Timestamp)
		}), nil
}

func (m *MemoryLedgerStore) GetAccountTransfers(ctx context.Context, filter storage.AccountFilter) ([]storage.TransferRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, unconfirmed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !validAccountFilter(filter) {
		return []storage.TransferRecord{}, nil
	}
	debits, credits := filter.Flags.Has(storage.FilterDebits), filter.Flags.Has(storage.FilterCredits)
	return scan(m.transferLog, filter.Flags.Has(storage.FilterReversed), filter.Limit,
		func(id storage.Uint128) (storage.TransferRecord, bool) {
			t := m.transfers[id]
			side := (debits && t.DebitAccountID == filter.AccountID) || (credits && t.CreditAccountID == filter.AccountID)
			return *t, side && inRange(t.Timestamp, filter.TimestampMin, filter.TimestampMax)
		}), nil
}

// GetAccountBalances returns history points of accounts created with the
// history flag. Other accounts have no history.
func (m *MemoryLedgerStore) GetAccountBalances(ctx context.Context, filter storage.AccountFilter) ([]storage.BalanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, unconfirmed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[filter.AccountID]
	if !ok || !a.Flags.Has(storage.AccountHistory) || !validAccountFilter(filter) {
		return []storage.BalanceRecord{}, nil
	}

	points := m.history[filter.AccountID]
	debits, credits := filter.Flags.Has(storage.FilterDebits), filter.Flags.Has(storage.FilterCredits)
	out := make([]storage.BalanceRecord, 0)
	for i := range points {
		p := points[i]
		if filter.Flags.Has(storage.FilterReversed) {
			p = points[len(points)-1-i]
		}
		if !((debits && p.debit) || (credits && p.credit)) {
			continue
		}
		if !inRange(p.balance.Timestamp, filter.TimestampMin, filter.TimestampMax) {
			continue
		}
		out = append(out, p.balance)
		if uint32(len(out)) == filter.Limit {
			break
		}
	}
	return out, nil
}

// expire releases the reservations of pending transfers whose timeout has
// elapsed. Callers hold m.mu.
func (m *MemoryLedgerStore) expire() {
	now := uint64(m.now().UnixNano())
	for id, status := range m.pending {
		if status != statusPending {
			continue
		}
		p := m.transfers[id]
		if p.Timeout == 0 || now < p.Timestamp+uint64(p.Timeout)*uint64(time.Second) {
			continue
		}
		dr, cr := m.accounts[p.DebitAccountID], m.accounts[p.CreditAccountID]
		dr.DebitsPending, _ = dr.DebitsPending.Sub(p.Amount)
		cr.CreditsPending, _ = cr.CreditsPending.Sub(p.Amount)
		m.pending[id] = statusExpired
	}
}

var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
