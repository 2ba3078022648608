package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/id"
	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage/memory"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type published struct {
	topic string
	key   string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	writes int
	events []published
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, batch ...interfaces.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes++
	for _, e := range batch {
		p.events = append(p.events, published{topic: topic, key: e.Key, event: e.Payload})
	}
	return nil
}

func (p *recordingPublisher) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type fixture struct {
	ledger  *Ledger
	store   *memory.MemoryLedgerStore
	journal *memory.Journal
	events  *recordingPublisher
	clock   *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	f := &fixture{
		store:   memory.NewMemoryLedgerStore(memory.WithClock(clock.now)),
		journal: memory.NewJournal(),
		events:  &recordingPublisher{},
		clock:   clock,
	}
	f.ledger = NewLedger(f.store,
		WithIDGenerator(id.NewSequence(1)),
		WithJournal(f.journal),
		WithPublisher(f.events, TopicsFor("ledger")),
		WithClock(clock.now),
	)
	return f
}

// accounts creates n accounts on ledger 1.
func (f *fixture) accounts(t *testing.T, n int) []models.Account {
	t.Helper()
	reqs := make([]models.AccountRequest, n)
	for i := range reqs {
		reqs[i] = models.AccountRequest{Ledger: 1, Code: 10}
	}
	accounts, err := f.ledger.CreateAccounts(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, accounts, n)
	return accounts
}

func (f *fixture) account(t *testing.T, accountID uuid.UUID) models.Account {
	t.Helper()
	a, err := f.ledger.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	return a
}

func move(from, to models.Account, amount int64) models.TransferRequest {
	return models.TransferRequest{
		DebitAccountID:  from.ID,
		CreditAccountID: to.ID,
		Amount:          decimal.NewFromInt(amount),
		Ledger:          1,
		Code:            1,
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
