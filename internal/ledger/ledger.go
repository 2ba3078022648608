package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/id"
	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
)

const (
	entityAccount  = "account"
	entityTransfer = "transfer"
)

// Ledger orchestrates account and transfer operations against the ledger
// store. It holds no per-request state; every operation issues one create
// submission at most, and reads back only after the store answered it.
type Ledger struct {
	store   interfaces.LedgerStore // remote store client, owned by the caller
	ids     id.Generator
	log     *zap.Logger
	events  interfaces.EventPublisher // optional
	topics  Topics
	journal interfaces.Journal // optional
	now     func() time.Time
}

type Option func(*Ledger)

func WithIDGenerator(g id.Generator) Option {
	return func(l *Ledger) { l.ids = g }
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithPublisher emits an event for every confirmed account and transfer.
func WithPublisher(p interfaces.EventPublisher, topics Topics) Option {
	return func(l *Ledger) {
		l.events = p
		l.topics = topics
	}
}

// WithJournal records every submission and its outcome.
func WithJournal(j interfaces.Journal) Option {
	return func(l *Ledger) { l.journal = j }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a Ledger over store. Ids are time-ordered uuids unless
// another generator is given.
func NewLedger(store interfaces.LedgerStore, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		ids:   id.TimeOrdered{},
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// settle interprets the answer to one create call and journals it. The
// returned failures are sorted by index; an error means the outcome of the
// submission is unknown.
func settle[R resultCode](ctx context.Context, l *Ledger, entity string, ids []uuid.UUID, results []eventResult[R], callErr error) ([]Failure[R], error) {
	sub := models.Submission{
		ID:          uuid.New(),
		Kind:        entity,
		EntryIDs:    ids,
		SubmittedAt: l.now().UTC(),
	}

	if callErr != nil {
		sub.Outcome = models.OutcomeUnconfirmed
		l.record(ctx, sub)
		l.log.Error("submission unconfirmed",
			zap.String("kind", entity),
			zap.Int("entries", len(ids)),
			zap.Error(callErr))
		return nil, &UnconfirmedError{Entity: entity, IDs: ids, Err: callErr}
	}

	failures, err := correlate(ids, results)
	if err != nil {
		sub.Outcome = models.OutcomeUnconfirmed
		l.record(ctx, sub)
		l.log.Error("store results do not match submission",
			zap.String("kind", entity),
			zap.Int("entries", len(ids)),
			zap.Error(err))
		return nil, &UnconfirmedError{Entity: entity, IDs: ids, Err: err}
	}

	if len(failures) == 0 {
		sub.Outcome = models.OutcomeCommitted
		l.record(ctx, sub)
		l.log.Info("submission committed", zap.String("kind", entity), zap.Int("entries", len(ids)))
		return nil, nil
	}

	sub.Outcome = models.OutcomeRejected
	sub.Failures = make([]models.SubmissionFailure, len(failures))
	for i, f := range failures {
		sub.Failures[i] = models.SubmissionFailure{Index: f.Index, ID: f.ID, Result: f.Result.String()}
	}
	l.record(ctx, sub)

	cause := failures[0]
	for _, f := range failures {
		if !f.Result.LinkFailure() {
			cause = f
			break
		}
	}
	l.log.Warn("submission rejected",
		zap.String("kind", entity),
		zap.Int("entries", len(ids)),
		zap.Int("failures", len(failures)),
		zap.Int("cause_index", cause.Index),
		zap.Stringer("cause", cause.Result))
	return failures, nil
}

// record journals a submission, even when the request context is done.
func (l *Ledger) record(ctx context.Context, sub models.Submission) {
	if l.journal == nil {
		return
	}
	if err := l.journal.Record(context.WithoutCancel(ctx), sub); err != nil {
		l.log.Warn("journal write failed", zap.Stringer("submission", sub.ID), zap.Error(err))
	}
}

// UnconfirmedSubmissions lists the newest submissions the store never
// answered, for reconciliation. A limit of 0 lists all of them. Without a
// journal the list is empty.
func (l *Ledger) UnconfirmedSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	if l.journal == nil {
		return []models.Submission{}, nil
	}
	subs, err := l.journal.Unconfirmed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("unconfirmed submissions: %w", err)
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return subs, nil
}

func (l *Ledger) readBackFailed(entity string, ids []uuid.UUID, err error) error {
	l.log.Error("read back of committed submission failed",
		zap.String("kind", entity),
		zap.Int("entries", len(ids)),
		zap.Error(err))
	return &ReadBackError{Entity: entity, IDs: ids, Err: err}
}

func batchError[R resultCode](entity string, failures []Failure[R]) error {
	if len(failures) == 0 {
		return nil
	}
	return &BatchError[R]{Entity: entity, Failures: failures}
}

func entryError[R resultCode](entity string, failures []Failure[R]) error {
	if len(failures) == 0 {
		return nil
	}
	return &EntryError[R]{Entity: entity, ID: failures[0].ID, Result: failures[0].Result}
}

// align orders found rows by ids, leaving nil where a row is missing.
func align[T any](ids []uuid.UUID, found []T, key func(T) uuid.UUID) []*T {
	byID := make(map[uuid.UUID]int, len(found))
	for i := range found {
		byID[key(found[i])] = i
	}
	out := make([]*T, len(ids))
	for i, want := range ids {
		if j, ok := byID[want]; ok {
			out[i] = &found[j]
		}
	}
	return out
}
