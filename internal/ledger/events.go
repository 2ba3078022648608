package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models/events"
)

// Topics names where account and transfer events go. Events are published
// once the store confirmed the write; a failed publish is logged only.
type Topics struct {
	Accounts  string
	Transfers string
}

func TopicsFor(prefix string) Topics {
	return Topics{
		Accounts:  prefix + ".accounts.created",
		Transfers: prefix + ".transfers.committed",
	}
}

func (l *Ledger) publishAccounts(ctx context.Context, accounts []models.Account) {
	if l.events == nil || len(accounts) == 0 {
		return
	}
	now := l.now().UTC()
	batch := make([]interfaces.Event, len(accounts))
	for i, a := range accounts {
		batch[i] = interfaces.Event{
			Key: a.ID.String(),
			Payload: events.AccountCreated{
				AccountID:  a.ID,
				Ledger:     a.Ledger,
				Code:       a.Code,
				OccurredAt: now,
			},
		}
	}
	if err := l.events.Publish(ctx, l.topics.Accounts, batch...); err != nil {
		l.log.Warn("publish account events failed", zap.Int("events", len(batch)), zap.Error(err))
	}
}

func (l *Ledger) publishTransfers(ctx context.Context, transfers []models.Transfer) {
	if l.events == nil || len(transfers) == 0 {
		return
	}
	now := l.now().UTC()
	batch := make([]interfaces.Event, len(transfers))
	for i, t := range transfers {
		event := events.TransferCommitted{
			TransferID:  t.ID,
			Kind:        string(StateOf(t)),
			FromAccount: t.DebitAccountID,
			ToAccount:   t.CreditAccountID,
			Amount:      t.Amount,
			Ledger:      t.Ledger,
			OccurredAt:  now,
		}
		if pendingID := t.PendingID; pendingID != uuid.Nil {
			event.PendingID = &pendingID
		}
		batch[i] = interfaces.Event{Key: t.ID.String(), Payload: event}
	}
	if err := l.events.Publish(ctx, l.topics.Transfers, batch...); err != nil {
		l.log.Warn("publish transfer events failed", zap.Int("events", len(batch)), zap.Error(err))
	}
}
