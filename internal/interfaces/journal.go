package interfaces

import (
	"context"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
)

// Journal keeps an append-only record of every batch submitted to the store.
type Journal interface {
	Record(ctx context.Context, submission models.Submission) error
	Unconfirmed(ctx context.Context, limit int) ([]models.Submission, error)
}
