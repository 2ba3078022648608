package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
)

// Journal is an in-memory submission journal, used when no database is configured.
type Journal struct {
	mu          sync.Mutex
	submissions []models.Submission
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Record(ctx context.Context, submission models.Submission) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.submissions = append(j.submissions, submission)
	return nil
}

// Unconfirmed returns the newest unconfirmed submissions first.
func (j *Journal) Unconfirmed(ctx context.Context, limit int) ([]models.Submission, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	var out []models.Submission
	for i := len(j.submissions) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if j.submissions[i].Outcome == models.OutcomeUnconfirmed {
			out = append(out, j.submissions[i])
		}
	}
	return out, nil
}

// Submissions returns a copy of everything recorded so far.
func (j *Journal) Submissions() []models.Submission {
	j.mu.Lock()
	defer j.mu.Unlock()

	copied := make([]models.Submission, len(j.submissions))
	copy(copied, j.submissions)
	return copied
}

var _ interfaces.Journal = (*Journal)(nil)
