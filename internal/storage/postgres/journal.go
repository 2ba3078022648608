package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_submissions (
	id           UUID PRIMARY KEY,
	kind         TEXT NOT NULL,
	entry_ids    UUID[] NOT NULL,
	outcome      TEXT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS ledger_submissions_outcome_idx ON ledger_submissions (outcome, submitted_at DESC);
CREATE TABLE IF NOT EXISTS ledger_submission_failures (
	submission_id UUID NOT NULL REFERENCES ledger_submissions (id),
	entry_index   INTEGER NOT NULL,
	entry_id      UUID NOT NULL,
	result        TEXT NOT NULL,
	PRIMARY KEY (submission_id, entry_index)
);`

// Journal stores submissions in Postgres so unconfirmed writes survive a
// restart and can be reconciled against the ledger store.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{
		db: db,
	}
}

// Migrate creates the journal tables if they do not exist.
func (j *Journal) Migrate(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}

func (j *Journal) saveSubmission(ctx context.Context, s models.Submission, dbTx *sql.Tx) error {
	const query = `INSERT INTO ledger_submissions (id, kind, entry_ids, outcome, submitted_at)
	VALUES ($1, $2, $3, $4, $5)`

	_, err := dbTx.ExecContext(ctx, query, s.ID, s.Kind, pq.Array(uuidStrings(s.EntryIDs)), string(s.Outcome), s.SubmittedAt)
	return err
}

func (j *Journal) saveFailure(ctx context.Context, submissionID uuid.UUID, f models.SubmissionFailure, dbTx *sql.Tx) error {
	const query = `INSERT INTO ledger_submission_failures (submission_id, entry_index, entry_id, result)
	VALUES ($1, $2, $3, $4)`

	_, err := dbTx.ExecContext(ctx, query, submissionID, f.Index, f.ID, f.Result)
	return err
}

// Record writes the submission and its failures in one transaction.
func (j *Journal) Record(ctx context.Context, s models.Submission) (err error) {
	dbTx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record submission %s: %w", s.ID, err)
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	if err = j.saveSubmission(ctx, s, dbTx); err != nil {
		return fmt.Errorf("record submission %s: %w", s.ID, err)
	}
	for _, f := range s.Failures {
		if err = j.saveFailure(ctx, s.ID, f, dbTx); err != nil {
			return fmt.Errorf("record submission %s failure %d: %w", s.ID, f.Index, err)
		}
	}
	return dbTx.Commit()
}

// Unconfirmed returns the newest unconfirmed submissions first. A limit of
// zero or less returns all of them.
func (j *Journal) Unconfirmed(ctx context.Context, limit int) ([]models.Submission, error) {
	const query = `SELECT id, kind, entry_ids, outcome, submitted_at FROM ledger_submissions
	WHERE outcome = $1 ORDER BY submitted_at DESC LIMIT NULLIF($2, 0)`

	if limit < 0 {
		limit = 0
	}
	rows, err := j.db.QueryContext(ctx, query, string(models.OutcomeUnconfirmed), limit)
	if err != nil {
		return nil, fmt.Errorf("list unconfirmed submissions: %w", err)
	}

	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var (
			s       models.Submission
			ids     []string
			outcome string
		)
		if err := rows.Scan(&s.ID, &s.Kind, pq.Array(&ids), &outcome, &s.SubmittedAt); err != nil {
			return nil, err
		}
		s.Outcome = models.SubmissionOutcome(outcome)
		if s.EntryIDs, err = parseUUIDs(ids); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("entry id %q: %w", v, err)
		}
		out[i] = id
	}
	return out, nil
}

var _ interfaces.Journal = (*Journal)(nil)
