package models

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionOutcome string

const (
	OutcomeCommitted   SubmissionOutcome = "committed"
	OutcomeRejected    SubmissionOutcome = "rejected"
	OutcomeUnconfirmed SubmissionOutcome = "unconfirmed"
)

// Submission records one batch sent to the ledger store.
type Submission struct {
	ID          uuid.UUID           `json:"id"`
	Kind        string              `json:"kind"`
	EntryIDs    []uuid.UUID         `json:"entryIds"`
	Outcome     SubmissionOutcome   `json:"outcome"`
	Failures    []SubmissionFailure `json:"failures,omitempty"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

type SubmissionFailure struct {
	Index  int       `json:"index"`
	ID     uuid.UUID `json:"id"`
	Result string    `json:"result"`
}
