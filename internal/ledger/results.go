package ledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

// eventResult is a store result reduced to what correlation needs.
type eventResult[R resultCode] struct {
	index  uint32
	result R
}

func accountResults(rs []storage.AccountEventResult) []eventResult[storage.CreateAccountResult] {
	out := make([]eventResult[storage.CreateAccountResult], len(rs))
	for i, r := range rs {
		out[i] = eventResult[storage.CreateAccountResult]{index: r.Index, result: r.Result}
	}
	return out
}

func transferResults(rs []storage.TransferEventResult) []eventResult[storage.CreateTransferResult] {
	out := make([]eventResult[storage.CreateTransferResult], len(rs))
	for i, r := range rs {
		out[i] = eventResult[storage.CreateTransferResult]{index: r.Index, result: r.Result}
	}
	return out
}

// correlate maps the sparse result stream of a create call back to the
// generated ids, sorted by submission index. A result pointing outside the
// batch means the response is not ours and nothing can be trusted.
func correlate[R resultCode](ids []uuid.UUID, results []eventResult[R]) ([]Failure[R], error) {
	failures := make([]Failure[R], 0, len(results))
	for _, r := range results {
		if int(r.index) >= len(ids) {
			return nil, fmt.Errorf("%w: index %d in batch of %d", ErrCorrelation, r.index, len(ids))
		}
		failures = append(failures, Failure[R]{
			Index:  int(r.index),
			ID:     ids[r.index],
			Result: r.result,
		})
	}
	sort.SliceStable(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })
	return failures, nil
}

// TransferOutcome is the per-entry result of a linked submission. Result is
// "ok" for entries that were applied.
type TransferOutcome struct {
	ID     uuid.UUID                    `json:"id"`
	Result storage.CreateTransferResult `json:"result"`
}

func (o TransferOutcome) OK() bool { return o.Result == storage.TransferOK }

// transferOutcomes expands sparse failures into one outcome per submitted id.
func transferOutcomes(ids []uuid.UUID, failures []TransferFailure) []TransferOutcome {
	out := make([]TransferOutcome, len(ids))
	for i, id := range ids {
		out[i] = TransferOutcome{ID: id, Result: storage.TransferOK}
	}
	for _, f := range failures {
		out[f.Index].Result = f.Result
	}
	return out
}
