package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage"
)

var (
	ErrNotFound      = errors.New("ledger: record not found")
	ErrEmptyBatch    = errors.New("ledger: batch has no entries")
	ErrBatchTooLarge = fmt.Errorf("ledger: batch exceeds %d entries", storage.MaxBatchSize)
	ErrInvalidAmount = errors.New("ledger: amount must be a non-negative integer of at most 128 bits")
	ErrInvalidTag    = errors.New("ledger: account number must be a non-negative integer of at most 128 bits")
	ErrInvalidAction = errors.New("ledger: resolution action must be post or void")
	ErrCorrelation   = errors.New("ledger: store result does not belong to the submitted batch")

	// ErrPendingTransferResolved matches resolutions rejected because the
	// pending transfer was already posted, voided, or has expired.
	ErrPendingTransferResolved = errors.New("ledger: pending transfer already resolved")
	// ErrPendingTransferNotFound matches resolutions whose target does not
	// exist or is not a pending transfer.
	ErrPendingTransferNotFound = errors.New("ledger: pending transfer not found")

	ErrUnconfirmed = storage.ErrUnconfirmed
)

// Kind separates store-side validation rejections from two-phase protocol
// violations. Both are reported in the same shape.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindProtocol
)

func (k Kind) String() string {
	if k == KindProtocol {
		return "protocol"
	}
	return "validation"
}

type resultCode interface {
	comparable
	fmt.Stringer
	LinkFailure() bool
}

func kindOf(result any) Kind {
	if r, ok := result.(storage.CreateTransferResult); ok && (r.Resolved() || r.Unresolvable()) {
		return KindProtocol
	}
	return KindValidation
}

func sentinelOf(result any) error {
	r, ok := result.(storage.CreateTransferResult)
	switch {
	case !ok:
		return nil
	case r.Resolved():
		return ErrPendingTransferResolved
	case r.Unresolvable():
		return ErrPendingTransferNotFound
	}
	return nil
}

// Failure is one rejected entry of a batch, identified by its position and
// by the id generated for it.
type Failure[R resultCode] struct {
	Index  int       `json:"index"`
	ID     uuid.UUID `json:"id"`
	Result R         `json:"result"`
}

func (f Failure[R]) Kind() Kind { return kindOf(f.Result) }

type (
	AccountFailure  = Failure[storage.CreateAccountResult]
	TransferFailure = Failure[storage.CreateTransferResult]
)

// BatchError reports every rejected entry of a batch. None of the batch's
// effects were applied.
type BatchError[R resultCode] struct {
	Entity   string
	Failures []Failure[R]
}

type (
	AccountBatchError  = BatchError[storage.CreateAccountResult]
	TransferBatchError = BatchError[storage.CreateTransferResult]
)

func (e *BatchError[R]) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ledger: %s batch rejected:", e.Entity)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, " [%d] %s %s;", f.Index, f.ID, f.Result)
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Cause returns the first failure that is not a consequence of another entry
// of its linked chain failing.
func (e *BatchError[R]) Cause() (Failure[R], bool) {
	for _, f := range e.Failures {
		if !f.Result.LinkFailure() {
			return f, true
		}
	}
	return Failure[R]{}, false
}

func (e *BatchError[R]) Kind() Kind {
	for _, f := range e.Failures {
		if f.Kind() == KindProtocol {
			return KindProtocol
		}
	}
	return KindValidation
}

func (e *BatchError[R]) Is(target error) bool {
	for _, f := range e.Failures {
		if s := sentinelOf(f.Result); s != nil && s == target {
			return true
		}
	}
	return false
}

// EntryError reports the rejection of a single-entry submission.
type EntryError[R resultCode] struct {
	Entity string
	ID     uuid.UUID
	Result R
}

type (
	AccountError  = EntryError[storage.CreateAccountResult]
	TransferError = EntryError[storage.CreateTransferResult]
)

func (e *EntryError[R]) Error() string {
	return fmt.Sprintf("ledger: %s %s rejected: %s", e.Entity, e.ID, e.Result)
}

func (e *EntryError[R]) Kind() Kind { return kindOf(e.Result) }

func (e *EntryError[R]) Is(target error) bool {
	s := sentinelOf(e.Result)
	return s != nil && s == target
}

// UnconfirmedError reports a submission the store never answered. The
// entries may or may not exist; IDs lets the caller look them up later.
type UnconfirmedError struct {
	Entity string
	IDs    []uuid.UUID
	Err    error
}

func (e *UnconfirmedError) Error() string {
	return fmt.Sprintf("ledger: %s submission of %d entries unconfirmed: %v", e.Entity, len(e.IDs), e.Err)
}

func (e *UnconfirmedError) Unwrap() error { return e.Err }

func (e *UnconfirmedError) Is(target error) bool { return target == ErrUnconfirmed }

// ReadBackError reports a submission the store committed whose entries
// could not be read afterwards. Retrying with new ids would apply the
// entries again; IDs are the committed entries.
type ReadBackError struct {
	Entity string
	IDs    []uuid.UUID
	Err    error
}

func (e *ReadBackError) Error() string {
	return fmt.Sprintf("ledger: %s submission of %d entries committed, read back failed: %v", e.Entity, len(e.IDs), e.Err)
}

func (e *ReadBackError) Unwrap() error { return e.Err }

// Committed is always true: the store accepted every entry.
func (e *ReadBackError) Committed() bool { return true }
