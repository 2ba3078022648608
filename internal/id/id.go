// Package id generates the 128-bit identifiers of ledger entries.
//
// An identifier is both the store key of an entry and its idempotency token:
// resubmitting an entry under the same id never applies it twice, so a
// generator must never hand out the same id twice.
package id

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator interface {
	New() uuid.UUID
}

// TimeOrdered issues version 7 uuids: a millisecond timestamp and a
// sub-millisecond sequence followed by random bits. Ids from one process are
// strictly increasing; ids from different processes collide with negligible
// probability. Safe for concurrent use.
type TimeOrdered struct{}

func (TimeOrdered) New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// Sequence issues prefix-scoped counter ids. Deterministic, for tests and
// replay tooling.
type Sequence struct {
	prefix uint64
	n      atomic.Uint64
}

func NewSequence(prefix uint64) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) New() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], s.prefix)
	binary.BigEndian.PutUint64(id[8:], s.n.Add(1))
	return id
}
