package storage

import (
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"

	"github.com/google/uuid"
)

// Uint128 is an unsigned 128-bit integer in the store's little-endian wire layout.
type Uint128 [16]byte

// AmountMax is the largest representable amount. A post entry carrying it
// posts the full amount of the pending transfer it resolves.
var AmountMax = Uint128{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

var ErrOutOfRange = errors.New("value does not fit in an unsigned 128-bit integer")

func ToUint128(value uint64) Uint128 {
	var u Uint128
	binary.LittleEndian.PutUint64(u[:8], value)
	return u
}

// UUIDToUint128 reads the uuid as a big-endian number, so time-ordered uuids
// stay ordered as store keys.
func UUIDToUint128(id uuid.UUID) Uint128 {
	var u Uint128
	for i := range id {
		u[15-i] = id[i]
	}
	return u
}

// BigToUint128 converts a non-negative integer of at most 128 bits.
func BigToUint128(value *big.Int) (Uint128, error) {
	var u Uint128
	if value == nil {
		return u, nil
	}
	if value.Sign() < 0 || value.BitLen() > 128 {
		return u, ErrOutOfRange
	}
	var be [16]byte
	value.FillBytes(be[:])
	for i := range be {
		u[15-i] = be[i]
	}
	return u, nil
}

func (u Uint128) UUID() uuid.UUID {
	var id uuid.UUID
	for i := range u {
		id[i] = u[15-i]
	}
	return id
}

func (u Uint128) Big() *big.Int {
	var be [16]byte
	for i := range u {
		be[15-i] = u[i]
	}
	return new(big.Int).SetBytes(be[:])
}

func (u Uint128) IsZero() bool {
	return u == Uint128{}
}

func (u Uint128) String() string {
	return u.Big().String()
}

func (u Uint128) halves() (lo, hi uint64) {
	return binary.LittleEndian.Uint64(u[:8]), binary.LittleEndian.Uint64(u[8:])
}

func fromHalves(lo, hi uint64) Uint128 {
	var u Uint128
	binary.LittleEndian.PutUint64(u[:8], lo)
	binary.LittleEndian.PutUint64(u[8:], hi)
	return u
}

// Cmp returns -1, 0 or +1 as u is less than, equal to or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	ulo, uhi := u.halves()
	vlo, vhi := v.halves()
	switch {
	case uhi < vhi:
		return -1
	case uhi > vhi:
		return 1
	case ulo < vlo:
		return -1
	case ulo > vlo:
		return 1
	}
	return 0
}

// Add returns u+v and whether the sum overflowed.
func (u Uint128) Add(v Uint128) (Uint128, bool) {
	ulo, uhi := u.halves()
	vlo, vhi := v.halves()
	lo, carry := bits.Add64(ulo, vlo, 0)
	hi, carry := bits.Add64(uhi, vhi, carry)
	return fromHalves(lo, hi), carry != 0
}

// Sub returns u-v and whether the difference underflowed.
func (u Uint128) Sub(v Uint128) (Uint128, bool) {
	ulo, uhi := u.halves()
	vlo, vhi := v.halves()
	lo, borrow := bits.Sub64(ulo, vlo, 0)
	hi, borrow := bits.Sub64(uhi, vhi, borrow)
	return fromHalves(lo, hi), borrow != 0
}
