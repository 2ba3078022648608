package ledger

import "iter"

// Records is a single-pass cursor over rows read from the store. Rows are
// converted as they are consumed.
type Records[T any] struct {
	n   int
	at  func(int) T
	pos int
	cur T
}

func newRecords[R, T any](rows []R, convert func(R) T) *Records[T] {
	return &Records[T]{
		n:  len(rows),
		at: func(i int) T { return convert(rows[i]) },
	}
}

// Next advances to the next row and reports whether there was one.
func (r *Records[T]) Next() bool {
	if r.pos >= r.n {
		return false
	}
	r.cur = r.at(r.pos)
	r.pos++
	return true
}

// Value returns the row Next advanced to.
func (r *Records[T]) Value() T { return r.cur }

// Len is the total number of rows, consumed or not.
func (r *Records[T]) Len() int { return r.n }

// All yields the rows not consumed yet.
func (r *Records[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for r.Next() {
			if !yield(r.cur) {
				return
			}
		}
	}
}

// Collect drains the remaining rows into a slice.
func (r *Records[T]) Collect() []T {
	out := make([]T, 0, r.n-r.pos)
	for r.Next() {
		out = append(out, r.cur)
	}
	return out
}
