package memory

// undoLog collects the inverse of every mutation made while applying a
// linked chain, so a failing chain leaves no trace.
type undoLog []func()

func (u *undoLog) push(f func()) {
	*u = append(*u, f)
}

func (u undoLog) rollback() {
	for i := len(u) - 1; i >= 0; i-- {
		u[i]()
	}
}

type chainCodes[R comparable] struct {
	ok         R
	linkFailed R
	chainOpen  R
}

type failure[R comparable] struct {
	index  int
	result R
}

// applyChains applies n events in order. Consecutive events whose linked flag
// is set belong to the same chain as the next event, and a chain is applied
// whole or not at all: when one event fails, it reports its own result and
// every other event of the chain reports linkFailed. A chain still open at the
// end of the batch is rejected without being applied.
func applyChains[R comparable](n int, linked func(int) bool, apply func(int, *undoLog) R, codes chainCodes[R]) []failure[R] {
	var failures []failure[R]
	for start := 0; start < n; {
		end := start
		for end < n-1 && linked(end) {
			end++
		}

		if linked(end) {
			for i := start; i < end; i++ {
				failures = append(failures, failure[R]{index: i, result: codes.linkFailed})
			}
			failures = append(failures, failure[R]{index: end, result: codes.chainOpen})
			start = end + 1
			continue
		}

		var undo undoLog
		for i := start; i <= end; i++ {
			result := apply(i, &undo)
			if result == codes.ok {
				continue
			}
			undo.rollback()
			for j := start; j <= end; j++ {
				code := codes.linkFailed
				if j == i {
					code = result
				}
				failures = append(failures, failure[R]{index: j, result: code})
			}
			break
		}
		start = end + 1
	}
	return failures
}
