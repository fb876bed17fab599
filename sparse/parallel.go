// SPDX-License-Identifier: MIT

package sparse

import "golang.org/x/sync/errgroup"

// forRanges splits [0, n) into contiguous ranges and runs fn on each,
// returning once every range is done. Ranges are disjoint, so fn may write
// its own slice of the output without locking. With one worker (or n below
// two chunks) fn runs inline on [0, n).
func forRanges(n int, o options, fn func(lo, hi int)) {
	workers := o.workers
	if limit := n / o.minChunk; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // range kernels never fail
}
