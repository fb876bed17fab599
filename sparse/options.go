// SPDX-License-Identifier: MIT

// Package sparse: functional options for kernel execution.
//
// Design goals:
//   - Deterministic behavior: options only change how work is split across
//     goroutines, never the result bits.
//   - Safe by construction: panic only on nonsensical values (programmer error).
package sparse

import "runtime"

// DefaultMinChunk is the smallest range (rows or columns) handed to one
// goroutine. Smaller problems run on the calling goroutine.
const DefaultMinChunk = 4096

const (
	panicWorkersInvalid  = "sparse: WithWorkers: n must be >= 0"
	panicMinChunkInvalid = "sparse: WithMinChunk: n must be >= 1"
)

// Option configures kernel execution.
type Option func(*options)

type options struct {
	workers  int // 0 means runtime.GOMAXPROCS(0)
	minChunk int // DefaultMinChunk
}

// WithWorkers caps the number of goroutines a kernel may use.
// n == 0 selects runtime.GOMAXPROCS(0); n == 1 forces a serial scan.
// Panics when n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithMinChunk sets the minimum range size per goroutine.
// Panics when n < 1.
func WithMinChunk(n int) Option {
	if n < 1 {
		panic(panicMinChunkInvalid)
	}

	return func(o *options) { o.minChunk = n }
}

// gatherOptions applies setters over defaults and resolves the worker count.
func gatherOptions(user ...Option) options {
	o := options{minChunk: DefaultMinChunk}
	for _, set := range user {
		set(&o) // last-writer-wins
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	return o
}
