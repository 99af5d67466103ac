// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

// Routine is an opaque unit of work. The pool does not inspect, copy, or
// schedule by arg; it is passed through unchanged to the single call.
type Routine func(arg any)

// workItem binds a routine to its argument. Produced by Submit, consumed
// exactly once by some worker, never retained afterward.
type workItem struct {
	routine Routine
	arg     any
}

// Policy selects how Submit chooses a target worker.
type Policy int

const (
	// RoundRobin advances a controller-private cursor modulo the
	// current worker count. This is the default.
	RoundRobin Policy = iota
	// LeastLoad scans all worker queues and targets the one with the
	// smallest observed length, ties broken by smallest index.
	LeastLoad
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case RoundRobin:
		return "round_robin"
	case LeastLoad:
		return "least_load"
	default:
		return "unknown"
	}
}

// ShutdownMode selects how Destroy treats queued-but-unstarted work.
type ShutdownMode int

const (
	// Drain waits for every worker queue to empty before shutting
	// down workers.
	Drain ShutdownMode = iota
	// Drop shuts down workers immediately, abandoning any work that
	// has not yet started executing.
	Drop
)

// String implements fmt.Stringer.
func (m ShutdownMode) String() string {
	switch m {
	case Drain:
		return "drain"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}
