// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tpool provides a fixed-capacity, in-process worker pool with
// per-worker lock-free queues.
//
// Each worker owns a bounded ring buffer of queued work; the controller
// dispatches submissions to workers under a configurable policy and can
// grow or shrink the worker set at runtime without losing queued items.
//
// # Quick Start
//
//	p, err := tpool.New(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Destroy(tpool.Drain)
//
//	err = p.Submit(func(arg any) {
//	    fmt.Println("hello", arg)
//	}, "world")
//	if tpool.IsResourceExhausted(err) {
//	    // the chosen worker's queue was full
//	}
//
// # Dispatch Policies
//
// RoundRobin cycles through workers in order, ignoring load. LeastLoad
// scans every worker's approximate queue length and picks the smallest.
// Both are configurable at construction and can be changed later:
//
//	p, _ := tpool.New(4, tpool.WithPolicy(tpool.LeastLoad))
//	_ = p.SetPolicy(tpool.RoundRobin)
//
// # Resizing
//
// IncThreads spawns new workers and rebalances existing queued work
// toward them, pairing under-average workers with over-average ones in
// index order until no worker is below the integer mean:
//
//	_ = p.IncThreads(2)
//
// DecThreads shuts down and joins the last k workers, then redistributes
// whatever they had left queued to the survivors under the active
// policy. A redistribution that cannot find room for an item is logged,
// not returned as an error — the shrink itself always succeeds:
//
//	p.DecThreads(1)
//
// # Shutdown
//
// Destroy supports two modes. Drain waits for every worker queue to run
// empty before signaling workers to exit — no accepted work is
// abandoned. Drop signals exit immediately, discarding anything still
// queued:
//
//	p.Destroy(tpool.Drain)
//	p.Destroy(tpool.Drop)
//
// Either mode joins every worker goroutine before returning.
//
// # Error Handling
//
// New and IncThreads return [codes.InvalidArgument] (via
// [google.golang.org/grpc/status]) for out-of-range thread counts.
// Submit returns [codes.ResourceExhausted] when the chosen worker's
// queue is full. Use [IsInvalidArgument] and [IsResourceExhausted], or
// status.Code(err) directly, to classify:
//
//	if err := p.Submit(fn, nil); tpool.IsResourceExhausted(err) {
//	    // backpressure: queue full, try another worker or retry later
//	}
//
// Work lost during a shrink's redistribution (no surviving worker had
// room) is not an error value at all; it is logged at Warn level
// through the pool's [log/slog.Logger] because DecThreads itself always
// succeeds.
//
// # Thread Safety
//
// Pool's control methods — Submit, IncThreads, DecThreads, SetPolicy,
// Destroy — are intended to be called from a single controlling
// goroutine; they are not synchronized against each other. Work
// routines submitted via Submit run concurrently with each other and
// with the controller, on their own worker goroutines.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU
// pause instructions in the queue's contended retry path,
// [golang.org/x/sync/errgroup] to join worker goroutines on resize and
// shutdown, [google.golang.org/grpc/codes] and
// [google.golang.org/grpc/status] for error classification, and
// [log/slog] for structured logging.
package tpool
