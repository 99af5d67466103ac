// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import "testing"

func newTestPool(t *testing.T, n int, policy Policy) *Pool {
	t.Helper()
	p, err := New(n, WithPolicy(policy), WithQueueCapacity(16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { p.Destroy(Drop) })
	return p
}

func TestRoundRobinCyclesWorkers(t *testing.T) {
	p := newTestPool(t, 3, RoundRobin)

	first := p.roundRobinWorker().id
	seenIDs := map[int]bool{first: true}
	for i := 0; i < 2; i++ {
		seenIDs[p.roundRobinWorker().id] = true
	}
	if len(seenIDs) != 3 {
		t.Fatalf("round robin visited %d distinct workers, want 3", len(seenIDs))
	}

	// Cursor continues rather than resetting: the 4th pick repeats the
	// cycle from the 1st.
	fourth := p.roundRobinWorker().id
	if fourth != first {
		t.Fatalf("4th pick = %d, want repeat of 1st pick %d", fourth, first)
	}
}

func TestLeastLoadPicksShortestQueue(t *testing.T) {
	p := newTestPool(t, 3, LeastLoad)

	for _, w := range p.workers {
		w.shutdown.StoreRelease(true)
	}
	for _, w := range p.workers {
		w.join()
	}
	p.workers[0].shutdown.StoreRelease(false)
	p.workers[1].shutdown.StoreRelease(false)
	p.workers[2].shutdown.StoreRelease(false)

	mustEnqueue := func(w *worker, n int) {
		for i := 0; i < n; i++ {
			if err := w.queue.enqueue(workItem{}); err != nil {
				t.Fatalf("enqueue: %v", err)
			}
		}
	}
	mustEnqueue(p.workers[0], 5)
	mustEnqueue(p.workers[1], 1)
	mustEnqueue(p.workers[2], 3)

	got := p.leastLoadWorker()
	if got != p.workers[1] {
		t.Fatalf("leastLoadWorker chose worker %d, want worker %d", got.id, p.workers[1].id)
	}
}

func TestSelectWorkerDispatchesByPolicy(t *testing.T) {
	p := newTestPool(t, 2, RoundRobin)
	if p.selectWorker() == nil {
		t.Fatal("selectWorker returned nil under RoundRobin")
	}

	if err := p.SetPolicy(LeastLoad); err != nil {
		t.Fatalf("SetPolicy: %v", err)
	}
	if p.selectWorker() == nil {
		t.Fatal("selectWorker returned nil under LeastLoad")
	}

	if err := p.SetPolicy(Policy(99)); !IsInvalidArgument(err) {
		t.Fatalf("SetPolicy(invalid) = %v, want InvalidArgument", err)
	}
}
