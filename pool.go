// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import (
	"log/slog"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"golang.org/x/sync/errgroup"
)

// Pool is the controller of §4.E: the thread that calls New is the sole
// caller of Submit, IncThreads, DecThreads, SetPolicy, and Destroy.
// These operations are not synchronized against each other or against
// themselves — the pool is single-owner by design, exactly as §5
// specifies. Nothing here takes an internal mutex; correctness under
// concurrent control calls is the caller's responsibility.
type Pool struct {
	workers    []*worker
	rrCursor   int
	policy     Policy
	queueCap   int
	maxThreads int
	log        *slog.Logger

	registered       atomix.Uint64 // cumulative worker-start registrations
	controllerParker *parker       // workers wake this when they empty their queue
	nextID           int           // monotonic, never reused
}

// New creates a pool of n workers (§6 init). n must be in [1,
// MaxThreads]; MaxThreads defaults to DefaultMaxThreads and can be
// overridden with WithMaxThreads.
func New(n int, opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if n < 1 || n > cfg.maxThreads {
		return nil, invalidArgumentf("n=%d out of range [1,%d]", n, cfg.maxThreads)
	}

	p := &Pool{
		policy:           cfg.policy,
		queueCap:         cfg.queueCapacity,
		maxThreads:       cfg.maxThreads,
		log:              cfg.logger,
		controllerParker: newParker(),
	}
	p.spawn(n)
	p.awaitRegistration(uint64(n))
	return p, nil
}

func (p *Pool) logger() *slog.Logger {
	if p.log == nil {
		return slog.Default()
	}
	return p.log
}

// spawn launches k new worker goroutines, appending them to p.workers.
func (p *Pool) spawn(k int) {
	for i := 0; i < k; i++ {
		w := newWorker(p.nextID, p.queueCap, p)
		p.nextID++
		p.workers = append(p.workers, w)
		go w.run()
	}
}

// registerWorker is called by a worker's run goroutine exactly once, on
// start. It is the sole writer-side of the registration counter.
func (p *Pool) registerWorker() {
	p.registered.AddAcqRel(1)
	p.controllerParker.signal()
}

// wakeController is called by a worker after it empties its queue. It
// is the sole mechanism by which the controller detects quiescence.
func (p *Pool) wakeController() {
	p.controllerParker.signal()
}

// awaitRegistration blocks until at least target workers have
// registered (§5: "init/inc_threads do not return until every requested
// worker has incremented the registration counter").
func (p *Pool) awaitRegistration(target uint64) {
	for p.registered.LoadAcquire() < target {
		p.controllerParker.wait()
	}
}

// Submit enqueues a unit of work on the worker chosen by the active
// policy (§6 add_work). Returns ResourceExhausted if that worker's
// queue is full; Submit does not retry on another worker — the policy
// is authoritative for this submission.
func (p *Pool) Submit(routine Routine, arg any) error {
	w := p.selectWorker()

	if err := w.queue.enqueue(workItem{routine: routine, arg: arg}); err != nil {
		if err == iox.ErrWouldBlock {
			return resourceExhaustedf("worker %d queue full", w.id)
		}
		return err
	}
	// Signal after publishing, every time: the parker coalesces redundant
	// wakeups, and a worker that emptied its queue since any earlier
	// length check may already be parked.
	w.parker.signal()
	return nil
}

// SetPolicy changes the active dispatch policy. Takes effect on the
// very next Submit.
func (p *Pool) SetPolicy(policy Policy) error {
	if policy != RoundRobin && policy != LeastLoad {
		return invalidArgumentf("unknown policy %d", int(policy))
	}
	p.policy = policy
	return nil
}

// NumThreads returns the current worker count.
func (p *Pool) NumThreads() int {
	return len(p.workers)
}

// CompletedCount sums each current worker's debug counter of executed
// items, for the testable property in §8 ("the pool's internal debug
// counts must sum to the total submitted"). Counters of workers removed
// by DecThreads or Destroy are not kept, so after a shrink or a Destroy
// the sum does not include the items those workers executed.
func (p *Pool) CompletedCount() uint64 {
	var total uint64
	for _, w := range p.workers {
		total += w.completed.LoadRelaxed()
	}
	return total
}

// IncThreads spawns k new workers, waits for them to register, then
// rebalances queued work toward the new, larger worker set (§6
// inc_threads, §4.E rebalance algorithm).
func (p *Pool) IncThreads(k int) error {
	if k <= 0 {
		return invalidArgumentf("k=%d must be > 0", k)
	}
	newTotal := len(p.workers) + k
	if newTotal > p.maxThreads {
		return invalidArgumentf("inc_threads to %d exceeds max threads %d", newTotal, p.maxThreads)
	}

	// registered is cumulative and never decremented by DecThreads (see
	// its field comment), so it can already be ahead of len(p.workers)
	// after a prior shrink. The wait target must be rebased off its
	// current value, not derived from the live worker count, or
	// awaitRegistration can return after as few as one of the k new
	// workers has actually started.
	base := p.registered.LoadAcquire()
	p.spawn(k)
	p.awaitRegistration(base + uint64(k))
	p.rebalance()
	return nil
}

// rebalance implements the grow-path algorithm of §4.E: compute each
// worker's observed length, pair the first (lowest-index) under-average
// queue with the first over-average one, and transfer the smaller of
// their deltas via concurrent dequeue/enqueue, until no under-average
// queue remains. The mean is an integer mean, so the remainder of the
// division stays on the queues that were over it. A hard iteration cap bounds the loop against a pairing that
// cannot make progress (e.g. every candidate target is already full).
func (p *Pool) rebalance() {
	n := len(p.workers)
	if n == 0 {
		return
	}

	lengths := make([]int64, n)
	var sum int64
	for i, w := range p.workers {
		lengths[i] = w.queue.length()
		sum += lengths[i]
	}
	if sum == 0 {
		return
	}

	avg := sum / int64(n)
	deltas := make([]int64, n)
	for i, l := range lengths {
		deltas[i] = l - avg
	}

	for pass := 0; pass < n*2; pass++ {
		shortIdx := -1
		for i, d := range deltas {
			if d < 0 {
				shortIdx = i
				break
			}
		}
		if shortIdx == -1 {
			return
		}

		longIdx := -1
		for i, d := range deltas {
			if d > 0 {
				longIdx = i
				break
			}
		}
		if longIdx == -1 {
			return
		}

		want := -deltas[shortIdx]
		if deltas[longIdx] < want {
			want = deltas[longIdx]
		}

		moved := p.migrate(p.workers[longIdx], p.workers[shortIdx], want)
		deltas[shortIdx] += moved
		deltas[longIdx] -= moved
		if moved == 0 {
			// This pair cannot make progress (target consistently
			// full); mark the source as settled so the loop moves
			// on to a different pairing instead of spinning on it.
			deltas[longIdx] = 0
		}
	}
}

// migrate moves up to amount items from src to dst via dst's queue's
// single-producer enqueue and src's queue's CAS-capable dequeue. It
// pre-checks dst for room so a dequeued item is not stranded (§4.E:
// "migration may under-balance but must not corrupt"); if dst still
// rejects an item the producer already claimed from src (a genuine
// race), the item is logged and dropped rather than silently lost.
func (p *Pool) migrate(src, dst *worker, amount int64) int64 {
	var moved int64
	for moved < amount {
		if dst.queue.isFull() {
			break
		}
		item, err := src.queue.dequeue()
		if err != nil {
			break
		}
		if err := dst.queue.enqueue(item); err != nil {
			p.logger().Warn("lost work item during rebalance", "from", src.id, "to", dst.id)
			break
		}
		dst.parker.signal()
		moved++
	}
	return moved
}

// DecThreads marks the last k workers shut down, joins them, then
// migrates any residual queued items to surviving workers via the
// active policy (§6 dec_threads). k is clamped to the current worker
// count. Never fails; a migration that cannot place an item is logged
// as LostWork and the item is dropped — the operation still succeeds
// because the departing workers are, regardless, gone.
func (p *Pool) DecThreads(k int) {
	if k <= 0 {
		return
	}
	if k > len(p.workers) {
		k = len(p.workers)
	}
	if k == 0 {
		return
	}

	split := len(p.workers) - k
	departing := p.workers[split:]
	survivors := p.workers[:split]

	for _, w := range departing {
		w.shutdown.StoreRelease(true)
		w.parker.signal()
	}

	var eg errgroup.Group
	for _, w := range departing {
		w := w
		eg.Go(func() error {
			w.join()
			return nil
		})
	}
	_ = eg.Wait()

	p.workers = survivors
	if len(p.workers) > 0 {
		p.rrCursor %= len(p.workers)
	} else {
		p.rrCursor = 0
	}

	// Departing workers are joined, so no consumer remains on their
	// queues: plain (non-concurrent) dequeue is safe here, per §9's
	// "Migration under concurrent consumers" note.
	for _, dw := range departing {
		for {
			item, err := dw.queue.dequeue()
			if err != nil {
				break
			}
			if len(p.workers) == 0 {
				p.logger().Warn("lost work item: no surviving workers", "from", dw.id)
				continue
			}
			w := p.selectWorker()
			if err := w.queue.enqueue(item); err != nil {
				p.logger().Warn("lost work item during shrink", "from", dw.id, "to", w.id)
				continue
			}
			w.parker.signal()
		}
	}
}

// Destroy shuts the pool down (§6). Drain blocks until every worker
// queue is empty before signaling shutdown; Drop signals shutdown
// immediately, abandoning queued-but-unstarted items. Either way, every
// worker is joined before Destroy returns.
func (p *Pool) Destroy(mode ShutdownMode) {
	if mode == Drain {
		for !p.allQueuesEmpty() {
			p.controllerParker.wait()
		}
	}

	for _, w := range p.workers {
		w.shutdown.StoreRelease(true)
		w.parker.signal()
	}

	var eg errgroup.Group
	for _, w := range p.workers {
		w := w
		eg.Go(func() error {
			w.join()
			return nil
		})
	}
	_ = eg.Wait()

	p.workers = nil
}

func (p *Pool) allQueuesEmpty() bool {
	for _, w := range p.workers {
		if w.queue.hasWork() {
			return false
		}
	}
	return true
}
