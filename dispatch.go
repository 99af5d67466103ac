// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

// selectWorker chooses a target worker for the next submission under
// the pool's active policy (§4.D). Callers hold sole access to the
// controller thread; there is no internal locking here by design (see
// doc.go's Thread Safety section).
func (p *Pool) selectWorker() *worker {
	switch p.policy {
	case LeastLoad:
		return p.leastLoadWorker()
	default:
		return p.roundRobinWorker()
	}
}

// roundRobinWorker advances a controller-private cursor modulo the
// current worker count. The cursor persists across resize, continuing
// from its previous value taken modulo the new size, per §4.D.
func (p *Pool) roundRobinWorker() *worker {
	p.rrCursor = (p.rrCursor + 1) % len(p.workers)
	return p.workers[p.rrCursor]
}

// leastLoadWorker scans all worker queues and returns the one with the
// smallest observed length, ties broken by smallest index. The scan is
// approximate: workers concurrently mutate their own queue's out
// counter, so this never blocks and never claims exact balance.
func (p *Pool) leastLoadWorker() *worker {
	best := p.workers[0]
	bestLen := best.queue.length()
	for _, w := range p.workers[1:] {
		if l := w.queue.length(); l < bestLen {
			best, bestLen = w, l
		}
	}
	return best
}
