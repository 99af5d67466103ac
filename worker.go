// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import "code.hybscloud.com/atomix"

// worker is a long-lived goroutine owning one queue (§4.C). It registers
// with the pool on start, then loops dequeue/execute until shutdown is
// observed, at which point it exits without draining any work still
// queued — the controller reclaims that work via migration.
type worker struct {
	id        int
	queue     *workQueue
	parker    *parker
	shutdown  atomix.Bool
	completed atomix.Uint64 // debug counter: items executed
	done      chan struct{} // closed when run returns; substitutes pthread_join
	pool      *Pool
}

func newWorker(id int, queueCapacity int, pool *Pool) *worker {
	return &worker{
		id:     id,
		queue:  newWorkQueue(queueCapacity),
		parker: newParker(),
		done:   make(chan struct{}),
		pool:   pool,
	}
}

// run is the worker's entire lifetime. It is launched exactly once, in
// its own goroutine, by the controller's spawn.
func (w *worker) run() {
	defer close(w.done)

	w.pool.registerWorker()
	w.pool.logger().Debug("worker started", "worker", w.id)

	for {
		for !w.queue.hasWork() && !w.shutdown.LoadAcquire() {
			w.parker.wait()
		}
		if w.shutdown.LoadAcquire() {
			w.pool.logger().Debug("worker exiting", "worker", w.id, "completed", w.completed.LoadRelaxed())
			return
		}

		item, err := w.queue.dequeue()
		if err != nil {
			// Lost the race for the last visible item (e.g. a
			// concurrent migration claimed it first); loop and
			// re-test the predicate.
			continue
		}

		item.routine(item.arg)
		w.completed.AddAcqRel(1)

		if !w.queue.hasWork() {
			w.pool.wakeController()
		}
	}
}

// join blocks until the worker's goroutine has returned.
func (w *worker) join() {
	<-w.done
}
