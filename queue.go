// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// workQueue is a bounded, single-producer, CAS-multi-consumer-capable
// ring buffer of work items. It is the per-worker queue of §4.B: in the
// steady state it has exactly one consumer (the owning worker), but
// during grow-path migration the controller dequeues from it
// concurrently with the owner. Both roles are served by the same
// dequeue, which is a sequence-stamped CAS claim: uncontended, it costs
// one atomic CAS; contended, it resolves correctly by retrying.
//
// n physical slots for capacity n. The producer is always the pool
// controller/dispatcher; it never runs concurrently with itself, so its
// side needs no CAS.
type workQueue struct {
	_        pad
	out      atomix.Uint64 // next slot to claim; CAS-updated by owner and migrators
	_        pad
	in       atomix.Uint64 // next slot to write; single writer (the controller)
	_        pad
	slots    []queueSlot
	mask     uint64
	capacity uint64
}

type queueSlot struct {
	seq  atomix.Uint64
	item workItem
	_    padShort
}

func newWorkQueue(capacity int) *workQueue {
	n := uint64(roundToPow2(capacity))
	q := &workQueue{
		slots:    make([]queueSlot, n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint64(0); i < n; i++ {
		q.slots[i].seq.StoreRelaxed(i)
	}
	return q
}

// enqueue adds an item (single producer only). Returns iox.ErrWouldBlock
// if full — the queue-level would-block signal; Submit translates this
// into the pool-level codes.ResourceExhausted at the package boundary.
func (q *workQueue) enqueue(item workItem) error {
	in := q.in.LoadRelaxed()
	slot := &q.slots[in&q.mask]
	seq := slot.seq.LoadAcquire()

	if seq != in {
		return iox.ErrWouldBlock
	}

	slot.item = item
	slot.seq.StoreRelease(in + 1)
	q.in.StoreRelease(in + 1)
	return nil
}

// dequeue claims and returns the next item. Safe for the owning worker
// in the steady state and for the controller during migration. Returns
// iox.ErrWouldBlock if the queue is currently empty.
func (q *workQueue) dequeue() (workItem, error) {
	sw := spin.Wait{}
	for {
		out := q.out.LoadAcquire()
		in := q.in.LoadAcquire()

		if out >= in {
			return workItem{}, iox.ErrWouldBlock
		}

		slot := &q.slots[out&q.mask]
		seq := slot.seq.LoadAcquire()

		if seq == out+1 {
			if q.out.CompareAndSwapAcqRel(out, out+1) {
				item := slot.item
				slot.item = workItem{}
				slot.seq.StoreRelease(out + q.capacity)
				return item, nil
			}
		} else if seq < out+1 {
			return workItem{}, iox.ErrWouldBlock
		}
		sw.Once()
	}
}

// length reports the approximate live length (in - out). Racy by
// design: callers (dispatcher, rebalancer) tolerate a stale snapshot.
func (q *workQueue) length() int64 {
	return int64(q.in.LoadAcquire() - q.out.LoadAcquire())
}

// hasWork reports whether the queue is non-empty, approximately.
func (q *workQueue) hasWork() bool {
	return q.in.LoadAcquire() != q.out.LoadAcquire()
}

// isFull reports whether the queue is at capacity, approximately. Used
// by migration to avoid dequeuing an item it cannot re-place.
func (q *workQueue) isFull() bool {
	return q.in.LoadAcquire()-q.out.LoadAcquire() >= q.capacity
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte
