// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

// parker is the quiescence signal of §4.F, reimplemented as a Go
// parking primitive per §9's own invitation to drop the original's
// process-wide OS signal in favor of per-worker parkers. A capacity-1
// channel gives the same "delivery carries the information, not the
// payload" property a signal does: signal is idempotent and merges any
// number of pending wakeups into one armed bit, closing the lost-wakeup
// window between a consumer's predicate check and its sleep.
type parker struct {
	ch chan struct{}
}

func newParker() *parker {
	return &parker{ch: make(chan struct{}, 1)}
}

// signal arms the latch. Non-blocking: a pending signal is not lost if
// the receiver has not yet parked, and redundant signals collapse into
// the same single wakeup.
func (p *parker) signal() {
	select {
	case p.ch <- struct{}{}:
	default:
	}
}

// wait blocks until signal has been called at least once since the
// last wait. Callers re-test their predicate after wait returns:
// spurious wakeups (multiple signals collapsing into one) are expected.
func (p *parker) wait() {
	<-p.ch
}
