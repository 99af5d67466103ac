// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package harness runs a fixed battery of end-to-end pool scenarios and
// reports pass/fail in TAP-style lines, mirroring the scenario set and
// output format of the reference implementation's own test harness.
package harness

import (
	"fmt"
	"runtime"

	"code.hybscloud.com/tpool"
)

// workCount matches the reference harness's per-scenario submission
// count.
const workCount = 50

func heavyWork(_ any) {
	for i := 0; i < 20000; i++ {
		for j := 0; j < 2000; j++ {
		}
	}
}

func lightWork(_ any) {}

// Scenario is one named, independently runnable demonstration.
type Scenario struct {
	Name string
	Run  func() error
}

// Scenarios returns the full battery, in the order they should run and
// be reported.
func Scenarios() []Scenario {
	return []Scenario{
		{"one thread in thread pool", scenarioOneThread},
		{"heavy work", scenarioHeavyWork},
		{"light work", scenarioLightWork},
		{"drop remaining work and exit directly", scenarioDropOnDestroy},
		{"increase thread num", scenarioIncThreads},
		{"decrease thread num", scenarioDecThreads},
		{"decrease then increase thread num", scenarioDecThenIncThreads},
		{"set least load policy", scenarioLeastLoad},
	}
}

func submitN(p *tpool.Pool, n int, routine tpool.Routine) error {
	for i := 0; i < n; i++ {
		if err := p.Submit(routine, nil); err != nil {
			return fmt.Errorf("submit %d/%d: %w", i+1, n, err)
		}
	}
	return nil
}

func scenarioOneThread() error {
	p, err := tpool.New(1)
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, heavyWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}

func scenarioHeavyWork() error {
	p, err := tpool.New(runtime.NumCPU())
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, heavyWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}

func scenarioLightWork() error {
	p, err := tpool.New(runtime.NumCPU())
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, lightWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}

func scenarioDropOnDestroy() error {
	p, err := tpool.New(runtime.NumCPU())
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, heavyWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drop)
	return nil
}

func scenarioIncThreads() error {
	// This scenario submits a much larger batch than the others, so the
	// per-worker queue is sized generously up front: at default capacity
	// five workers could not hold workCount<<13 items even transiently,
	// and ResourceExhausted here would reflect a sizing choice rather
	// than a real property of the pool.
	p, err := tpool.New(5, tpool.WithQueueCapacity(1<<20))
	if err != nil {
		return err
	}
	if err := submitN(p, workCount<<13, lightWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	if err := p.IncThreads(5); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}

func scenarioDecThreads() error {
	p, err := tpool.New(12)
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, lightWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.DecThreads(6)
	if err := submitN(p, workCount, lightWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}

// scenarioDecThenIncThreads shrinks the pool and then grows it back,
// the sequence that once let IncThreads return before every new worker
// had actually registered (the registration counter is cumulative and
// is not rewound by DecThreads). NumThreads() alone can't catch that
// regression, so this submits workCount more items after growing back
// and requires every one of them to complete.
func scenarioDecThenIncThreads() error {
	p, err := tpool.New(12)
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, lightWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.DecThreads(6)
	if err := p.IncThreads(6); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	if p.NumThreads() != 12 {
		p.Destroy(tpool.Drop)
		return fmt.Errorf("NumThreads after dec(6)+inc(6) = %d, want 12", p.NumThreads())
	}
	if err := submitN(p, workCount, lightWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}

func scenarioLeastLoad() error {
	p, err := tpool.New(runtime.NumCPU(), tpool.WithPolicy(tpool.LeastLoad))
	if err != nil {
		return err
	}
	if err := submitN(p, workCount, heavyWork); err != nil {
		p.Destroy(tpool.Drop)
		return err
	}
	p.Destroy(tpool.Drain)
	return nil
}
