// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tpool

import "log/slog"

// DefaultQueueCapacity is the per-worker queue capacity (Q in §3) used
// when WithQueueCapacity is not supplied. The reference implementation
// uses the same value.
const DefaultQueueCapacity = 1 << 16

// DefaultMaxThreads is the worker ceiling (MAX_THREADS in §3) used when
// WithMaxThreads is not supplied.
const DefaultMaxThreads = 512

type config struct {
	queueCapacity int
	maxThreads    int
	policy        Policy
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		queueCapacity: DefaultQueueCapacity,
		maxThreads:    DefaultMaxThreads,
		policy:        RoundRobin,
		logger:        slog.Default(),
	}
}

// Option configures a Pool at construction time.
type Option func(*config)

// WithQueueCapacity sets the per-worker queue capacity, which the queue
// rounds up to the next power of 2. Values below 2 are ignored and the
// current capacity is kept.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		if n >= 2 {
			c.queueCapacity = n
		}
	}
}

// WithMaxThreads sets the worker ceiling enforced by New and
// IncThreads.
func WithMaxThreads(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxThreads = n
		}
	}
}

// WithPolicy sets the initial dispatch policy. Equivalent to calling
// SetPolicy immediately after New, but takes effect before the first
// Submit rather than on the Submit after SetPolicy.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithLogger overrides the pool's logger. A nil logger is ignored; the
// pool falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
