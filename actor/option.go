/*
 * MIT License
 *
 * Copyright (c) 2026 ThreadServ Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"time"

	"github.com/threadserv/threadserv/internal/workerpool"
	"github.com/threadserv/threadserv/log"
)

const (
	// DefaultMailboxCapacity bounds each actor's mailbox when no capacity
	// option is given.
	DefaultMailboxCapacity = 500

	// DefaultPollInterval is the idle back-off a server loop waits after
	// an empty mailbox poll.
	DefaultPollInterval = 10 * time.Millisecond
)

// config collects the tunables shared by hubs, servers and systems.
type config struct {
	capacity     int
	pollInterval time.Duration
	poolSize     int
	logger       log.Logger
	pool         *workerpool.WorkerPool
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		capacity:     DefaultMailboxCapacity,
		pollInterval: DefaultPollInterval,
		logger:       log.DefaultLogger,
	}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// Option configures a ChannelHub, Server or System at creation time.
type Option interface {
	// Apply sets the option value on the configuration.
	Apply(cfg *config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(cfg *config)

// Apply applies the option.
func (f OptionFunc) Apply(cfg *config) {
	f(cfg)
}

// WithMailboxCapacity bounds every actor mailbox to the given number of
// envelopes. Values below one fall back to the default.
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(cfg *config) {
		if capacity > 0 {
			cfg.capacity = capacity
		}
	})
}

// WithPollInterval sets the idle back-off between empty mailbox polls.
// Non-positive values fall back to the default.
func WithPollInterval(interval time.Duration) Option {
	return OptionFunc(func(cfg *config) {
		if interval > 0 {
			cfg.pollInterval = interval
		}
	})
}

// WithWorkerPoolSize sets the number of workers running asynchronous
// handlers. Zero means one worker per logical CPU.
func WithWorkerPoolSize(size int) Option {
	return OptionFunc(func(cfg *config) {
		if size > 0 {
			cfg.poolSize = size
		}
	})
}

// WithLogger sets the logger used by the component and everything it
// constructs.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// withWorkerPool injects a shared, already managed worker pool. Used by
// the system so all of its servers dispatch async handlers to one pool.
func withWorkerPool(pool *workerpool.WorkerPool) Option {
	return OptionFunc(func(cfg *config) {
		cfg.pool = pool
	})
}

func (c *config) workerPoolOptions() []workerpool.Option {
	opts := []workerpool.Option{
		workerpool.WithPanicHandler(func(recovered any) {
			c.logger.Errorf("async handler panicked: %v", recovered)
		}),
	}
	if c.poolSize > 0 {
		opts = append(opts, workerpool.WithSize(c.poolSize))
	}
	return opts
}
