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

// Package workerpool runs asynchronous message handlers off the server
// loop's thread. Dispatch is fire-and-forget: the submitter never observes
// a task's outcome, and completion order is unspecified.
package workerpool

import (
	"runtime"
	"sync"
)

// PanicHandler is invoked with the recovered value when a task panics.
// A panicking task is isolated to its worker; the pool keeps serving.
type PanicHandler func(recovered any)

// WorkerPool is a fixed-size pool of task-running goroutines fed by a
// bounded queue. Submit blocks when the queue is full, which bounds the
// backlog of scheduled-but-unstarted handlers.
type WorkerPool struct {
	size     int
	queueCap int
	onPanic  PanicHandler

	mu      sync.RWMutex
	tasks   chan func()
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// New creates a pool. By default it runs GOMAXPROCS workers behind a
// queue of 1024 tasks and discards panics silently; use the options to
// change any of that.
func New(opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		size:     runtime.GOMAXPROCS(0),
		queueCap: 1024,
	}
	for _, opt := range opts {
		opt.Apply(pool)
	}
	return pool
}

// Start spawns the workers. Starting a running pool is a no-op; a stopped
// pool cannot be restarted.
func (p *WorkerPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	p.tasks = make(chan func(), p.queueCap)
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Submit schedules a task and reports whether it was accepted. It returns
// false when the pool is not running. Submit blocks while the task queue
// is full.
func (p *WorkerPool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.started || p.stopped {
		return false
	}
	p.tasks <- task
	return true
}

// Stop drains the queue and waits for in-flight tasks to finish. Every
// task accepted before Stop is executed.
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

// Running reports whether the pool currently accepts tasks.
func (p *WorkerPool) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.started && !p.stopped
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.size
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *WorkerPool) run(task func()) {
	defer func() {
		if recovered := recover(); recovered != nil && p.onPanic != nil {
			p.onPanic(recovered)
		}
	}()
	task()
}
