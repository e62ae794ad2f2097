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
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/threadserv/threadserv/errors"
	"github.com/threadserv/threadserv/internal/syncmap"
	"github.com/threadserv/threadserv/internal/types"
	"github.com/threadserv/threadserv/internal/workerpool"
	"github.com/threadserv/threadserv/log"
)

// System owns the runtime of a validated registry: it builds the channel
// hub, constructs one server per actor, spawns each server loop on its
// own OS thread and keeps the handles in one place instead of per-actor
// globals. It is the only sanctioned way to start and stop the whole
// actor population.
type System struct {
	id       string
	registry *Registry
	opts     []Option
	cfg      *config
	logger   log.Logger

	hub     *ChannelHub
	pool    *workerpool.WorkerPool
	servers *syncmap.SyncMap[string, *Server]
	wg      sync.WaitGroup
	started *atomic.Bool
}

// NewSystem creates a system for the given registry. Nothing is
// validated or spawned until Start.
func NewSystem(registry *Registry, opts ...Option) *System {
	cfg := newConfig(opts...)
	return &System{
		id:       uuid.NewString(),
		registry: registry,
		opts:     opts,
		cfg:      cfg,
		logger:   cfg.logger,
		servers:  syncmap.New[string, *Server](),
		started:  atomic.NewBool(false),
	}
}

// Start validates every registered actor, then builds the hub and spawns
// one server loop per actor. Any validation failure is a hard abort: no
// thread is spawned and the error reports every violation. Starting a
// running system fails with ErrSystemAlreadyStarted.
func (x *System) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !x.started.CompareAndSwap(false, true) {
		return gerrors.ErrSystemAlreadyStarted
	}

	if err := x.registry.ValidateAll(); err != nil {
		x.started.Store(false)
		x.logger.Errorf("system=(%s) refusing to start: %v", x.id, err)
		return err
	}

	x.pool = workerpool.New(x.cfg.workerPoolOptions()...)
	x.pool.Start()
	x.hub = NewChannelHub(x.registry, x.opts...)

	serverOpts := append([]Option{withWorkerPool(x.pool)}, x.opts...)
	for _, name := range x.registry.Actors() {
		server, err := NewServer(x.registry, name, x.hub, serverOpts...)
		if err != nil {
			// unreachable after ValidateAll; abort defensively
			x.started.Store(false)
			return err
		}
		x.servers.Set(name, server)
	}

	x.servers.Range(func(name string, server *Server) {
		x.wg.Add(1)
		go func() {
			defer x.wg.Done()
			if err := server.Run(); err != nil {
				x.logger.Errorf("system=(%s) actor=(%s) loop ended with error: %v", x.id, name, err)
			}
		}()
	})

	x.logger.Infof("system=(%s) started with (%d) actors", x.id, x.servers.Len())
	return nil
}

// Stop shuts the system down in a fixed order: send kill to every actor,
// wait for every loop to finish, then destroy the hub. When ctx expires
// before the loops finish, the hub is destroyed anyway to unblock them
// and the context error is reported.
func (x *System) Stop(ctx context.Context) error {
	if !x.started.CompareAndSwap(true, false) {
		return gerrors.ErrSystemNotStarted
	}
	x.logger.Infof("system=(%s) stopping", x.id)

	done := make(chan types.Unit)
	killErrCh := make(chan error, 1)
	go func() {
		eg := new(errgroup.Group)
		x.servers.Range(func(name string, _ *Server) {
			eg.Go(func() error {
				return x.hub.SendKill(name)
			})
		})
		killErrCh <- eg.Wait()
		x.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		err := multierr.Combine(<-killErrCh, x.hub.Destroy())
		x.pool.Stop()
		x.logger.Infof("system=(%s) stopped", x.id)
		return err
	case <-ctx.Done():
		// force the teardown: disposing the mailboxes unblocks both the
		// kill senders and any loop still polling, so the remaining
		// servers drain on their own. The pool is stopped once they do.
		destroyErr := x.hub.Destroy()
		go func() {
			<-done
			x.pool.Stop()
		}()
		x.logger.Warnf("system=(%s) stop aborted by context: %v", x.id, ctx.Err())
		return multierr.Combine(ctx.Err(), destroyErr)
	}
}

// Kill requests graceful shutdown of a single actor without stopping the
// rest of the system.
func (x *System) Kill(actor string) error {
	if !x.started.Load() {
		return gerrors.ErrSystemNotStarted
	}
	return x.hub.SendKill(actor)
}

// Hub returns the channel hub, the handle external threads use to send
// messages. It is nil until Start succeeds.
func (x *System) Hub() *ChannelHub {
	return x.hub
}

// Running reports whether the named actor's loop is currently in the
// Running state.
func (x *System) Running(actor string) bool {
	server, ok := x.servers.Get(actor)
	return ok && server.State() == Running
}

// Server returns the handle of the named actor's server, if the system
// built one.
func (x *System) Server(actor string) (*Server, bool) {
	return x.servers.Get(actor)
}
