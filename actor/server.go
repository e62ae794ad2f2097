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
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	gerrors "github.com/threadserv/threadserv/errors"
	"github.com/threadserv/threadserv/internal/ticker"
	"github.com/threadserv/threadserv/internal/workerpool"
	"github.com/threadserv/threadserv/log"
)

// State is the phase a server loop is in.
type State int32

const (
	// Starting runs the startup lifecycle events; no message has been
	// polled yet.
	Starting State = iota
	// Running polls the mailbox and routes envelopes in FIFO order.
	Running
	// Draining is entered the instant a kill envelope is routed; polling
	// has ceased and queued messages behind the kill are left to be
	// discarded.
	Draining
	// Stopped runs the shutdown lifecycle events; the loop has returned
	// or is about to.
	Stopped
)

var stateNames = map[State]string{
	Starting: "starting",
	Running:  "running",
	Draining: "draining",
	Stopped:  "stopped",
}

// String returns the textual representation of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Server is the runtime state bound to one actor thread: its hub
// reference, its router, its lifecycle event sequences and its poll
// interval. A server is built from validated registry data and runs its
// loop exactly once.
type Server struct {
	id           string
	name         string
	hub          *ChannelHub
	router       *Router
	startup      []LifecycleEvent
	shutdown     []LifecycleEvent
	pollInterval time.Duration
	state        *atomic.Int32
	logger       log.Logger
	pool         *workerpool.WorkerPool
	ownsPool     bool
}

// NewServer constructs the runnable unit for one actor from registry
// data. The actor's configuration is validated first: an actor with any
// missing handler must not be allowed to run. The caller is responsible
// for spawning the thread that invokes Run.
func NewServer(registry *Registry, name string, hub *ChannelHub, opts ...Option) (*Server, error) {
	if err := registry.ValidateComplete(name); err != nil {
		return nil, err
	}
	handlers, err := registry.handlersFor(name)
	if err != nil {
		return nil, err
	}
	startup, shutdown, err := registry.eventsFor(name)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts...)
	pool := cfg.pool
	ownsPool := false
	if pool == nil {
		pool = workerpool.New(cfg.workerPoolOptions()...)
		ownsPool = true
	}

	return &Server{
		id:           uuid.NewString(),
		name:         name,
		hub:          hub,
		router:       newRouter(name, handlers, pool),
		startup:      startup,
		shutdown:     shutdown,
		pollInterval: cfg.pollInterval,
		state:        atomic.NewInt32(int32(Starting)),
		logger:       cfg.logger,
		pool:         pool,
		ownsPool:     ownsPool,
	}, nil
}

// Name returns the actor name the server is bound to.
func (s *Server) Name() string { return s.name }

// ID returns the server's unique instance identifier.
func (s *Server) ID() string { return s.id }

// State returns the loop's current phase.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Run executes the server loop in the calling goroutine, pinned to its
// own OS thread: startup events in order, then poll-and-route until a
// kill envelope is observed, then shutdown events. A startup event
// failure is fatal and the loop never polls; shutdown events are
// best-effort and their failures are combined into the returned error.
func (s *Server) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if s.ownsPool {
		s.pool.Start()
		defer s.pool.Stop()
	}

	s.logger.Debugf("actor=(%s) server=(%s) starting", s.name, s.id)
	for i, event := range s.startup {
		if err := event(); err != nil {
			s.state.Store(int32(Stopped))
			failure := fmt.Errorf("%w: actor %q event %d: %v", gerrors.ErrStartupFailure, s.name, i, err)
			s.logger.Error(failure)
			return failure
		}
	}

	s.state.Store(int32(Running))
	s.logger.Infof("actor=(%s) server=(%s) running", s.name, s.id)

	clock := ticker.New(s.pollInterval)
	clock.Start()
	defer clock.Stop()

	for s.State() == Running {
		env, ok, err := s.hub.Receive(s.name)
		switch {
		case err != nil:
			// the hub was destroyed under a live loop; drain
			s.logger.Warnf("actor=(%s) mailbox unavailable: %v", s.name, err)
			s.state.Store(int32(Draining))
		case ok:
			stop, dispatchErr := s.dispatch(env)
			if dispatchErr != nil {
				s.logger.Errorf("actor=(%s) dispatch failed: %v", s.name, dispatchErr)
			}
			if stop {
				s.logger.Debugf("actor=(%s) kill received, draining", s.name)
				s.state.Store(int32(Draining))
			}
		default:
			<-clock.Ticks
		}
	}

	s.state.Store(int32(Stopped))
	var violations error
	for i, event := range s.shutdown {
		if err := event(); err != nil {
			violations = multierr.Append(violations, fmt.Errorf("actor %q shutdown event %d: %w", s.name, i, err))
		}
	}
	if violations != nil {
		s.logger.Errorf("actor=(%s) shutdown events failed: %v", s.name, violations)
	}
	s.logger.Infof("actor=(%s) server=(%s) stopped", s.name, s.id)
	return violations
}

// dispatch routes one envelope and converts a handler panic into an
// error scoped to this single dispatch, so one misbehaving handler
// neither corrupts the hub nor takes down unrelated actors.
func (s *Server) dispatch(env Envelope) (stop bool, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("actor %q handler for tag %q panicked: %v\n%s",
				s.name, env.Tag(), recovered, debug.Stack())
		}
	}()
	return s.router.Route(env, s.hub)
}
