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

	gerrors "github.com/threadserv/threadserv/errors"
	"github.com/threadserv/threadserv/internal/workerpool"
)

// Router is an actor's dispatch table: it matches an envelope's tag
// against the actor's registered handlers. The router performs no
// recovery of its own; a panicking handler unwinds to the caller, which
// scopes the failure to the single dispatch.
type Router struct {
	actor    string
	handlers map[string]*handlerEntry
	pool     *workerpool.WorkerPool
}

// newRouter builds the dispatch table for one actor from validated
// registry data. The pool runs asynchronous handlers and may be shared
// across routers.
func newRouter(actor string, handlers map[string]*handlerEntry, pool *workerpool.WorkerPool) *Router {
	return &Router{
		actor:    actor,
		handlers: handlers,
		pool:     pool,
	}
}

// Route dispatches one envelope. It reports stop=true for the kill
// variant, which carries no payload and is never dispatched. Synchronous
// handlers run to completion before Route returns; asynchronous handlers
// are submitted to the pool fire-and-forget and Route returns once
// scheduling succeeded. An actor with no registered handlers routes
// nothing and no-ops.
func (r *Router) Route(env Envelope, hub *ChannelHub) (stop bool, err error) {
	if env.IsKill() {
		return true, nil
	}
	if len(r.handlers) == 0 {
		return false, nil
	}
	handler, ok := r.handlers[env.Tag()]
	if !ok {
		return false, fmt.Errorf("%w: actor %q tag %q", gerrors.ErrUnhandled, r.actor, env.Tag())
	}
	if handler.async {
		r.pool.Submit(func() {
			handler.invoke(env.Payload(), hub)
		})
		return false, nil
	}
	handler.invoke(env.Payload(), hub)
	return false, nil
}
