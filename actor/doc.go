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

// Package actor implements typed, thread-isolated actors ("thread-servers")
// that communicate exclusively through bounded mailboxes of statically-known
// message shapes.
//
// An actor declares a closed set of payload types it accepts and exactly one
// handler per type through a Registry. The registry is validated in full
// before anything runs: a type without a handler, a handler without a type,
// or a duplicate of either refuses to build. From validated registry data the
// System constructs one ChannelHub (one bounded FIFO mailbox per actor), one
// Router per actor (tag to handler dispatch table) and one Server per actor,
// each running its message loop on a dedicated OS thread.
//
// Any goroutine holding the hub may send. A send wraps the payload into the
// actor's tagged envelope and pushes it onto that actor's mailbox; the owning
// server loop pulls envelopes off in FIFO order and routes each one to its
// handler. The reserved kill envelope, produced only by SendKill, makes the
// loop stop polling, run its shutdown events and exit. Messages queued behind
// a kill are discarded when the hub is destroyed: kill is a hard stop, not a
// flush.
//
// The send path is non-blocking by policy: a full mailbox surfaces
// errors.ErrMailboxFull to the caller instead of growing without bound, and a
// destroyed hub surfaces errors.ErrChannelClosed. SendKill is the one
// exception; it waits for mailbox space so a shutdown request cannot be lost
// to backpressure.
package actor
