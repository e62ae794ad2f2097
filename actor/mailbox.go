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
	gods "github.com/Workiva/go-datastructures/queue"

	gerrors "github.com/threadserv/threadserv/errors"
)

// Mailbox is a bounded FIFO queue of envelopes. It is safe for multiple
// concurrent producers and exactly one consumer, the owning server loop.
type Mailbox interface {
	// Enqueue inserts an envelope without blocking. It fails with
	// ErrMailboxFull at capacity and ErrChannelClosed after Dispose.
	Enqueue(env Envelope) error
	// EnqueueWait inserts an envelope, waiting for space when the mailbox
	// is full. It fails with ErrChannelClosed after Dispose.
	EnqueueWait(env Envelope) error
	// Dequeue removes and returns the next envelope without blocking. The
	// second return value is false when the mailbox is empty or disposed.
	Dequeue() (Envelope, bool)
	// IsEmpty reports whether the mailbox currently has no messages.
	IsEmpty() bool
	// Len returns the current number of queued envelopes.
	Len() int64
	// Disposed reports whether Dispose has been called.
	Disposed() bool
	// Dispose releases the mailbox, unblocks waiting producers and
	// discards any queued envelopes. The mailbox is unusable afterwards.
	Dispose()
}

// boundedMailbox is an MPSC mailbox backed by a ring buffer of fixed
// capacity.
type boundedMailbox struct {
	buffer *gods.RingBuffer
}

var _ Mailbox = (*boundedMailbox)(nil)

// newBoundedMailbox creates a mailbox holding at most capacity envelopes.
// Capacity must be a positive integer.
func newBoundedMailbox(capacity int) *boundedMailbox {
	if capacity <= 0 {
		panic("mailbox capacity must be a positive integer")
	}
	return &boundedMailbox{
		buffer: gods.NewRingBuffer(uint64(capacity)),
	}
}

// Enqueue inserts an envelope without blocking.
func (m *boundedMailbox) Enqueue(env Envelope) error {
	ok, err := m.buffer.Offer(env)
	switch {
	case err != nil:
		return gerrors.ErrChannelClosed
	case !ok:
		return gerrors.ErrMailboxFull
	}
	return nil
}

// EnqueueWait inserts an envelope, blocking while the mailbox is full.
func (m *boundedMailbox) EnqueueWait(env Envelope) error {
	if err := m.buffer.Put(env); err != nil {
		return gerrors.ErrChannelClosed
	}
	return nil
}

// Dequeue removes and returns the next envelope without blocking.
// The Len guard keeps Get from parking the consumer: only the single
// consumer removes items, so a positive length means Get returns promptly.
func (m *boundedMailbox) Dequeue() (Envelope, bool) {
	if m.buffer.Len() == 0 {
		return Envelope{}, false
	}
	item, err := m.buffer.Get()
	if err != nil {
		return Envelope{}, false
	}
	env, ok := item.(Envelope)
	return env, ok
}

// IsEmpty reports whether the mailbox currently has no messages.
func (m *boundedMailbox) IsEmpty() bool {
	return m.buffer.Len() == 0
}

// Len returns the current number of queued envelopes. The value is a
// snapshot and may change immediately under concurrency.
func (m *boundedMailbox) Len() int64 {
	return int64(m.buffer.Len())
}

// Disposed reports whether the mailbox has been disposed.
func (m *boundedMailbox) Disposed() bool {
	return m.buffer.IsDisposed()
}

// Dispose releases the ring buffer and unblocks any waiting producers.
func (m *boundedMailbox) Dispose() {
	m.buffer.Dispose()
}
