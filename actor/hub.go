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
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	gerrors "github.com/threadserv/threadserv/errors"
	"github.com/threadserv/threadserv/log"
)

// ChannelHub holds one bounded mailbox per actor known to the registry at
// construction time. The actor-to-mailbox table is immutable after
// construction, so any goroutine may send concurrently without
// synchronization beyond what each mailbox provides internally. Each
// mailbox has logically one consumer: the owning actor's server loop.
type ChannelHub struct {
	id        string
	registry  *Registry
	mailboxes map[string]Mailbox
	destroyed *atomic.Bool
	logger    log.Logger
}

// NewChannelHub allocates one mailbox per registered actor. Capacity
// defaults to DefaultMailboxCapacity and is overridden with
// WithMailboxCapacity.
func NewChannelHub(registry *Registry, opts ...Option) *ChannelHub {
	cfg := newConfig(opts...)
	mailboxes := make(map[string]Mailbox, len(registry.Actors()))
	for _, name := range registry.Actors() {
		mailboxes[name] = newBoundedMailbox(cfg.capacity)
	}
	hub := &ChannelHub{
		id:        uuid.NewString(),
		registry:  registry,
		mailboxes: mailboxes,
		destroyed: atomic.NewBool(false),
		logger:    cfg.logger,
	}
	hub.logger.Debugf("channel hub=(%s) created with (%d) mailboxes of capacity=(%d)", hub.id, len(mailboxes), cfg.capacity)
	return hub
}

// ID returns the hub's unique identifier.
func (hub *ChannelHub) ID() string { return hub.id }

// Actors returns the names of the actors the hub holds mailboxes for.
func (hub *ChannelHub) Actors() []string { return hub.registry.Actors() }

// Send wraps payload into the actor's envelope, tagging it with the
// payload's registered message type, and pushes it onto the actor's
// mailbox. It never blocks: a full mailbox fails with ErrMailboxFull and
// a destroyed hub with ErrChannelClosed.
func (hub *ChannelHub) Send(actor string, payload any) error {
	if hub.destroyed.Load() {
		return gerrors.ErrChannelClosed
	}
	mailbox, err := hub.mailbox(actor)
	if err != nil {
		return err
	}
	tag, err := hub.registry.tagFor(actor, reflect.TypeOf(payload))
	if err != nil {
		return err
	}
	return mailbox.Enqueue(Envelope{tag: tag, payload: payload})
}

// Send delivers a payload of type T to the actor through the hub. It is
// the typed counterpart of ChannelHub.Send for callers that know the
// payload type statically.
func Send[T any](hub *ChannelHub, actor string, payload T) error {
	return hub.Send(actor, payload)
}

// SendKill pushes the reserved kill envelope onto the actor's mailbox.
// It reuses the normal FIFO path, so every message this sender sent
// earlier is routed before the loop drains. Unlike Send it waits for
// mailbox space: a shutdown request is never dropped under backpressure.
func (hub *ChannelHub) SendKill(actor string) error {
	if hub.destroyed.Load() {
		return gerrors.ErrChannelClosed
	}
	mailbox, err := hub.mailbox(actor)
	if err != nil {
		return err
	}
	return mailbox.EnqueueWait(killEnvelope())
}

// Receive polls the actor's mailbox without blocking. It returns the next
// envelope and true when one is queued, false on an empty mailbox, and
// ErrChannelClosed once the hub has been destroyed.
func (hub *ChannelHub) Receive(actor string) (Envelope, bool, error) {
	mailbox, err := hub.mailbox(actor)
	if err != nil {
		return Envelope{}, false, err
	}
	if mailbox.Disposed() {
		return Envelope{}, false, gerrors.ErrChannelClosed
	}
	env, ok := mailbox.Dequeue()
	return env, ok, nil
}

// MailboxLen returns the number of envelopes queued for the actor.
func (hub *ChannelHub) MailboxLen(actor string) (int64, error) {
	mailbox, err := hub.mailbox(actor)
	if err != nil {
		return 0, err
	}
	return mailbox.Len(), nil
}

// Destroy closes every mailbox, discarding whatever is still queued, and
// unblocks waiting senders. Subsequent sends and receives fail with
// ErrChannelClosed. Destroying a hub twice is a programming error and
// fails with ErrHubDestroyed.
func (hub *ChannelHub) Destroy() error {
	if !hub.destroyed.CompareAndSwap(false, true) {
		return gerrors.ErrHubDestroyed
	}
	for name, mailbox := range hub.mailboxes {
		if pending := mailbox.Len(); pending > 0 {
			hub.logger.Debugf("channel hub=(%s) discarding (%d) undelivered envelopes for actor=(%s)", hub.id, pending, name)
		}
		mailbox.Dispose()
	}
	hub.logger.Debugf("channel hub=(%s) destroyed", hub.id)
	return nil
}

// Destroyed reports whether Destroy has been called.
func (hub *ChannelHub) Destroyed() bool {
	return hub.destroyed.Load()
}

func (hub *ChannelHub) mailbox(actor string) (Mailbox, error) {
	mailbox, ok := hub.mailboxes[actor]
	if !ok {
		return nil, fmt.Errorf("%w: %q", gerrors.ErrActorNotFound, actor)
	}
	return mailbox, nil
}
