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

// Package errors defines the error catalog of the thread-server runtime.
//
// Registration errors are detected before any server loop runs and are fatal
// to building that actor's configuration. Delivery errors are surfaced to the
// caller of the send path as return values and are never silently dropped.
package errors

import "errors"

var (
	// ErrInvalidActorName is returned when an actor name contains invalid
	// characters. A valid name consists of word characters ([a-zA-Z0-9])
	// with optional non-leading hyphens or underscores.
	ErrInvalidActorName = errors.New("invalid actor name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrActorAlreadyExists is returned when creating an actor whose name is
	// already taken in the registry.
	ErrActorAlreadyExists = errors.New("actor already exists")

	// ErrActorNotFound is returned when the named actor is not known to the
	// registry or the channel hub.
	ErrActorNotFound = errors.New("actor not found")

	// ErrDuplicateType is returned when a message type is registered twice for
	// the same actor, or when two distinct types normalize to the same tag.
	ErrDuplicateType = errors.New("message type is already registered")

	// ErrDuplicateHandler is returned when a message type already has a
	// handler registered for the actor.
	ErrDuplicateHandler = errors.New("message type already has a handler")

	// ErrUnknownMessageType is returned when a handler or a send references a
	// payload type that was never registered for the actor.
	ErrUnknownMessageType = errors.New("message type is not registered")

	// ErrInvalidMessageType is returned when a nil or otherwise unusable
	// prototype is submitted for registration.
	ErrInvalidMessageType = errors.New("invalid message type")

	// ErrMissingHandler is returned by completeness validation for every
	// registered message type that has no handler. An actor with any missing
	// handler must not be allowed to run.
	ErrMissingHandler = errors.New("message type has no handler")

	// ErrMailboxFull is returned by the non-blocking send path when an
	// actor's mailbox is at capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrChannelClosed is returned when sending to or receiving from a
	// mailbox whose hub has been destroyed. A send on a closed channel never
	// succeeds.
	ErrChannelClosed = errors.New("channel is closed")

	// ErrHubDestroyed is returned when Destroy is called on a hub that was
	// already destroyed. Destroying a hub twice is a programming error.
	ErrHubDestroyed = errors.New("channel hub is already destroyed")

	// ErrUnhandled is returned by the router when an envelope carries a tag
	// with no matching handler. It cannot occur for a validated actor and is
	// kept as a guard at the dispatch boundary.
	ErrUnhandled = errors.New("unhandled message")

	// ErrStartupFailure wraps the error of a failed startup lifecycle event.
	// The owning server loop never enters its message loop.
	ErrStartupFailure = errors.New("startup event failed")

	// ErrSystemAlreadyStarted is returned when Start is called on a running
	// system.
	ErrSystemAlreadyStarted = errors.New("system is already started")

	// ErrSystemNotStarted is returned when Stop is called on a system that
	// was never started or has already stopped.
	ErrSystemNotStarted = errors.New("system is not started")
)
