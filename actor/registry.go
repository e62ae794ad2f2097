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
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/threadserv/threadserv/errors"
	"github.com/threadserv/threadserv/internal/syncmap"
	"github.com/threadserv/threadserv/internal/validation"
)

// actorNamePattern is the identifier grammar for actor names: word
// characters with non-leading hyphens or underscores.
const actorNamePattern = `^[a-zA-Z0-9](?:[a-zA-Z0-9-_])*$`

// LifecycleEvent is a zero-argument action executed once before an
// actor's message loop starts or once after it ends. Events run in
// registration order with no rollback semantics.
type LifecycleEvent func() error

// handlerFunc is the erased form every registered handler is stored as.
type handlerFunc func(payload any, hub *ChannelHub)

// handlerEntry binds one message tag to its single handler.
type handlerEntry struct {
	tag    string
	async  bool
	invoke handlerFunc
}

// actorEntry is the registry record of one actor: its declared message
// types, its handlers and its ordered lifecycle events.
type actorEntry struct {
	name string

	mu       sync.Mutex
	tags     mapset.Set[string]
	types    map[string]reflect.Type
	handlers map[string]*handlerEntry
	startup  []LifecycleEvent
	shutdown []LifecycleEvent
}

func newActorEntry(name string) *actorEntry {
	return &actorEntry{
		name:     name,
		tags:     mapset.NewSet[string](),
		types:    make(map[string]reflect.Type),
		handlers: make(map[string]*handlerEntry),
	}
}

// Registry is the process-wide catalog mapping actor names to their
// declared message types, handlers and lifecycle events. All invariants
// (one handler per type, no dangling type, no orphan handler, unique
// names) are enforced here, before anything runs.
type Registry struct {
	actors *syncmap.SyncMap[string, *actorEntry]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actors: syncmap.New[string, *actorEntry](),
	}
}

// CreateActor registers a new actor name. It fails with
// ErrInvalidActorName when the name does not match the identifier
// grammar and with ErrActorAlreadyExists when the name is taken.
func (x *Registry) CreateActor(name string) error {
	chain := validation.New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(actorNamePattern, name, fmt.Errorf("%w: %q", gerrors.ErrInvalidActorName, name)))
	if err := chain.Validate(); err != nil {
		return err
	}
	if !x.actors.SetIfAbsent(name, newActorEntry(name)) {
		return fmt.Errorf("%w: %q", gerrors.ErrActorAlreadyExists, name)
	}
	return nil
}

// RegisterType declares that the actor accepts messages of the
// prototype's type. Registering the same type twice, or a second type
// whose normalized tag collides with an existing one, fails with
// ErrDuplicateType.
func (x *Registry) RegisterType(actor string, prototype any) error {
	entry, err := x.entry(actor)
	if err != nil {
		return err
	}
	rtype := reflect.TypeOf(prototype)
	if rtype == nil {
		return fmt.Errorf("%w: nil prototype for actor %q", gerrors.ErrInvalidMessageType, actor)
	}
	tag := typeTag(rtype)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.tags.Contains(tag) {
		return fmt.Errorf("%w: actor %q type %s (tag %q)", gerrors.ErrDuplicateType, actor, rtype, tag)
	}
	entry.tags.Add(tag)
	entry.types[tag] = rtype
	return nil
}

// RegisterHandler binds the synchronous handler fn to messages of type T
// for the actor. The payload type must already be registered; a type may
// have exactly one handler.
func RegisterHandler[T any](r *Registry, actor string, fn func(payload T, hub *ChannelHub)) error {
	return r.registerHandler(actor, typeOf[T](), false, func(payload any, hub *ChannelHub) {
		fn(payload.(T), hub)
	})
}

// RegisterAsyncHandler binds fn like RegisterHandler but marks it
// asynchronous: the router schedules it on the worker pool and returns
// without awaiting completion. Completion order relative to subsequent
// messages is not guaranteed.
func RegisterAsyncHandler[T any](r *Registry, actor string, fn func(payload T, hub *ChannelHub)) error {
	return r.registerHandler(actor, typeOf[T](), true, func(payload any, hub *ChannelHub) {
		fn(payload.(T), hub)
	})
}

func (x *Registry) registerHandler(actor string, rtype reflect.Type, async bool, invoke handlerFunc) error {
	entry, err := x.entry(actor)
	if err != nil {
		return err
	}
	tag := typeTag(rtype)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if !entry.tags.Contains(tag) {
		return fmt.Errorf("%w: actor %q has no type %s", gerrors.ErrUnknownMessageType, actor, rtype)
	}
	if _, exists := entry.handlers[tag]; exists {
		return fmt.Errorf("%w: actor %q type %s", gerrors.ErrDuplicateHandler, actor, rtype)
	}
	entry.handlers[tag] = &handlerEntry{tag: tag, async: async, invoke: invoke}
	return nil
}

// OnStart appends startup lifecycle events for the actor. They execute
// in order before the first message is polled; a failure is fatal to
// that actor's thread.
func (x *Registry) OnStart(actor string, events ...LifecycleEvent) error {
	entry, err := x.entry(actor)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	entry.startup = append(entry.startup, events...)
	entry.mu.Unlock()
	return nil
}

// OnStop appends shutdown lifecycle events for the actor. They execute
// in order after the loop drains; failures are reported but never stop
// the remaining events.
func (x *Registry) OnStop(actor string, events ...LifecycleEvent) error {
	entry, err := x.entry(actor)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	entry.shutdown = append(entry.shutdown, events...)
	entry.mu.Unlock()
	return nil
}

// ValidateComplete checks that every registered type of the actor has a
// handler. Each dangling type contributes one wrapped ErrMissingHandler;
// all violations are reported together. An actor with zero types is a
// valid, degenerate configuration.
func (x *Registry) ValidateComplete(actor string) error {
	entry, err := x.entry(actor)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	handled := mapset.NewSet[string]()
	for tag := range entry.handlers {
		handled.Add(tag)
	}
	missing := entry.tags.Difference(handled).ToSlice()
	sort.Strings(missing)

	chain := validation.New(validation.AllErrors())
	for _, tag := range missing {
		chain.AddAssertion(false, fmt.Errorf("%w: actor %q tag %q", gerrors.ErrMissingHandler, actor, tag))
	}
	return chain.Validate()
}

// ValidateAll runs ValidateComplete for every registered actor and
// combines the violations. It must pass before any server is spawned.
func (x *Registry) ValidateAll() error {
	chain := validation.New(validation.AllErrors())
	for _, name := range x.Actors() {
		if err := x.ValidateComplete(name); err != nil {
			chain.AddAssertion(false, err)
		}
	}
	return chain.Validate()
}

// Actors returns the registered actor names in lexical order.
func (x *Registry) Actors() []string {
	names := x.actors.Keys()
	sort.Strings(names)
	return names
}

// Exists reports whether the actor name is registered.
func (x *Registry) Exists(actor string) bool {
	_, ok := x.actors.Get(actor)
	return ok
}

// entry resolves an actor record or fails with ErrActorNotFound.
func (x *Registry) entry(actor string) (*actorEntry, error) {
	entry, ok := x.actors.Get(actor)
	if !ok {
		return nil, fmt.Errorf("%w: %q", gerrors.ErrActorNotFound, actor)
	}
	return entry, nil
}

// tagFor resolves the registered tag for a payload type of the actor.
func (x *Registry) tagFor(actor string, rtype reflect.Type) (string, error) {
	entry, err := x.entry(actor)
	if err != nil {
		return "", err
	}
	if rtype == nil {
		return "", fmt.Errorf("%w: nil payload for actor %q", gerrors.ErrInvalidMessageType, actor)
	}
	tag := typeTag(rtype)

	entry.mu.Lock()
	registered := entry.tags.Contains(tag)
	entry.mu.Unlock()
	if !registered {
		return "", fmt.Errorf("%w: actor %q has no type %s", gerrors.ErrUnknownMessageType, actor, rtype)
	}
	return tag, nil
}

// handlersFor snapshots the actor's dispatch table.
func (x *Registry) handlersFor(actor string) (map[string]*handlerEntry, error) {
	entry, err := x.entry(actor)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	handlers := make(map[string]*handlerEntry, len(entry.handlers))
	for tag, handler := range entry.handlers {
		handlers[tag] = handler
	}
	return handlers, nil
}

// eventsFor snapshots the actor's lifecycle event lists.
func (x *Registry) eventsFor(actor string) (startup, shutdown []LifecycleEvent, err error) {
	entry, err := x.entry(actor)
	if err != nil {
		return nil, nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	startup = append(startup, entry.startup...)
	shutdown = append(shutdown, entry.shutdown...)
	return startup, shutdown, nil
}
