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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	gerrors "github.com/threadserv/threadserv/errors"
)

func TestCreateActor(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.CreateActor("echo"))
	assert.True(t, registry.Exists("echo"))

	err := registry.CreateActor("echo")
	assert.ErrorIs(t, err, gerrors.ErrActorAlreadyExists)

	for _, name := range []string{"", "-lead", "_lead", "has space", "bad!name"} {
		err = registry.CreateActor(name)
		assert.ErrorIs(t, err, gerrors.ErrInvalidActorName, "name %q must be rejected", name)
	}

	require.NoError(t, registry.CreateActor("server-1_a"))
	assert.Equal(t, []string{"echo", "server-1_a"}, registry.Actors())
}

func TestRegisterTypeRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))

	require.NoError(t, registry.RegisterType("echo", ping{}))
	err := registry.RegisterType("echo", ping{})
	assert.ErrorIs(t, err, gerrors.ErrDuplicateType)

	// same type may serve two different actors
	require.NoError(t, registry.CreateActor("relay"))
	assert.NoError(t, registry.RegisterType("relay", ping{}))
}

func TestRegisterTypeRejectsCaseCollidingTags(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))

	require.NoError(t, registry.RegisterType("echo", hello{}))
	err := registry.RegisterType("echo", Hello{})
	assert.ErrorIs(t, err, gerrors.ErrDuplicateType)
}

func TestRegisterTypeRejectsNilPrototype(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	assert.ErrorIs(t, registry.RegisterType("echo", nil), gerrors.ErrInvalidMessageType)
}

func TestRegisterTypeUnknownActor(t *testing.T) {
	registry := NewRegistry()
	assert.ErrorIs(t, registry.RegisterType("ghost", ping{}), gerrors.ErrActorNotFound)
}

func TestRegisterHandlerInvariants(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))

	// handler for a type that was never registered
	err := RegisterHandler(registry, "echo", func(pong, *ChannelHub) {})
	assert.ErrorIs(t, err, gerrors.ErrUnknownMessageType)

	require.NoError(t, RegisterHandler(registry, "echo", func(ping, *ChannelHub) {}))

	// exactly one handler per (actor, type)
	err = RegisterHandler(registry, "echo", func(ping, *ChannelHub) {})
	assert.ErrorIs(t, err, gerrors.ErrDuplicateHandler)
	err = RegisterAsyncHandler(registry, "echo", func(ping, *ChannelHub) {})
	assert.ErrorIs(t, err, gerrors.ErrDuplicateHandler)
}

func TestValidateCompleteReportsEveryMissingHandler(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))
	require.NoError(t, registry.RegisterType("echo", pong{}))
	require.NoError(t, registry.RegisterType("echo", tick{}))
	require.NoError(t, RegisterHandler(registry, "echo", func(pong, *ChannelHub) {}))

	err := registry.ValidateComplete("echo")
	require.Error(t, err)
	assert.ErrorIs(t, err, gerrors.ErrMissingHandler)
	assert.Len(t, multierr.Errors(err), 2)

	require.NoError(t, RegisterHandler(registry, "echo", func(ping, *ChannelHub) {}))
	require.NoError(t, RegisterHandler(registry, "echo", func(tick, *ChannelHub) {}))
	assert.NoError(t, registry.ValidateComplete("echo"))
}

func TestValidateCompleteDegenerateActor(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("idle"))
	assert.NoError(t, registry.ValidateComplete("idle"))
}

func TestValidateAllAggregatesAcrossActors(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("one"))
	require.NoError(t, registry.CreateActor("two"))
	require.NoError(t, registry.RegisterType("one", ping{}))
	require.NoError(t, registry.RegisterType("two", pong{}))

	err := registry.ValidateAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerrors.ErrMissingHandler))
	assert.Len(t, multierr.Errors(err), 2)
}

func TestLifecycleEventRegistration(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.OnStart("echo", func() error { return nil }))
	require.NoError(t, registry.OnStop("echo", func() error { return nil }, func() error { return nil }))

	startup, shutdown, err := registry.eventsFor("echo")
	require.NoError(t, err)
	assert.Len(t, startup, 1)
	assert.Len(t, shutdown, 2)

	assert.ErrorIs(t, registry.OnStart("ghost", func() error { return nil }), gerrors.ErrActorNotFound)
	assert.ErrorIs(t, registry.OnStop("ghost", func() error { return nil }), gerrors.ErrActorNotFound)
}
