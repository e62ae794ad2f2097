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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/threadserv/threadserv/errors"
)

func newTestHub(t *testing.T, opts ...Option) (*Registry, *ChannelHub) {
	t.Helper()
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))
	require.NoError(t, RegisterHandler(registry, "echo", func(ping, *ChannelHub) {}))
	return registry, NewChannelHub(registry, quietOpts(opts...)...)
}

func TestHubRoundTrip(t *testing.T) {
	_, hub := newTestHub(t)

	sent := ping{text: "hi"}
	require.NoError(t, hub.Send("echo", sent))

	env, ok, err := hub.Receive("echo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sent, env.Payload())
	assert.Equal(t, typeTag(reflect.TypeOf(sent)), env.Tag())
	assert.False(t, env.IsKill())

	require.NoError(t, hub.Destroy())
}

func TestHubTypedSend(t *testing.T) {
	_, hub := newTestHub(t)
	require.NoError(t, Send(hub, "echo", ping{text: "typed"}))
	env, ok, err := hub.Receive("echo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ping{text: "typed"}, env.Payload())
	require.NoError(t, hub.Destroy())
}

func TestHubSendFailsForUnknownActorOrType(t *testing.T) {
	_, hub := newTestHub(t)

	assert.ErrorIs(t, hub.Send("ghost", ping{}), gerrors.ErrActorNotFound)
	assert.ErrorIs(t, hub.Send("echo", pong{}), gerrors.ErrUnknownMessageType)
	assert.ErrorIs(t, hub.Send("echo", nil), gerrors.ErrInvalidMessageType)
	assert.ErrorIs(t, hub.SendKill("ghost"), gerrors.ErrActorNotFound)

	_, _, err := hub.Receive("ghost")
	assert.ErrorIs(t, err, gerrors.ErrActorNotFound)

	require.NoError(t, hub.Destroy())
}

func TestHubBackpressure(t *testing.T) {
	_, hub := newTestHub(t, WithMailboxCapacity(2))

	require.NoError(t, hub.Send("echo", ping{text: "m1"}))
	require.NoError(t, hub.Send("echo", ping{text: "m2"}))
	assert.ErrorIs(t, hub.Send("echo", ping{text: "m3"}), gerrors.ErrMailboxFull)

	queued, err := hub.MailboxLen("echo")
	require.NoError(t, err)
	assert.Equal(t, int64(2), queued)

	require.NoError(t, hub.Destroy())
}

func TestHubKillPreservesSenderOrder(t *testing.T) {
	_, hub := newTestHub(t)

	require.NoError(t, hub.Send("echo", ping{text: "m1"}))
	require.NoError(t, hub.SendKill("echo"))
	// sending after a kill is legal
	require.NoError(t, hub.Send("echo", ping{text: "m2"}))

	env, ok, err := hub.Receive("echo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ping{text: "m1"}, env.Payload())

	env, ok, err = hub.Receive("echo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, env.IsKill())

	require.NoError(t, hub.Destroy())
}

func TestHubReceiveEmpty(t *testing.T) {
	_, hub := newTestHub(t)
	_, ok, err := hub.Receive("echo")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, hub.Destroy())
}

func TestHubDestroyIsTerminal(t *testing.T) {
	_, hub := newTestHub(t)
	require.NoError(t, hub.Send("echo", ping{text: "doomed"}))

	require.NoError(t, hub.Destroy())
	assert.True(t, hub.Destroyed())

	// destroying twice is a programming error
	assert.ErrorIs(t, hub.Destroy(), gerrors.ErrHubDestroyed)

	// every subsequent operation fails instead of hanging
	assert.ErrorIs(t, hub.Send("echo", ping{}), gerrors.ErrChannelClosed)
	assert.ErrorIs(t, hub.SendKill("echo"), gerrors.ErrChannelClosed)
	_, _, err := hub.Receive("echo")
	assert.ErrorIs(t, err, gerrors.ErrChannelClosed)
}

func TestHubExposesActors(t *testing.T) {
	registry, hub := newTestHub(t)
	assert.Equal(t, registry.Actors(), hub.Actors())
	assert.NotEmpty(t, hub.ID())
	require.NoError(t, hub.Destroy())
}
