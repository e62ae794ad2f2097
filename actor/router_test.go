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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/threadserv/threadserv/errors"
	"github.com/threadserv/threadserv/internal/workerpool"
)

func TestRouterDispatchesSyncHandler(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))

	var got ping
	var gotHub *ChannelHub
	require.NoError(t, RegisterHandler(registry, "echo", func(p ping, hub *ChannelHub) {
		got = p
		gotHub = hub
	}))

	hub := NewChannelHub(registry, quietOpts()...)
	defer func() { require.NoError(t, hub.Destroy()) }()

	handlers, err := registry.handlersFor("echo")
	require.NoError(t, err)
	router := newRouter("echo", handlers, nil)

	tag := typeTag(reflect.TypeOf(ping{}))
	stop, err := router.Route(Envelope{tag: tag, payload: ping{text: "hi"}}, hub)
	require.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, ping{text: "hi"}, got)
	assert.Same(t, hub, gotHub)
}

func TestRouterKillStopsWithoutDispatch(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))
	invoked := false
	require.NoError(t, RegisterHandler(registry, "echo", func(ping, *ChannelHub) { invoked = true }))

	handlers, err := registry.handlersFor("echo")
	require.NoError(t, err)
	router := newRouter("echo", handlers, nil)

	stop, err := router.Route(killEnvelope(), nil)
	require.NoError(t, err)
	assert.True(t, stop)
	assert.False(t, invoked)
}

func TestRouterNoHandlersIsNoOp(t *testing.T) {
	router := newRouter("idle", map[string]*handlerEntry{}, nil)
	stop, err := router.Route(Envelope{tag: "actor.ping", payload: ping{}}, nil)
	assert.NoError(t, err)
	assert.False(t, stop)
}

func TestRouterUnknownTag(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))
	require.NoError(t, RegisterHandler(registry, "echo", func(ping, *ChannelHub) {}))

	handlers, err := registry.handlersFor("echo")
	require.NoError(t, err)
	router := newRouter("echo", handlers, nil)

	stop, err := router.Route(Envelope{tag: "actor.pong", payload: pong{}}, nil)
	assert.ErrorIs(t, err, gerrors.ErrUnhandled)
	assert.False(t, stop)
}

func TestRouterSchedulesAsyncHandler(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.CreateActor("echo"))
	require.NoError(t, registry.RegisterType("echo", ping{}))

	received := make(chan ping, 1)
	require.NoError(t, RegisterAsyncHandler(registry, "echo", func(p ping, _ *ChannelHub) {
		received <- p
	}))

	pool := workerpool.New(workerpool.WithSize(2))
	pool.Start()
	defer pool.Stop()

	handlers, err := registry.handlersFor("echo")
	require.NoError(t, err)
	router := newRouter("echo", handlers, pool)

	tag := typeTag(reflect.TypeOf(ping{}))
	stop, err := router.Route(Envelope{tag: tag, payload: ping{text: "later"}}, nil)
	require.NoError(t, err)
	assert.False(t, stop)

	select {
	case p := <-received:
		assert.Equal(t, ping{text: "later"}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("async handler was never scheduled")
	}
}
