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

package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerDeliversTicks(t *testing.T) {
	tk := New(time.Millisecond)
	tk.Start()
	defer tk.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-tk.Ticks:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for tick")
		}
	}
	assert.True(t, tk.Running())
}

func TestTickerStopHaltsDelivery(t *testing.T) {
	tk := New(time.Millisecond)
	tk.Start()
	select {
	case <-tk.Ticks:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
	}
	tk.Stop()
	require.False(t, tk.Running())

	select {
	case <-tk.Ticks:
		t.Fatal("received tick after Stop")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTickerStartStopIdempotent(t *testing.T) {
	tk := New(time.Millisecond)
	tk.Start()
	tk.Start()
	tk.Stop()
	tk.Stop()
	assert.False(t, tk.Running())
}

func TestTickerRejectsNonPositiveInterval(t *testing.T) {
	assert.Panics(t, func() { New(0) })
}
