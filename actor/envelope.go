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
	"strings"
)

// killTag is the reserved envelope tag that requests graceful loop
// termination. Type tags are normalized Go type names and can never
// contain '$', so no payload tag collides with it.
const killTag = "$kill"

// Envelope is the closed tagged union delivered through an actor's
// mailbox: either one of the actor's registered payload types, identified
// by its tag, or the kill marker which carries no payload.
type Envelope struct {
	tag     string
	payload any
}

// Tag returns the envelope's discriminant. The tag always matches the
// carried payload's registered message type.
func (e Envelope) Tag() string { return e.tag }

// Payload returns the wrapped message. It is nil for the kill envelope.
func (e Envelope) Payload() any { return e.payload }

// IsKill reports whether the envelope is the reserved kill variant.
func (e Envelope) IsKill() bool { return e.tag == killTag }

// killEnvelope builds the reserved kill variant.
func killEnvelope() Envelope {
	return Envelope{tag: killTag}
}

// typeTag derives the deterministic tag for a payload type: the
// package-qualified type name, trimmed and lowercased. Lowercasing makes
// tag identity case-insensitive, so two types whose names differ only by
// case collide loudly at registration time instead of silently at
// dispatch time.
func typeTag(rtype reflect.Type) string {
	return strings.ToLower(strings.TrimSpace(rtype.String()))
}

// typeOf resolves the reflect.Type of T without requiring a value.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
