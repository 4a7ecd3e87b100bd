// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import (
	"sort"
	"sync"
)

// # Session Change Notifications

// EventKind enumerates the session state transitions the Gateway announces.
type EventKind string

const (
	// EventSignedIn announces a newly established session. Carries the Identity.
	EventSignedIn EventKind = "SIGNED_IN"

	// EventSignedOut announces session invalidation. Carries no Identity.
	EventSignedOut EventKind = "SIGNED_OUT"
)

// Event is a session state transition pushed to Gateway subscribers.
//
// Subscribers must treat each event as an independent, possibly-redundant
// signal: an EventSignedIn may describe a session the subscriber already
// committed through its own explicit login call.
type Event struct {
	Kind     EventKind
	Identity *Identity // nil for EventSignedOut
}

// Listener receives session change events.
type Listener func(Event)

// Broadcaster fans session change events out to registered listeners.
//
// Publish dispatches synchronously in registration order, but never while
// holding the broadcaster's own lock, so a listener may call Subscribe or
// its unsubscribe handle from inside the callback without deadlocking.
type Broadcaster struct {
	mutex     sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewBroadcaster constructs an empty [Broadcaster].
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: map[int]Listener{}}
}

/*
Subscribe registers a listener for future events.

Parameters:
  - listener: Listener

Returns:
  - func(): Idempotent unsubscribe handle. After it returns the listener
    receives no further events.
*/
func (broadcaster *Broadcaster) Subscribe(listener Listener) func() {
	broadcaster.mutex.Lock()
	id := broadcaster.nextID
	broadcaster.nextID++
	broadcaster.listeners[id] = listener
	broadcaster.mutex.Unlock()

	return func() {
		broadcaster.mutex.Lock()
		delete(broadcaster.listeners, id)
		broadcaster.mutex.Unlock()
	}
}

/*
Publish delivers an event to every currently registered listener.

Description: The listener set is snapshotted under the lock and invoked
outside it, in subscription order.

Parameters:
  - event: Event
*/
func (broadcaster *Broadcaster) Publish(event Event) {
	broadcaster.mutex.Lock()
	ids := make([]int, 0, len(broadcaster.listeners))
	for id := range broadcaster.listeners {
		ids = append(ids, id)
	}
	// Map iteration order is random; restore subscription order.
	sort.Ints(ids)
	snapshot := make([]Listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, broadcaster.listeners[id])
	}
	broadcaster.mutex.Unlock()

	for _, listener := range snapshot {
		listener(event)
	}
}
