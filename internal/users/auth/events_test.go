// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaferpilakkal/tuition-lms/internal/users/auth"
)

/*
TestBroadcaster_Subscribe verifies delivery in subscription order and that
an unsubscribed listener receives nothing further.
*/
func TestBroadcaster_Subscribe(t *testing.T) {
	broadcaster := auth.NewBroadcaster()

	var order []string
	unsubscribeFirst := broadcaster.Subscribe(func(auth.Event) { order = append(order, "first") })
	broadcaster.Subscribe(func(auth.Event) { order = append(order, "second") })

	broadcaster.Publish(auth.Event{Kind: auth.EventSignedOut})
	assert.Equal(t, []string{"first", "second"}, order)

	unsubscribeFirst()
	broadcaster.Publish(auth.Event{Kind: auth.EventSignedOut})
	assert.Equal(t, []string{"first", "second", "second"}, order)
}

/*
TestBroadcaster_SubscribeDuringDispatch verifies a listener may use its own
unsubscribe handle from inside the callback without deadlocking.
*/
func TestBroadcaster_SubscribeDuringDispatch(t *testing.T) {
	broadcaster := auth.NewBroadcaster()

	calls := 0
	var unsubscribe func()
	unsubscribe = broadcaster.Subscribe(func(auth.Event) {
		calls++
		unsubscribe()
	})

	broadcaster.Publish(auth.Event{Kind: auth.EventSignedIn})
	broadcaster.Publish(auth.Event{Kind: auth.EventSignedIn})

	assert.Equal(t, 1, calls, "one-shot listener fires exactly once")
}
