// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/auth"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

// # Test Doubles

// memoryProfileRepository backs a real profile.Resolver in tests.
type memoryProfileRepository struct {
	profiles map[string]*profile.Profile
	failWith error
}

func (repository *memoryProfileRepository) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	if repository.failWith != nil {
		return nil, repository.failWith
	}
	found, ok := repository.profiles[id]
	if !ok {
		return nil, apperr.NotFound("Profile")
	}
	return found, nil
}

func (repository *memoryProfileRepository) List(context.Context, sec.Role) ([]*profile.Profile, error) {
	return nil, nil
}
func (repository *memoryProfileRepository) Create(context.Context, *profile.Profile, string) error {
	return nil
}
func (repository *memoryProfileRepository) Update(context.Context, *profile.Profile) error { return nil }
func (repository *memoryProfileRepository) SetActive(context.Context, string, bool) error  { return nil }

// scriptedGateway is a Gateway whose outcomes are fixed per test.
type scriptedGateway struct {
	broadcaster *auth.Broadcaster

	identity     *auth.Identity
	sessionToken string
	signInErr    error

	currentIdentity *auth.Identity

	signOutCalls int
	signOutErr   error
}

func newScriptedGateway() *scriptedGateway {
	return &scriptedGateway{broadcaster: auth.NewBroadcaster()}
}

func (gateway *scriptedGateway) CurrentSession(_ context.Context, sessionToken string) (*auth.Identity, bool) {
	if sessionToken == "" || gateway.currentIdentity == nil {
		return nil, false
	}
	return gateway.currentIdentity, true
}

func (gateway *scriptedGateway) SignIn(_ context.Context, _, _ string, _ auth.RequestMeta) (*auth.Identity, string, error) {
	if gateway.signInErr != nil {
		return nil, "", gateway.signInErr
	}
	gateway.broadcaster.Publish(auth.Event{Kind: auth.EventSignedIn, Identity: gateway.identity})
	return gateway.identity, gateway.sessionToken, nil
}

func (gateway *scriptedGateway) SignOut(context.Context, string) error {
	gateway.signOutCalls++
	if gateway.signOutErr != nil {
		return gateway.signOutErr
	}
	gateway.broadcaster.Publish(auth.Event{Kind: auth.EventSignedOut})
	return nil
}

func (gateway *scriptedGateway) Subscribe(listener auth.Listener) func() {
	return gateway.broadcaster.Subscribe(listener)
}

// # Fixtures

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func activeProfile(id string, role sec.Role) *profile.Profile {
	return &profile.Profile{ID: id, Name: "Test User", Email: "user@example.com", Role: role, IsActive: true}
}

func newStore(gateway auth.Gateway, repository profile.Repository) *auth.SessionStore {
	resolver := profile.NewResolver(repository, discardLogger)
	return auth.NewSessionStore(gateway, resolver, discardLogger)
}

// # Login Transitions

/*
TestSessionStore_Login_InvalidCredentials checks that a rejected credential
pair surfaces InvalidCredentials and leaves both fields absent.
*/
func TestSessionStore_Login_InvalidCredentials(t *testing.T) {
	gateway := newScriptedGateway()
	gateway.signInErr = apperr.InvalidCredentials()

	store := newStore(gateway, &memoryProfileRepository{profiles: map[string]*profile.Profile{}})
	defer store.Close()

	_, _, _, err := store.Login(context.Background(), "bad@x.com", "wrong", auth.RequestMeta{})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))

	_, hasUser := store.User()
	_, hasProfile := store.Profile()
	assert.False(t, hasUser)
	assert.False(t, hasProfile)
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.Loading(), "loading clears on the failure path")
}

/*
TestSessionStore_Login_ProfileNotFound checks that an identity with no
matching profile row is rejected with ProfileNotFound and never becomes
authenticated.
*/
func TestSessionStore_Login_ProfileNotFound(t *testing.T) {
	gateway := newScriptedGateway()
	gateway.identity = &auth.Identity{ID: "id-1", Email: "orphan@example.com"}
	gateway.sessionToken = "token-1"

	store := newStore(gateway, &memoryProfileRepository{profiles: map[string]*profile.Profile{}})
	defer store.Close()

	_, _, _, err := store.Login(context.Background(), "orphan@example.com", "secret", auth.RequestMeta{})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeProfileNotFound))

	_, hasProfile := store.Profile()
	assert.False(t, hasProfile)
	assert.False(t, store.IsAuthenticated())
}

/*
TestSessionStore_Login_Deactivated checks the compensating sign-out: an
inactive profile rejects with AccountDeactivated, signOut fires exactly
once, and both fields end up absent.
*/
func TestSessionStore_Login_Deactivated(t *testing.T) {
	gateway := newScriptedGateway()
	gateway.identity = &auth.Identity{ID: "id-2", Email: "inactive@example.com"}
	gateway.sessionToken = "token-2"

	inactive := activeProfile("id-2", sec.RoleStudent)
	inactive.IsActive = false
	repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{"id-2": inactive}}

	store := newStore(gateway, repository)
	defer store.Close()

	_, _, _, err := store.Login(context.Background(), "inactive@example.com", "secret", auth.RequestMeta{})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeAccountDeactivated))
	assert.Equal(t, 1, gateway.signOutCalls, "sign-in must be reversed exactly once")

	_, hasUser := store.User()
	_, hasProfile := store.Profile()
	assert.False(t, hasUser)
	assert.False(t, hasProfile)
	assert.False(t, store.IsAuthenticated())
}

/*
TestSessionStore_Login_RoundTrip checks the success path: user and profile
commit together, then logout clears both.
*/
func TestSessionStore_Login_RoundTrip(t *testing.T) {
	gateway := newScriptedGateway()
	gateway.identity = &auth.Identity{ID: "id-3", Email: "teacher@example.com"}
	gateway.sessionToken = "token-3"

	repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{
		"id-3": activeProfile("id-3", sec.RoleTeacher),
	}}

	store := newStore(gateway, repository)
	defer store.Close()

	identity, resolved, sessionToken, err := store.Login(context.Background(), "teacher@example.com", "secret", auth.RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, identity)
	require.NotNil(t, resolved)
	assert.Equal(t, "token-3", sessionToken)

	// Committed together, never one without the other.
	user, hasUser := store.User()
	committed, hasProfile := store.Profile()
	require.True(t, hasUser)
	require.True(t, hasProfile)
	assert.Equal(t, identity.ID, user.ID)
	assert.Equal(t, resolved.ID, committed.ID)
	assert.True(t, store.IsAuthenticated())

	role, hasRole := store.Role()
	require.True(t, hasRole)
	assert.Equal(t, sec.RoleTeacher, role)

	require.NoError(t, store.Logout(context.Background()))
	assert.False(t, store.IsAuthenticated())
	_, hasUser = store.User()
	_, hasProfile = store.Profile()
	assert.False(t, hasUser)
	assert.False(t, hasProfile)
}

/*
TestSessionStore_Logout_ProviderFailure checks that a failed sign-out
propagates and leaves state unchanged rather than silently clearing.
*/
func TestSessionStore_Logout_ProviderFailure(t *testing.T) {
	gateway := newScriptedGateway()
	gateway.identity = &auth.Identity{ID: "id-4", Email: "user@example.com"}
	gateway.sessionToken = "token-4"

	repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{
		"id-4": activeProfile("id-4", sec.RoleAdmin),
	}}

	store := newStore(gateway, repository)
	defer store.Close()

	_, _, _, err := store.Login(context.Background(), "user@example.com", "secret", auth.RequestMeta{})
	require.NoError(t, err)

	gateway.signOutErr = apperr.Provider(errors.New("connection reset"))
	err = store.Logout(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeProviderError))
	assert.True(t, store.IsAuthenticated(), "state stays intact when revocation fails")
}

// # Bootstrap Protocol

/*
TestSessionStore_Bootstrap checks hydration from a persisted session, the
cleared outcome when no session exists, and the swallowed-failure outcome
when the profile lookup errors. Loading is false after every path.
*/
func TestSessionStore_Bootstrap(t *testing.T) {
	t.Run("persisted_session", func(t *testing.T) {
		gateway := newScriptedGateway()
		gateway.currentIdentity = &auth.Identity{ID: "id-5", Email: "back@example.com"}

		repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{
			"id-5": activeProfile("id-5", sec.RoleStudent),
		}}

		store := newStore(gateway, repository)
		defer store.Close()

		store.Bootstrap(context.Background(), "persisted-token")
		assert.False(t, store.Loading())
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "persisted-token", store.SessionToken())
	})

	t.Run("no_session", func(t *testing.T) {
		store := newStore(newScriptedGateway(), &memoryProfileRepository{profiles: map[string]*profile.Profile{}})
		defer store.Close()

		store.Bootstrap(context.Background(), "")
		assert.False(t, store.Loading())
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("resolver_failure_degrades", func(t *testing.T) {
		gateway := newScriptedGateway()
		gateway.currentIdentity = &auth.Identity{ID: "id-6", Email: "flaky@example.com"}

		repository := &memoryProfileRepository{failWith: errors.New("connection reset")}

		store := newStore(gateway, repository)
		defer store.Close()

		store.Bootstrap(context.Background(), "persisted-token")
		assert.False(t, store.Loading(), "loading clears even on the failure path")
		assert.False(t, store.IsAuthenticated())
	})
}

// # Change Notifications

/*
TestSessionStore_SignedOutIdempotent checks that a SIGNED_OUT notification
arriving while both fields are already absent is a no-op.
*/
func TestSessionStore_SignedOutIdempotent(t *testing.T) {
	gateway := newScriptedGateway()
	store := newStore(gateway, &memoryProfileRepository{profiles: map[string]*profile.Profile{}})
	defer store.Close()

	gateway.broadcaster.Publish(auth.Event{Kind: auth.EventSignedOut})
	gateway.broadcaster.Publish(auth.Event{Kind: auth.EventSignedOut})

	assert.False(t, store.IsAuthenticated())
	_, hasUser := store.User()
	assert.False(t, hasUser)
}

/*
TestSessionStore_EventAfterClose checks the liveness guard: a notification
arriving after teardown produces no state mutation.
*/
func TestSessionStore_EventAfterClose(t *testing.T) {
	gateway := newScriptedGateway()
	store := newStore(gateway, &memoryProfileRepository{profiles: map[string]*profile.Profile{}})

	store.Close()
	gateway.broadcaster.Publish(auth.Event{
		Kind:     auth.EventSignedIn,
		Identity: &auth.Identity{ID: "late", Email: "late@example.com"},
	})

	_, hasUser := store.User()
	assert.False(t, hasUser, "events after Close mutate nothing")
}

/*
TestSessionStore_SignedInDoesNotFetchProfile checks that the listener adopts
the identity only: profile population belongs exclusively to Login.
*/
func TestSessionStore_SignedInDoesNotFetchProfile(t *testing.T) {
	gateway := newScriptedGateway()
	repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{
		"id-7": activeProfile("id-7", sec.RoleStudent),
	}}

	store := newStore(gateway, repository)
	defer store.Close()

	gateway.broadcaster.Publish(auth.Event{
		Kind:     auth.EventSignedIn,
		Identity: &auth.Identity{ID: "id-7", Email: "pushed@example.com"},
	})

	_, hasUser := store.User()
	_, hasProfile := store.Profile()
	assert.True(t, hasUser, "the pushed identity is adopted")
	assert.False(t, hasProfile, "the listener never resolves a profile")
	assert.False(t, store.IsAuthenticated())
}
