// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

// # Session Store

// SessionStore is the owned, single-writer pairing of Identity and Profile
// that the rest of the application reads its authentication state from.
//
// # Lifecycle
//
// Construction subscribes to the Gateway's change notifications; Close
// unsubscribes and flips an internal liveness flag so any in-flight
// asynchronous step becomes a no-op on completion. A store is built for one
// principal's session: redundant SignedIn announcements for that principal
// are tolerated, and announcements for anyone else are ignored.
//
// # Writers
//
// The three state fields are mutated only from Bootstrap, Login, Logout,
// and the change-notification listener. No other code path writes them.
type SessionStore struct {
	gateway  Gateway
	resolver *profile.Resolver
	logger   *slog.Logger

	mutex        sync.Mutex
	user         *Identity
	profile      *profile.Profile
	loading      bool
	sessionToken string
	alive        bool
	unsubscribe  func()
}

// NewSessionStore constructs a [SessionStore] and registers its Gateway
// listener for the lifetime of the store.
func NewSessionStore(gateway Gateway, resolver *profile.Resolver, logger *slog.Logger) *SessionStore {
	store := &SessionStore{
		gateway:  gateway,
		resolver: resolver,
		logger:   logger,
		alive:    true,
	}
	store.unsubscribe = gateway.Subscribe(store.onAuthStateChange)
	return store
}

// # Lifecycle

/*
Bootstrap hydrates the store from any existing persisted session.

Description: Runs once, after construction. Reads the persisted session for
the token, resolves its profile, and commits both; if either step comes back
absent, both fields stay cleared. Loading is held true for the whole
sequence and cleared unconditionally at the end, so a reader never observes
a "not loading but not yet resolved" state. Gateway and resolver failures
here are swallowed: passive bootstrap degrades to "not authenticated",
never to an error.

Parameters:
  - context: context.Context
  - sessionToken: string (raw token from the client, may be empty)
*/
func (store *SessionStore) Bootstrap(context context.Context, sessionToken string) {

	// ── 1. Enter the loading state ───────────────────────────────────────
	store.mutex.Lock()
	if !store.alive {
		store.mutex.Unlock()
		return
	}
	store.loading = true
	store.mutex.Unlock()

	// ── 2. Read the persisted session, then join its profile ─────────────
	// Both are network-bound; the lock is never held across them.
	var user *Identity
	var resolved *profile.Profile

	if identity, ok := store.gateway.CurrentSession(context, sessionToken); ok {
		if found, ok := store.resolver.Resolve(context, identity.ID); ok {
			user = identity
			resolved = found
		}
	}

	// ── 3. Commit and clear loading, success or not ──────────────────────
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if !store.alive {
		return
	}
	if user != nil {
		store.user = user
		store.profile = resolved
		store.sessionToken = sessionToken
	}
	store.loading = false
}

// Close tears the store down. Any notification or in-flight fetch result
// arriving afterwards produces no state mutation.
func (store *SessionStore) Close() {
	store.mutex.Lock()
	store.alive = false
	unsubscribe := store.unsubscribe
	store.unsubscribe = nil
	store.mutex.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// # Explicit Transitions

/*
Login orchestrates sign-in, profile resolution, and the active-flag check.

Description: Loading is true for the duration. The identity and profile are
committed together only after every check passes; no failure path leaves one
without the other. An inactive profile reverses the sign-in with a
compensating sign-out so no "half authenticated" persisted session survives.

Parameters:
  - context: context.Context
  - email: string
  - password: string
  - meta: RequestMeta

Returns:
  - *Identity: The authenticated principal
  - *profile.Profile: The joined domain profile
  - string: Raw session token for the client to hold
  - error: apperr.InvalidCredentials, apperr.ProfileNotFound,
    apperr.AccountDeactivated, or apperr.Provider
*/
func (store *SessionStore) Login(context context.Context, email, password string, meta RequestMeta) (*Identity, *profile.Profile, string, error) {

	// ── 1. Enter the loading state ───────────────────────────────────────
	store.mutex.Lock()
	store.loading = true
	store.mutex.Unlock()
	defer func() {
		store.mutex.Lock()
		store.loading = false
		store.mutex.Unlock()
	}()

	// ── 2. Validate credentials with the Gateway ─────────────────────────
	identity, sessionToken, err := store.gateway.SignIn(context, email, password, meta)
	if err != nil {
		return nil, nil, "", err
	}

	// ── 3. Join the domain profile ───────────────────────────────────────
	resolved, ok := store.resolver.Resolve(context, identity.ID)
	if !ok {
		return nil, nil, "", apperr.ProfileNotFound()
	}

	// ── 4. Enforce the active flag, reversing the sign-in on failure ─────
	if !resolved.IsActive {
		if err := store.gateway.SignOut(context, sessionToken); err != nil {
			store.logger.Warn("compensating_signout_failed", slog.Any("error", err))
		}
		return nil, nil, "", apperr.AccountDeactivated()
	}

	// ── 5. Commit both fields atomically ─────────────────────────────────
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.alive {
		store.user = identity
		store.profile = resolved
		store.sessionToken = sessionToken
	}

	return identity, resolved, sessionToken, nil
}

/*
Logout invalidates the persisted session and clears the store.

Description: If sign-out itself fails the error propagates and the store's
state is left unchanged; it is never silently cleared.

Parameters:
  - context: context.Context

Returns:
  - error: apperr.Provider if revocation fails
*/
func (store *SessionStore) Logout(context context.Context) error {
	store.mutex.Lock()
	sessionToken := store.sessionToken
	store.mutex.Unlock()

	if err := store.gateway.SignOut(context, sessionToken); err != nil {
		return err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.user = nil
	store.profile = nil
	store.sessionToken = ""

	return nil
}

// # Change Notifications

// onAuthStateChange handles Gateway announcements. Each event is idempotent
// and independent of the explicit calls it may overlap with.
func (store *SessionStore) onAuthStateChange(event Event) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	// Liveness guard: events after Close mutate nothing.
	if !store.alive {
		return
	}

	switch event.Kind {
	case EventSignedIn:
		// Announcements for a different principal are not ours to act on.
		if store.user != nil && event.Identity != nil && store.user.ID != event.Identity.ID {
			return
		}
		// Adopt the identity only. Profile population belongs exclusively
		// to the explicit Login call; fetching here would race its own
		// lookup and active-flag check.
		store.user = event.Identity

	case EventSignedOut:
		// Idempotent clear: already-absent fields stay absent.
		store.user = nil
		store.profile = nil
		store.sessionToken = ""
	}
}

// # Accessors

// User returns the current Identity, if present.
func (store *SessionStore) User() (*Identity, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.user, store.user != nil
}

// Profile returns the current Profile, if present.
func (store *SessionStore) Profile() (*profile.Profile, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.profile, store.profile != nil
}

// Loading reports whether a bootstrap or login sequence is in flight.
func (store *SessionStore) Loading() bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.loading
}

// IsAuthenticated is true iff both Identity and Profile are present. The
// active flag is not re-checked here beyond what Login already enforced; a
// mid-session deactivation takes effect on the next explicit login.
func (store *SessionStore) IsAuthenticated() bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.user != nil && store.profile != nil
}

// Role returns the current profile's role, if a profile is present.
func (store *SessionStore) Role() (sec.Role, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.profile == nil {
		return "", false
	}
	return store.profile.Role, true
}

// SessionToken returns the raw session token held for the current login.
func (store *SessionStore) SessionToken() string {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.sessionToken
}
