// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/auth"
)

// # In-Memory Stores

type memoryAccountRepository struct {
	byID    map[string]*auth.Account
	byEmail map[string]*auth.Account
	failing bool
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{byID: map[string]*auth.Account{}, byEmail: map[string]*auth.Account{}}
}

func (repository *memoryAccountRepository) add(account *auth.Account) {
	repository.byID[account.ID] = account
	repository.byEmail[account.Email] = account
}

func (repository *memoryAccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	if repository.failing {
		return nil, errors.New("connection reset")
	}
	found, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return found, nil
}

func (repository *memoryAccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	if repository.failing {
		return nil, errors.New("connection reset")
	}
	found, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return found, nil
}

type memorySessionRepository struct {
	byHash map[string]*auth.Session
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{byHash: map[string]*auth.Session{}}
}

func (repository *memorySessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.byHash[session.TokenHash] = session
	return nil
}

func (repository *memorySessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	found, ok := repository.byHash[tokenHash]
	if !ok || found.IsRevoked || !found.ExpiresAt.After(time.Now()) {
		return nil, apperr.NotFound("Session")
	}
	return found, nil
}

func (repository *memorySessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range repository.byHash {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repository *memorySessionRepository) RevokeAll(_ context.Context, accountID string) error {
	for _, session := range repository.byHash {
		if session.AccountID == accountID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repository *memorySessionRepository) DeleteExpired(context.Context) error { return nil }

type memorySessionCache struct {
	entries map[string]string
}

func newMemorySessionCache() *memorySessionCache {
	return &memorySessionCache{entries: map[string]string{}}
}

func (cache *memorySessionCache) Set(_ context.Context, tokenHash, accountID string, _ time.Duration) error {
	cache.entries[tokenHash] = accountID
	return nil
}

func (cache *memorySessionCache) Get(_ context.Context, tokenHash string) (string, error) {
	accountID, ok := cache.entries[tokenHash]
	if !ok {
		return "", apperr.NotFound("Session is invalid or expired")
	}
	return accountID, nil
}

func (cache *memorySessionCache) Delete(_ context.Context, tokenHash string) error {
	delete(cache.entries, tokenHash)
	return nil
}

// # Fixtures

func seededGateway(t *testing.T) (*auth.PasswordGateway, *memoryAccountRepository, *memorySessionRepository, *memorySessionCache) {
	t.Helper()

	accounts := newMemoryAccountRepository()
	hash, err := sec.HashPassword("open-sesame")
	require.NoError(t, err)
	accounts.add(&auth.Account{ID: "acct-1", Email: "amina@example.com", PasswordHash: hash})

	sessions := newMemorySessionRepository()
	cache := newMemorySessionCache()
	gateway := auth.NewPasswordGateway(accounts, sessions, cache, discardLogger)

	return gateway, accounts, sessions, cache
}

// # Sign-In

/*
TestPasswordGateway_SignIn covers credential validation: success persists a
session and announces it, while unknown emails and wrong passwords both
collapse to the same InvalidCredentials error.
*/
func TestPasswordGateway_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gateway, _, sessions, cache := seededGateway(t)

		var received []auth.Event
		unsubscribe := gateway.Subscribe(func(event auth.Event) { received = append(received, event) })
		defer unsubscribe()

		identity, sessionToken, err := gateway.SignIn(context.Background(), "amina@example.com", "open-sesame", auth.RequestMeta{})
		require.NoError(t, err)
		assert.Equal(t, "acct-1", identity.ID)
		require.NotEmpty(t, sessionToken)

		// The session row is stored under the token's hash, never the raw token.
		tokenHash := sec.HashToken(sessionToken)
		_, ok := sessions.byHash[tokenHash]
		assert.True(t, ok)
		assert.Equal(t, "acct-1", cache.entries[tokenHash])

		require.Len(t, received, 1)
		assert.Equal(t, auth.EventSignedIn, received[0].Kind)
		assert.Equal(t, "acct-1", received[0].Identity.ID)
	})

	t.Run("unknown_email", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		_, _, err := gateway.SignIn(context.Background(), "nobody@example.com", "open-sesame", auth.RequestMeta{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))
	})

	t.Run("wrong_password", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		_, _, err := gateway.SignIn(context.Background(), "amina@example.com", "not-it", auth.RequestMeta{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))
	})

	t.Run("transport_failure", func(t *testing.T) {
		gateway, accounts, _, _ := seededGateway(t)
		accounts.failing = true
		_, _, err := gateway.SignIn(context.Background(), "amina@example.com", "open-sesame", auth.RequestMeta{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeProviderError))
	})
}

// # Session Reads

/*
TestPasswordGateway_CurrentSession covers the passive bootstrap read: the
cached fast path, the Postgres fallback on a cache miss, and the
never-fails contract for absent or broken sessions.
*/
func TestPasswordGateway_CurrentSession(t *testing.T) {
	t.Run("cached", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		_, sessionToken, err := gateway.SignIn(context.Background(), "amina@example.com", "open-sesame", auth.RequestMeta{})
		require.NoError(t, err)

		identity, ok := gateway.CurrentSession(context.Background(), sessionToken)
		require.True(t, ok)
		assert.Equal(t, "acct-1", identity.ID)
	})

	t.Run("cache_miss_falls_back", func(t *testing.T) {
		gateway, _, _, cache := seededGateway(t)
		_, sessionToken, err := gateway.SignIn(context.Background(), "amina@example.com", "open-sesame", auth.RequestMeta{})
		require.NoError(t, err)

		// Simulate Redis eviction; Postgres remains authoritative.
		cache.entries = map[string]string{}

		identity, ok := gateway.CurrentSession(context.Background(), sessionToken)
		require.True(t, ok)
		assert.Equal(t, "acct-1", identity.ID)

		// The fallback repopulates the index.
		assert.NotEmpty(t, cache.entries)
	})

	t.Run("empty_token", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		_, ok := gateway.CurrentSession(context.Background(), "")
		assert.False(t, ok)
	})

	t.Run("unknown_token", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		_, ok := gateway.CurrentSession(context.Background(), "never-issued")
		assert.False(t, ok)
	})

	t.Run("account_lookup_failure_degrades", func(t *testing.T) {
		gateway, accounts, _, _ := seededGateway(t)
		_, sessionToken, err := gateway.SignIn(context.Background(), "amina@example.com", "open-sesame", auth.RequestMeta{})
		require.NoError(t, err)

		accounts.failing = true
		_, ok := gateway.CurrentSession(context.Background(), sessionToken)
		assert.False(t, ok, "transport failures collapse to absent")
	})
}

// # Sign-Out

/*
TestPasswordGateway_SignOut covers revocation: a live session dies and its
token stops resolving, while an unknown token is a successful, idempotent
logout that still announces SIGNED_OUT.
*/
func TestPasswordGateway_SignOut(t *testing.T) {
	t.Run("revokes", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		_, sessionToken, err := gateway.SignIn(context.Background(), "amina@example.com", "open-sesame", auth.RequestMeta{})
		require.NoError(t, err)

		var received []auth.Event
		unsubscribe := gateway.Subscribe(func(event auth.Event) { received = append(received, event) })
		defer unsubscribe()

		require.NoError(t, gateway.SignOut(context.Background(), sessionToken))

		_, ok := gateway.CurrentSession(context.Background(), sessionToken)
		assert.False(t, ok, "a revoked session never resolves again")

		require.Len(t, received, 1)
		assert.Equal(t, auth.EventSignedOut, received[0].Kind)
	})

	t.Run("idempotent", func(t *testing.T) {
		gateway, _, _, _ := seededGateway(t)
		assert.NoError(t, gateway.SignOut(context.Background(), "never-issued"))
	})
}
