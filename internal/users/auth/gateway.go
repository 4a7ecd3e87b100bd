// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

// # Gateway Contract

// RequestMeta carries transport attributes recorded against a session.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// Gateway abstracts the credential provider behind a small session-oriented
// contract.
//
// Change notifications are pushed to subscribers asynchronously relative to
// the explicit calls: a subscriber must treat every event as an independent,
// possibly-redundant signal and must tolerate events arriving after its own
// teardown.
type Gateway interface {

	/*
		CurrentSession reads any existing persisted session for the token.

		Description: Used only at bootstrap. Never fails on "no session":
		absence, expiry, revocation, and transport failures all collapse to
		(nil, false), with transport failures logged.

		Parameters:
		  - context: context.Context
		  - sessionToken: string (raw token from the client)

		Returns:
		  - *Identity: The principal owning the session
		  - bool: Whether a live session exists
	*/
	CurrentSession(context context.Context, sessionToken string) (*Identity, bool)

	/*
		SignIn validates credentials and establishes a new persisted session.

		Parameters:
		  - context: context.Context
		  - email: string
		  - password: string
		  - meta: RequestMeta

		Returns:
		  - *Identity: The authenticated principal
		  - string: Raw session token for the client to hold
		  - error: apperr.InvalidCredentials when the pair is rejected,
		    apperr.Provider for transport or storage failures
	*/
	SignIn(context context.Context, email, password string, meta RequestMeta) (*Identity, string, error)

	/*
		SignOut invalidates the persisted session for the token.

		Description: Idempotent. An unknown or already-dead token is a
		successful sign-out.

		Parameters:
		  - context: context.Context
		  - sessionToken: string

		Returns:
		  - error: apperr.Provider if revocation itself fails
	*/
	SignOut(context context.Context, sessionToken string) error

	/*
		Subscribe registers a listener for session state transitions.

		Parameters:
		  - listener: Listener

		Returns:
		  - func(): Unsubscribe handle
	*/
	Subscribe(listener Listener) func()
}

// # Password Gateway

// PasswordGateway implements Gateway against the Postgres credential store,
// the session table, and the Redis session index.
type PasswordGateway struct {
	accounts    AccountRepository
	sessions    SessionRepository
	cache       SessionCache
	broadcaster *Broadcaster
	logger      *slog.Logger
}

// NewPasswordGateway constructs a [PasswordGateway] with its dependencies.
func NewPasswordGateway(
	accounts AccountRepository,
	sessions SessionRepository,
	cache SessionCache,
	logger *slog.Logger,
) *PasswordGateway {
	return &PasswordGateway{
		accounts:    accounts,
		sessions:    sessions,
		cache:       cache,
		broadcaster: NewBroadcaster(),
		logger:      logger,
	}
}

// CurrentSession implements the passive bootstrap read. See [Gateway].
func (gateway *PasswordGateway) CurrentSession(context context.Context, sessionToken string) (*Identity, bool) {
	if sessionToken == "" {
		return nil, false
	}

	tokenHash := sec.HashToken(sessionToken)

	// Fast path: the Redis index maps the hash straight to an account.
	accountID, err := gateway.cache.Get(context, tokenHash)
	if err != nil {
		if !apperr.IsCode(err, apperr.CodeNotFound) {
			gateway.logger.Warn("session_cache_lookup_failed", slog.Any("error", err))
		}

		// Fall back to Postgres: the index is best-effort, not authoritative.
		session, err := gateway.sessions.FindByTokenHash(context, tokenHash)
		if err != nil {
			if !apperr.IsCode(err, apperr.CodeNotFound) {
				gateway.logger.Warn("session_lookup_failed", slog.Any("error", err))
			}
			return nil, false
		}
		accountID = session.AccountID

		// Repopulate the index for the remaining session lifetime.
		if ttl := time.Until(session.ExpiresAt); ttl > 0 {
			_ = gateway.cache.Set(context, tokenHash, accountID, ttl)
		}
	}

	account, err := gateway.accounts.FindByID(context, accountID)
	if err != nil {
		if !apperr.IsCode(err, apperr.CodeNotFound) {
			gateway.logger.Warn("session_account_lookup_failed", slog.Any("error", err))
		}
		return nil, false
	}

	return account.Identity(), true
}

// SignIn implements credential validation and session creation. See [Gateway].
func (gateway *PasswordGateway) SignIn(context context.Context, email, password string, meta RequestMeta) (*Identity, string, error) {

	// If the account does not exist we still report InvalidCredentials.
	// Generic message to prevent enumeration; transport failures surface
	// as Provider errors instead.
	account, err := gateway.accounts.FindByEmail(context, email)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, "", apperr.InvalidCredentials()
		}
		return nil, "", apperr.Provider(err)
	}

	// Constant-time comparison in bcrypt to prevent timing attacks.
	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, "", apperr.InvalidCredentials()
	}

	// Mint the raw session token the client will hold.
	sessionToken, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, "", apperr.Provider(err)
	}

	// Persist the tracking session under the token's hash.
	expiresAt := time.Now().Add(SessionTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		AccountID: account.ID,
		TokenHash: sec.HashToken(sessionToken),
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := gateway.sessions.Create(context, session); err != nil {
		return nil, "", apperr.Provider(err)
	}

	// Index the session in Redis. Best-effort: a failure here only costs
	// the fast path on the next bootstrap.
	if err := gateway.cache.Set(context, session.TokenHash, account.ID, SessionTokenTTL); err != nil {
		gateway.logger.Warn("session_cache_set_failed", slog.Any("error", err))
	}

	identity := account.Identity()
	gateway.broadcaster.Publish(Event{Kind: EventSignedIn, Identity: identity})

	return identity, sessionToken, nil
}

// SignOut implements session invalidation. See [Gateway].
func (gateway *PasswordGateway) SignOut(context context.Context, sessionToken string) error {
	tokenHash := sec.HashToken(sessionToken)

	session, err := gateway.sessions.FindByTokenHash(context, tokenHash)
	if err != nil {
		// Already gone or never existed: logout is idempotent. The signed-out
		// announcement still fires so subscribers converge on cleared state.
		if apperr.IsCode(err, apperr.CodeNotFound) {
			gateway.broadcaster.Publish(Event{Kind: EventSignedOut})
			return nil
		}
		return apperr.Provider(err)
	}

	if err := gateway.sessions.Revoke(context, session.ID); err != nil {
		return apperr.Provider(err)
	}

	if err := gateway.cache.Delete(context, tokenHash); err != nil {
		gateway.logger.Warn("session_cache_delete_failed", slog.Any("error", err))
	}

	gateway.broadcaster.Publish(Event{Kind: EventSignedOut})

	return nil
}

// Subscribe registers a session change listener. See [Gateway].
func (gateway *PasswordGateway) Subscribe(listener Listener) func() {
	return gateway.broadcaster.Subscribe(listener)
}
