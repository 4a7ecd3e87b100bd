// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - role: The role of the joined profile.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements the transport-facing authentication use cases on top of
// the SessionStore's orchestration, adding JWT issuance.
type Service struct {
	gateway       Gateway
	resolver      *profile.Resolver
	tokenProvider TokenProvider
	logger        *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	gateway Gateway,
	resolver *profile.Resolver,
	tokenProvider TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		gateway:       gateway,
		resolver:      resolver,
		tokenProvider: tokenProvider,
		logger:        logger,
	}
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	SessionToken          string
	SessionTokenExpiresAt time.Time
	User                  *Identity
	Profile               *profile.Profile
}

// # Authentication Flow

/*
Login runs the full login orchestration and issues an access token.

Description: A short-lived SessionStore carries the sign-in, profile
resolution, and active-flag check, then is torn down; its committed pair
becomes the response. The caller performs the post-login redirect using the
returned profile's role.

Parameters:
  - context: context.Context
  - email: string
  - password: string
  - meta: RequestMeta

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: apperr.InvalidCredentials, apperr.ProfileNotFound,
    apperr.AccountDeactivated, or apperr.Provider
*/
func (service *Service) Login(context context.Context, email, password string, meta RequestMeta) (*LoginSession, error) {
	store := NewSessionStore(service.gateway, service.resolver, service.logger)
	defer store.Close()

	identity, resolved, sessionToken, err := store.Login(context, email, password, meta)
	if err != nil {
		return nil, err
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		identity.ID, identity.Email, string(resolved.Role), AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		SessionToken:          sessionToken,
		SessionTokenExpiresAt: time.Now().Add(SessionTokenTTL),
		User:                  identity,
		Profile:               resolved,
	}, nil
}

/*
Logout invalidates the persisted session behind the token.

Description: Idempotent; an unknown or already-dead token is a successful
logout.

Parameters:
  - context: context.Context
  - sessionToken: string

Returns:
  - error: apperr.Provider if revocation fails
*/
func (service *Service) Logout(context context.Context, sessionToken string) error {
	return service.gateway.SignOut(context, sessionToken)
}

// # Session Bootstrap

// SessionSnapshot is the read-only view of a bootstrapped session.
type SessionSnapshot struct {
	Authenticated bool
	AccessToken   string
	User          *Identity
	Profile       *profile.Profile
}

/*
Resume rebuilds authentication state from a persisted session token.

Description: The once-per-page-load bootstrap. A short-lived SessionStore
runs the bootstrap protocol against the token; if it comes back
authenticated a fresh access token is minted for the client. Gateway and
resolver failures degrade to an unauthenticated snapshot, never an error.

Parameters:
  - context: context.Context
  - sessionToken: string (may be empty)

Returns:
  - *SessionSnapshot: Authentication state for the client
  - error: Token signing failures only
*/
func (service *Service) Resume(context context.Context, sessionToken string) (*SessionSnapshot, error) {
	store := NewSessionStore(service.gateway, service.resolver, service.logger)
	defer store.Close()

	store.Bootstrap(context, sessionToken)

	identity, ok := store.User()
	if !ok || !store.IsAuthenticated() {
		return &SessionSnapshot{Authenticated: false}, nil
	}
	resolved, _ := store.Profile()

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		identity.ID, identity.Email, string(resolved.Role), AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_resume_token_failed: %w", err)
	}

	return &SessionSnapshot{
		Authenticated: true,
		AccessToken:   accessToken,
		User:          identity,
		Profile:       resolved,
	}, nil
}
