// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

/*
Package auth implements the identity and session layer of the tuition center.

It defines the authenticated-principal entities (Identity, Account, Session),
the Gateway abstraction over the credential provider, and the SessionStore
state machine that the rest of the application consumes as its single source
of authentication truth.

# Architecture

  - Gateway: sign-in, sign-out, and passive session reads against the
    credential store, with change notifications pushed to subscribers.
  - SessionStore: the owned, single-writer pairing of Identity and Profile
    with an explicit bootstrap/teardown lifecycle.
  - Service: transport-facing orchestration issuing JWT access tokens on top
    of the SessionStore's login flow.

# Review Process

This package is critical for security. Any changes to hashing, session, or
login logic must be reviewed by the security team.
*/
package auth

import "time"

// # Domain Entities

// Identity is the authenticated-principal record returned by the Gateway.
// It carries nothing from the domain: display name, role, and the active
// flag all live on the joined [profile.Profile].
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Account is the credential record backing an Identity.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity derives the transport-safe principal view of the account.
func (account *Account) Identity() *Identity {
	return &Identity{ID: account.ID, Email: account.Email}
}

// Session represents a persisted login session tracked by its token hash.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	TokenHash string    `json:"-"` // Hashed value of the session token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldToken       = "token"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
	FieldProfile     = "profile"
	FieldMessage     = "message"
)
