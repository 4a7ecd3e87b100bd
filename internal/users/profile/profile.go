// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

/*
Package profile implements the domain user record joined to an authenticated
identity.

A Profile carries everything the application knows about a person beyond
their credentials: display name, role, and the active flag that gates login.

# Architecture

The package exposes three collaborators:

  - Resolver: maps an identity ID to a Profile, collapsing every lookup
    failure to "absent" so callers never crash on a missing row.
  - Service: admin-facing user management (list, update, activate/deactivate).
  - Repository: abstracted Postgres access.
*/
package profile

import (
	"time"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
)

// # Domain Entities

// Profile represents the domain user record keyed by an Identity's ID.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      sec.Role  `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the profile domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldPassword = "password"
	FieldIsActive = "is_active"
)
