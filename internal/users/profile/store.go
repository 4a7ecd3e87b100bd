// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile

import (
	"context"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
)

// # Profile Data Access

// Repository defines the data access contract for domain profiles.
type Repository interface {

	/*
		FindByID returns the profile with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	/*
		List returns all profiles, optionally filtered by role.

		Parameters:
		  - context: context.Context
		  - role: sec.Role (empty string = all roles)

		Returns:
		  - []*Profile: Profiles ordered by name
		  - error: Database retrieval failures
	*/
	List(context context.Context, role sec.Role) ([]*Profile, error)

	/*
		Create persists a new profile together with its credential account
		in a single transaction.

		Parameters:
		  - context: context.Context
		  - profile: *Profile
		  - passwordHash: string (bcrypt hash for the paired account row)

		Returns:
		  - error: Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, profile *Profile, passwordHash string) error

	/*
		Update persists changes to a profile's name and role.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, profile *Profile) error

	/*
		SetActive flips the profile's active flag.

		Parameters:
		  - context: context.Context
		  - id: string
		  - isActive: bool

		Returns:
		  - error: Persistence failures
	*/
	SetActive(context context.Context, id string, isActive bool) error
}
