// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile

import (
	"context"
	"fmt"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

// Service implements administrative user management use cases.
//
// Callers are expected to have already passed the admin role gate; the
// service enforces data rules, not access rules.
type Service struct {
	repository Repository
}

// NewService constructs a new profile [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # User Management Flow

// CreateUserInput holds the data required to enroll a new member of the center.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     sec.Role
}

/*
CreateUser provisions a new account and its public profile in one step.

Description: Hashes the initial password, assigns a time-sortable ID shared
by both rows, and persists them atomically. New users start active.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *Profile: Created entity
  - error: Conflict (duplicate email), validation, or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*Profile, error) {

	if !input.Role.Valid() {
		return nil, apperr.ValidationError("Unknown role: " + string(input.Role))
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization.
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("profile_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	profile := &Profile{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
		IsActive: true,
	}

	if err := service.repository.Create(context, profile, passwordHash); err != nil {
		return nil, err
	}

	return profile, nil
}

/*
GetUser retrieves a single profile by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Profile: Hydrated entity
  - error: NotFound or storage errors
*/
func (service *Service) GetUser(context context.Context, id string) (*Profile, error) {
	return service.repository.FindByID(context, id)
}

/*
ListUsers enumerates every registered profile, optionally filtered by role.

Parameters:
  - context: context.Context
  - role: sec.Role (zero value = all roles)

Returns:
  - []*Profile: Profiles ordered by name
  - error: Validation or storage errors
*/
func (service *Service) ListUsers(context context.Context, role sec.Role) ([]*Profile, error) {
	if role != "" && !role.Valid() {
		return nil, apperr.ValidationError("Unknown role: " + string(role))
	}
	return service.repository.List(context, role)
}

// UpdateUserInput defines the mutable profile fields an admin can change.
type UpdateUserInput struct {
	Name *string
	Role *sec.Role
}

/*
UpdateUser applies partial updates to a user's profile.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateUserInput

Returns:
  - *Profile: The updated profile
  - error: NotFound, validation, or storage errors
*/
func (service *Service) UpdateUser(context context.Context, id string, input UpdateUserInput) (*Profile, error) {

	profile, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperr.ValidationError("Unknown role: " + string(*input.Role))
		}
		profile.Role = *input.Role
	}

	if err := service.repository.Update(context, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

/*
SetUserActive activates or deactivates a user.

Description: Deactivation does not terminate an existing session; the flag is
checked on the user's next explicit login, so access lapses at the latest when
the current session expires.

Parameters:
  - context: context.Context
  - id: string
  - isActive: bool

Returns:
  - error: NotFound or storage errors
*/
func (service *Service) SetUserActive(context context.Context, id string, isActive bool) error {

	// Confirm existence first so the client gets a clean 404 instead of a silent no-op.
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	return service.repository.SetActive(context, id, isActive)
}
