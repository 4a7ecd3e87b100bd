// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

// fakeRepository is an in-memory Repository used to exercise the service.
type fakeRepository struct {
	profiles map[string]*profile.Profile
	emails   map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles: map[string]*profile.Profile{},
		emails:   map[string]bool{},
	}
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	found, ok := repository.profiles[id]
	if !ok {
		return nil, apperr.NotFound("Profile")
	}
	copied := *found
	return &copied, nil
}

func (repository *fakeRepository) List(_ context.Context, role sec.Role) ([]*profile.Profile, error) {
	listed := make([]*profile.Profile, 0)
	for _, found := range repository.profiles {
		if role != "" && found.Role != role {
			continue
		}
		copied := *found
		listed = append(listed, &copied)
	}
	return listed, nil
}

func (repository *fakeRepository) Create(_ context.Context, created *profile.Profile, _ string) error {
	if repository.emails[created.Email] {
		return apperr.Conflict("Email is already registered")
	}
	copied := *created
	repository.profiles[created.ID] = &copied
	repository.emails[created.Email] = true
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, updated *profile.Profile) error {
	copied := *updated
	repository.profiles[updated.ID] = &copied
	return nil
}

func (repository *fakeRepository) SetActive(_ context.Context, id string, isActive bool) error {
	found, ok := repository.profiles[id]
	if !ok {
		return apperr.NotFound("Profile")
	}
	found.IsActive = isActive
	return nil
}

/*
TestService_CreateUser covers provisioning: role validation, activation
default, and duplicate email conflicts.
*/
func TestService_CreateUser(t *testing.T) {
	repository := newFakeRepository()
	service := profile.NewService(repository)

	created, err := service.CreateUser(context.Background(), profile.CreateUserInput{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "correct-horse",
		Role:     sec.RoleTeacher,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, sec.RoleTeacher, created.Role)
	assert.True(t, created.IsActive, "new users must start active")

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.CreateUser(context.Background(), profile.CreateUserInput{
			Name:     "Other",
			Email:    "amina@example.com",
			Password: "correct-horse",
			Role:     sec.RoleStudent,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})

	t.Run("unknown_role", func(t *testing.T) {
		_, err := service.CreateUser(context.Background(), profile.CreateUserInput{
			Name:     "Bad Role",
			Email:    "bad@example.com",
			Password: "correct-horse",
			Role:     sec.Role("superuser"),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

/*
TestService_ListUsers verifies the optional role filter.
*/
func TestService_ListUsers(t *testing.T) {
	repository := newFakeRepository()
	service := profile.NewService(repository)

	seed := []struct {
		email string
		role  sec.Role
	}{
		{"t1@example.com", sec.RoleTeacher},
		{"t2@example.com", sec.RoleTeacher},
		{"s1@example.com", sec.RoleStudent},
	}
	for _, user := range seed {
		_, err := service.CreateUser(context.Background(), profile.CreateUserInput{
			Name: "Seed", Email: user.email, Password: "password-1", Role: user.role,
		})
		require.NoError(t, err)
	}

	all, err := service.ListUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	teachers, err := service.ListUsers(context.Background(), sec.RoleTeacher)
	require.NoError(t, err)
	assert.Len(t, teachers, 2)

	_, err = service.ListUsers(context.Background(), sec.Role("ghost"))
	require.Error(t, err)
}

/*
TestService_UpdateUser verifies partial updates and unknown-user handling.
*/
func TestService_UpdateUser(t *testing.T) {
	repository := newFakeRepository()
	service := profile.NewService(repository)

	created, err := service.CreateUser(context.Background(), profile.CreateUserInput{
		Name: "Before", Email: "u@example.com", Password: "password-1", Role: sec.RoleStudent,
	})
	require.NoError(t, err)

	newName := "After"
	newRole := sec.RoleTeacher
	updated, err := service.UpdateUser(context.Background(), created.ID, profile.UpdateUserInput{
		Name: &newName,
		Role: &newRole,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, sec.RoleTeacher, updated.Role)

	t.Run("unknown_user", func(t *testing.T) {
		_, err := service.UpdateUser(context.Background(), "missing", profile.UpdateUserInput{Name: &newName})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("invalid_role", func(t *testing.T) {
		badRole := sec.Role("ghost")
		_, err := service.UpdateUser(context.Background(), created.ID, profile.UpdateUserInput{Role: &badRole})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

/*
TestService_SetUserActive verifies the deactivation toggle round-trips.
*/
func TestService_SetUserActive(t *testing.T) {
	repository := newFakeRepository()
	service := profile.NewService(repository)

	created, err := service.CreateUser(context.Background(), profile.CreateUserInput{
		Name: "Toggle", Email: "toggle@example.com", Password: "password-1", Role: sec.RoleStudent,
	})
	require.NoError(t, err)

	require.NoError(t, service.SetUserActive(context.Background(), created.ID, false))

	found, err := service.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	require.NoError(t, service.SetUserActive(context.Background(), created.ID, true))

	found, err = service.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, found.IsActive)

	err = service.SetUserActive(context.Background(), "missing", false)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
