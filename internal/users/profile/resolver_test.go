// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

// errorRepository fails every lookup with a transport-style error.
type errorRepository struct {
	profile.Repository
}

func (errorRepository) FindByID(context.Context, string) (*profile.Profile, error) {
	return nil, errors.New("connection reset")
}

/*
TestResolver_Resolve verifies the absent-not-error failure policy: a found
row resolves, while missing rows and transport failures both collapse to
(nil, false).
*/
func TestResolver_Resolve(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("found", func(t *testing.T) {
		repository := newFakeRepository()
		service := profile.NewService(repository)
		created, err := service.CreateUser(context.Background(), profile.CreateUserInput{
			Name: "Resolved", Email: "r@example.com", Password: "password-1", Role: sec.RoleStudent,
		})
		require.NoError(t, err)

		resolver := profile.NewResolver(repository, discard)
		resolved, ok := resolver.Resolve(context.Background(), created.ID)
		require.True(t, ok)
		assert.Equal(t, created.ID, resolved.ID)
		assert.Equal(t, sec.RoleStudent, resolved.Role)
	})

	t.Run("missing_row", func(t *testing.T) {
		resolver := profile.NewResolver(newFakeRepository(), discard)
		resolved, ok := resolver.Resolve(context.Background(), "missing")
		assert.False(t, ok)
		assert.Nil(t, resolved)
	})

	t.Run("transport_failure", func(t *testing.T) {
		resolver := profile.NewResolver(errorRepository{}, discard)
		resolved, ok := resolver.Resolve(context.Background(), "any")
		assert.False(t, ok)
		assert.Nil(t, resolved)
	})
}
