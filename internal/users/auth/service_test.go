// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/auth"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

// staticTokenProvider mints predictable tokens for assertions.
type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	return "jwt:" + userID + ":" + role, nil
}

func newService(gateway auth.Gateway, repository profile.Repository) *auth.Service {
	resolver := profile.NewResolver(repository, discardLogger)
	return auth.NewService(gateway, resolver, staticTokenProvider{}, discardLogger)
}

/*
TestService_Login verifies the success path issues an access token alongside
the committed pair, and that orchestration failures pass through untouched.
*/
func TestService_Login(t *testing.T) {
	gateway := newScriptedGateway()
	gateway.identity = &auth.Identity{ID: "id-9", Email: "s@example.com"}
	gateway.sessionToken = "token-9"

	repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{
		"id-9": activeProfile("id-9", sec.RoleStudent),
	}}

	service := newService(gateway, repository)

	session, err := service.Login(context.Background(), "s@example.com", "secret", auth.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "jwt:id-9:student", session.AccessToken)
	assert.Equal(t, "token-9", session.SessionToken)
	assert.Equal(t, "id-9", session.User.ID)
	assert.Equal(t, sec.RoleStudent, session.Profile.Role)
	assert.True(t, session.SessionTokenExpiresAt.After(time.Now()))

	t.Run("orchestration_error_passes_through", func(t *testing.T) {
		gateway.signInErr = apperr.InvalidCredentials()
		_, err := service.Login(context.Background(), "s@example.com", "wrong", auth.RequestMeta{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))
	})
}

/*
TestService_Resume verifies the bootstrap read: a live session yields an
authenticated snapshot with a fresh token, while absence and resolver
failures degrade to unauthenticated snapshots without error.
*/
func TestService_Resume(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		gateway := newScriptedGateway()
		gateway.currentIdentity = &auth.Identity{ID: "id-10", Email: "back@example.com"}

		repository := &memoryProfileRepository{profiles: map[string]*profile.Profile{
			"id-10": activeProfile("id-10", sec.RoleAdmin),
		}}

		service := newService(gateway, repository)
		snapshot, err := service.Resume(context.Background(), "persisted")
		require.NoError(t, err)
		assert.True(t, snapshot.Authenticated)
		assert.Equal(t, "jwt:id-10:admin", snapshot.AccessToken)
		assert.Equal(t, "id-10", snapshot.User.ID)
	})

	t.Run("no_session", func(t *testing.T) {
		service := newService(newScriptedGateway(), &memoryProfileRepository{profiles: map[string]*profile.Profile{}})
		snapshot, err := service.Resume(context.Background(), "")
		require.NoError(t, err)
		assert.False(t, snapshot.Authenticated)
		assert.Empty(t, snapshot.AccessToken)
	})

	t.Run("orphaned_identity", func(t *testing.T) {
		gateway := newScriptedGateway()
		gateway.currentIdentity = &auth.Identity{ID: "ghost", Email: "ghost@example.com"}

		service := newService(gateway, &memoryProfileRepository{profiles: map[string]*profile.Profile{}})
		snapshot, err := service.Resume(context.Background(), "persisted")
		require.NoError(t, err)
		assert.False(t, snapshot.Authenticated, "an identity without a profile is not authenticated")
	})
}
