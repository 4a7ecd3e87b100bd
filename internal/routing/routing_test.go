// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/routing"
)

// stubSession is a fixed-state routing.Session.
type stubSession struct {
	loading       bool
	authenticated bool
	role          sec.Role
	hasRole       bool
}

func (session stubSession) Loading() bool         { return session.loading }
func (session stubSession) IsAuthenticated() bool { return session.authenticated }
func (session stubSession) Role() (sec.Role, bool) {
	return session.role, session.hasRole
}

/*
TestLandingPath verifies the closed role-to-route mapping: each known role
gets its fixed landing route and everything else lands on login.
*/
func TestLandingPath(t *testing.T) {
	tests := []struct {
		name string
		role sec.Role
		want string
	}{
		{"admin", sec.RoleAdmin, "/admin"},
		{"teacher", sec.RoleTeacher, "/teacher"},
		{"student", sec.RoleStudent, "/student"},
		{"unknown", sec.Role("superuser"), "/login"},
		{"absent", sec.Role(""), "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routing.LandingPath(tt.role))
		})
	}
}

/*
TestEvaluate_Loading checks that a loading session always waits and never
redirects, regardless of authentication state.
*/
func TestEvaluate_Loading(t *testing.T) {
	sessions := map[string]stubSession{
		"loading_anonymous":     {loading: true},
		"loading_authenticated": {loading: true, authenticated: true, role: sec.RoleAdmin, hasRole: true},
	}

	for name, session := range sessions {
		t.Run(name, func(t *testing.T) {
			decision := routing.Evaluate(session, []sec.Role{sec.RoleAdmin}, "/admin/users")
			assert.Equal(t, routing.OutcomeWait, decision.Outcome)
			assert.Empty(t, decision.Location)
		})
	}
}

/*
TestEvaluate_Unauthenticated checks the login redirect and that the
originating location is preserved for a post-login return.
*/
func TestEvaluate_Unauthenticated(t *testing.T) {
	session := stubSession{}

	decision := routing.Evaluate(session, nil, "/teacher/classes")
	assert.Equal(t, routing.OutcomeRedirect, decision.Outcome)
	assert.Equal(t, "/login", decision.Location)
	assert.Equal(t, "/teacher/classes", decision.From)
}

/*
TestEvaluate_RoleMismatch checks that an authenticated session with the
wrong role is sent to its own landing route, not back to login.
*/
func TestEvaluate_RoleMismatch(t *testing.T) {
	session := stubSession{authenticated: true, role: sec.RoleTeacher, hasRole: true}

	decision := routing.Evaluate(session, []sec.Role{sec.RoleStudent}, "/student")
	assert.Equal(t, routing.OutcomeRedirect, decision.Outcome)
	assert.Equal(t, "/teacher", decision.Location)
	assert.Empty(t, decision.From, "role redirects do not carry the origin")
}

/*
TestEvaluate_UnrecognizedRole checks that a role outside the closed set is
sent to login rather than falling through an unhandled default.
*/
func TestEvaluate_UnrecognizedRole(t *testing.T) {
	t.Run("unknown_role", func(t *testing.T) {
		session := stubSession{authenticated: true, role: sec.Role("ghost"), hasRole: true}
		decision := routing.Evaluate(session, []sec.Role{sec.RoleAdmin}, "/admin")
		assert.Equal(t, routing.OutcomeRedirect, decision.Outcome)
		assert.Equal(t, "/login", decision.Location)
	})

	t.Run("absent_role", func(t *testing.T) {
		session := stubSession{authenticated: true}
		decision := routing.Evaluate(session, []sec.Role{sec.RoleAdmin}, "/admin")
		assert.Equal(t, routing.OutcomeRedirect, decision.Outcome)
		assert.Equal(t, "/login", decision.Location)
	})
}

/*
TestEvaluate_Allowed checks the allow paths: matching role, and the empty
permitted set meaning any authenticated role.
*/
func TestEvaluate_Allowed(t *testing.T) {
	t.Run("matching_role", func(t *testing.T) {
		session := stubSession{authenticated: true, role: sec.RoleStudent, hasRole: true}
		decision := routing.Evaluate(session, []sec.Role{sec.RoleStudent}, "/student")
		assert.Equal(t, routing.OutcomeAllow, decision.Outcome)
	})

	t.Run("any_authenticated", func(t *testing.T) {
		session := stubSession{authenticated: true, role: sec.RoleTeacher, hasRole: true}
		decision := routing.Evaluate(session, nil, "/dashboard")
		assert.Equal(t, routing.OutcomeAllow, decision.Outcome)
	})
}
