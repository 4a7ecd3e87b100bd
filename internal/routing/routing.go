// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

/*
Package routing decides where an authenticated (or anonymous) session may go.

It holds the two pure pieces of the navigation model: the role-to-landing
mapping and the guard evaluation that protects restricted screens. Neither
performs I/O; the caller supplies a session view and acts on the returned
decision.
*/
package routing

import (
	"github.com/jaferpilakkal/tuition-lms/internal/platform/constants"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
)

// # Role Router

/*
LandingPath maps a role to its landing route.

Description: Pure mapping, no side effects. Anything outside the closed role
set (including absent, modeled by an invalid zero value) lands on the login
entry point. Used both for the root-path redirect and for the post-login
redirect.

Parameters:
  - role: sec.Role

Returns:
  - string: The landing route for the role
*/
func LandingPath(role sec.Role) string {
	switch role {
	case sec.RoleAdmin:
		return constants.RouteAdmin
	case sec.RoleTeacher:
		return constants.RouteTeacher
	case sec.RoleStudent:
		return constants.RouteStudent
	default:
		return constants.RouteLogin
	}
}

// # Route Guard

// Session is the read-only view of authentication state the guard consumes.
type Session interface {
	// Loading reports whether the session is still being established.
	Loading() bool

	// IsAuthenticated reports whether both identity and profile are present.
	IsAuthenticated() bool

	// Role returns the session's role, if a profile is present.
	Role() (sec.Role, bool)
}

// Outcome enumerates what the guard tells the caller to do.
type Outcome int

const (
	// OutcomeWait renders a blocking wait state; never a redirect.
	OutcomeWait Outcome = iota

	// OutcomeRedirect sends the caller to Decision.Location.
	OutcomeRedirect

	// OutcomeAllow renders the protected content.
	OutcomeAllow
)

// Decision is the guard's verdict for one access attempt.
type Decision struct {
	Outcome Outcome

	// Location is the redirect target when Outcome is OutcomeRedirect.
	Location string

	// From preserves the originally requested location for an optional
	// post-login return. Set only on the unauthenticated redirect.
	From string
}

/*
Evaluate gates access to a screen restricted to the given roles.

Description: The checks run in strict order: a loading session always waits;
an unauthenticated session is sent to login with the originating location
preserved; an authenticated session outside a non-empty permitted set is
sent to its own role's landing route (or to login if the role is
unrecognized); everything else is allowed. An empty permitted set means
"any authenticated role".

Parameters:
  - session: Session
  - permitted: []sec.Role (empty = any authenticated role)
  - from: string (the originally requested location)

Returns:
  - Decision: What the caller should do
*/
func Evaluate(session Session, permitted []sec.Role, from string) Decision {

	// 1. Loading wins over everything: never redirect a session that is
	//    still being established.
	if session.Loading() {
		return Decision{Outcome: OutcomeWait}
	}

	// 2. Unauthenticated sessions go to login, remembering where they
	//    were headed.
	if !session.IsAuthenticated() {
		return Decision{Outcome: OutcomeRedirect, Location: constants.RouteLogin, From: from}
	}

	// 3. Role gate. A session with the wrong role is sent home, not to
	//    login; an unrecognized role falls through LandingPath to login.
	if len(permitted) > 0 {
		role, ok := session.Role()
		if !ok || !allowed(role, permitted) {
			return Decision{Outcome: OutcomeRedirect, Location: LandingPath(role)}
		}
	}

	// 4. Render the protected content.
	return Decision{Outcome: OutcomeAllow}
}

// allowed reports set membership of role in permitted.
func allowed(role sec.Role, permitted []sec.Role) bool {
	for _, candidate := range permitted {
		if role == candidate {
			return true
		}
	}
	return false
}
