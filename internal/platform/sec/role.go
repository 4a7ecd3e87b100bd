// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to a profile.
//
// The set is closed: every switch over Role must handle all three members
// plus a default arm, so an unrecognized value can never silently pass a
// role gate.
type Role string

const (
	// Full management access: users, classes, enrollments
	RoleAdmin Role = "admin"

	// Runs class sessions, marks attendance, assigns and reviews tasks
	RoleTeacher Role = "teacher"

	// Views dashboards, attendance history, submits tasks
	RoleStudent Role = "student"
)

// Roles lists every valid role. Used for validation and exhaustive iteration
// in tests.
func Roles() []Role {
	return []Role{RoleAdmin, RoleTeacher, RoleStudent}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the role.
func (r Role) String() string { return string(r) }
