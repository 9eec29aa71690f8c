// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to a caller.
type UserRole string

const (
	// Unrestricted catalog access
	RoleAdmin UserRole = "admin"

	// Ingestion clients (scanner, metadata matcher) authenticated by API key
	RoleIngestion UserRole = "ingestion"

	// Default role for listeners
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleIngestion:
		return 30
	case RoleMember:
		return 10
	default:
		return 0
	}
}
