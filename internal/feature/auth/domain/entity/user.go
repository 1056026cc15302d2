// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// Roles a user can hold. The dashboard only admits Admin.
const (
	RoleCustomer = "Customer"
	RoleAdmin    = "Admin"
)

// Account statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User represents a registered user of the back-office.
// FullName doubles as the login identifier.
type User struct {
	ID       uint
	FullName string
	Email    string

	// PasswordHash is always bcrypt output once persisted, never plaintext.
	PasswordHash string

	Phone   string
	Address string
	Image   string
	Role    string
	Status  string

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return strings.EqualFold(u.Status, StatusActive)
}

// IsAdminRole compares case-insensitively; older tokens carry "admin".
func IsAdminRole(role string) bool {
	return strings.EqualFold(role, RoleAdmin)
}

// NormalizeRole maps a role to its canonical spelling.
// The second return value is false when the role is unknown.
func NormalizeRole(role string) (string, bool) {
	switch {
	case strings.EqualFold(role, RoleCustomer):
		return RoleCustomer, true
	case strings.EqualFold(role, RoleAdmin):
		return RoleAdmin, true
	}
	return "", false
}

// NormalizeStatus maps a status to its canonical spelling.
func NormalizeStatus(status string) (string, bool) {
	switch {
	case strings.EqualFold(status, StatusActive):
		return StatusActive, true
	case strings.EqualFold(status, StatusInactive):
		return StatusInactive, true
	}
	return "", false
}
