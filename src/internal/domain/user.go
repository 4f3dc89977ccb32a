package domain

import "time"

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleManager UserRole = "MANAGER"
	UserRoleViewer  UserRole = "VIEWER"
)

// CanTriggerBatch reports whether the role may start batch runs.
func (r UserRole) CanTriggerBatch() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}

// User is a bank operator allowed to call the processor's API.
type User struct {
	ID         string
	Username   string
	FullName   string
	Role       UserRole
	APIKeyHash string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
