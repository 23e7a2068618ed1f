package entity

import (
	"time"
)

// UserRole is the platform-level authorization role carried on the account.
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

// User is the identity anchor owned by the auth subsystem.
// Passwords are stored as bcrypt hashes in Password field.
// The KYC core only reads users and flips HasProfile once a submission lands.
type User struct {
	ID         string
	Email      string
	Password   string
	Name       string
	Role       UserRole
	HasProfile bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
