package domain

import "time"

// Role enumerates operational roles for back-office users.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleDriver     Role = "DRIVER"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Assignable reports whether the role may be given through the public creation path.
func (r Role) Assignable() bool {
	return r == RoleAdmin || r == RoleDriver
}

// UserStatus represents lifecycle states for a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Valid reports whether the status is ACTIVE or INACTIVE.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is a back-office account (admin or driver).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) AccountID() int64           { return u.ID }
func (u *User) AccountEmail() string       { return u.Email }
func (u *User) CredentialHash() string     { return u.PasswordHash }
func (u *User) SetCredentialHash(h string) { u.PasswordHash = h }
