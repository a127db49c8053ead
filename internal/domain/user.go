package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Role gates route access; the
// account id gates record access for non-admin roles.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is a member of the closed enum.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the domain model for any clinic account: patients, doctors and
// admins share one collection, differentiated by Role.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Speciality   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
