package entity

import (
	"fmt"
	"strings"
)

// Role identifies which kind of user added a record
type Role string

const (
	RoleInstructor  Role = "instructor"
	RoleStudent     Role = "student"
	RoleProspective Role = "prospective"
)

// Roles lists every valid role
var Roles = []Role{RoleInstructor, RoleStudent, RoleProspective}

// ParseRole accepts any casing of a known role
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleInstructor, RoleStudent, RoleProspective:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// UnmarshalText rejects unknown roles. An empty value means no role.
func (r *Role) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = ""
		return nil
	}
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Status is the lifecycle tag of a record
type Status string

// Record Status
const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusDraft     Status = "draft"
	StatusCancelled Status = "cancelled"
)

// ParseStatus accepts any casing of a known status
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusDraft, StatusCancelled:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText rejects unknown statuses. An empty value means unset.
func (s *Status) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
