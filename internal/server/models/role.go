package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is the account capability level. Roles form a total order and every
// authorization check in the system is "requester role >= required role".
//
// The zero value is reserved for "unknown/unset" so that a forgotten
// initialization can never pass a rank comparison; stored ranks start at 1.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleNone
	RoleEditor
	RoleAdmin
	RoleSuperAdmin
)

// Rank returns the ordinal used in comparisons, both in Go and in SQL
// predicates (the database stores this value in a SMALLINT column with a
// matching CHECK constraint).
func (r Role) Rank() uint8 { return uint8(r) }

// AtLeast reports whether r meets the required minimum role.
func (r Role) AtLeast(min Role) bool { return r.Rank() >= min.Rank() }

// IsValid reports whether r is one of the assignable roles.
func (r Role) IsValid() bool { return r >= RoleNone && r <= RoleSuperAdmin }

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleEditor:
		return "editor"
	case RoleAdmin:
		return "admin"
	case RoleSuperAdmin:
		return "superadmin"
	default:
		return "unknown"
	}
}

// ParseRole maps the wire representation to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "none":
		return RoleNone, nil
	case "editor":
		return RoleEditor, nil
	case "admin":
		return RoleAdmin, nil
	case "superadmin":
		return RoleSuperAdmin, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role %q", s)
	}
}

// Value stores the role as its rank.
func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot store invalid role %d", r)
	}
	return int64(r), nil
}

// Scan reads the rank back from the database.
func (r *Role) Scan(src any) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cannot scan role from %T", src)
	}
	role := Role(v)
	if !role.IsValid() {
		return fmt.Errorf("invalid role rank %d in database", v)
	}
	*r = role
	return nil
}

// MarshalJSON serializes the role by name.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts the role by name.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
