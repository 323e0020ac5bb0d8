package actor

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// Role is the closed set of parts an authenticated user can play. The
// authentication collaborator asserts the role per request; this core only
// consumes it. Role is deliberately a tagged value, not a type hierarchy, so
// the access policy can be a total function over it.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Dispatcher creates, assigns and oversees work orders. Full visibility,
	// no direct edits to captured data.
	Dispatcher

	// Technician executes an assigned work order and submits captured data to
	// complete it.
	Technician
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Dispatcher:  "dispatcher",
		Technician:  "technician",
	}
}

// RoleFromString parses the role representation used by the profile store
// ("dispatcher" or "technician").
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks that the role is one of the closed variants.
func (r Role) Validate() error {
	if r != Dispatcher && r != Technician {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String implements fmt.Stringer; invalid values render as "unknown".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
