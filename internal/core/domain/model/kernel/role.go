package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Role represents the kind of party acting on an order. It determines which
// status transitions an actor may perform and which orders a live connection
// may be notified about.
//
// Role is modeled as data rather than behavior: components branch on the role
// value instead of dispatching to role-specific types, which keeps transition
// and eligibility rules in one place.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleClient places orders and may cancel its own.
	RoleClient

	// RoleWorker claims and fulfills orders.
	RoleWorker

	// RoleAdmin oversees the whole flow and may perform any transition.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleClient:  "client",
		RoleWorker:  "worker",
		RoleAdmin:   "admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleClient: "client",
		RoleWorker: "worker",
		RoleAdmin:  "admin",
	}
}

// RoleFromString parses a role from its wire representation
// ("client", "worker" or "admin"). Used when mapping externally issued
// credentials to a domain identity.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}

	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is valid.
// Valid roles are: RoleClient, RoleWorker, RoleAdmin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the wire name of the role.
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsClient reports whether the role is RoleClient.
func (r Role) IsClient() bool {
	return r == RoleClient
}

// IsWorker reports whether the role is RoleWorker.
func (r Role) IsWorker() bool {
	return r == RoleWorker
}

// IsAdmin reports whether the role is RoleAdmin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
