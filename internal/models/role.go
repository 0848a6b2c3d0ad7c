package models

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Capability names an action a role may be allowed to perform.
type Capability int

const (
	CapSubmitKudos Capability = iota + 1
	CapModerateKudos
	CapReadAuditLog
)

var roleCapabilities = map[Role][]Capability{
	RoleUser:  {CapSubmitKudos},
	RoleAdmin: {CapSubmitKudos, CapModerateKudos, CapReadAuditLog},
}

// ParseRole rejects anything outside the known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Can reports whether the role grants the capability. Unknown roles grant nothing.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
