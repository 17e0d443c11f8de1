package entity

import (
	"encoding/json"
	"fmt"
)

// Role is a single tag from the closed vocabulary {PATIENT, DOCTOR, ADMIN}.
// Each role occupies one bit so a whole role set fits in a byte, both in the
// roles column and in the token claim.
type Role uint8

const (
	RolePatient Role = 1 << iota
	RoleDoctor
	RoleAdmin
)

var roleNames = map[Role]string{
	RolePatient: "PATIENT",
	RoleDoctor:  "DOCTOR",
	RoleAdmin:   "ADMIN",
}

var rolesByName = map[string]Role{
	"PATIENT": RolePatient,
	"DOCTOR":  RoleDoctor,
	"ADMIN":   RoleAdmin,
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// ParseRole rejects tags outside the closed vocabulary. Used at account
// creation and administrative role updates.
func ParseRole(name string) (Role, error) {
	if r, ok := rolesByName[name]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// RoleSet is a set of Role tags. The zero value is the empty set; duplicates
// collapse and order is irrelevant by construction.
type RoleSet uint8

func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.Add(r)
	}
	return s
}

// ParseRoleSet parses a strict role list: unknown tags and empty sets are
// errors. Tolerant parsing of token claims goes through RoleSetFromNames.
func ParseRoleSet(names []string) (RoleSet, error) {
	var s RoleSet
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(r)
	}
	if s.Empty() {
		return 0, fmt.Errorf("role set must not be empty")
	}
	return s, nil
}

// RoleSetFromNames collapses a name list into a set, silently skipping tags
// outside the vocabulary. Old tokens may carry tags we no longer know.
func RoleSetFromNames(names []string) RoleSet {
	var s RoleSet
	for _, n := range names {
		if r, ok := rolesByName[n]; ok {
			s = s.Add(r)
		}
	}
	return s
}

func (s RoleSet) Has(r Role) bool { return uint8(s)&uint8(r) != 0 }

func (s RoleSet) Add(r Role) RoleSet { return s | RoleSet(r) }

func (s RoleSet) Empty() bool { return s == 0 }

// Names returns the member tags in declaration order (PATIENT, DOCTOR, ADMIN).
func (s RoleSet) Names() []string {
	out := make([]string, 0, 3)
	for _, r := range []Role{RolePatient, RoleDoctor, RoleAdmin} {
		if s.Has(r) {
			out = append(out, roleNames[r])
		}
	}
	return out
}

func (s RoleSet) String() string {
	b, _ := json.Marshal(s.Names())
	return string(b)
}

// MarshalJSON writes the set as a string array, the shape of the roles jsonb
// column and of the token claim.
func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON is tolerant: rows and tokens written before a vocabulary
// change must not crash readers. Strictness lives in ParseRoleSet.
func (s *RoleSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	*s = RoleSetFromNames(names)
	return nil
}
