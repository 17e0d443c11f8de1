package entity

import "time"

// Account is the authenticable identity record. A single account may hold
// several roles at once; the profile rows extend it per role.
// PasswordHash is opaque bcrypt output, never inspected here.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Roles        RoleSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
