package entity

import "time"

// PatientProfile is the 1:1 extension of an account holding the PATIENT role.
// Its id equals the owning account id; the row is created together with the
// account at registration and cascades on account deletion.
type PatientProfile struct {
	ID         int64
	Name       string
	Street     string
	Number     string
	PostalCode string
	City       string
	Birthdate  time.Time
}
