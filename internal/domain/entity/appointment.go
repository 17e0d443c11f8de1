package entity

import "time"

// AppointmentParty is the id/name summary of one side of an appointment,
// joined in by the repository on reads.
type AppointmentParty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Appointment references exactly one patient and one doctor. Both references
// must exist at creation time; an appointment with a dangling reference is
// never persisted (pre-checked in the service, backed by FK constraints).
type Appointment struct {
	ID           int64
	Patient      AppointmentParty
	Doctor       AppointmentParty
	Date         time.Time
	Description  string
	NumberOfBeds int
	Condition    string
}
