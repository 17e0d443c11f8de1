package application

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
)

func patientSession(id int64) auth.Session {
	return auth.Session{AccountID: id, Roles: entity.NewRoleSet(entity.RolePatient)}
}

func doctorSession(id int64) auth.Session {
	return auth.Session{AccountID: id, Roles: entity.NewRoleSet(entity.RoleDoctor)}
}

func adminSession(id int64) auth.Session {
	return auth.Session{AccountID: id, Roles: entity.NewRoleSet(entity.RoleAdmin)}
}

// newAppointmentFixture seeds two patients (1, 2), two doctors (10, 11) and
// two appointments: 1 between patient 1 and doctor 10, 2 between patient 2
// and doctor 10.
func newAppointmentFixture() (*AppointmentService, *fakeAppointmentRepo) {
	appts := newFakeAppointmentRepo()
	patients := newFakePatientRepo(appts)
	doctors := newFakeDoctorRepo()
	accounts := newFakeAccountRepo()

	patients.add(entity.PatientProfile{ID: 1, Name: "Emily Smith"})
	patients.add(entity.PatientProfile{ID: 2, Name: "David Brown"})
	doctors.add(entity.DoctorProfile{ID: 10, Name: "Dr. Olivia Anderson", Speciality: "Cardiologist"})
	doctors.add(entity.DoctorProfile{ID: 11, Name: "Dr. Michael Brown Smith", Speciality: "Dentist"})
	accounts.add(entity.Account{ID: 1, Email: "emily.smith@gmail.com", Roles: entity.NewRoleSet(entity.RolePatient)})
	accounts.add(entity.Account{ID: 2, Email: "david.brown@gmail.com", Roles: entity.NewRoleSet(entity.RolePatient)})

	appts.add(entity.Appointment{
		ID:      1,
		Patient: entity.AppointmentParty{ID: 1, Name: "Emily Smith"},
		Doctor:  entity.AppointmentParty{ID: 10, Name: "Dr. Olivia Anderson"},
		Date:    time.Date(2026, 12, 15, 8, 15, 0, 0, time.UTC),
	})
	appts.add(entity.Appointment{
		ID:      2,
		Patient: entity.AppointmentParty{ID: 2, Name: "David Brown"},
		Doctor:  entity.AppointmentParty{ID: 10, Name: "Dr. Olivia Anderson"},
		Date:    time.Date(2026, 12, 16, 9, 30, 0, 0, time.UTC),
	})

	svc := NewAppointmentService(appts, patients, doctors, accounts, logrus.New(), nil)
	return svc, appts
}

func TestAppointmentListVisibility(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		sess    auth.Session
		wantIDs []int64
	}{
		{name: "patient sees own appointments only", sess: patientSession(1), wantIDs: []int64{1}},
		{name: "doctor sees both sides of their schedule", sess: doctorSession(10), wantIDs: []int64{1, 2}},
		{name: "uninvolved doctor sees nothing", sess: doctorSession(11), wantIDs: []int64{}},
		{name: "admin sees everything", sess: adminSession(99), wantIDs: []int64{1, 2}},
		{name: "roleless session sees nothing", sess: auth.Session{AccountID: 1}, wantIDs: []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(ctx, tc.sess)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d appointments, want %d", len(got), len(tc.wantIDs))
			}
			for i, a := range got {
				if a.ID != tc.wantIDs[i] {
					t.Fatalf("appointment[%d] = %d, want %d", i, a.ID, tc.wantIDs[i])
				}
			}
		})
	}
}

func TestAppointmentListDualRoleDeduplicates(t *testing.T) {
	svc, appts := newAppointmentFixture()
	ctx := context.Background()

	// Account 1 occupies both sides of appointment 3. A session holding
	// both roles matches it through both clauses; it must come back once.
	appts.add(entity.Appointment{
		ID:      3,
		Patient: entity.AppointmentParty{ID: 1},
		Doctor:  entity.AppointmentParty{ID: 1},
	})
	sess := auth.Session{AccountID: 1, Roles: entity.NewRoleSet(entity.RolePatient, entity.RoleDoctor)}
	got, err := svc.List(ctx, sess)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	seen := map[int64]int{}
	for _, a := range got {
		seen[a.ID]++
	}
	if seen[3] != 1 {
		t.Fatalf("appointment 3 returned %d times, want exactly once", seen[3])
	}
}

func TestAppointmentGetByID(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, patientSession(1), 1); err != nil {
		t.Fatalf("own appointment: %v", err)
	}
	if _, err := svc.GetByID(ctx, patientSession(1), 2); !apperr.IsForbidden(err) {
		t.Fatalf("other patient's appointment = %v, want FORBIDDEN", err)
	}
	if _, err := svc.GetByID(ctx, doctorSession(10), 2); err != nil {
		t.Fatalf("doctor side: %v", err)
	}
	if _, err := svc.GetByID(ctx, adminSession(99), 2); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if _, err := svc.GetByID(ctx, patientSession(1), 404); !apperr.IsNotFound(err) {
		t.Fatalf("unknown id = %v, want NOT_FOUND", err)
	}
}

func TestAppointmentCreate(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	in := AppointmentInput{
		DoctorID:     10,
		Date:         time.Date(2026, 12, 20, 10, 0, 0, 0, time.UTC),
		Description:  "Checkup",
		NumberOfBeds: 1,
		Condition:    "Chest pain",
	}
	// Patient callers book as themselves when no patient id is given.
	a, err := svc.Create(ctx, patientSession(1), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Patient.ID != 1 {
		t.Fatalf("patient side = %d, want caller's own id 1", a.Patient.ID)
	}
	if a.Doctor.ID != 10 {
		t.Fatalf("doctor side = %d, want 10", a.Doctor.ID)
	}

	// Booking on behalf of another patient is denied.
	in.PatientID = 2
	if _, err := svc.Create(ctx, patientSession(1), in); !apperr.IsForbidden(err) {
		t.Fatalf("booking for someone else = %v, want FORBIDDEN", err)
	}

	// Admins may book for anyone.
	if _, err := svc.Create(ctx, adminSession(99), in); err != nil {
		t.Fatalf("admin create: %v", err)
	}
}

func TestAppointmentCreateMissingParties(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	base := AppointmentInput{Date: time.Now(), Description: "x", NumberOfBeds: 1, Condition: "y"}

	t.Run("missing patient named in error", func(t *testing.T) {
		in := base
		in.PatientID, in.DoctorID = 999, 10
		_, err := svc.Create(ctx, adminSession(99), in)
		e, ok := apperr.As(err)
		if !ok || e.Code != apperr.CodeNotFound {
			t.Fatalf("got %v, want NOT_FOUND", err)
		}
		if e.Details["entity"] != "patient" || e.Details["id"] != int64(999) {
			t.Fatalf("details = %v, want entity=patient id=999", e.Details)
		}
	})

	t.Run("missing doctor named in error", func(t *testing.T) {
		in := base
		in.PatientID, in.DoctorID = 1, 888
		_, err := svc.Create(ctx, adminSession(99), in)
		e, ok := apperr.As(err)
		if !ok || e.Code != apperr.CodeNotFound {
			t.Fatalf("got %v, want NOT_FOUND", err)
		}
		if e.Details["entity"] != "doctor" || e.Details["id"] != int64(888) {
			t.Fatalf("details = %v, want entity=doctor id=888", e.Details)
		}
	})

	t.Run("both missing reported together", func(t *testing.T) {
		in := base
		in.PatientID, in.DoctorID = 999, 888
		_, err := svc.Create(ctx, adminSession(99), in)
		e, ok := apperr.As(err)
		if !ok || e.Code != apperr.CodeNotFound {
			t.Fatalf("got %v, want NOT_FOUND", err)
		}
		if _, ok := e.Details["patient"]; !ok {
			t.Fatalf("details = %v, missing patient entry", e.Details)
		}
		if _, ok := e.Details["doctor"]; !ok {
			t.Fatalf("details = %v, missing doctor entry", e.Details)
		}
	})
}

func TestAppointmentCreateForeignKeyRace(t *testing.T) {
	// The pre-write existence checks pass, then the insert loses the race
	// with a concurrent doctor deletion. The constraint violation must map
	// back to the same NOT_FOUND shape as the pre-check.
	svc, appts := newAppointmentFixture()
	ctx := context.Background()

	appts.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointment_doctor"}
	in := AppointmentInput{PatientID: 1, DoctorID: 10, Date: time.Now(), Description: "x", NumberOfBeds: 1, Condition: "y"}
	_, err := svc.Create(ctx, adminSession(99), in)
	e, ok := apperr.As(err)
	if !ok || e.Code != apperr.CodeNotFound {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
	if e.Details["entity"] != "doctor" || e.Details["id"] != int64(10) {
		t.Fatalf("details = %v, want entity=doctor id=10", e.Details)
	}

	appts.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointment_patient"}
	_, err = svc.Create(ctx, adminSession(99), in)
	e, ok = apperr.As(err)
	if !ok || e.Code != apperr.CodeNotFound {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
	if e.Details["entity"] != "patient" || e.Details["id"] != int64(1) {
		t.Fatalf("details = %v, want entity=patient id=1", e.Details)
	}
}

func TestAppointmentUpdate(t *testing.T) {
	svc, _ := newAppointmentFixture()
	ctx := context.Background()

	// Unfilled fields keep their stored values.
	got, err := svc.Update(ctx, patientSession(1), 1, AppointmentInput{Description: "Follow-up"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description != "Follow-up" {
		t.Fatalf("description = %q, want Follow-up", got.Description)
	}
	if got.Patient.ID != 1 || got.Doctor.ID != 10 {
		t.Fatalf("parties changed: patient=%d doctor=%d", got.Patient.ID, got.Doctor.ID)
	}

	// A patient cannot edit someone else's appointment.
	if _, err := svc.Update(ctx, patientSession(1), 2, AppointmentInput{Description: "x"}); !apperr.IsForbidden(err) {
		t.Fatalf("foreign update = %v, want FORBIDDEN", err)
	}

	// Reassigning a side requires authorization for the new pair too.
	if _, err := svc.Update(ctx, patientSession(1), 1, AppointmentInput{PatientID: 2}); !apperr.IsForbidden(err) {
		t.Fatalf("reassignment = %v, want FORBIDDEN", err)
	}

	// Reassigning to a missing doctor fails the consistency check.
	if _, err := svc.Update(ctx, adminSession(99), 1, AppointmentInput{DoctorID: 777}); !apperr.IsNotFound(err) {
		t.Fatalf("missing doctor = %v, want NOT_FOUND", err)
	}
}

func TestAppointmentDelete(t *testing.T) {
	svc, appts := newAppointmentFixture()
	ctx := context.Background()

	if err := svc.Delete(ctx, patientSession(2), 1); !apperr.IsForbidden(err) {
		t.Fatalf("foreign delete = %v, want FORBIDDEN", err)
	}
	if err := svc.Delete(ctx, doctorSession(10), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := appts.appointments[1]; ok {
		t.Fatal("appointment 1 still present after delete")
	}
	if err := svc.Delete(ctx, adminSession(99), 1); !apperr.IsNotFound(err) {
		t.Fatalf("second delete = %v, want NOT_FOUND", err)
	}
}
