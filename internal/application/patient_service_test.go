package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
)

// newPatientFixture seeds patients 1-3 and appointments linking doctor 10
// with patients 1 and 2. Patient 3 has no appointment.
func newPatientFixture() (*PatientService, *fakeAccountRepo) {
	appts := newFakeAppointmentRepo()
	patients := newFakePatientRepo(appts)
	accounts := newFakeAccountRepo()

	patients.add(entity.PatientProfile{ID: 1, Name: "Emily Smith"})
	patients.add(entity.PatientProfile{ID: 2, Name: "David Brown"})
	patients.add(entity.PatientProfile{ID: 3, Name: "Sophia Davis"})
	accounts.add(entity.Account{ID: 1, Email: "emily.smith@gmail.com", Roles: entity.NewRoleSet(entity.RolePatient)})

	appts.add(entity.Appointment{ID: 1, Patient: entity.AppointmentParty{ID: 1}, Doctor: entity.AppointmentParty{ID: 10}})
	appts.add(entity.Appointment{ID: 2, Patient: entity.AppointmentParty{ID: 2}, Doctor: entity.AppointmentParty{ID: 10}})
	appts.add(entity.Appointment{ID: 3, Patient: entity.AppointmentParty{ID: 1}, Doctor: entity.AppointmentParty{ID: 10}})

	return NewPatientService(patients, accounts, logrus.New()), accounts
}

func TestPatientListVisibility(t *testing.T) {
	svc, _ := newPatientFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		sess    auth.Session
		wantIDs []int64
	}{
		{name: "patient sees only self", sess: patientSession(2), wantIDs: []int64{2}},
		{name: "doctor sees shared patients once each", sess: doctorSession(10), wantIDs: []int64{1, 2}},
		{name: "uninvolved doctor sees nothing", sess: doctorSession(11), wantIDs: []int64{}},
		{name: "admin sees all", sess: adminSession(99), wantIDs: []int64{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(ctx, tc.sess)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d profiles, want %d", len(got), len(tc.wantIDs))
			}
			for i, p := range got {
				if p.ID != tc.wantIDs[i] {
					t.Fatalf("profile[%d] = %d, want %d", i, p.ID, tc.wantIDs[i])
				}
			}
		})
	}
}

func TestPatientListDualRoleUnion(t *testing.T) {
	svc, _ := newPatientFixture()
	ctx := context.Background()

	// Account 1 is both a patient and a doctor treating patient 2 through a
	// shared appointment. The union covers self plus treated patients, and
	// patient 1 appears once even though both clauses match it.
	appts := svc.Patients.(*fakePatientRepo).appointments
	appts.add(entity.Appointment{ID: 4, Patient: entity.AppointmentParty{ID: 2}, Doctor: entity.AppointmentParty{ID: 1}})
	appts.add(entity.Appointment{ID: 5, Patient: entity.AppointmentParty{ID: 1}, Doctor: entity.AppointmentParty{ID: 1}})

	sess := auth.Session{AccountID: 1, Roles: entity.NewRoleSet(entity.RolePatient, entity.RoleDoctor)}
	got, err := svc.List(ctx, sess)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		ids := make([]int64, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		t.Fatalf("got ids %v, want [1 2]", ids)
	}
}

func TestPatientGetByID(t *testing.T) {
	svc, _ := newPatientFixture()
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, patientSession(1), 1); err != nil {
		t.Fatalf("own profile: %v", err)
	}
	if _, err := svc.GetByID(ctx, patientSession(1), 2); !apperr.IsForbidden(err) {
		t.Fatalf("foreign profile = %v, want FORBIDDEN", err)
	}
	if _, err := svc.GetByID(ctx, adminSession(99), 2); err != nil {
		t.Fatalf("admin: %v", err)
	}
}

func TestPatientUpdate(t *testing.T) {
	svc, _ := newPatientFixture()
	ctx := context.Background()

	birth := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Update(ctx, patientSession(1), 1, UpdatePatientInput{City: "Ghent", Birthdate: birth})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.City != "Ghent" || !got.Birthdate.Equal(birth) {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Name != "Emily Smith" {
		t.Fatalf("unset field overwritten: name = %q", got.Name)
	}

	if _, err := svc.Update(ctx, patientSession(2), 1, UpdatePatientInput{City: "x"}); !apperr.IsForbidden(err) {
		t.Fatalf("foreign update = %v, want FORBIDDEN", err)
	}
}

func TestPatientDeleteCascades(t *testing.T) {
	svc, accounts := newPatientFixture()
	ctx := context.Background()

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := accounts.accounts[1]; ok {
		t.Fatal("account 1 still present after delete")
	}
	if err := svc.Delete(ctx, 404); !apperr.IsNotFound(err) {
		t.Fatalf("unknown id = %v, want NOT_FOUND", err)
	}
}
