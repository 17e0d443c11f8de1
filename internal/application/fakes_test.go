package application

import (
	"context"
	"sort"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
)

// In-memory repositories backing the service tests. They evaluate visibility
// scopes the same way the SQL layer does: one pass, clauses ORed, each row
// at most once.

type fakeAccountRepo struct {
	accounts map[int64]entity.Account
	nextID   int64
	// createErr forces the next profile-creating call to fail, standing in
	// for storage-level violations.
	createErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[int64]entity.Account{}, nextID: 100}
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, apperr.NotFoundEntity("user", id)
	}
	return &a, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, apperr.NotFound("no user with this email exists", map[string]any{"email": email})
}

func (r *fakeAccountRepo) List(_ context.Context) ([]entity.Account, error) {
	out := make([]entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAccountRepo) CreatePatientAccount(_ context.Context, acct *entity.Account, profile *entity.PatientProfile) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	acct.ID = r.nextID
	r.nextID++
	profile.ID = acct.ID
	r.accounts[acct.ID] = *acct
	return nil
}

func (r *fakeAccountRepo) CreateDoctorAccount(_ context.Context, acct *entity.Account, profile *entity.DoctorProfile) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	acct.ID = r.nextID
	r.nextID++
	profile.ID = acct.ID
	r.accounts[acct.ID] = *acct
	return nil
}

func (r *fakeAccountRepo) UpdateRoles(_ context.Context, id int64, roles entity.RoleSet) error {
	a, ok := r.accounts[id]
	if !ok {
		return apperr.NotFoundEntity("user", id)
	}
	a.Roles = roles
	r.accounts[id] = a
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok {
		return apperr.NotFoundEntity("user", id)
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) add(a entity.Account) {
	r.accounts[a.ID] = a
}

type fakePatientRepo struct {
	patients     map[int64]entity.PatientProfile
	appointments *fakeAppointmentRepo
}

func newFakePatientRepo(appointments *fakeAppointmentRepo) *fakePatientRepo {
	return &fakePatientRepo{patients: map[int64]entity.PatientProfile{}, appointments: appointments}
}

func (r *fakePatientRepo) GetByID(_ context.Context, id int64) (*entity.PatientProfile, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperr.NotFoundEntity("patient", id)
	}
	return &p, nil
}

func (r *fakePatientRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.patients[id]
	return ok, nil
}

func (r *fakePatientRepo) List(_ context.Context, scope auth.Scope) ([]entity.PatientProfile, error) {
	out := make([]entity.PatientProfile, 0)
	for _, p := range r.patients {
		if r.matches(p, scope) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePatientRepo) matches(p entity.PatientProfile, scope auth.Scope) bool {
	if scope.All {
		return true
	}
	if scope.Self != 0 && p.ID == scope.Self {
		return true
	}
	if scope.PatientsOfDoctor != 0 && r.appointments != nil {
		for _, a := range r.appointments.appointments {
			if a.Doctor.ID == scope.PatientsOfDoctor && a.Patient.ID == p.ID {
				return true
			}
		}
	}
	return false
}

func (r *fakePatientRepo) Update(_ context.Context, p *entity.PatientProfile) error {
	if _, ok := r.patients[p.ID]; !ok {
		return apperr.NotFoundEntity("patient", p.ID)
	}
	r.patients[p.ID] = *p
	return nil
}

func (r *fakePatientRepo) add(p entity.PatientProfile) {
	r.patients[p.ID] = p
}

type fakeDoctorRepo struct {
	doctors map[int64]entity.DoctorProfile
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: map[int64]entity.DoctorProfile{}}
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*entity.DoctorProfile, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperr.NotFoundEntity("doctor", id)
	}
	return &d, nil
}

func (r *fakeDoctorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.doctors[id]
	return ok, nil
}

func (r *fakeDoctorRepo) List(_ context.Context, scope auth.Scope) ([]entity.DoctorProfile, error) {
	out := make([]entity.DoctorProfile, 0)
	for _, d := range r.doctors {
		if scope.All || (scope.Self != 0 && d.ID == scope.Self) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, d *entity.DoctorProfile) error {
	if _, ok := r.doctors[d.ID]; !ok {
		return apperr.NotFoundEntity("doctor", d.ID)
	}
	r.doctors[d.ID] = *d
	return nil
}

func (r *fakeDoctorRepo) add(d entity.DoctorProfile) {
	r.doctors[d.ID] = d
}

type fakeAppointmentRepo struct {
	appointments map[int64]entity.Appointment
	nextID       int64
	// createErr forces the next write to fail, standing in for constraint
	// violations raised by the database.
	createErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]entity.Appointment{}, nextID: 100}
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*entity.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperr.NotFoundEntity("appointment", id)
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, scope auth.Scope) ([]entity.Appointment, error) {
	out := make([]entity.Appointment, 0)
	for _, a := range r.appointments {
		if scope.All ||
			(scope.AsPatient != 0 && a.Patient.ID == scope.AsPatient) ||
			(scope.AsDoctor != 0 && a.Doctor.ID == scope.AsDoctor) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	a.ID = r.nextID
	r.nextID++
	r.appointments[a.ID] = *a
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	if _, ok := r.appointments[a.ID]; !ok {
		return apperr.NotFoundEntity("appointment", a.ID)
	}
	r.appointments[a.ID] = *a
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return apperr.NotFoundEntity("appointment", id)
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) add(a entity.Appointment) {
	r.appointments[a.ID] = a
	if a.ID >= r.nextID {
		r.nextID = a.ID + 1
	}
}
