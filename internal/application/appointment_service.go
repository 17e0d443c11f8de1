package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
	"github.com/docline/docline-api/pkg/helpers"
	"github.com/docline/docline-api/pkg/mailer"
)

// AppointmentService owns the two-sided appointment resource: visibility on
// reads, role-gated ownership on single-record access and the pre-write
// consistency check of both referenced parties.
type AppointmentService struct {
	Appointments repository.AppointmentRepository
	Patients     repository.PatientRepository
	Doctors      repository.DoctorRepository
	Accounts     repository.AccountRepository
	Logger       *logrus.Logger
	Mail         *helpers.RabbitPublisher
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	accounts repository.AccountRepository,
	logger *logrus.Logger,
	mail *helpers.RabbitPublisher,
) *AppointmentService {
	return &AppointmentService{
		Appointments: appointments,
		Patients:     patients,
		Doctors:      doctors,
		Accounts:     accounts,
		Logger:       logger,
		Mail:         mail,
	}
}

// List enumerates the appointments visible to the session. A caller holding
// both non-admin roles gets the union of the patient-side and doctor-side
// sets; the repository evaluates the clauses as one OR, so nothing repeats.
func (s *AppointmentService) List(ctx context.Context, sess auth.Session) ([]entity.Appointment, error) {
	return s.Appointments.List(ctx, auth.VisibleScope(sess, auth.KindAppointment))
}

// GetByID fetches the record first, then gates on its two owners. The fetch
// itself is unscoped: the decision needs the owner ids.
func (s *AppointmentService) GetByID(ctx context.Context, sess auth.Session, id int64) (*entity.Appointment, error) {
	a, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(sess, auth.AppointmentOf(a.Patient.ID, a.Doctor.ID), auth.ActionRead); err != nil {
		return nil, err
	}
	return a, nil
}

type AppointmentInput struct {
	PatientID    int64
	DoctorID     int64
	Date         time.Time
	Description  string
	NumberOfBeds int
	Condition    string
}

// Create books an appointment. Non-admin patients book as themselves; the
// authorization decision then requires the caller on one side with the
// matching role. Both party references are checked before the write and the
// FK race with a concurrent deletion maps back to the same NotFound shape.
func (s *AppointmentService) Create(ctx context.Context, sess auth.Session, in AppointmentInput) (*entity.Appointment, error) {
	if in.PatientID == 0 && sess.Roles.Has(entity.RolePatient) {
		in.PatientID = sess.AccountID
	}
	if err := auth.Authorize(sess, auth.AppointmentOf(in.PatientID, in.DoctorID), auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.checkParties(ctx, in.PatientID, in.DoctorID); err != nil {
		return nil, err
	}

	a := &entity.Appointment{
		Patient:      entity.AppointmentParty{ID: in.PatientID},
		Doctor:       entity.AppointmentParty{ID: in.DoctorID},
		Date:         in.Date,
		Description:  in.Description,
		NumberOfBeds: in.NumberOfBeds,
		Condition:    in.Condition,
	}
	if err := s.Appointments.Create(ctx, a); err != nil {
		return nil, translateAppointmentWriteError(err, in.PatientID, in.DoctorID)
	}

	created, err := s.Appointments.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	s.sendConfirmation(ctx, created)
	return created, nil
}

// Update edits an appointment. The caller must be authorized for the record
// as stored and, when reassigning a side, for the new pair as well.
func (s *AppointmentService) Update(ctx context.Context, sess auth.Session, id int64, in AppointmentInput) (*entity.Appointment, error) {
	a, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(sess, auth.AppointmentOf(a.Patient.ID, a.Doctor.ID), auth.ActionUpdate); err != nil {
		return nil, err
	}

	if in.PatientID == 0 {
		in.PatientID = a.Patient.ID
	}
	if in.DoctorID == 0 {
		in.DoctorID = a.Doctor.ID
	}
	if in.PatientID != a.Patient.ID || in.DoctorID != a.Doctor.ID {
		if err := auth.Authorize(sess, auth.AppointmentOf(in.PatientID, in.DoctorID), auth.ActionUpdate); err != nil {
			return nil, err
		}
	}
	if err := s.checkParties(ctx, in.PatientID, in.DoctorID); err != nil {
		return nil, err
	}

	a.Patient.ID = in.PatientID
	a.Doctor.ID = in.DoctorID
	if !in.Date.IsZero() {
		a.Date = in.Date
	}
	if in.Description != "" {
		a.Description = in.Description
	}
	if in.NumberOfBeds != 0 {
		a.NumberOfBeds = in.NumberOfBeds
	}
	if in.Condition != "" {
		a.Condition = in.Condition
	}
	if err := s.Appointments.Update(ctx, a); err != nil {
		return nil, translateAppointmentWriteError(err, in.PatientID, in.DoctorID)
	}
	return s.Appointments.GetByID(ctx, id)
}

func (s *AppointmentService) Delete(ctx context.Context, sess auth.Session, id int64) error {
	a, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(sess, auth.AppointmentOf(a.Patient.ID, a.Doctor.ID), auth.ActionDelete); err != nil {
		return err
	}
	return s.Appointments.Delete(ctx, id)
}

// checkParties verifies both referenced parties exist before the write. The
// checks are independent: both run, and when both parties are missing both
// are named in the error instead of stopping at the first.
func (s *AppointmentService) checkParties(ctx context.Context, patientID, doctorID int64) error {
	patientOK, err := s.Patients.Exists(ctx, patientID)
	if err != nil {
		return err
	}
	doctorOK, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return err
	}

	switch {
	case !patientOK && !doctorOK:
		return apperr.NotFound("referenced patient and doctor do not exist", map[string]any{
			"patient": map[string]any{"entity": "patient", "id": patientID},
			"doctor":  map[string]any{"entity": "doctor", "id": doctorID},
		})
	case !patientOK:
		return apperr.NotFoundEntity("patient", patientID)
	case !doctorOK:
		return apperr.NotFoundEntity("doctor", doctorID)
	}
	return nil
}

// sendConfirmation publishes a confirmation email job for the patient side.
// Best effort; booking never fails because the broker is down.
func (s *AppointmentService) sendConfirmation(ctx context.Context, a *entity.Appointment) {
	if s.Mail == nil {
		return
	}
	acct, err := s.Accounts.GetByID(ctx, a.Patient.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("patient_id", a.Patient.ID).Warn("lookup for confirmation email failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:      acct.Email,
		Subject: "Appointment confirmed",
		Text: "Your appointment with " + a.Doctor.Name + " on " +
			a.Date.Format("02 January 2006, 15:04") + " has been booked.",
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("appointment_id", a.ID).Warn("publish confirmation job failed")
	}
}
