package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
)

type PatientService struct {
	Patients repository.PatientRepository
	Accounts repository.AccountRepository
	Logger   *logrus.Logger
}

func NewPatientService(patients repository.PatientRepository, accounts repository.AccountRepository, logger *logrus.Logger) *PatientService {
	return &PatientService{Patients: patients, Accounts: accounts, Logger: logger}
}

// List enumerates the patient profiles visible to the session: admins see
// all, patients see themselves, doctors see the patients they share an
// appointment with, and a caller holding several roles sees the union.
func (s *PatientService) List(ctx context.Context, sess auth.Session) ([]entity.PatientProfile, error) {
	return s.Patients.List(ctx, auth.VisibleScope(sess, auth.KindPatient))
}

// GetByID returns one profile after the single-owner authorization check.
func (s *PatientService) GetByID(ctx context.Context, sess auth.Session, id int64) (*entity.PatientProfile, error) {
	if err := auth.Authorize(sess, auth.OwnedBy(id), auth.ActionRead); err != nil {
		return nil, err
	}
	return s.Patients.GetByID(ctx, id)
}

type UpdatePatientInput struct {
	Name       string
	Street     string
	Number     string
	PostalCode string
	City       string
	Birthdate  time.Time
}

func (s *PatientService) Update(ctx context.Context, sess auth.Session, id int64, in UpdatePatientInput) (*entity.PatientProfile, error) {
	if err := auth.Authorize(sess, auth.OwnedBy(id), auth.ActionUpdate); err != nil {
		return nil, err
	}
	p, err := s.Patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Street != "" {
		p.Street = in.Street
	}
	if in.Number != "" {
		p.Number = in.Number
	}
	if in.PostalCode != "" {
		p.PostalCode = in.PostalCode
	}
	if in.City != "" {
		p.City = in.City
	}
	if !in.Birthdate.IsZero() {
		p.Birthdate = in.Birthdate
	}
	if err := s.Patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the owning account; the profile and the patient's
// appointments cascade at the storage layer.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	return s.Accounts.Delete(ctx, id)
}
