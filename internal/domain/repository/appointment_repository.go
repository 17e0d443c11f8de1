package repository

import (
	"context"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
)

type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Appointment, error)
	// List enumerates appointments matched by the scope. Clauses are ORed
	// in a single query, so an appointment matched by both the patient and
	// the doctor clause appears exactly once.
	List(ctx context.Context, scope auth.Scope) ([]entity.Appointment, error)
	Create(ctx context.Context, a *entity.Appointment) error
	Update(ctx context.Context, a *entity.Appointment) error
	Delete(ctx context.Context, id int64) error
}
