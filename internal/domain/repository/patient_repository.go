package repository

import (
	"context"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
)

type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.PatientProfile, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// List enumerates the profiles matched by the visibility scope,
	// collapsing rows matched by more than one clause.
	List(ctx context.Context, scope auth.Scope) ([]entity.PatientProfile, error)
	Update(ctx context.Context, p *entity.PatientProfile) error
}
