package repository

import (
	"context"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
)

type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.DoctorProfile, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, scope auth.Scope) ([]entity.DoctorProfile, error)
	Update(ctx context.Context, d *entity.DoctorProfile) error
}
