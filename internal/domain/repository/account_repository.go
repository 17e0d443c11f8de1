package repository

import (
	"context"

	"github.com/docline/docline-api/internal/domain/entity"
)

// AccountRepository defines account persistence. Profile-creating operations
// are atomic: the account row and its 1:1 profile row commit together or not
// at all.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	List(ctx context.Context) ([]entity.Account, error)
	// CreatePatientAccount inserts the account with the PATIENT role and its
	// patient profile in one transaction, filling in the generated id.
	CreatePatientAccount(ctx context.Context, acct *entity.Account, profile *entity.PatientProfile) error
	// CreateDoctorAccount does the same for a DOCTOR account.
	CreateDoctorAccount(ctx context.Context, acct *entity.Account, profile *entity.DoctorProfile) error
	// UpdateRoles replaces the role set. Role sets change only through this
	// explicit administrative update.
	UpdateRoles(ctx context.Context, id int64, roles entity.RoleSet) error
	// Delete removes the account; profile and appointment rows cascade at
	// the storage layer.
	Delete(ctx context.Context, id int64) error
}
