package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

const patientColumns = `id, name, street, number, postal_code, city, birthdate`

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*entity.PatientProfile, error) {
	p := &entity.PatientProfile{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+` FROM patients WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Street, &p.Number, &p.PostalCode, &p.City, &p.Birthdate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundEntity("patient", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PatientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

// List applies the visibility scope. The clauses are ORed in one query and
// patients.id is the primary key, so a profile matched by both the self
// clause and the shared-appointment clause appears exactly once.
func (r *PatientRepository) List(ctx context.Context, scope auth.Scope) ([]entity.PatientProfile, error) {
	query := `SELECT ` + patientColumns + ` FROM patients`
	var args []any

	if !scope.All {
		if scope.Empty() {
			return []entity.PatientProfile{}, nil
		}
		var clauses []string
		if scope.Self != 0 {
			args = append(args, scope.Self)
			clauses = append(clauses, "id = $"+strconv.Itoa(len(args)))
		}
		if scope.PatientsOfDoctor != 0 {
			args = append(args, scope.PatientsOfDoctor)
			clauses = append(clauses,
				"id IN (SELECT a.patient_id FROM appointments a WHERE a.doctor_id = $"+strconv.Itoa(len(args))+")")
		}
		query += " WHERE " + joinOr(clauses)
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.PatientProfile
	for rows.Next() {
		p := entity.PatientProfile{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Street, &p.Number,
			&p.PostalCode, &p.City, &p.Birthdate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientRepository) Update(ctx context.Context, p *entity.PatientProfile) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET name = $1, street = $2, number = $3, postal_code = $4, city = $5, birthdate = $6
		WHERE id = $7
	`, p.Name, p.Street, p.Number, p.PostalCode, p.City, p.Birthdate, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFoundEntity("patient", p.ID)
	}
	return nil
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
