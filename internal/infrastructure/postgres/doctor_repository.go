package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
)

type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

const doctorColumns = `id, name, speciality, hospital, photo, about,
	number_of_patients, number_of_ratings, rating`

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*entity.DoctorProfile, error) {
	d := &entity.DoctorProfile{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+doctorColumns+` FROM doctors WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.Speciality, &d.Hospital, &d.Photo, &d.About,
		&d.NumberOfPatients, &d.NumberOfRatings, &d.Rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundEntity("doctor", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

// List applies the visibility scope. The doctor directory resolves to the
// full scope for any signed-in caller; the self clause only appears through
// the resolver's safe default.
func (r *DoctorRepository) List(ctx context.Context, scope auth.Scope) ([]entity.DoctorProfile, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors`
	var args []any

	if !scope.All {
		if scope.Empty() {
			return []entity.DoctorProfile{}, nil
		}
		args = append(args, scope.Self)
		query += " WHERE id = $1"
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.DoctorProfile
	for rows.Next() {
		d := entity.DoctorProfile{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Speciality, &d.Hospital,
			&d.Photo, &d.About, &d.NumberOfPatients, &d.NumberOfRatings,
			&d.Rating); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DoctorRepository) Update(ctx context.Context, d *entity.DoctorProfile) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE doctors
		SET name = $1, speciality = $2, hospital = $3, photo = $4, about = $5,
			number_of_patients = $6, number_of_ratings = $7, rating = $8
		WHERE id = $9
	`, d.Name, d.Speciality, d.Hospital, d.Photo, d.About,
		d.NumberOfPatients, d.NumberOfRatings, d.Rating, d.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFoundEntity("doctor", d.ID)
	}
	return nil
}

var _ repository.DoctorRepository = (*DoctorRepository)(nil)
