package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, email, password_hash, roles, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Roles,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM users WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundEntity("user", id)
	}
	return a, err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM users WHERE email = $1
	`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("no user with this email exists", map[string]any{"email": email})
	}
	return a, err
}

func (r *AccountRepository) List(ctx context.Context) ([]entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM users ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Account
	for rows.Next() {
		a := entity.Account{}
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Roles,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreatePatientAccount inserts the account and its patient profile in one
// transaction. Constraint violations surface raw; the service layer owns the
// translation into the domain taxonomy.
func (r *AccountRepository) CreatePatientAccount(ctx context.Context, acct *entity.Account, profile *entity.PatientProfile) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, acct); err != nil {
			return err
		}
		profile.ID = acct.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, name, street, number, postal_code, city, birthdate)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, profile.ID, profile.Name, profile.Street, profile.Number,
			profile.PostalCode, profile.City, profile.Birthdate)
		return err
	})
}

func (r *AccountRepository) CreateDoctorAccount(ctx context.Context, acct *entity.Account, profile *entity.DoctorProfile) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, acct); err != nil {
			return err
		}
		profile.ID = acct.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, speciality, hospital, photo, about,
				number_of_patients, number_of_ratings, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, profile.ID, profile.Name, profile.Speciality, profile.Hospital,
			profile.Photo, profile.About, profile.NumberOfPatients,
			profile.NumberOfRatings, profile.Rating)
		return err
	})
}

func insertAccount(ctx context.Context, tx pgx.Tx, acct *entity.Account) error {
	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, roles)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, acct.Email, acct.PasswordHash, acct.Roles)
	return row.Scan(&acct.ID, &acct.CreatedAt, &acct.UpdatedAt)
}

func (r *AccountRepository) UpdateRoles(ctx context.Context, id int64, roles entity.RoleSet) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET roles = $1, updated_at = $2 WHERE id = $3
	`, roles, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFoundEntity("user", id)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFoundEntity("user", id)
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
