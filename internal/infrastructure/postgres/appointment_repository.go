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

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentSelect = `
	SELECT a.id, a.patient_id, p.name, a.doctor_id, d.name,
		a.date, a.description, a.number_of_beds, a.condition
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id`

func scanAppointment(row pgx.Row, a *entity.Appointment) error {
	return row.Scan(&a.ID, &a.Patient.ID, &a.Patient.Name, &a.Doctor.ID,
		&a.Doctor.Name, &a.Date, &a.Description, &a.NumberOfBeds, &a.Condition)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	err := scanAppointment(r.pool.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundEntity("appointment", id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List applies the visibility scope. The patient and doctor clauses are ORed
// inside one predicate, so a self-referential appointment (same account on
// both sides) still yields a single row.
func (r *AppointmentRepository) List(ctx context.Context, scope auth.Scope) ([]entity.Appointment, error) {
	query := appointmentSelect
	var args []any

	if !scope.All {
		if scope.Empty() {
			return []entity.Appointment{}, nil
		}
		var clauses []string
		if scope.AsPatient != 0 {
			args = append(args, scope.AsPatient)
			clauses = append(clauses, "a.patient_id = $"+strconv.Itoa(len(args)))
		}
		if scope.AsDoctor != 0 {
			args = append(args, scope.AsDoctor)
			clauses = append(clauses, "a.doctor_id = $"+strconv.Itoa(len(args)))
		}
		query += " WHERE " + joinOr(clauses)
	}
	query += " ORDER BY a.date, a.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Appointment
	for rows.Next() {
		a := entity.Appointment{}
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, date, description, number_of_beds, condition)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.Patient.ID, a.Doctor.ID, a.Date, a.Description, a.NumberOfBeds, a.Condition).Scan(&a.ID)
}

func (r *AppointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET patient_id = $1, doctor_id = $2, date = $3, description = $4,
			number_of_beds = $5, condition = $6
		WHERE id = $7
	`, a.Patient.ID, a.Doctor.ID, a.Date, a.Description, a.NumberOfBeds, a.Condition, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFoundEntity("appointment", a.ID)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFoundEntity("appointment", id)
	}
	return nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
