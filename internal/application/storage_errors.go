package application

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docline/docline-api/internal/domain/apperr"
)

// Postgres error codes recognized by the translation below. Anything else is
// re-raised unchanged: fail loud on what we do not understand.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateUniqueViolation maps duplicate-key failures (duplicate email at
// registration) to the Conflict taxonomy.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperr.Conflict("this item already exists")
	}
	return err
}

// translateAppointmentWriteError maps referential-integrity violations on the
// appointment write back to the NotFound taxonomy. The pre-write existence
// checks normally catch these; this path covers the race with a concurrent
// deletion of either party.
func translateAppointmentWriteError(err error, patientID, doctorID int64) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "fk_appointment_patient":
			return apperr.NotFoundEntity("patient", patientID)
		case "fk_appointment_doctor":
			return apperr.NotFoundEntity("doctor", doctorID)
		}
	case pgUniqueViolation:
		return apperr.Conflict("this item already exists")
	}
	return err
}
