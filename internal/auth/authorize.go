package auth

import (
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
)

// Action identifies the operation being gated. The current policy grants the
// same set of principals every action on a resource they own, but each call
// site states what it is doing.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Target names the owning identity (or identities) of the resource under
// decision. Appointments are two-sided: each side is gated by both an id
// match and the role matching that side.
type Target struct {
	ownerID   int64
	twoSided  bool
	patientID int64
	doctorID  int64
}

// OwnedBy describes a single-owner resource such as a patient or doctor
// profile.
func OwnedBy(accountID int64) Target {
	return Target{ownerID: accountID}
}

// AppointmentOf describes the two owning sides of an appointment.
func AppointmentOf(patientID, doctorID int64) Target {
	return Target{twoSided: true, patientID: patientID, doctorID: doctorID}
}

// Authorize is the pure role-authorization decision: nil allows, a FORBIDDEN
// apperr denies. Roles combine as an OR: holding any one sufficient role
// grants access, and ADMIN grants everything unconditionally.
func Authorize(sess Session, t Target, action Action) error {
	if sess.Roles.Has(entity.RoleAdmin) {
		return nil
	}
	if !t.twoSided {
		if sess.AccountID == t.ownerID {
			return nil
		}
		return forbidden(sess, action)
	}
	if sess.AccountID == t.patientID && sess.Roles.Has(entity.RolePatient) {
		return nil
	}
	if sess.AccountID == t.doctorID && sess.Roles.Has(entity.RoleDoctor) {
		return nil
	}
	return forbidden(sess, action)
}

func forbidden(sess Session, action Action) error {
	return apperr.Forbidden("you are not allowed to view this part of the application").
		WithDetails(map[string]any{
			"accountId": sess.AccountID,
			"roles":     sess.Roles.Names(),
			"action":    string(action),
		})
}
