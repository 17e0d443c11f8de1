package auth

import (
	"github.com/docline/docline-api/internal/domain/entity"
)

// EntityKind selects which entity a visibility scope is being resolved for.
type EntityKind int

const (
	KindAppointment EntityKind = iota
	KindPatient
	KindDoctor
)

// Scope is the declarative filter the storage layer applies when enumerating
// an entity type. The resolver never materializes rows itself; repositories
// translate the scope into WHERE clauses and must collapse rows matched by
// more than one clause to a single result (the clauses combine as a logical
// OR). The zero value matches nothing.
type Scope struct {
	// All matches every row of the entity type.
	All bool
	// Self matches the row whose primary id equals this account id.
	Self int64
	// AsPatient and AsDoctor are appointment clauses: rows where the
	// caller occupies the given side.
	AsPatient int64
	AsDoctor  int64
	// PatientsOfDoctor matches patients sharing at least one appointment
	// with this doctor.
	PatientsOfDoctor int64
}

// Empty reports whether the scope has no clause and therefore matches
// nothing.
func (s Scope) Empty() bool {
	return !s.All && s.Self == 0 && s.AsPatient == 0 && s.AsDoctor == 0 && s.PatientsOfDoctor == 0
}

// VisibleScope computes which records of kind the session may enumerate.
// Clauses union across all roles held; ADMIN takes precedence and
// short-circuits the union, so an admin who is also a patient still sees
// everything.
func VisibleScope(sess Session, kind EntityKind) Scope {
	if sess.Roles.Has(entity.RoleAdmin) {
		return Scope{All: true}
	}

	switch kind {
	case KindAppointment:
		var s Scope
		if sess.Roles.Has(entity.RolePatient) {
			s.AsPatient = sess.AccountID
		}
		if sess.Roles.Has(entity.RoleDoctor) {
			s.AsDoctor = sess.AccountID
		}
		// No role touching appointments: the empty scope matches nothing.
		return s

	case KindPatient:
		var s Scope
		if sess.Roles.Has(entity.RolePatient) {
			s.Self = sess.AccountID
		}
		if sess.Roles.Has(entity.RoleDoctor) {
			s.PatientsOfDoctor = sess.AccountID
		}
		if s.Empty() {
			s.Self = sess.AccountID
		}
		return s

	case KindDoctor:
		// The doctor directory is public to any signed-in user; the
		// unauthenticated case never reaches this resolver.
		return Scope{All: true}
	}

	// Unknown entity kind: fall back to self only.
	return Scope{Self: sess.AccountID}
}
