package auth

import (
	"testing"

	"github.com/docline/docline-api/internal/domain/entity"
)

func TestVisibleScopeAppointments(t *testing.T) {
	cases := []struct {
		name string
		sess Session
		want Scope
	}{
		{
			name: "patient sees own side",
			sess: Session{AccountID: 1, Roles: entity.NewRoleSet(entity.RolePatient)},
			want: Scope{AsPatient: 1},
		},
		{
			name: "doctor sees own side",
			sess: Session{AccountID: 10, Roles: entity.NewRoleSet(entity.RoleDoctor)},
			want: Scope{AsDoctor: 10},
		},
		{
			name: "dual role unions both sides",
			sess: Session{AccountID: 5, Roles: entity.NewRoleSet(entity.RolePatient, entity.RoleDoctor)},
			want: Scope{AsPatient: 5, AsDoctor: 5},
		},
		{
			name: "admin sees everything",
			sess: Session{AccountID: 99, Roles: entity.NewRoleSet(entity.RoleAdmin)},
			want: Scope{All: true},
		},
		{
			name: "admin with other roles still sees everything",
			sess: Session{AccountID: 5, Roles: entity.NewRoleSet(entity.RoleAdmin, entity.RolePatient, entity.RoleDoctor)},
			want: Scope{All: true},
		},
		{
			name: "no relevant role matches nothing",
			sess: Session{AccountID: 3, Roles: 0},
			want: Scope{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := VisibleScope(tc.sess, KindAppointment)
			if got != tc.want {
				t.Fatalf("VisibleScope = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestVisibleScopePatients(t *testing.T) {
	cases := []struct {
		name string
		sess Session
		want Scope
	}{
		{
			name: "patient sees only self",
			sess: Session{AccountID: 2, Roles: entity.NewRoleSet(entity.RolePatient)},
			want: Scope{Self: 2},
		},
		{
			name: "doctor sees own patients",
			sess: Session{AccountID: 10, Roles: entity.NewRoleSet(entity.RoleDoctor)},
			want: Scope{PatientsOfDoctor: 10},
		},
		{
			name: "dual role unions self and own patients",
			sess: Session{AccountID: 5, Roles: entity.NewRoleSet(entity.RolePatient, entity.RoleDoctor)},
			want: Scope{Self: 5, PatientsOfDoctor: 5},
		},
		{
			name: "admin sees everything",
			sess: Session{AccountID: 99, Roles: entity.NewRoleSet(entity.RoleAdmin)},
			want: Scope{All: true},
		},
		{
			name: "roleless session falls back to self",
			sess: Session{AccountID: 4, Roles: 0},
			want: Scope{Self: 4},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := VisibleScope(tc.sess, KindPatient)
			if got != tc.want {
				t.Fatalf("VisibleScope = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestVisibleScopeDoctors(t *testing.T) {
	sess := Session{AccountID: 2, Roles: entity.NewRoleSet(entity.RolePatient)}
	got := VisibleScope(sess, KindDoctor)
	if !got.All {
		t.Fatalf("doctor directory should be fully visible, got %+v", got)
	}
}

func TestScopeEmpty(t *testing.T) {
	if !(Scope{}).Empty() {
		t.Fatal("zero scope should be empty")
	}
	for _, s := range []Scope{{All: true}, {Self: 1}, {AsPatient: 1}, {AsDoctor: 1}, {PatientsOfDoctor: 1}} {
		if s.Empty() {
			t.Fatalf("scope %+v should not be empty", s)
		}
	}
}
