package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docline/docline-api/internal/domain/entity"
)

func newTestManager(now time.Time, ttl time.Duration) *TokenManager {
	m := NewTokenManager("test-secret", ttl)
	m.now = func() time.Time { return now }
	return m
}

func TestTokenRoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(start, time.Hour)

	roles := entity.NewRoleSet(entity.RolePatient, entity.RoleDoctor)
	token, exp, err := m.Issue(42, roles)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(start.Add(time.Hour)) {
		t.Fatalf("expiry = %v, want %v", exp, start.Add(time.Hour))
	}

	sess, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sess.AccountID != 42 {
		t.Fatalf("account id = %d, want 42", sess.AccountID)
	}
	if sess.Roles != roles {
		t.Fatalf("roles = %v, want %v", sess.Roles, roles)
	}
}

func TestTokenExpiry(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(start, time.Hour)

	token, _, err := m.Issue(7, entity.NewRoleSet(entity.RolePatient))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just inside the TTL the token still verifies.
	m.now = func() time.Time { return start.Add(time.Hour - time.Second) }
	if _, err := m.Verify(token); err != nil {
		t.Fatalf("verify inside ttl: %v", err)
	}

	// Past the TTL it is expired, not merely invalid.
	m.now = func() time.Time { return start.Add(time.Hour + time.Minute) }
	if _, err := m.Verify(token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("verify past ttl = %v, want ErrSessionExpired", err)
	}
}

func TestTokenTampered(t *testing.T) {
	m := newTestManager(time.Now(), time.Hour)
	token, _, err := m.Issue(1, entity.NewRoleSet(entity.RoleAdmin))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify tampered = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTestManager(time.Now(), time.Hour)
	token, _, err := issuer.Issue(1, entity.NewRoleSet(entity.RolePatient))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier := NewTokenManager("other-secret", time.Hour)
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := newTestManager(time.Now(), time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("verify(%q) = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestTokenUnknownRoleTagsSkipped(t *testing.T) {
	// A token signed with the shared secret but carrying tags outside the
	// current vocabulary must still verify; the unknown tags drop out.
	start := time.Now()
	m := newTestManager(start, time.Hour)

	claims := &Claims{
		Roles: []string{"DOCTOR", "SUPERUSER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3",
			IssuedAt:  jwt.NewNumericDate(start),
			ExpiresAt: jwt.NewNumericDate(start.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	sess, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sess.Roles != entity.NewRoleSet(entity.RoleDoctor) {
		t.Fatalf("roles = %v, want DOCTOR only", sess.Roles)
	}
}
