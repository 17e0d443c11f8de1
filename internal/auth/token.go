// Package auth holds the authorization and visibility core: the session
// token codec, the role authorization decision function and the visibility
// resolver. Everything here is a pure computation over the claims carried by
// the bearer token; nothing touches storage.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docline/docline-api/internal/domain/entity"
)

var (
	// ErrInvalidToken covers bad signatures and malformed structure alike.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrSessionExpired is returned when the token verified but its expiry
	// has passed.
	ErrSessionExpired = errors.New("session expired")
)

// Session is the claim set reconstructed from a verified token. It is never
// stored server-side; every authenticated request rebuilds it from the
// Authorization header and discards it at response time.
type Session struct {
	AccountID int64
	Roles     entity.RoleSet
}

type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the self-contained session tokens. Any
// verifier holding the shared secret can validate a token without a database
// round trip. Expiry is judged against wall-clock time at verification;
// clock skew between issuer and verifier is not compensated.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue serializes subject id and role set into a signed HS256 token expiring
// after the configured TTL.
func (m *TokenManager) Issue(subjectID int64, roles entity.RoleSet) (string, time.Time, error) {
	iat := m.now()
	exp := iat.Add(m.ttl)
	claims := &Claims{
		Roles: roles.Names(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify recomputes the signature and parses the claims back into a Session.
// Role tags outside the current vocabulary are skipped, not rejected, so old
// tokens keep verifying across vocabulary changes.
func (m *TokenManager) Verify(token string) (Session, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrSessionExpired
		}
		return Session{}, ErrInvalidToken
	}
	if !tkn.Valid {
		return Session{}, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	return Session{AccountID: id, Roles: entity.RoleSetFromNames(claims.Roles)}, nil
}
