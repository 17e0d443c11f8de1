package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword produces an opaque bcrypt hash of the plaintext secret. The
// rest of the application treats the hash as a one-way token and never
// inspects its format.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
