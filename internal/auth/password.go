// internal/auth/password.go
package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt ignores input beyond 72 bytes; truncate explicitly so hashing and
// verification agree on long passwords.
const maxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(password, hash string) bool {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), b) == nil
}
