package auth

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apperrors.NewEncryptionError(err)
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. A malformed
// hash and a mismatch both yield WrongPassword.
func ComparePassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return apperrors.NewWrongPassword()
	}
	return nil
}
