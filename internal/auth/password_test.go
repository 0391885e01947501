package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	other, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")

	assert.NoError(t, ComparePassword(hash, "correct horse"))

	err = ComparePassword(hash, "battery staple")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeWrongPassword))

	err = ComparePassword("not-a-bcrypt-hash", "correct horse")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeWrongPassword))
}

func TestHashPasswordRejectsBadCost(t *testing.T) {
	_, err := HashPassword("correct horse", bcrypt.MaxCost+1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeEncryption))
}
