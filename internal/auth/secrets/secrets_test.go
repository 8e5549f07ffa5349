package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "minnetherapy/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashCost("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, Verify("password123", hash))
	assert.ErrorIs(t, Verify("password124", hash), ErrMismatch)
}

func TestHashRejectsBadInput(t *testing.T) {
	_, err := HashCost("", bcrypt.MinCost)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = HashCost(strings.Repeat("x", 80), bcrypt.MinCost)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestVerifyMalformedHash(t *testing.T) {
	err := Verify("password123", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
