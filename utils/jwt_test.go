package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("admin", time.Hour)
	require.NoError(t, err)

	sub, err := ExtractSubjectFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("admin", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("admin", time.Hour)
	require.NoError(t, err)

	_, err = ExtractSubjectFromToken(token + "x")
	assert.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
