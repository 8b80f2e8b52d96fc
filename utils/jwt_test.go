package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("client-123", "client", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, role, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-123", sub)
	assert.Equal(t, "client", role)
}

func TestExtractIDFromExpiredToken(t *testing.T) {
	token, err := GenerateToken("client-123", "client", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestExtractIDFromGarbageToken(t *testing.T) {
	_, _, err := ExtractIDFromToken("not.a.token")
	assert.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	c := HashToken("abd")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
