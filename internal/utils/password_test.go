package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("wesele2026", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword(hash, "wesele2026"))
	assert.False(t, VerifyPassword(hash, "wesele2027"))
	assert.False(t, VerifyPassword("not-a-hash", "wesele2026"))
}

func TestHashPasswordBadCost(t *testing.T) {
	_, err := HashPassword("x", 99)
	assert.Error(t, err)
}
