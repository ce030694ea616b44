package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
	assert.False(t, IsUnusable(hash))
}

func TestUnusablePasswordHash(t *testing.T) {
	hash, err := UnusablePasswordHash()
	require.NoError(t, err)

	assert.True(t, IsUnusable(hash))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword(hash, hash))
}
