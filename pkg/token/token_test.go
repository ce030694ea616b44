package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(42, "trainer", "secret", 5)
	require.NoError(t, err)

	claims, err := ValidateJWT(signed, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "trainer", claims.Role)
}

func TestValidateJWTRejects(t *testing.T) {
	signed, err := GenerateJWT(42, "player", "secret", 5)
	require.NoError(t, err)
	expired, err := GenerateJWT(42, "player", "secret", -1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", signed, "other"},
		{"expired", expired, "secret"},
		{"empty", "", "secret"},
		{"garbage", "not.a.jwt", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestGenerateInviteToken(t *testing.T) {
	a, err := GenerateInviteToken()
	require.NoError(t, err)
	b, err := GenerateInviteToken()
	require.NoError(t, err)

	assert.Len(t, a, InviteTokenBytes*2)
	assert.Regexp(t, "^[0-9a-f]+$", a)
	assert.NotEqual(t, a, b)
}
