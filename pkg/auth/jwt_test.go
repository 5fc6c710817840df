package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "thandi@example.com", "Thandi Traders")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.VendorID)
	assert.Equal(t, "thandi@example.com", claims.Email)
	assert.Equal(t, "Thandi Traders", claims.BusinessName)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken(1, "a@example.com", "A")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}
