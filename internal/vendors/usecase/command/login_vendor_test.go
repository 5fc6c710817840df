package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndumiso/bizstock/pkg/auth"
)

func registeredRepo(t *testing.T) *fakeVendorRepository {
	t.Helper()
	repo := newFakeVendorRepository()
	_, err := NewRegisterVendorHandler(repo).Handle(validRegisterCommand())
	require.NoError(t, err)
	return repo
}

func TestLoginVendor(t *testing.T) {
	handler := NewLoginVendorHandler(registeredRepo(t))

	resp, err := handler.Handle(LoginVendorCommand{
		Email:    "thandi@example.com",
		Password: "long-enough",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Vendor)
	assert.Equal(t, "thandi@example.com", resp.Vendor.Email)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Vendor.ID, claims.VendorID)
	assert.Equal(t, "Thandi Traders", claims.BusinessName)
}

func TestLoginVendorInvalidCredentials(t *testing.T) {
	handler := NewLoginVendorHandler(registeredRepo(t))

	tests := []struct {
		name string
		cmd  LoginVendorCommand
	}{
		{"unknown email", LoginVendorCommand{Email: "nobody@example.com", Password: "long-enough"}},
		{"wrong password", LoginVendorCommand{Email: "thandi@example.com", Password: "wrong-pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			require.Error(t, err)
			// The same message for both paths, no account enumeration
			assert.EqualError(t, err, "invalid credentials")
		})
	}
}

func TestLoginVendorMissingFields(t *testing.T) {
	handler := NewLoginVendorHandler(newFakeVendorRepository())

	_, err := handler.Handle(LoginVendorCommand{Password: "long-enough"})
	assert.Error(t, err)

	_, err = handler.Handle(LoginVendorCommand{Email: "thandi@example.com"})
	assert.Error(t, err)
}
