package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndumiso/bizstock/internal/vendors/domain"
	"github.com/ndumiso/bizstock/pkg/auth"
)

type fakeVendorRepository struct {
	byEmail   map[string]*domain.Vendor
	createErr error
	nextID    uint
}

func newFakeVendorRepository() *fakeVendorRepository {
	return &fakeVendorRepository{byEmail: make(map[string]*domain.Vendor), nextID: 1}
}

func (f *fakeVendorRepository) Create(vendor *domain.Vendor) error {
	if f.createErr != nil {
		return f.createErr
	}
	vendor.ID = f.nextID
	f.nextID++
	f.byEmail[vendor.Email] = vendor
	return nil
}

func (f *fakeVendorRepository) FindByID(id uint) (*domain.Vendor, error) {
	for _, v := range f.byEmail {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errors.New("vendor not found")
}

func (f *fakeVendorRepository) FindByEmail(email string) (*domain.Vendor, error) {
	if v, ok := f.byEmail[email]; ok {
		return v, nil
	}
	return nil, errors.New("vendor not found")
}

func (f *fakeVendorRepository) Count() (int64, error) {
	return int64(len(f.byEmail)), nil
}

func validRegisterCommand() RegisterVendorCommand {
	return RegisterVendorCommand{
		FirstName:       "Thandi",
		LastName:        "Dlamini",
		BusinessName:    "Thandi Traders",
		Email:           "thandi@example.com",
		Password:        "long-enough",
		ConfirmPassword: "long-enough",
	}
}

func TestRegisterVendor(t *testing.T) {
	repo := newFakeVendorRepository()
	handler := NewRegisterVendorHandler(repo)

	vendor, err := handler.Handle(validRegisterCommand())
	require.NoError(t, err)
	assert.Equal(t, "Thandi Traders", vendor.BusinessName)
	assert.NotEqual(t, "long-enough", vendor.PasswordHash)
	assert.True(t, auth.CheckPassword(vendor.PasswordHash, "long-enough"))
	assert.NotZero(t, vendor.ID)
}

func TestRegisterVendorDefaultsBusinessName(t *testing.T) {
	repo := newFakeVendorRepository()
	handler := NewRegisterVendorHandler(repo)

	cmd := validRegisterCommand()
	cmd.BusinessName = "  "
	vendor, err := handler.Handle(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Thandi Dlamini Business", vendor.BusinessName)
}

func TestRegisterVendorValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterVendorCommand)
		wantErr string
	}{
		{
			name:    "missing first name",
			mutate:  func(c *RegisterVendorCommand) { c.FirstName = "" },
			wantErr: "first name is required",
		},
		{
			name:    "missing last name",
			mutate:  func(c *RegisterVendorCommand) { c.LastName = "" },
			wantErr: "last name is required",
		},
		{
			name:    "missing email",
			mutate:  func(c *RegisterVendorCommand) { c.Email = "" },
			wantErr: "email is required",
		},
		{
			name: "password too short",
			mutate: func(c *RegisterVendorCommand) {
				c.Password = "seven77"
				c.ConfirmPassword = "seven77"
			},
			wantErr: "password must be at least 8 characters",
		},
		{
			name:    "password confirmation mismatch",
			mutate:  func(c *RegisterVendorCommand) { c.ConfirmPassword = "different-pass" },
			wantErr: "passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeVendorRepository()
			handler := NewRegisterVendorHandler(repo)

			cmd := validRegisterCommand()
			tt.mutate(&cmd)

			_, err := handler.Handle(cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegisterVendorMinimumLengthPasswordAccepted(t *testing.T) {
	repo := newFakeVendorRepository()
	handler := NewRegisterVendorHandler(repo)

	cmd := validRegisterCommand()
	cmd.Password = "exactly8"
	cmd.ConfirmPassword = "exactly8"

	_, err := handler.Handle(cmd)
	assert.NoError(t, err)
}

func TestRegisterVendorDuplicateEmail(t *testing.T) {
	repo := newFakeVendorRepository()
	handler := NewRegisterVendorHandler(repo)

	_, err := handler.Handle(validRegisterCommand())
	require.NoError(t, err)

	_, err = handler.Handle(validRegisterCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
}
