package command

import (
	"fmt"

	"github.com/ndumiso/bizstock/internal/vendors/domain"
	"github.com/ndumiso/bizstock/pkg/auth"
)

// LoginVendorCommand represents the command to log a vendor in
type LoginVendorCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after a successful login
type LoginResponse struct {
	Token  string         `json:"token"`
	Vendor *domain.Vendor `json:"vendor"`
}

// LoginVendorHandler handles vendor login
type LoginVendorHandler struct {
	repo domain.VendorRepository
}

// NewLoginVendorHandler creates a new login vendor handler
func NewLoginVendorHandler(repo domain.VendorRepository) *LoginVendorHandler {
	return &LoginVendorHandler{repo: repo}
}

// Handle executes the login vendor command
func (h *LoginVendorHandler) Handle(cmd LoginVendorCommand) (*LoginResponse, error) {
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	vendor, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(vendor.PasswordHash, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(vendor.ID, vendor.Email, vendor.BusinessName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:  token,
		Vendor: vendor,
	}, nil
}
