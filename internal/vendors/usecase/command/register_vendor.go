package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndumiso/bizstock/internal/vendors/domain"
	"github.com/ndumiso/bizstock/pkg/auth"
)

// MinPasswordLength is the registration password policy
const MinPasswordLength = 8

// RegisterVendorCommand represents the command to register a new vendor account
type RegisterVendorCommand struct {
	FirstName       string
	LastName        string
	BusinessName    string // Optional, defaults to "<First> <Last> Business"
	Email           string
	Password        string
	ConfirmPassword string
}

// RegisterVendorHandler handles vendor registration
type RegisterVendorHandler struct {
	repo domain.VendorRepository
}

// NewRegisterVendorHandler creates a new register vendor handler
func NewRegisterVendorHandler(repo domain.VendorRepository) *RegisterVendorHandler {
	return &RegisterVendorHandler{repo: repo}
}

// Handle executes the register vendor command
func (h *RegisterVendorHandler) Handle(cmd RegisterVendorCommand) (*domain.Vendor, error) {
	// Validation
	if cmd.FirstName == "" {
		return nil, fmt.Errorf("first name is required")
	}
	if cmd.LastName == "" {
		return nil, fmt.Errorf("last name is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(cmd.Password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if cmd.Password != cmd.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Check email uniqueness
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	businessName := strings.TrimSpace(cmd.BusinessName)
	if businessName == "" {
		businessName = fmt.Sprintf("%s %s Business", cmd.FirstName, cmd.LastName)
	}

	vendor := &domain.Vendor{
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		BusinessName: businessName,
		Email:        cmd.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.repo.Create(vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	return vendor, nil
}
