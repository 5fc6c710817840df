package command

import (
	"fmt"
	"time"

	"github.com/ndumiso/bizstock/internal/customer/domain"
)

// AddCustomerCommand represents the command to add a customer record
type AddCustomerCommand struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// AddCustomerHandler handles the add customer command
type AddCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewAddCustomerHandler creates a new add customer handler
func NewAddCustomerHandler(repo domain.CustomerRepository) *AddCustomerHandler {
	return &AddCustomerHandler{repo: repo}
}

// Handle executes the add customer command
func (h *AddCustomerHandler) Handle(cmd AddCustomerCommand) (*domain.Customer, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	customer := &domain.Customer{
		Name:      cmd.Name,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Address:   cmd.Address,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}
