package command

import (
	"fmt"
	"time"

	"github.com/ndumiso/bizstock/internal/catalog/domain"
)

// AddCategoryCommand represents the command to add a product category
type AddCategoryCommand struct {
	Name        string
	Description string
}

// AddCategoryHandler handles the add category command
type AddCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewAddCategoryHandler creates a new add category handler
func NewAddCategoryHandler(repo domain.CategoryRepository) *AddCategoryHandler {
	return &AddCategoryHandler{repo: repo}
}

// Handle executes the add category command
func (h *AddCategoryHandler) Handle(cmd AddCategoryCommand) (*domain.ProductCategory, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
		return nil, fmt.Errorf("category already exists")
	}

	category := &domain.ProductCategory{
		Name:        cmd.Name,
		Description: cmd.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
