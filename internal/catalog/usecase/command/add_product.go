package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndumiso/bizstock/internal/catalog/domain"
)

// AddProductCommand represents the command to add a product to the catalog
type AddProductCommand struct {
	SKU           string
	Name          string
	CategoryID    *uint
	Quantity      int
	Price         decimal.Decimal
	CostPrice     decimal.Decimal
	MinStockLevel int
	Description   string
}

// AddProductHandler handles the add product command
type AddProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewAddProductHandler creates a new add product handler
func NewAddProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *AddProductHandler {
	return &AddProductHandler{products: products, categories: categories}
}

// Handle executes the add product command
func (h *AddProductHandler) Handle(cmd AddProductCommand) (*domain.Product, error) {
	// Validation
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if cmd.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.MinStockLevel < 0 {
		return nil, fmt.Errorf("minimum stock level cannot be negative")
	}

	// Check SKU uniqueness
	if existing, _ := h.products.FindBySKU(cmd.SKU); existing != nil {
		return nil, fmt.Errorf("sku already exists")
	}

	// A stale category reference is rejected at creation; the dashboard still
	// tolerates one on read.
	if cmd.CategoryID != nil {
		if _, err := h.categories.FindByID(*cmd.CategoryID); err != nil {
			return nil, fmt.Errorf("category not found")
		}
	}

	product := &domain.Product{
		SKU:           cmd.SKU,
		Name:          cmd.Name,
		CategoryID:    cmd.CategoryID,
		Quantity:      cmd.Quantity,
		Price:         cmd.Price,
		CostPrice:     cmd.CostPrice,
		MinStockLevel: cmd.MinStockLevel,
		Description:   cmd.Description,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.products.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
