package command

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndumiso/bizstock/internal/catalog/domain"
)

type fakeProductRepository struct {
	bySKU  map[string]*domain.Product
	nextID uint
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{bySKU: make(map[string]*domain.Product), nextID: 1}
}

func (f *fakeProductRepository) Create(product *domain.Product) error {
	product.ID = f.nextID
	f.nextID++
	f.bySKU[product.SKU] = product
	return nil
}

func (f *fakeProductRepository) FindByID(id uint) (*domain.Product, error) {
	for _, p := range f.bySKU {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("product not found")
}

func (f *fakeProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	if p, ok := f.bySKU[sku]; ok {
		return p, nil
	}
	return nil, errors.New("product not found")
}

func (f *fakeProductRepository) FindAll() ([]domain.Product, error) {
	all := make([]domain.Product, 0, len(f.bySKU))
	for _, p := range f.bySKU {
		all = append(all, *p)
	}
	return all, nil
}

func (f *fakeProductRepository) Update(*domain.Product) error { return nil }

func (f *fakeProductRepository) Count() (int64, error) { return int64(len(f.bySKU)), nil }

type fakeCategoryRepository struct {
	byID   map[uint]*domain.ProductCategory
	nextID uint
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{byID: make(map[uint]*domain.ProductCategory), nextID: 1}
}

func (f *fakeCategoryRepository) Create(category *domain.ProductCategory) error {
	category.ID = f.nextID
	f.nextID++
	f.byID[category.ID] = category
	return nil
}

func (f *fakeCategoryRepository) FindByID(id uint) (*domain.ProductCategory, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, errors.New("category not found")
}

func (f *fakeCategoryRepository) FindByName(name string) (*domain.ProductCategory, error) {
	for _, c := range f.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.New("category not found")
}

func (f *fakeCategoryRepository) FindAll() ([]domain.ProductCategory, error) {
	all := make([]domain.ProductCategory, 0, len(f.byID))
	for _, c := range f.byID {
		all = append(all, *c)
	}
	return all, nil
}

func validAddProductCommand() AddProductCommand {
	return AddProductCommand{
		SKU:           "WIDGET-1",
		Name:          "Widget",
		Quantity:      10,
		Price:         decimal.RequireFromString("19.99"),
		CostPrice:     decimal.RequireFromString("8.00"),
		MinStockLevel: 3,
	}
}

func TestAddProduct(t *testing.T) {
	handler := NewAddProductHandler(newFakeProductRepository(), newFakeCategoryRepository())

	product, err := handler.Handle(validAddProductCommand())
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "WIDGET-1", product.SKU)
	assert.Nil(t, product.CategoryID)
}

func TestAddProductWithCategory(t *testing.T) {
	categories := newFakeCategoryRepository()
	category := &domain.ProductCategory{Name: "Hardware"}
	require.NoError(t, categories.Create(category))

	handler := NewAddProductHandler(newFakeProductRepository(), categories)

	cmd := validAddProductCommand()
	cmd.CategoryID = &category.ID
	product, err := handler.Handle(cmd)
	require.NoError(t, err)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)
}

func TestAddProductUnknownCategory(t *testing.T) {
	handler := NewAddProductHandler(newFakeProductRepository(), newFakeCategoryRepository())

	missing := uint(99)
	cmd := validAddProductCommand()
	cmd.CategoryID = &missing

	_, err := handler.Handle(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestAddProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AddProductCommand)
		wantErr string
	}{
		{"missing sku", func(c *AddProductCommand) { c.SKU = "" }, "sku is required"},
		{"missing name", func(c *AddProductCommand) { c.Name = "" }, "name is required"},
		{"negative quantity", func(c *AddProductCommand) { c.Quantity = -1 }, "quantity cannot be negative"},
		{"negative price", func(c *AddProductCommand) { c.Price = decimal.RequireFromString("-1") }, "price cannot be negative"},
		{"negative min stock", func(c *AddProductCommand) { c.MinStockLevel = -1 }, "minimum stock level cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAddProductHandler(newFakeProductRepository(), newFakeCategoryRepository())

			cmd := validAddProductCommand()
			tt.mutate(&cmd)

			_, err := handler.Handle(cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAddProductDuplicateSKU(t *testing.T) {
	handler := NewAddProductHandler(newFakeProductRepository(), newFakeCategoryRepository())

	_, err := handler.Handle(validAddProductCommand())
	require.NoError(t, err)

	_, err = handler.Handle(validAddProductCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sku already exists")
}
