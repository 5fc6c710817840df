package repository

import (
	"fmt"

	"github.com/ndumiso/bizstock/internal/catalog/domain"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.ProductCategory{}, &domain.Product{})
}

// Create inserts a new product into the database
func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by ID
func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindBySKU retrieves a product by SKU
func (r *GormProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindAll retrieves all products ordered by name
func (r *GormProductRepository) FindAll() ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// Update updates a product
func (r *GormProductRepository) Update(product *domain.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Count returns the total number of products
func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
