package repository

import (
	"fmt"

	"github.com/ndumiso/bizstock/internal/catalog/domain"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create inserts a new category into the database
func (r *GormCategoryRepository) Create(category *domain.ProductCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindByID retrieves a category by ID
func (r *GormCategoryRepository) FindByID(id uint) (*domain.ProductCategory, error) {
	var category domain.ProductCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category not found")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindByName retrieves a category by name
func (r *GormCategoryRepository) FindByName(name string) (*domain.ProductCategory, error) {
	var category domain.ProductCategory
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category not found")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindAll retrieves all categories ordered by name
func (r *GormCategoryRepository) FindAll() ([]domain.ProductCategory, error) {
	var categories []domain.ProductCategory
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}
