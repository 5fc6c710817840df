package repository

import (
	"fmt"

	"github.com/ndumiso/bizstock/internal/vendors/domain"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GORM vendor repository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormVendorRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Vendor{})
}

// Create inserts a new vendor into the database
func (r *GormVendorRepository) Create(vendor *domain.Vendor) error {
	if err := r.db.Create(vendor).Error; err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// FindByID retrieves a vendor by ID
func (r *GormVendorRepository) FindByID(id uint) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("vendor not found")
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return &vendor, nil
}

// FindByEmail retrieves a vendor by email
func (r *GormVendorRepository) FindByEmail(email string) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := r.db.Where("email = ?", email).First(&vendor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("vendor not found")
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return &vendor, nil
}

// Count returns the total number of vendors
func (r *GormVendorRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Vendor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return count, nil
}
