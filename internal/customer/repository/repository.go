package repository

import (
	"fmt"

	"github.com/ndumiso/bizstock/internal/customer/domain"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormCustomerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Customer{})
}

// Create inserts a new customer into the database
func (r *GormCustomerRepository) Create(customer *domain.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindByID retrieves a customer by ID
func (r *GormCustomerRepository) FindByID(id uint) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

// FindAll retrieves all customers ordered by name
func (r *GormCustomerRepository) FindAll() ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := r.db.Order("name").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}
	return customers, nil
}

// Count returns the total number of customers
func (r *GormCustomerRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
