package domain

import "time"

// ProductCategory groups products for catalog browsing and dashboard display
type ProductCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (ProductCategory) TableName() string {
	return "product_categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *ProductCategory) error
	FindByID(id uint) (*ProductCategory, error)
	FindByName(name string) (*ProductCategory, error)
	FindAll() ([]ProductCategory, error)
}
