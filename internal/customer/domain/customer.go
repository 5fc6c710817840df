package domain

import "time"

// Customer represents a buyer referenced by invoices and sales orders
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// CustomerRepository defines the contract for customer data access
type CustomerRepository interface {
	Create(customer *Customer) error
	FindByID(id uint) (*Customer, error)
	FindAll() ([]Customer, error)
	Count() (int64, error)
}
