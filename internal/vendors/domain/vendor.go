package domain

import "time"

// Vendor represents the business account that owns the catalog and sales data
type Vendor struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	BusinessName string    `json:"business_name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // Never expose credentials in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Vendor) TableName() string {
	return "vendors"
}

// DisplayName returns the name shown in the dashboard header
func (v *Vendor) DisplayName() string {
	if v.BusinessName != "" {
		return v.BusinessName
	}
	return v.FirstName + " " + v.LastName
}

// VendorRepository defines the contract for vendor data access
type VendorRepository interface {
	Create(vendor *Vendor) error
	FindByID(id uint) (*Vendor, error)
	FindByEmail(email string) (*Vendor, error)
	Count() (int64, error)
}
