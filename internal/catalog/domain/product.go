package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAlertLevel is the stock alert threshold used when a product has no
// explicit minimum stock level configured.
const DefaultAlertLevel = 10

// Stock status values
const (
	StockStatusOut = "out_of_stock"
	StockStatusLow = "low_stock"
	StockStatusOK  = "in_stock"
)

// Product represents a catalog item with stock on hand
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	SKU           string          `json:"sku" gorm:"uniqueIndex;not null"`
	Name          string          `json:"name" gorm:"not null"`
	CategoryID    *uint           `json:"category_id" gorm:"index"`
	Quantity      int             `json:"quantity" gorm:"not null;default:0"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	CostPrice     decimal.Decimal `json:"cost_price" gorm:"type:numeric(12,2)"`
	MinStockLevel int             `json:"min_stock_level" gorm:"default:0"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// AlertLevel returns the effective low-stock threshold. A non-positive
// MinStockLevel falls back to DefaultAlertLevel.
func (p *Product) AlertLevel() int {
	if p.MinStockLevel > 0 {
		return p.MinStockLevel
	}
	return DefaultAlertLevel
}

// StockStatus classifies the product into exactly one of out_of_stock,
// low_stock or in_stock.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StockStatusOut
	case p.Quantity <= p.AlertLevel():
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

// StockValue returns quantity × price for inventory valuation
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll() ([]Product, error)
	Update(product *Product) error
	Count() (int64, error)
}
