package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusCreated   = "created"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Sales order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Domain errors surfaced to callers
var (
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
)

// Invoice is a billing document for a set of products sold to a customer
type Invoice struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	InvoiceNumber string          `json:"invoice_number" gorm:"uniqueIndex;not null"`
	CustomerID    uint            `json:"customer_id" gorm:"not null;index"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status        string          `json:"status" gorm:"not null;default:'created'"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one line of an invoice. UnitPrice is a point-in-time copy of
// the product price at invoicing, not a live reference.
type InvoiceItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	InvoiceID  uint            `json:"invoice_id" gorm:"not null;index"`
	ProductID  uint            `json:"product_id" gorm:"not null;index"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the table name
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// SalesOrder is the order-tracking counterpart created alongside each invoice
type SalesOrder struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderNumber string          `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID  uint            `json:"customer_id" gorm:"not null;index"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status      string          `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// StockDecrement names a product and the quantity an invoice removes from it
type StockDecrement struct {
	ProductID uint
	Quantity  int
}

// OrderSummary is a sales order joined to its customer name for display.
// CustomerName may be empty when the customer record is gone.
type OrderSummary struct {
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BillingRepository defines the contract for invoice and order data access.
// CreateInvoice must apply the invoice, its items, the stock decrements and the
// derived order in a single transaction; a decrement that would drive stock
// negative aborts the whole write with ErrInsufficientStock.
type BillingRepository interface {
	CreateInvoice(ctx context.Context, invoice *Invoice, items []InvoiceItem, order *SalesOrder, decrements []StockDecrement) error

	// Aggregations for the dashboard. Zero from/to means unbounded.
	SumRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumProductsSold(ctx context.Context, from, to time.Time) (int64, error)
	CountOrdersByStatus(ctx context.Context, statuses []string, from, to time.Time) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]OrderSummary, error)
}
