package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceCreatedEvent announces a committed invoice and its lines
type InvoiceCreatedEvent struct {
	EventID       string             `json:"event_id"`
	EventType     string             `json:"event_type"`
	InvoiceID     uint               `json:"invoice_id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    uint               `json:"customer_id"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []InvoiceItemEvent `json:"items"`
	Timestamp     time.Time          `json:"timestamp"`
}

// InvoiceItemEvent is one invoice line inside InvoiceCreatedEvent
type InvoiceItemEvent struct {
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// LowStockEvent announces a product crossing its alert threshold
type LowStockEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ProductID  uint      `json:"product_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Remaining  int       `json:"remaining"`
	AlertLevel int       `json:"alert_level"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeInvoiceCreated = "invoice.created"
	EventTypeLowStock       = "product.low_stock"
)

// Kafka topics
const (
	TopicInvoiceCreated = "invoice-created"
	TopicLowStock       = "product-low-stock"
)
