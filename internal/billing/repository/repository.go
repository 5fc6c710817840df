package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ndumiso/bizstock/internal/billing/domain"
	catalogdomain "github.com/ndumiso/bizstock/internal/catalog/domain"
)

// GormBillingRepository implements BillingRepository using GORM
type GormBillingRepository struct {
	db *gorm.DB
}

// NewGormBillingRepository creates a new GORM billing repository
func NewGormBillingRepository(db *gorm.DB) *GormBillingRepository {
	return &GormBillingRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormBillingRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{}, &domain.SalesOrder{})
}

// CreateInvoice writes the invoice, its items, the stock decrements and the
// derived sales order in one transaction. Each decrement is conditional on
// sufficient stock; a product that cannot cover the requested quantity rolls
// the whole write back with ErrInsufficientStock.
func (r *GormBillingRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice, items []domain.InvoiceItem, order *domain.SalesOrder, decrements []domain.StockDecrement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateInvoiceNumber
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create invoice items: %w", err)
			}
		}

		for _, d := range decrements {
			result := tx.Model(&catalogdomain.Product{}).
				Where("id = ? AND quantity >= ?", d.ProductID, d.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", d.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %d: %w", d.ProductID, result.Error)
			}
			// Zero rows means the guard failed under concurrency; abort everything.
			if result.RowsAffected == 0 {
				return domain.ErrInsufficientStock
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create sales order: %w", err)
		}

		return nil
	})
}

// SumRevenue sums invoice totals excluding drafts. Zero from/to means unbounded.
func (r *GormBillingRepository) SumRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	query := r.db.WithContext(ctx).Model(&domain.Invoice{}).Where("status <> ?", domain.InvoiceStatusDraft)
	query = betweenCreatedAt(query, from, to)

	if err := query.Select("SUM(total_amount)").Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumProductsSold sums item quantities on non-draft invoices
func (r *GormBillingRepository) SumProductsSold(ctx context.Context, from, to time.Time) (int64, error) {
	var total sql.NullInt64
	query := r.db.WithContext(ctx).Model(&domain.InvoiceItem{}).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.status <> ?", domain.InvoiceStatusDraft)
	if !from.IsZero() {
		query = query.Where("invoices.created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("invoices.created_at < ?", to)
	}

	if err := query.Select("SUM(invoice_items.quantity)").Row().Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum products sold: %w", err)
	}
	return total.Int64, nil
}

// CountOrdersByStatus counts sales orders in any of the given statuses
func (r *GormBillingRepository) CountOrdersByStatus(ctx context.Context, statuses []string, from, to time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.SalesOrder{}).Where("status IN ?", statuses)
	query = betweenCreatedAt(query, from, to)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// RecentOrders returns the newest sales orders with their customer names.
// The customer join is a left join so a deleted customer leaves the name blank
// instead of dropping the row.
func (r *GormBillingRepository) RecentOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	var orders []domain.OrderSummary
	err := r.db.WithContext(ctx).Model(&domain.SalesOrder{}).
		Select("sales_orders.order_number, COALESCE(customers.name, '') AS customer_name, sales_orders.total_amount, sales_orders.status, sales_orders.created_at").
		Joins("LEFT JOIN customers ON customers.id = sales_orders.customer_id").
		Order("sales_orders.created_at DESC").
		Limit(limit).
		Scan(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent orders: %w", err)
	}
	return orders, nil
}

func betweenCreatedAt(query *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}
	return query
}
