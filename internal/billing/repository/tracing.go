package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ndumiso/bizstock/internal/billing/domain"
)

var tracer = otel.Tracer("billing-repository")

// GormBillingRepositoryWithTracing wraps GormBillingRepository with tracing
type GormBillingRepositoryWithTracing struct {
	*GormBillingRepository
}

// NewGormBillingRepositoryWithTracing creates a new repository with tracing
func NewGormBillingRepositoryWithTracing(db *gorm.DB) *GormBillingRepositoryWithTracing {
	return &GormBillingRepositoryWithTracing{
		GormBillingRepository: NewGormBillingRepository(db),
	}
}

// CreateInvoice records the invoice transaction as a span
func (r *GormBillingRepositoryWithTracing) CreateInvoice(ctx context.Context, invoice *domain.Invoice, items []domain.InvoiceItem, order *domain.SalesOrder, decrements []domain.StockDecrement) error {
	ctx, span := tracer.Start(ctx, "repository.CreateInvoice",
		trace.WithAttributes(
			attribute.String("invoice.number", invoice.InvoiceNumber),
			attribute.Int("invoice.customer_id", int(invoice.CustomerID)),
			attribute.Int("invoice.items", len(items)),
			attribute.String("invoice.total", invoice.TotalAmount.String()),
		),
	)
	defer span.End()

	err := r.GormBillingRepository.CreateInvoice(ctx, invoice, items, order, decrements)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.Int("invoice.id", int(invoice.ID)),
		attribute.String("order.number", order.OrderNumber),
	)
	return nil
}
