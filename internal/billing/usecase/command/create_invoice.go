package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndumiso/bizstock/internal/billing/domain"
	catalogdomain "github.com/ndumiso/bizstock/internal/catalog/domain"
	"github.com/ndumiso/bizstock/pkg/logger"
)

// maxNumberAttempts bounds retries when a generated invoice number collides
// with an existing one.
const maxNumberAttempts = 3

// ItemInput is one requested line: a product and how many units to invoice
type ItemInput struct {
	ProductID uint
	Quantity  int
}

// CreateInvoiceCommand represents the command to create an invoice with its
// line items and derived sales order
type CreateInvoiceCommand struct {
	CustomerID uint
	Items      []ItemInput
}

// CreateInvoiceResult reports what was written. Created is false when no item
// had a positive quantity and the command was a no-op.
type CreateInvoiceResult struct {
	Created bool
	Invoice *domain.Invoice
	Order   *domain.SalesOrder
}

// EventPublisher publishes billing events after a successful invoice commit.
// Implementations must not fail the request; errors are logged by the caller.
type EventPublisher interface {
	PublishInvoiceCreated(ctx context.Context, invoice *domain.Invoice, items []domain.InvoiceItem) error
	PublishLowStock(ctx context.Context, product *catalogdomain.Product, remaining int) error
}

// CreateInvoiceHandler handles invoice creation
type CreateInvoiceHandler struct {
	billing   domain.BillingRepository
	products  catalogdomain.ProductRepository
	publisher EventPublisher // optional
}

// NewCreateInvoiceHandler creates a new create invoice handler
func NewCreateInvoiceHandler(billing domain.BillingRepository, products catalogdomain.ProductRepository, publisher EventPublisher) *CreateInvoiceHandler {
	return &CreateInvoiceHandler{billing: billing, products: products, publisher: publisher}
}

// Handle executes the create invoice command. The invoice, its items, the
// stock decrements and the derived sales order are committed atomically.
func (h *CreateInvoiceHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) (*CreateInvoiceResult, error) {
	if cmd.CustomerID == 0 {
		return nil, fmt.Errorf("customer is required")
	}

	// Only positive quantities count; duplicate product lines are merged.
	requested := make(map[uint]int)
	var order []uint
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			continue
		}
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	if len(requested) == 0 {
		return &CreateInvoiceResult{Created: false}, nil
	}

	// Stock pre-check with the user-facing message; the transaction re-checks
	// under the row guard so a concurrent sale cannot slip through.
	lines := make([]invoiceLine, 0, len(order))
	for _, productID := range order {
		product, err := h.products.FindByID(productID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", productID, err)
		}
		qty := requested[productID]
		if qty > product.Quantity {
			return nil, fmt.Errorf("%w: %s has %d in stock, %d requested",
				domain.ErrInsufficientStock, product.Name, product.Quantity, qty)
		}
		lines = append(lines, invoiceLine{product: product, qty: qty})
	}

	items := make([]domain.InvoiceItem, 0, len(lines))
	decrements := make([]domain.StockDecrement, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		lineTotal := l.product.Price.Mul(decimal.NewFromInt(int64(l.qty)))
		items = append(items, domain.InvoiceItem{
			ProductID:  l.product.ID,
			Quantity:   l.qty,
			UnitPrice:  l.product.Price,
			TotalPrice: lineTotal,
		})
		decrements = append(decrements, domain.StockDecrement{ProductID: l.product.ID, Quantity: l.qty})
		total = total.Add(lineTotal)
	}

	var invoice *domain.Invoice
	var salesOrder *domain.SalesOrder
	for attempt := 1; ; attempt++ {
		invoiceNumber, orderNumber := newDocumentNumbers(time.Now())
		invoice = &domain.Invoice{
			InvoiceNumber: invoiceNumber,
			CustomerID:    cmd.CustomerID,
			TotalAmount:   total,
			Status:        domain.InvoiceStatusCreated,
			CreatedAt:     time.Now(),
		}
		salesOrder = &domain.SalesOrder{
			OrderNumber: orderNumber,
			CustomerID:  cmd.CustomerID,
			TotalAmount: total,
			Status:      domain.OrderStatusConfirmed,
			CreatedAt:   time.Now(),
		}

		txItems := make([]domain.InvoiceItem, len(items))
		copy(txItems, items)

		err := h.billing.CreateInvoice(ctx, invoice, txItems, salesOrder, decrements)
		if err == nil {
			items = txItems
			break
		}
		if errors.Is(err, domain.ErrDuplicateInvoiceNumber) && attempt < maxNumberAttempts {
			logger.Warn(ctx).
				Str("invoice_number", invoiceNumber).
				Int("attempt", attempt).
				Msg("Invoice number collision, regenerating")
			continue
		}
		return nil, err
	}

	h.publishEvents(ctx, invoice, items, lines)

	return &CreateInvoiceResult{Created: true, Invoice: invoice, Order: salesOrder}, nil
}

// invoiceLine pairs a loaded product with the quantity being invoiced
type invoiceLine struct {
	product *catalogdomain.Product
	qty     int
}

// publishEvents emits best-effort notifications after commit
func (h *CreateInvoiceHandler) publishEvents(ctx context.Context, invoice *domain.Invoice, items []domain.InvoiceItem, lines []invoiceLine) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.PublishInvoiceCreated(ctx, invoice, items); err != nil {
		logger.Error(ctx).Err(err).
			Str("invoice_number", invoice.InvoiceNumber).
			Msg("Failed to publish invoice created event")
	}

	for _, l := range lines {
		remaining := l.product.Quantity - l.qty
		// Only announce the crossing, not every sale below the threshold.
		if remaining <= l.product.AlertLevel() && l.product.Quantity > l.product.AlertLevel() {
			if err := h.publisher.PublishLowStock(ctx, l.product, remaining); err != nil {
				logger.Error(ctx).Err(err).
					Str("sku", l.product.SKU).
					Msg("Failed to publish low stock event")
			}
		}
	}
}

// newDocumentNumbers generates the paired invoice and order numbers. Both
// share the date and random suffix, e.g. INV-20260831-0042 / ORD-20260831-0042.
func newDocumentNumbers(now time.Time) (invoiceNumber, orderNumber string) {
	invoiceNumber = fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), rand.Intn(10000))
	orderNumber = "ORD-" + strings.TrimPrefix(invoiceNumber, "INV-")
	return invoiceNumber, orderNumber
}
