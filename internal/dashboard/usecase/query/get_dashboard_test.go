package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingdomain "github.com/ndumiso/bizstock/internal/billing/domain"
	catalogdomain "github.com/ndumiso/bizstock/internal/catalog/domain"
)

type fakeProductRepository struct {
	products []catalogdomain.Product
	err      error
}

func (f *fakeProductRepository) Create(*catalogdomain.Product) error { return nil }

func (f *fakeProductRepository) FindByID(uint) (*catalogdomain.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepository) FindBySKU(string) (*catalogdomain.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepository) FindAll() ([]catalogdomain.Product, error) {
	return f.products, f.err
}

func (f *fakeProductRepository) Update(*catalogdomain.Product) error { return nil }

func (f *fakeProductRepository) Count() (int64, error) { return int64(len(f.products)), nil }

type fakeCategoryRepository struct {
	categories []catalogdomain.ProductCategory
}

func (f *fakeCategoryRepository) Create(*catalogdomain.ProductCategory) error { return nil }

func (f *fakeCategoryRepository) FindByID(uint) (*catalogdomain.ProductCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCategoryRepository) FindByName(string) (*catalogdomain.ProductCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCategoryRepository) FindAll() ([]catalogdomain.ProductCategory, error) {
	return f.categories, nil
}

// fakeBillingRepository serves current-period and previous-month aggregates.
// A zero from/to pair selects the current (unbounded) figures.
type fakeBillingRepository struct {
	revenue      decimal.Decimal
	prevRevenue  decimal.Decimal
	sold         int64
	prevSold     int64
	activeOrders int64
	prevActive   int64
	shipped      int64
	recent       []billingdomain.OrderSummary
	err          error
}

func (f *fakeBillingRepository) CreateInvoice(context.Context, *billingdomain.Invoice, []billingdomain.InvoiceItem, *billingdomain.SalesOrder, []billingdomain.StockDecrement) error {
	return errors.New("not implemented")
}

func (f *fakeBillingRepository) SumRevenue(_ context.Context, from, _ time.Time) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	if from.IsZero() {
		return f.revenue, nil
	}
	return f.prevRevenue, nil
}

func (f *fakeBillingRepository) SumProductsSold(_ context.Context, from, _ time.Time) (int64, error) {
	if from.IsZero() {
		return f.sold, nil
	}
	return f.prevSold, nil
}

func (f *fakeBillingRepository) CountOrdersByStatus(_ context.Context, statuses []string, from, _ time.Time) (int64, error) {
	if len(statuses) == 1 && statuses[0] == billingdomain.OrderStatusShipped {
		return f.shipped, nil
	}
	if from.IsZero() {
		return f.activeOrders, nil
	}
	return f.prevActive, nil
}

func (f *fakeBillingRepository) RecentOrders(_ context.Context, limit int) ([]billingdomain.OrderSummary, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeJobRepository struct {
	counts     map[string]int64
	prevCounts map[string]int64
}

func (f *fakeJobRepository) CountByStatus(_ context.Context, status string, from, _ time.Time) (int64, error) {
	if from.IsZero() {
		return f.counts[status], nil
	}
	return f.prevCounts[status], nil
}

func categoryID(id uint) *uint { return &id }

func newTestHandler(products *fakeProductRepository, billing *fakeBillingRepository) *GetDashboardHandler {
	categories := &fakeCategoryRepository{categories: []catalogdomain.ProductCategory{
		{ID: 1, Name: "Hardware"},
	}}
	jobs := &fakeJobRepository{
		counts:     map[string]int64{"completed": 4, "in_progress": 2, "scheduled": 1},
		prevCounts: map[string]int64{"completed": 2},
	}
	return NewGetDashboardHandler(products, categories, billing, jobs)
}

func TestGetDashboard(t *testing.T) {
	products := &fakeProductRepository{products: []catalogdomain.Product{
		{ID: 1, SKU: "A", Name: "Anvil", CategoryID: categoryID(1), Quantity: 0, Price: decimal.RequireFromString("100")},
		{ID: 2, SKU: "B", Name: "Bolt", CategoryID: categoryID(1), Quantity: 5, Price: decimal.RequireFromString("2"), MinStockLevel: 5},
		{ID: 3, SKU: "C", Name: "Crate", Quantity: 20, Price: decimal.RequireFromString("10")},
	}}
	billing := &fakeBillingRepository{
		revenue:      decimal.RequireFromString("300"),
		prevRevenue:  decimal.RequireFromString("200"),
		sold:         30,
		prevSold:     20,
		activeOrders: 6,
		prevActive:   4,
		shipped:      2,
		recent: []billingdomain.OrderSummary{
			{OrderNumber: "ORD-20260830-0001", CustomerName: "Sipho", Status: "confirmed"},
		},
	}
	handler := newTestHandler(products, billing)

	snapshot := handler.Handle(context.Background(), time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, int64(3), snapshot.TotalProducts)
	// 0x100 + 5x2 + 20x10
	assert.True(t, decimal.RequireFromString("210").Equal(snapshot.InventoryValue))
	assert.Equal(t, 1, snapshot.OutOfStockCount)
	assert.Equal(t, 1, snapshot.LowStockCount)

	assert.True(t, decimal.RequireFromString("300").Equal(snapshot.TotalRevenue))
	assert.Equal(t, int64(30), snapshot.ProductsSold)
	assert.Equal(t, int64(4), snapshot.CompletedJobs)
	assert.Equal(t, int64(2), snapshot.InProgressJobs)
	assert.Equal(t, int64(1), snapshot.ScheduledJobs)
	assert.Equal(t, int64(6), snapshot.ActiveOrders)
	assert.Equal(t, int64(2), snapshot.ActiveShipments)

	assert.Equal(t, 50.0, snapshot.RevenueChange)
	assert.Equal(t, 50.0, snapshot.ProductsSoldChange)
	assert.Equal(t, 100.0, snapshot.CompletedJobsChange)
	assert.Equal(t, 50.0, snapshot.ActiveOrdersChange)

	require.Len(t, snapshot.RecentOrders, 1)
	assert.Equal(t, "ORD-20260830-0001", snapshot.RecentOrders[0].OrderNumber)
}

func TestGetDashboardCategoryNames(t *testing.T) {
	stale := uint(99)
	products := &fakeProductRepository{products: []catalogdomain.Product{
		{ID: 1, SKU: "A", Name: "Anvil", CategoryID: categoryID(1), Quantity: 1, Price: decimal.Zero},
		{ID: 2, SKU: "B", Name: "Bolt", Quantity: 1, Price: decimal.Zero},
		{ID: 3, SKU: "C", Name: "Crate", CategoryID: &stale, Quantity: 1, Price: decimal.Zero},
	}}
	handler := newTestHandler(products, &fakeBillingRepository{revenue: decimal.Zero, prevRevenue: decimal.Zero})

	snapshot := handler.Handle(context.Background(), time.Now())

	require.Len(t, snapshot.Products, 3)
	assert.Equal(t, "Hardware", snapshot.Products[0].CategoryName)
	assert.Equal(t, "Uncategorized", snapshot.Products[1].CategoryName)
	// Stale reference falls back too
	assert.Equal(t, "Uncategorized", snapshot.Products[2].CategoryName)
}

func TestGetDashboardRecentOrdersCapped(t *testing.T) {
	recent := make([]billingdomain.OrderSummary, 8)
	for i := range recent {
		recent[i] = billingdomain.OrderSummary{OrderNumber: "ORD"}
	}
	handler := newTestHandler(
		&fakeProductRepository{},
		&fakeBillingRepository{revenue: decimal.Zero, prevRevenue: decimal.Zero, recent: recent},
	)

	snapshot := handler.Handle(context.Background(), time.Now())
	assert.Len(t, snapshot.RecentOrders, 5)
}

func TestGetDashboardServesEmptySnapshotOnError(t *testing.T) {
	products := &fakeProductRepository{err: errors.New("connection refused")}
	handler := newTestHandler(products, &fakeBillingRepository{})

	snapshot := handler.Handle(context.Background(), time.Now())

	require.NotNil(t, snapshot)
	assert.Equal(t, int64(0), snapshot.TotalProducts)
	assert.True(t, decimal.Zero.Equal(snapshot.InventoryValue))
	assert.True(t, decimal.Zero.Equal(snapshot.TotalRevenue))
	assert.Empty(t, snapshot.Products)
	assert.Empty(t, snapshot.RecentOrders)
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"from zero", 5, 0, 100},
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"rounded to one decimal", 130, 120, 8.3},
		{"to zero", 0, 80, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentageChange(tt.current, tt.previous))
		})
	}
}

func TestPreviousMonthWindow(t *testing.T) {
	from, to := PreviousMonthWindow(time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)

	// Year boundary
	from, to = PreviousMonthWindow(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
