package query

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	billingdomain "github.com/ndumiso/bizstock/internal/billing/domain"
	catalogdomain "github.com/ndumiso/bizstock/internal/catalog/domain"
	manufacturingdomain "github.com/ndumiso/bizstock/internal/manufacturing/domain"
	"github.com/ndumiso/bizstock/pkg/logger"
)

// recentOrderLimit caps the recent-orders list on the dashboard
const recentOrderLimit = 5

// uncategorizedName is shown when a product's category reference is missing
// or stale
const uncategorizedName = "Uncategorized"

// ProductView is a product enriched for dashboard display
type ProductView struct {
	ID           uint            `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	AlertLevel   int             `json:"alert_level"`
	StockStatus  string          `json:"stock_status"`
}

// Snapshot is the full dashboard state for one render
type Snapshot struct {
	TotalProducts  int64           `json:"total_products"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ProductsSold   int64           `json:"products_sold"`

	CompletedJobs  int64 `json:"completed_jobs"`
	InProgressJobs int64 `json:"in_progress_jobs"`
	ScheduledJobs  int64 `json:"scheduled_jobs"`

	ActiveOrders    int64 `json:"active_orders"`
	ActiveShipments int64 `json:"active_shipments"`

	// Percentage change against the previous calendar month
	RevenueChange       float64 `json:"revenue_change"`
	ProductsSoldChange  float64 `json:"products_sold_change"`
	CompletedJobsChange float64 `json:"completed_jobs_change"`
	ActiveOrdersChange  float64 `json:"active_orders_change"`

	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`

	Products     []ProductView               `json:"products"`
	RecentOrders []billingdomain.OrderSummary `json:"recent_orders"`
}

// GetDashboardHandler aggregates the dashboard snapshot from the store
type GetDashboardHandler struct {
	products   catalogdomain.ProductRepository
	categories catalogdomain.CategoryRepository
	billing    billingdomain.BillingRepository
	jobs       manufacturingdomain.JobRepository
}

// NewGetDashboardHandler creates a new dashboard query handler
func NewGetDashboardHandler(
	products catalogdomain.ProductRepository,
	categories catalogdomain.CategoryRepository,
	billing billingdomain.BillingRepository,
	jobs manufacturingdomain.JobRepository,
) *GetDashboardHandler {
	return &GetDashboardHandler{
		products:   products,
		categories: categories,
		billing:    billing,
		jobs:       jobs,
	}
}

// Handle builds the snapshot for the given moment. A query failure is logged
// and yields a zero-valued snapshot; the dashboard prefers partial data over
// a hard failure.
func (h *GetDashboardHandler) Handle(ctx context.Context, now time.Time) *Snapshot {
	snapshot, err := h.build(ctx, now)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Dashboard aggregation failed, serving empty snapshot")
		return &Snapshot{
			InventoryValue: decimal.Zero,
			TotalRevenue:   decimal.Zero,
		}
	}
	return snapshot
}

func (h *GetDashboardHandler) build(ctx context.Context, now time.Time) (*Snapshot, error) {
	snapshot := &Snapshot{InventoryValue: decimal.Zero, TotalRevenue: decimal.Zero}

	products, err := h.products.FindAll()
	if err != nil {
		return nil, err
	}

	// Category lookup built per request, not a hidden cache
	categories, err := h.categories.FindAll()
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uint]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	snapshot.TotalProducts = int64(len(products))
	for i := range products {
		p := &products[i]
		snapshot.InventoryValue = snapshot.InventoryValue.Add(p.StockValue())

		status := p.StockStatus()
		switch status {
		case catalogdomain.StockStatusOut:
			snapshot.OutOfStockCount++
		case catalogdomain.StockStatusLow:
			snapshot.LowStockCount++
		}

		categoryName := uncategorizedName
		if p.CategoryID != nil {
			if name, ok := categoryNames[*p.CategoryID]; ok {
				categoryName = name
			}
		}

		snapshot.Products = append(snapshot.Products, ProductView{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CategoryName: categoryName,
			Quantity:     p.Quantity,
			Price:        p.Price,
			AlertLevel:   p.AlertLevel(),
			StockStatus:  status,
		})
	}

	var all time.Time
	if snapshot.TotalRevenue, err = h.billing.SumRevenue(ctx, all, all); err != nil {
		return nil, err
	}
	if snapshot.ProductsSold, err = h.billing.SumProductsSold(ctx, all, all); err != nil {
		return nil, err
	}

	if snapshot.CompletedJobs, err = h.jobs.CountByStatus(ctx, manufacturingdomain.JobStatusCompleted, all, all); err != nil {
		return nil, err
	}
	if snapshot.InProgressJobs, err = h.jobs.CountByStatus(ctx, manufacturingdomain.JobStatusInProgress, all, all); err != nil {
		return nil, err
	}
	if snapshot.ScheduledJobs, err = h.jobs.CountByStatus(ctx, manufacturingdomain.JobStatusScheduled, all, all); err != nil {
		return nil, err
	}

	activeStatuses := []string{billingdomain.OrderStatusPending, billingdomain.OrderStatusConfirmed}
	if snapshot.ActiveOrders, err = h.billing.CountOrdersByStatus(ctx, activeStatuses, all, all); err != nil {
		return nil, err
	}
	if snapshot.ActiveShipments, err = h.billing.CountOrdersByStatus(ctx, []string{billingdomain.OrderStatusShipped}, all, all); err != nil {
		return nil, err
	}

	// Previous calendar month, inclusive of its last day
	from, to := PreviousMonthWindow(now)

	prevRevenue, err := h.billing.SumRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prevSold, err := h.billing.SumProductsSold(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prevCompleted, err := h.jobs.CountByStatus(ctx, manufacturingdomain.JobStatusCompleted, from, to)
	if err != nil {
		return nil, err
	}
	prevActive, err := h.billing.CountOrdersByStatus(ctx, activeStatuses, from, to)
	if err != nil {
		return nil, err
	}

	snapshot.RevenueChange = PercentageChange(snapshot.TotalRevenue.InexactFloat64(), prevRevenue.InexactFloat64())
	snapshot.ProductsSoldChange = PercentageChange(float64(snapshot.ProductsSold), float64(prevSold))
	snapshot.CompletedJobsChange = PercentageChange(float64(snapshot.CompletedJobs), float64(prevCompleted))
	snapshot.ActiveOrdersChange = PercentageChange(float64(snapshot.ActiveOrders), float64(prevActive))

	if snapshot.RecentOrders, err = h.billing.RecentOrders(ctx, recentOrderLimit); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// PreviousMonthWindow returns the half-open range [first day of previous
// month, first day of the current month) for the given moment.
func PreviousMonthWindow(now time.Time) (from, to time.Time) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 0), firstOfMonth
}

// PercentageChange reports the month-over-month delta: 0 when both values are
// zero, 100 when only the previous is zero, otherwise the relative change
// rounded to one decimal place.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return math.Round(100*(current-previous)/previous*10) / 10
}
