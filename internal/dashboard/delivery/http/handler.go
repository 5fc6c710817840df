package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	catalogdomain "github.com/ndumiso/bizstock/internal/catalog/domain"
	customerdomain "github.com/ndumiso/bizstock/internal/customer/domain"
	"github.com/ndumiso/bizstock/internal/dashboard/usecase/query"
	vendorhttp "github.com/ndumiso/bizstock/internal/vendors/delivery/http"
	"github.com/ndumiso/bizstock/pkg/logger"
	"github.com/ndumiso/bizstock/web"
)

// DashboardHandler renders the dashboard view
type DashboardHandler struct {
	dashboard  *query.GetDashboardHandler
	customers  customerdomain.CustomerRepository
	categories catalogdomain.CategoryRepository
	renderer   *web.Renderer
	metrics    *web.Metrics
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboard *query.GetDashboardHandler,
	customers customerdomain.CustomerRepository,
	categories catalogdomain.CategoryRepository,
	renderer *web.Renderer,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard:  dashboard,
		customers:  customers,
		categories: categories,
		renderer:   renderer,
		metrics:    web.NewMetrics("dashboard"),
	}
}

type dashboardPageData struct {
	BusinessName  string
	Snapshot      *query.Snapshot
	Customers     []customerdomain.Customer
	Categories    []catalogdomain.ProductCategory
	Flash         string
	FlashCategory string
}

// Dashboard handles GET /
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snapshot := h.dashboard.Handle(r.Context(), time.Now())

	// Form option lists; a failure here degrades the forms, not the page
	customers, err := h.customers.FindAll()
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load customers for dashboard")
	}
	categories, err := h.categories.FindAll()
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load categories for dashboard")
	}

	category, message := web.PopFlash(w, r)
	h.renderer.Render(w, r, "dashboard.html", dashboardPageData{
		BusinessName:  vendorhttp.BusinessName(r.Context()),
		Snapshot:      snapshot,
		Customers:     customers,
		Categories:    categories,
		Flash:         message,
		FlashCategory: category,
	})
}

// HealthCheck handles GET /health
func (h *DashboardHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}

// RegisterRoutes registers the dashboard route behind the session middleware
func (h *DashboardHandler) RegisterRoutes(router *mux.Router, requireSession func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/", h.metrics.Middleware("/", requireSession(h.Dashboard))).Methods("GET")
}

// RegisterHealthCheck registers the health endpoint
func (h *DashboardHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
