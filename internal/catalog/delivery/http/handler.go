package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/ndumiso/bizstock/internal/catalog/domain"
	"github.com/ndumiso/bizstock/internal/catalog/usecase/command"
	"github.com/ndumiso/bizstock/pkg/logger"
	"github.com/ndumiso/bizstock/web"
)

// CatalogHandler handles product and category form routes
type CatalogHandler struct {
	addProductHandler  *command.AddProductHandler
	addCategoryHandler *command.AddCategoryHandler
	metrics            *web.Metrics
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(products domain.ProductRepository, categories domain.CategoryRepository) *CatalogHandler {
	return &CatalogHandler{
		addProductHandler:  command.NewAddProductHandler(products, categories),
		addCategoryHandler: command.NewAddCategoryHandler(categories),
		metrics:            web.NewMetrics("catalog"),
	}
}

// AddStock handles POST /add_stock
func (h *CatalogHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.SetFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		web.SetFlash(w, "error", "Invalid price")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	costPrice := decimal.Zero
	if raw := r.FormValue("cost_price"); raw != "" {
		if costPrice, err = decimal.NewFromString(raw); err != nil {
			web.SetFlash(w, "error", "Invalid cost price")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	minStock, _ := strconv.Atoi(r.FormValue("min_stock_level"))

	var categoryID *uint
	if raw := r.FormValue("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			web.SetFlash(w, "error", "Invalid category")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		cid := uint(id)
		categoryID = &cid
	}

	cmd := command.AddProductCommand{
		SKU:           r.FormValue("sku"),
		Name:          r.FormValue("name"),
		CategoryID:    categoryID,
		Quantity:      quantity,
		Price:         price,
		CostPrice:     costPrice,
		MinStockLevel: minStock,
		Description:   r.FormValue("description"),
	}

	product, err := h.addProductHandler.Handle(cmd)
	if err != nil {
		web.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	logger.Info(r.Context()).
		Str("sku", product.SKU).
		Int("quantity", product.Quantity).
		Msg("Product added")
	web.SetFlash(w, "success", "Product "+product.Name+" added")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AddCategory handles POST /add_category
func (h *CatalogHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.SetFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	cmd := command.AddCategoryCommand{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	category, err := h.addCategoryHandler.Handle(cmd)
	if err != nil {
		web.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	web.SetFlash(w, "success", "Category "+category.Name+" added")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterRoutes registers catalog routes behind the session middleware
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, requireSession func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/add_stock", h.metrics.Middleware("/add_stock", requireSession(h.AddStock))).Methods("POST")
	router.HandleFunc("/add_category", h.metrics.Middleware("/add_category", requireSession(h.AddCategory))).Methods("POST")
}
