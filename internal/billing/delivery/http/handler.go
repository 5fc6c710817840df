package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ndumiso/bizstock/internal/billing/usecase/command"
	"github.com/ndumiso/bizstock/pkg/logger"
	"github.com/ndumiso/bizstock/web"
)

// quantityFieldPrefix marks the per-product quantity inputs on the invoice form
const quantityFieldPrefix = "qty_"

// BillingHandler handles invoice and report routes
type BillingHandler struct {
	createHandler *command.CreateInvoiceHandler
	metrics       *web.Metrics
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(createHandler *command.CreateInvoiceHandler) *BillingHandler {
	return &BillingHandler{
		createHandler: createHandler,
		metrics:       web.NewMetrics("billing"),
	}
}

// CreateInvoice handles POST /create_invoice
func (h *BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.SetFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	customerID, err := strconv.ParseUint(r.FormValue("customer_id"), 10, 32)
	if err != nil || customerID == 0 {
		web.SetFlash(w, "error", "Please select a customer")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var items []command.ItemInput
	for field, values := range r.PostForm {
		if !strings.HasPrefix(field, quantityFieldPrefix) || len(values) == 0 {
			continue
		}
		productID, err := strconv.ParseUint(strings.TrimPrefix(field, quantityFieldPrefix), 10, 32)
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(values[0])
		if err != nil {
			continue
		}
		items = append(items, command.ItemInput{ProductID: uint(productID), Quantity: quantity})
	}

	cmd := command.CreateInvoiceCommand{
		CustomerID: uint(customerID),
		Items:      items,
	}

	result, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		web.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !result.Created {
		web.SetFlash(w, "info", "No items selected, nothing to invoice")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	logger.Info(r.Context()).
		Str("invoice_number", result.Invoice.InvoiceNumber).
		Str("order_number", result.Order.OrderNumber).
		Str("total", result.Invoice.TotalAmount.String()).
		Msg("Invoice created")
	web.SetFlash(w, "success", "Invoice "+result.Invoice.InvoiceNumber+" created")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GenerateReport handles POST /generate_report. Report generation is not
// implemented; the route acknowledges and redirects.
func (h *BillingHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	web.SetFlash(w, "info", "Report generation is coming soon")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterRoutes registers billing routes behind the session middleware
func (h *BillingHandler) RegisterRoutes(router *mux.Router, requireSession func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/create_invoice", h.metrics.Middleware("/create_invoice", requireSession(h.CreateInvoice))).Methods("POST")
	router.HandleFunc("/generate_report", h.metrics.Middleware("/generate_report", requireSession(h.GenerateReport))).Methods("POST")
}
