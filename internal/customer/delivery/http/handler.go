package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ndumiso/bizstock/internal/customer/domain"
	"github.com/ndumiso/bizstock/internal/customer/usecase/command"
	"github.com/ndumiso/bizstock/pkg/logger"
	"github.com/ndumiso/bizstock/web"
)

// CustomerHandler handles customer form routes
type CustomerHandler struct {
	addHandler *command.AddCustomerHandler
	metrics    *web.Metrics
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(repo domain.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{
		addHandler: command.NewAddCustomerHandler(repo),
		metrics:    web.NewMetrics("customer"),
	}
}

// AddCustomer handles POST /add_customer
func (h *CustomerHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.SetFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	cmd := command.AddCustomerCommand{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
	}

	customer, err := h.addHandler.Handle(cmd)
	if err != nil {
		web.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	logger.Info(r.Context()).
		Uint("customer_id", customer.ID).
		Msg("Customer added")
	web.SetFlash(w, "success", "Customer "+customer.Name+" added")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterRoutes registers customer routes behind the session middleware
func (h *CustomerHandler) RegisterRoutes(router *mux.Router, requireSession func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/add_customer", h.metrics.Middleware("/add_customer", requireSession(h.AddCustomer))).Methods("POST")
}
