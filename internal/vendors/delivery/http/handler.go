package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ndumiso/bizstock/internal/vendors/domain"
	"github.com/ndumiso/bizstock/internal/vendors/usecase/command"
	"github.com/ndumiso/bizstock/pkg/logger"
	"github.com/ndumiso/bizstock/web"
)

// VendorHandler handles authentication routes
type VendorHandler struct {
	registerHandler *command.RegisterVendorHandler
	loginHandler    *command.LoginVendorHandler
	renderer        *web.Renderer
	metrics         *web.Metrics
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(repo domain.VendorRepository, renderer *web.Renderer) *VendorHandler {
	return &VendorHandler{
		registerHandler: command.NewRegisterVendorHandler(repo),
		loginHandler:    command.NewLoginVendorHandler(repo),
		renderer:        renderer,
		metrics:         web.NewMetrics("auth"),
	}
}

type authPageData struct {
	Flash         string
	FlashCategory string
}

// LoginPage handles GET /login
func (h *VendorHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	category, message := web.PopFlash(w, r)
	h.renderer.Render(w, r, "login.html", authPageData{Flash: message, FlashCategory: category})
}

// Login handles POST /login
func (h *VendorHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.SetFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	cmd := command.LoginVendorCommand{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	response, err := h.loginHandler.Handle(cmd)
	if err != nil {
		web.SetFlash(w, "error", "Invalid email or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	setSessionCookie(w, response.Token)
	logger.Info(r.Context()).
		Uint("vendor_id", response.Vendor.ID).
		Msg("Vendor logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage handles GET /register
func (h *VendorHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	category, message := web.PopFlash(w, r)
	h.renderer.Render(w, r, "register.html", authPageData{Flash: message, FlashCategory: category})
}

// Register handles POST /register
func (h *VendorHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.SetFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	cmd := command.RegisterVendorCommand{
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		BusinessName:    r.FormValue("business_name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	vendor, err := h.registerHandler.Handle(cmd)
	if err != nil {
		web.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	logger.Info(r.Context()).
		Uint("vendor_id", vendor.ID).
		Str("business", vendor.BusinessName).
		Msg("Vendor registered")
	web.SetFlash(w, "success", "Account created, please log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout handles GET /logout
func (h *VendorHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	web.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterRoutes registers authentication routes
func (h *VendorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.metrics.Middleware("/login", h.LoginPage)).Methods("GET")
	router.HandleFunc("/login", h.metrics.Middleware("/login", h.Login)).Methods("POST")
	router.HandleFunc("/register", h.metrics.Middleware("/register", h.RegisterPage)).Methods("GET")
	router.HandleFunc("/register", h.metrics.Middleware("/register", h.Register)).Methods("POST")
	router.HandleFunc("/logout", h.metrics.Middleware("/logout", h.Logout)).Methods("GET")
}
