package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/observability"
	"github.com/david-mangena/e-commerce-site/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie carries the storefront session id
const SessionCookie = "session-username"

// Page headings shown in the secondary header
const (
	HeadingProducts         = "Products"
	HeadingCart             = "Your Cart"
	HeadingCheckoutInfo     = "Checkout: Your Information"
	HeadingCheckoutOverview = "Checkout: Overview"
	HeadingCheckoutComplete = "Checkout: Complete!"
)

// productView is a catalog product prepared for rendering
type productView struct {
	ID           string
	Name         string
	Description  string
	Price        string
	InCart       bool
	AddTestID    string
	RemoveTestID string
}

// pageData is the data passed to every storefront template
type pageData struct {
	LoggedIn  bool
	Heading   string
	CartCount int
	Username  string
	Error     string
	Products  []productView
	Items     []productView
	Info      services.CheckoutInfo
	Subtotal  string
	Tax       string
	Total     string
}

// StorefrontHandler serves the sandbox storefront
type StorefrontHandler struct {
	cart      services.CartService
	templates map[string]*template.Template
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewStorefrontHandler parses the storefront templates and registers its routes
func NewStorefrontHandler(cart services.CartService, logger *zap.Logger) (*StorefrontHandler, error) {
	h := &StorefrontHandler{
		cart:      cart,
		templates: make(map[string]*template.Template),
		logger:    observability.OrNop(logger).Named("storefront"),
		mux:       http.NewServeMux(),
	}

	for _, name := range []string{"login", "inventory", "cart", "checkout_step_one", "checkout_step_two", "checkout_complete"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		h.templates[name] = tmpl
	}

	h.mux.HandleFunc("GET /{$}", h.LoginPage)
	h.mux.HandleFunc("POST /login", h.Login)
	h.mux.HandleFunc("POST /logout", h.Logout)
	h.mux.HandleFunc("GET /inventory.html", h.withSession(h.Inventory))
	h.mux.HandleFunc("POST /cart/add", h.withSession(h.AddToCart))
	h.mux.HandleFunc("POST /cart/remove", h.withSession(h.RemoveFromCart))
	h.mux.HandleFunc("GET /cart.html", h.withSession(h.Cart))
	h.mux.HandleFunc("GET /checkout-step-one.html", h.withSession(h.CheckoutInfo))
	h.mux.HandleFunc("POST /checkout-step-one.html", h.withSession(h.SubmitCheckoutInfo))
	h.mux.HandleFunc("GET /checkout-step-two.html", h.withSession(h.CheckoutOverview))
	h.mux.HandleFunc("POST /checkout/finish", h.withSession(h.Finish))
	h.mux.HandleFunc("GET /checkout-complete.html", h.withSession(h.CheckoutComplete))

	return h, nil
}

// ServeHTTP dispatches to the storefront routes
func (h *StorefrontHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// LoginPage handles GET /
func (h *StorefrontHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", pageData{})
}

// Login handles POST /login
func (h *StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("user-name")
	password := r.PostFormValue("password")

	// Slow accounts answer late but still answer
	if delay := h.cart.LoginDelay(username); delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	session, err := h.cart.Login(username, password)
	if err != nil {
		h.render(w, "login", pageData{Username: username, Error: err.Error()})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.cart.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Inventory handles GET /inventory.html
func (h *StorefrontHandler) Inventory(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	inCart := make(map[string]bool, len(session.Cart))
	for _, id := range session.Cart {
		inCart[id] = true
	}

	data := h.sessionPage(session, HeadingProducts)
	for _, product := range services.Catalog {
		view := newProductView(product)
		view.InCart = inCart[product.ID]
		data.Products = append(data.Products, view)
	}

	h.render(w, "inventory", data)
}

// AddToCart handles POST /cart/add
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	if err := h.cart.AddToCart(session.ID, r.PostFormValue("id")); err != nil {
		h.writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromCart handles POST /cart/remove
func (h *StorefrontHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	if err := h.cart.RemoveFromCart(session.ID, r.PostFormValue("id")); err != nil {
		h.writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cart handles GET /cart.html
func (h *StorefrontHandler) Cart(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	data := h.sessionPage(session, HeadingCart)
	data.Items = cartItems(session)
	h.render(w, "cart", data)
}

// CheckoutInfo handles GET /checkout-step-one.html
func (h *StorefrontHandler) CheckoutInfo(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	data := h.sessionPage(session, HeadingCheckoutInfo)
	data.Info = session.Info
	h.render(w, "checkout_step_one", data)
}

// SubmitCheckoutInfo handles POST /checkout-step-one.html
func (h *StorefrontHandler) SubmitCheckoutInfo(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	info := services.CheckoutInfo{
		FirstName:  r.PostFormValue("firstName"),
		LastName:   r.PostFormValue("lastName"),
		PostalCode: r.PostFormValue("postalCode"),
	}

	if err := h.cart.SetCheckoutInfo(session.ID, info); err != nil {
		data := h.sessionPage(session, HeadingCheckoutInfo)
		data.Info = info
		data.Error = err.Error()
		h.render(w, "checkout_step_one", data)
		return
	}

	http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
}

// CheckoutOverview handles GET /checkout-step-two.html
func (h *StorefrontHandler) CheckoutOverview(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	if session.Info == (services.CheckoutInfo{}) {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	summary, err := h.cart.Summary(session.ID)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	data := h.sessionPage(session, HeadingCheckoutOverview)
	for _, product := range summary.Items {
		data.Items = append(data.Items, newProductView(product))
	}
	data.Subtotal = models.FormatCents(summary.SubtotalCents)
	data.Tax = models.FormatCents(summary.TaxCents)
	data.Total = models.FormatCents(summary.TotalCents)

	h.render(w, "checkout_step_two", data)
}

// Finish handles POST /checkout/finish
func (h *StorefrontHandler) Finish(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	if err := h.cart.Finish(session.ID); err != nil {
		// The order stays on the overview page
		http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
}

// CheckoutComplete handles GET /checkout-complete.html
func (h *StorefrontHandler) CheckoutComplete(w http.ResponseWriter, r *http.Request, session *services.StoreSession) {
	h.render(w, "checkout_complete", h.sessionPage(session, HeadingCheckoutComplete))
}

type sessionHandlerFunc func(w http.ResponseWriter, r *http.Request, session *services.StoreSession)

// withSession resolves the session cookie; anonymous visitors get the login page
func (h *StorefrontHandler) withSession(next sessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err == nil {
			if session, err := h.cart.Session(cookie.Value); err == nil {
				next(w, r, session)
				return
			}
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, "login", pageData{
			Error: fmt.Sprintf("Epic sadface: You can only access '%s' when you are logged in.", r.URL.Path),
		})
	}
}

func (h *StorefrontHandler) sessionPage(session *services.StoreSession, heading string) pageData {
	return pageData{
		LoggedIn:  true,
		Heading:   heading,
		CartCount: len(session.Cart),
	}
}

func (h *StorefrontHandler) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
	}
}

func (h *StorefrontHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownProduct):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrNoSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		h.logger.Error("Cart operation failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func cartItems(session *services.StoreSession) []productView {
	items := make([]productView, 0, len(session.Cart))
	for _, id := range session.Cart {
		if product, ok := services.LookupProduct(id); ok {
			items = append(items, newProductView(product))
		}
	}
	return items
}

func newProductView(product models.Product) productView {
	return productView{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        models.FormatCents(product.PriceCents),
		AddTestID:    product.AddToCartTestID(),
		RemoveTestID: product.RemoveTestID(),
	}
}
