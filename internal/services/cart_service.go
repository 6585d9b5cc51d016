package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/observability"
)

// Storefront errors. Messages are shown verbatim in the error banner.
var (
	ErrUsernameRequired   = errors.New("Epic sadface: Username is required")
	ErrPasswordRequired   = errors.New("Epic sadface: Password is required")
	ErrLockedOut          = errors.New("Epic sadface: Sorry, this user has been locked out.")
	ErrBadCredentials     = errors.New("Epic sadface: Username and password do not match any user in this service")
	ErrFirstNameRequired  = errors.New("Error: First Name is required")
	ErrLastNameRequired   = errors.New("Error: Last Name is required")
	ErrPostalCodeRequired = errors.New("Error: Postal Code is required")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrNoSession          = errors.New("no storefront session")
	ErrCheckoutFailed     = errors.New("checkout could not be completed")
)

// AccountQuirk is a deliberate misbehavior attached to a storefront account
type AccountQuirk int

// Account quirks
const (
	QuirkNone AccountQuirk = iota
	QuirkLockedOut
	QuirkDropsLastName
	QuirkSlowLogin
	QuirkFinishFails
)

// storefrontPassword is shared by every account
const storefrontPassword = "secret_sauce"

// Accounts maps storefront usernames to their quirks
var Accounts = map[string]AccountQuirk{
	"standard_user":           QuirkNone,
	"locked_out_user":         QuirkLockedOut,
	"problem_user":            QuirkDropsLastName,
	"performance_glitch_user": QuirkSlowLogin,
	"error_user":              QuirkFinishFails,
	"visual_user":             QuirkNone,
}

// CheckoutInfo holds the customer information form
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// OrderSummary is the checkout overview of a cart
type OrderSummary struct {
	Items         []models.Product
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// StoreSession is one logged-in browser session
type StoreSession struct {
	ID       string
	Username string
	Cart     []string
	Info     CheckoutInfo
}

// CartService handles storefront logins, carts and checkout
type CartService interface {
	Login(username, password string) (*StoreSession, error)
	LoginDelay(username string) time.Duration
	Session(id string) (*StoreSession, error)
	AddToCart(id, productID string) error
	RemoveFromCart(id, productID string) error
	SetCheckoutInfo(id string, info CheckoutInfo) error
	Summary(id string) (OrderSummary, error)
	Finish(id string) error
	Logout(id string)
}

// CartServiceImpl implements CartService with in-memory sessions
type CartServiceImpl struct {
	mu        sync.Mutex
	sessions  map[string]*StoreSession
	slowLogin time.Duration
	logger    *zap.Logger
}

// NewCartService creates a cart service; slowLogin is the login delay of
// accounts with QuirkSlowLogin
func NewCartService(slowLogin time.Duration, logger *zap.Logger) CartService {
	return &CartServiceImpl{
		sessions:  make(map[string]*StoreSession),
		slowLogin: slowLogin,
		logger:    observability.OrNop(logger),
	}
}

// Login validates credentials and opens a session
func (s *CartServiceImpl) Login(username, password string) (*StoreSession, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	quirk, ok := Accounts[username]
	if !ok || password != storefrontPassword {
		return nil, ErrBadCredentials
	}
	if quirk == QuirkLockedOut {
		s.logger.Info("Locked out user attempted login", zap.String("username", username))
		return nil, ErrLockedOut
	}

	session := &StoreSession{ID: uuid.NewString(), Username: username}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("User logged in", zap.String("username", username), zap.String("session", session.ID))
	return copySession(session), nil
}

// LoginDelay returns how long a login of username should take
func (s *CartServiceImpl) LoginDelay(username string) time.Duration {
	if Accounts[username] == QuirkSlowLogin {
		return s.slowLogin
	}
	return 0
}

// Session returns a snapshot of the session with the given id
func (s *CartServiceImpl) Session(id string) (*StoreSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	return copySession(session), nil
}

// AddToCart adds a product once; adding it again is a no-op
func (s *CartServiceImpl) AddToCart(id, productID string) error {
	if _, ok := LookupProduct(productID); !ok {
		return ErrUnknownProduct
	}

	return s.update(id, func(session *StoreSession) error {
		for _, item := range session.Cart {
			if item == productID {
				return nil
			}
		}
		session.Cart = append(session.Cart, productID)
		return nil
	})
}

// RemoveFromCart removes a product from the cart
func (s *CartServiceImpl) RemoveFromCart(id, productID string) error {
	return s.update(id, func(session *StoreSession) error {
		kept := session.Cart[:0]
		for _, item := range session.Cart {
			if item != productID {
				kept = append(kept, item)
			}
		}
		session.Cart = kept
		return nil
	})
}

// SetCheckoutInfo validates and records the customer information
func (s *CartServiceImpl) SetCheckoutInfo(id string, info CheckoutInfo) error {
	return s.update(id, func(session *StoreSession) error {
		if Accounts[session.Username] == QuirkDropsLastName {
			info.LastName = ""
		}

		switch {
		case info.FirstName == "":
			return ErrFirstNameRequired
		case info.LastName == "":
			return ErrLastNameRequired
		case info.PostalCode == "":
			return ErrPostalCodeRequired
		}

		session.Info = info
		return nil
	})
}

// Summary computes the checkout overview of the session's cart
func (s *CartServiceImpl) Summary(id string) (OrderSummary, error) {
	session, err := s.Session(id)
	if err != nil {
		return OrderSummary{}, err
	}

	var summary OrderSummary
	for _, productID := range session.Cart {
		product, _ := LookupProduct(productID)
		summary.Items = append(summary.Items, product)
		summary.SubtotalCents += product.PriceCents
	}
	summary.TaxCents = (summary.SubtotalCents*taxPercent + 50) / 100
	summary.TotalCents = summary.SubtotalCents + summary.TaxCents

	return summary, nil
}

// Finish places the order and empties the cart
func (s *CartServiceImpl) Finish(id string) error {
	return s.update(id, func(session *StoreSession) error {
		if Accounts[session.Username] == QuirkFinishFails {
			s.logger.Warn("Checkout failed", zap.String("username", session.Username))
			return ErrCheckoutFailed
		}

		s.logger.Info("Order placed", zap.String("username", session.Username), zap.Int("items", len(session.Cart)))
		session.Cart = nil
		session.Info = CheckoutInfo{}
		return nil
	})
}

// Logout closes a session
func (s *CartServiceImpl) Logout(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *CartServiceImpl) update(id string, fn func(session *StoreSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrNoSession
	}
	return fn(session)
}

func copySession(session *StoreSession) *StoreSession {
	c := *session
	c.Cart = append([]string(nil), session.Cart...)
	return &c
}
