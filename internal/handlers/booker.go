package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/observability"
	"github.com/david-mangena/e-commerce-site/internal/services"
)

// BookerHandler serves the sandbox booking API
type BookerHandler struct {
	service services.BookingService
	logger  *zap.Logger
}

// NewBookerRouter builds the booking API routes
func NewBookerRouter(service services.BookingService, logger *zap.Logger) http.Handler {
	h := &BookerHandler{
		service: service,
		logger:  observability.OrNop(logger).Named("booker"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/ping", h.Ping)
	r.Post("/auth", h.CreateToken)

	r.Route("/booking", func(r chi.Router) {
		r.Get("/", h.ListBookings)
		r.Post("/", h.CreateBooking)
		r.Get("/{id}", h.GetBooking)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Put("/{id}", h.UpdateBooking)
			r.Patch("/{id}", h.PatchBooking)
			r.Delete("/{id}", h.DeleteBooking)
		})
	})

	return r
}

// Ping handles GET /ping
func (h *BookerHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusCreated)
}

// CreateToken handles POST /auth
func (h *BookerHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	token, ok := h.service.Authenticate(creds)
	if !ok {
		writeJSON(w, http.StatusOK, models.AuthResponse{Reason: "Bad credentials"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: string(token)})
}

// ListBookings handles GET /booking
func (h *BookerHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.BookingFilter{
		FirstName: query.Get("firstname"),
		LastName:  query.Get("lastname"),
		CheckIn:   query.Get("checkin"),
		CheckOut:  query.Get("checkout"),
	}

	refs, err := h.service.ListBookings(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err))
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// CreateBooking handles POST /booking
func (h *BookerHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	created, err := h.service.CreateBooking(r.Context(), booking)
	if err != nil {
		if !models.IsValidationError(err) {
			h.logger.Error("Failed to create booking", zap.Error(err))
		}
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// GetBooking handles GET /booking/{id}
func (h *BookerHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeStatus(w, http.StatusNotFound)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			writeStatus(w, http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get booking", zap.Int("bookingid", id), zap.Error(err))
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// UpdateBooking handles PUT /booking/{id}
func (h *BookerHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeStatus(w, http.StatusMethodNotAllowed)
		return
	}

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateBooking(r.Context(), id, booking)
	if err != nil {
		h.writeMutationError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// PatchBooking handles PATCH /booking/{id}
func (h *BookerHandler) PatchBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeStatus(w, http.StatusMethodNotAllowed)
		return
	}

	var patch models.BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	updated, err := h.service.PatchBooking(r.Context(), id, patch)
	if err != nil {
		h.writeMutationError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteBooking handles DELETE /booking/{id}
func (h *BookerHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeStatus(w, http.StatusMethodNotAllowed)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), id); err != nil {
		h.writeMutationError(w, id, err)
		return
	}

	writeStatus(w, http.StatusCreated)
}

// requireAuth accepts a token cookie or admin basic auth
func (h *BookerHandler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("token"); err == nil && h.service.Authorize(models.Token(cookie.Value)) {
			next.ServeHTTP(w, r)
			return
		}

		if username, password, ok := r.BasicAuth(); ok && h.service.AuthorizeBasic(username, password) {
			next.ServeHTTP(w, r)
			return
		}

		writeStatus(w, http.StatusForbidden)
	})
}

func (h *BookerHandler) writeMutationError(w http.ResponseWriter, id int, err error) {
	switch {
	case errors.Is(err, models.ErrBookingNotFound):
		writeStatus(w, http.StatusMethodNotAllowed)
	case models.IsValidationError(err):
		writeStatus(w, http.StatusBadRequest)
	default:
		h.logger.Error("Failed to modify booking", zap.Int("bookingid", id), zap.Error(err))
		writeStatus(w, http.StatusInternalServerError)
	}
}

func bookingID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeStatus writes the bare status text as a plain text body
func writeStatus(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(http.StatusText(status)))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Handled request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", r.Header.Get("X-Request-Id")),
			)
		})
	}
}
