package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/repository"
	"github.com/david-mangena/e-commerce-site/internal/services"
)

const validBookingJSON = `{"firstname":"John","lastname":"Doe","totalprice":150,"depositpaid":true,"bookingdates":{"checkin":"2024-01-15","checkout":"2024-01-20"},"additionalneeds":"Breakfast"}`

func newTestBooker(t *testing.T) (http.Handler, services.BookingService) {
	t.Helper()
	svc := services.NewBookingService(
		repository.NewMemoryBookingRepository(),
		services.NewTokenStore(),
		models.Credentials{Username: "admin", Password: "password123"},
		nil,
	)
	return NewBookerRouter(svc, nil), svc
}

func serve(handler http.Handler, method, path, body string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func withToken(token models.Token) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Cookie", token.Cookie())
	}
}

func withBasicAuth(username, password string) func(*http.Request) {
	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

func createBooking(t *testing.T, handler http.Handler) models.CreatedBooking {
	t.Helper()
	w := serve(handler, http.MethodPost, "/booking", validBookingJSON, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var created models.CreatedBooking
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode created booking: %v", err)
	}
	return created
}

func TestBookerHandler_Ping(t *testing.T) {
	handler, _ := newTestBooker(t)

	w := serve(handler, http.MethodGet, "/ping", "", nil)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestBookerHandler_CreateToken(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		wantToken      bool
		wantReason     string
	}{
		{
			name:           "valid credentials",
			body:           `{"username":"admin","password":"password123"}`,
			expectedStatus: http.StatusOK,
			wantToken:      true,
		},
		{
			name:           "invalid credentials",
			body:           `{"username":"invalid","password":"wrong"}`,
			expectedStatus: http.StatusOK,
			wantReason:     "Bad credentials",
		},
		{
			name:           "empty credentials",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			wantReason:     "Bad credentials",
		},
		{
			name:           "malformed body",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestBooker(t)

			w := serve(handler, http.MethodPost, "/auth", tt.body, nil)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.AuthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if (resp.Token != "") != tt.wantToken {
				t.Errorf("token = %q, wantToken %v", resp.Token, tt.wantToken)
			}
			if resp.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", resp.Reason, tt.wantReason)
			}
		})
	}
}

func TestBookerHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "valid booking", body: validBookingJSON, expectedStatus: http.StatusOK},
		{name: "missing names", body: `{"totalprice":1,"bookingdates":{"checkin":"2024-01-01","checkout":"2024-01-02"}}`, expectedStatus: http.StatusInternalServerError},
		{name: "malformed body", body: `not json`, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestBooker(t)

			w := serve(handler, http.MethodPost, "/booking", tt.body, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestBookerHandler_GetBooking(t *testing.T) {
	handler, _ := newTestBooker(t)
	created := createBooking(t, handler)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "existing booking", path: "/booking/1", expectedStatus: http.StatusOK},
		{name: "unknown booking", path: "/booking/999999", expectedStatus: http.StatusNotFound},
		{name: "non numeric id", path: "/booking/abc", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, http.MethodGet, tt.path, "", nil)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var booking models.Booking
			if err := json.Unmarshal(w.Body.Bytes(), &booking); err != nil {
				t.Fatalf("Failed to decode booking: %v", err)
			}
			if booking != created.Booking {
				t.Errorf("booking = %+v, want %+v", booking, created.Booking)
			}
		})
	}
}

func TestBookerHandler_ListBookings(t *testing.T) {
	handler, _ := newTestBooker(t)
	createBooking(t, handler)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "all bookings", path: "/booking", want: 1},
		{name: "matching name", path: "/booking?firstname=John&lastname=Doe", want: 1},
		{name: "other name", path: "/booking?firstname=Jane", want: 0},
		{name: "checkin after stay", path: "/booking?checkin=2024-06-01", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, http.MethodGet, tt.path, "", nil)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var refs []models.BookingRef
			if err := json.Unmarshal(w.Body.Bytes(), &refs); err != nil {
				t.Fatalf("Failed to decode listing: %v", err)
			}
			if len(refs) != tt.want {
				t.Errorf("expected %d bookings, got %d", tt.want, len(refs))
			}
		})
	}
}

func TestBookerHandler_Mutations(t *testing.T) {
	handler, svc := newTestBooker(t)
	created := createBooking(t, handler)
	token, _ := svc.Authenticate(models.Credentials{Username: "admin", Password: "password123"})

	update := `{"firstname":"Jane","lastname":"Smith","totalprice":200,"depositpaid":false,"bookingdates":{"checkin":"2024-02-01","checkout":"2024-02-05"},"additionalneeds":"Lunch"}`

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		decorate       func(*http.Request)
		expectedStatus int
		checkContent   string
	}{
		{name: "update without auth", method: http.MethodPut, path: "/booking/1", body: update, expectedStatus: http.StatusForbidden, checkContent: "Forbidden"},
		{name: "update with invalid token", method: http.MethodPut, path: "/booking/1", body: update, decorate: withToken("invalid_token_12345"), expectedStatus: http.StatusForbidden},
		{name: "update with token", method: http.MethodPut, path: "/booking/1", body: update, decorate: withToken(token), expectedStatus: http.StatusOK, checkContent: `"firstname":"Jane"`},
		{name: "update with basic auth", method: http.MethodPut, path: "/booking/1", body: update, decorate: withBasicAuth("admin", "password123"), expectedStatus: http.StatusOK},
		{name: "update with invalid payload", method: http.MethodPut, path: "/booking/1", body: `{"firstname":"Only"}`, decorate: withToken(token), expectedStatus: http.StatusBadRequest},
		{name: "update unknown booking", method: http.MethodPut, path: "/booking/999999", body: update, decorate: withToken(token), expectedStatus: http.StatusMethodNotAllowed},
		{name: "patch without auth", method: http.MethodPatch, path: "/booking/1", body: `{"firstname":"Updated"}`, expectedStatus: http.StatusForbidden},
		{name: "patch with token", method: http.MethodPatch, path: "/booking/1", body: `{"firstname":"Updated","lastname":"Name"}`, decorate: withToken(token), expectedStatus: http.StatusOK, checkContent: `"lastname":"Name"`},
		{name: "patch unknown booking", method: http.MethodPatch, path: "/booking/999999", body: `{}`, decorate: withToken(token), expectedStatus: http.StatusMethodNotAllowed},
		{name: "delete without auth", method: http.MethodDelete, path: "/booking/1", expectedStatus: http.StatusForbidden},
		{name: "delete with token", method: http.MethodDelete, path: "/booking/1", decorate: withToken(token), expectedStatus: http.StatusCreated, checkContent: "Created"},
		{name: "delete again", method: http.MethodDelete, path: "/booking/1", decorate: withToken(token), expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, tt.method, tt.path, tt.body, tt.decorate)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.checkContent != "" && !strings.Contains(w.Body.String(), tt.checkContent) {
				t.Errorf("expected response to contain '%s', got %s", tt.checkContent, w.Body.String())
			}
		})
	}

	w := serve(handler, http.MethodGet, "/booking/1", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected deleted booking %d to be gone, got status %d", created.BookingID, w.Code)
	}
}
