// Package api provides the HTTP server for the marketplace. Routes are a
// thin JSON layer over the app services; all rules live below this.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drivebay/drivebay/internal/app"
	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/audit"
	"github.com/drivebay/drivebay/internal/infra/observability"
)

// Services bundles everything the server exposes.
type Services struct {
	Accounts        *app.AccountService
	Cars            *app.CarService
	Marketplace     *app.MarketplaceService
	Payments        *app.PaymentService
	Recommendations *app.RecommendationService
	Users           *app.UserService
	Auth            *app.AuthService
	Dashboard       *app.DashboardService
	Journal         *audit.Recorder
}

// Server is the marketplace HTTP API server.
type Server struct {
	svc            Services
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(svc Services) *Server {
	return &Server{svc: svc}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.handleListAccounts)
			r.Post("/", s.handleOpenAccount)
			r.Post("/transfer", s.handleTransfer)
			r.Get("/{id}", s.handleGetAccount)
			r.Delete("/{id}", s.handleDeleteAccount)
			r.Post("/{id}/credit", s.handleCredit)
			r.Post("/{id}/debit", s.handleDebit)
		})

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", s.handleListCars)
			r.Post("/", s.handleCreateCar)
			r.Get("/{id}", s.handleGetCar)
			r.Put("/{id}", s.handleUpdateCar)
			r.Delete("/{id}", s.handleDeleteCar)
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", s.handleListListings)
			r.Post("/", s.handleCreateListing)
			r.Get("/{id}", s.handleGetListing)
			r.Put("/{id}", s.handleUpdateListing)
			r.Post("/{id}/sold", s.handleListingSold)
			r.Post("/{id}/archive", s.handleListingArchive)
			r.Post("/{id}/activate", s.handleListingActivate)
			r.Get("/{id}/payments", s.handleListListingPayments)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", s.handleCreatePayment)
			r.Get("/{id}", s.handleGetPayment)
			r.Post("/{id}/confirm", s.handleConfirmPayment)
			r.Post("/{id}/cancel", s.handleCancelPayment)
		})

		r.Get("/recommendations", s.handleRecommendations)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/audit", s.handleAuditLog)
	})

	return r
}

// metricsMiddleware records request counts and latency per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		observability.ObserveHTTP(route, r.Method, ww.Status(), time.Since(start))
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps error kinds onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrGateway):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id %q", domain.ErrValidation, chi.URLParam(r, "id"))
	}
	return id, nil
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrValidation)
	}
	return nil
}
