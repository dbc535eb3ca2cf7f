package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/domain"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	"github.com/kailas-cloud/provdir/internal/logger"
	healthuc "github.com/kailas-cloud/provdir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/provdir/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	limits        request.Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	limits request.Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		health: health,
		limits: limits,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
	}
	return s
}

// Routes registers the API endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchParams are the raw query parameters of GET /search.
type searchParams struct {
	Query            *string
	State            *string
	City             *string
	ServiceModes     *[]string
	Insurances       *[]string
	Languages        *[]string
	AcceptingClients *bool
	UserLat          *float64
	UserLng          *float64
	RadiusMiles      *float64
	Page             *int
	Limit            *int
}

// bindSearchParams binds form-style exploded query parameters. List
// parameters are repeated (serviceModes=a&serviceModes=b).
func bindSearchParams(q url.Values) (searchParams, error) {
	var p searchParams
	binds := []struct {
		name string
		dest any
	}{
		{"query", &p.Query},
		{"state", &p.State},
		{"city", &p.City},
		{"serviceModes", &p.ServiceModes},
		{"insurances", &p.Insurances},
		{"languages", &p.Languages},
		{"acceptingClients", &p.AcceptingClients},
		{"userLat", &p.UserLat},
		{"userLng", &p.UserLng},
		{"radiusMiles", &p.RadiusMiles},
		{"page", &p.Page},
		{"limit", &p.Limit},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return searchParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

func (p *searchParams) toRequest() request.Params {
	return request.Params{
		Query:            deref(p.Query),
		State:            deref(p.State),
		City:             deref(p.City),
		ServiceModes:     deref(p.ServiceModes),
		Insurances:       deref(p.Insurances),
		Languages:        deref(p.Languages),
		AcceptingClients: p.AcceptingClients,
		UserLat:          p.UserLat,
		UserLng:          p.UserLng,
		RadiusMiles:      p.RadiusMiles,
		Page:             deref(p.Page),
		Limit:            deref(p.Limit),
	}
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	req := request.New(params.toRequest(), s.limits)
	if req.CoordinatesIgnored() {
		logger.FromContext(r.Context()).Debug("Searcher coordinates ignored",
			zap.Any("user_lat", params.UserLat),
			zap.Any("user_lng", params.UserLng),
		)
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewSearchResponse(&page))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the client-safe part of a domain error: its
// sentinel, or a generic message.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
