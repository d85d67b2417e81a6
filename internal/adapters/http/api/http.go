// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/heropick/internal/app"
	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/types"
)

const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecommendDependencies
	CatalogDependencies
	ReloadDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	catalogHandler   *CatalogHandler
	reloadHandler    *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
		reloadHandler:    NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/heroes", MetricsMiddleware(s.catalogHandler.HandleHeroes, "heroes"))
	mux.HandleFunc("/pool", MetricsMiddleware(s.catalogHandler.HandlePool, "pool"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report is the body of a successful POST /recommend.
type Report = types.Report

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps service and domain errors to a status and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidLimit):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, catalog.ErrDuplicatePick):
		return http.StatusBadRequest, "duplicate_pick"
	case errors.Is(err, catalog.ErrUnknownHero), errors.Is(err, catalog.ErrEmptyName):
		return http.StatusBadRequest, "unknown_hero"
	case errors.Is(err, service.ErrNotReady):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, ErrReloadFailed):
		return http.StatusInternalServerError, "reload_failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "cancelled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func fail(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
