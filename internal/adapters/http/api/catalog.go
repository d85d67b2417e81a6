package api

import (
	"context"
	"net/http"

	"github.com/okian/heropick/internal/domain/types"
)

// CatalogDependencies defines the interface for catalog listings.
type CatalogDependencies interface {
	Heroes(ctx context.Context) ([]types.HeroView, error)
	Pool(ctx context.Context) ([]types.PoolView, error)
}

// CatalogHandler serves the hero catalog and the comfort pool.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleHeroes handles GET /heroes requests.
func (h *CatalogHandler) HandleHeroes(w http.ResponseWriter, r *http.Request) {
	const op = "api.heroes"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	heroes, err := h.deps.Heroes(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, heroes)
}

// HandlePool handles GET /pool requests.
func (h *CatalogHandler) HandlePool(w http.ResponseWriter, r *http.Request) {
	const op = "api.pool"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	pool, err := h.deps.Pool(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pool)
}
