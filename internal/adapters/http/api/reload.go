package api

import (
	"context"
	"net/http"
)

// ReloadDependencies defines the interface for reloading the data set.
type ReloadDependencies interface {
	Reload(ctx context.Context) error
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

type reloadResponse struct {
	Status string `json:"status"`
}

// HandleReload handles POST /reload requests.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reload(r.Context()); err != nil {
		fail(w, WrapKind(op, ErrReloadFailed, err))
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded"})
}
