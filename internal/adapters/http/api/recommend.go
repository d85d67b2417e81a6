package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/heropick/internal/domain/types"
)

// RecommendDependencies defines the interface for draft recommendations.
type RecommendDependencies interface {
	Recommend(ctx context.Context, req types.Request) (types.Report, error)
}

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// recommendRequest mirrors the OpenAPI schema for POST /recommend.
type recommendRequest struct {
	Team  []string `json:"team"`
	Enemy []string `json:"enemy"`
	Roles []string `json:"roles"`
	Limit int      `json:"limit"`
}

func (r recommendRequest) validate() error {
	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.deps.Recommend(r.Context(), types.Request{
		Team:  req.Team,
		Enemy: req.Enemy,
		Roles: req.Roles,
		Limit: req.Limit,
	})
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
