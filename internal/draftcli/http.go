package draftcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/types"
)

const maxResponseBytes = 4 << 20

// RemoteClient calls POST /recommend on a running service.
type RemoteClient struct {
	client  *http.Client
	baseURL string
}

// NewRemoteClient creates a client for the service at baseURL.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Recommend posts req and decodes the report. Unknown and duplicate picks
// come back as catalog.ErrUnknownHero and catalog.ErrDuplicatePick.
func (c *RemoteClient) Recommend(ctx context.Context, req types.Request) (types.Report, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.Report{}, fmt.Errorf("failed to marshal request body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return types.Report{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return types.Report{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.Report{}, fmt.Errorf("%w: read body: %w", ErrRemote, err)
	}
	if resp.StatusCode != http.StatusOK {
		var e apiError
		_ = json.Unmarshal(data, &e)
		return types.Report{}, toError(resp.StatusCode, e)
	}

	var report types.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return types.Report{}, fmt.Errorf("%w: decode report: %w", ErrRemote, err)
	}
	return report, nil
}

func toError(status int, e apiError) error {
	switch e.Code {
	case "unknown_hero":
		return &remoteError{kind: catalog.ErrUnknownHero, msg: e.Message}
	case "duplicate_pick":
		return &remoteError{kind: catalog.ErrDuplicatePick, msg: e.Message}
	}
	if e.Code == "" {
		e.Code = http.StatusText(status)
	}
	return fmt.Errorf("%w: HTTP %d %s: %s", ErrRemote, status, e.Code, e.Message)
}
