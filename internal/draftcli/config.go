package draftcli

import (
	"context"
	"time"

	"github.com/okian/heropick/internal/domain/types"
)

// Config holds the command line settings of the draft tool.
type Config struct {
	BaseURL    string        // service URL; empty runs the engine in-process
	ConfigFile string        // service config for local mode
	TopN       int           // suggestions to show; 0 uses the service default
	Roles      []string      // desired roles override
	Timeout    time.Duration // HTTP request timeout in remote mode
	LogLevel   string
}

// Recommender answers a draft request, locally or over HTTP.
type Recommender interface {
	Recommend(ctx context.Context, req types.Request) (types.Report, error)
}
