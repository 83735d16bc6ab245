package connector

import (
	"context"
	"time"

	"github.com/silvermoss/loupe/internal/model"
)

// Connector defines the interface all log source connectors must implement.
type Connector interface {
	// Stream opens a long-lived source and sends raw logs as they arrive.
	Stream(ctx context.Context, cfg Config) (<-chan model.RawLog, error)

	// Query fetches a batch of logs matching the given parameters.
	Query(ctx context.Context, cfg Config, params QueryParams) ([]model.RawLog, error)
}

// Config holds provider-specific source settings.
type Config struct {
	Provider string
	Path     string // file-based sources
	Endpoint string // network sources
	APIKey   string
	Extra    map[string]string
}

// QueryParams defines filters for batch log queries.
type QueryParams struct {
	Start  time.Time
	End    time.Time
	Limit  int
	Filter string
}
