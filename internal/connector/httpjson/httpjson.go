// Package httpjson pulls logs from any HTTP endpoint that returns a JSON
// array of log entries. The field holding the log text is configurable, so
// it works against most ad-hoc log APIs without a dedicated connector.
package httpjson

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/connector/httpclient"
	"github.com/silvermoss/loupe/internal/model"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultMessageField = "message"
)

func init() {
	connector.Register("httpjson", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements connector.Connector for generic JSON log endpoints.
type Connector struct {
	client *httpclient.Client
}

// entry is one element of the endpoint's response array. Fields are decoded
// loosely because every API names them differently.
type entry map[string]any

func (c *Connector) ensureClient(cfg connector.Config) {
	if c.client == nil {
		c.client = httpclient.New(cfg.APIKey)
	}
}

// Stream polls the endpoint on an interval and sends entries newer than the
// last poll. The interval comes from Extra["poll_interval"].
func (c *Connector) Stream(ctx context.Context, cfg connector.Config) (<-chan model.RawLog, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("httpjson connector: missing endpoint")
	}
	c.ensureClient(cfg)

	interval := defaultPollInterval
	if v := cfg.Extra["poll_interval"]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("httpjson connector: bad poll_interval %q: %w", v, err)
		}
		interval = d
	}

	ch := make(chan model.RawLog)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		since := time.Time{}
		for {
			logs, err := c.fetch(ctx, cfg, since, 0)
			if err == nil {
				for _, raw := range logs {
					select {
					case <-ctx.Done():
						return
					case ch <- raw:
					}
					if raw.Timestamp.After(since) {
						since = raw.Timestamp
					}
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch, nil
}

// Query fetches one batch of entries from the endpoint.
func (c *Connector) Query(ctx context.Context, cfg connector.Config, params connector.QueryParams) ([]model.RawLog, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("httpjson connector: missing endpoint")
	}
	c.ensureClient(cfg)
	return c.fetch(ctx, cfg, params.Start, params.Limit)
}

func (c *Connector) fetch(ctx context.Context, cfg connector.Config, since time.Time, limit int) ([]model.RawLog, error) {
	params := url.Values{}
	if !since.IsZero() {
		params.Set("since", since.UTC().Format(time.RFC3339))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var entries []entry
	if err := c.client.GetJSON(ctx, cfg.Endpoint, params, &entries); err != nil {
		return nil, fmt.Errorf("httpjson connector: %w", err)
	}

	field := cfg.Extra["message_field"]
	if field == "" {
		field = defaultMessageField
	}

	logs := make([]model.RawLog, 0, len(entries))
	for _, e := range entries {
		msg, ok := e[field].(string)
		if !ok || msg == "" {
			continue
		}
		logs = append(logs, model.RawLog{
			Timestamp: entryTime(e),
			Source:    "httpjson",
			Raw:       msg,
		})
	}
	return logs, nil
}

// entryTime pulls a timestamp from the common field names, falling back to
// the current time when the entry has none.
func entryTime(e entry) time.Time {
	for _, key := range []string{"timestamp", "time", "created_at", "ts"} {
		s, ok := e[key].(string)
		if !ok {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
	}
	return time.Now()
}
