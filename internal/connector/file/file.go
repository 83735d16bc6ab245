// Package file reads raw logs from a file on disk.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/model"
)

func init() {
	connector.Register("file", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements connector.Connector for plain files.
type Connector struct{}

// Stream tails the file: existing lines are sent first, then the connector
// polls for appended content until ctx is cancelled.
func (c *Connector) Stream(ctx context.Context, cfg connector.Config) (<-chan model.RawLog, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file connector: missing path")
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file connector: %w", err)
	}

	ch := make(chan model.RawLog)
	go func() {
		defer close(ch)
		defer f.Close()

		reader := bufio.NewReader(f)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				raw := model.RawLog{
					Timestamp: time.Now(),
					Source:    "file",
					Raw:       strings.TrimRight(line, "\n"),
				}
				select {
				case <-ctx.Done():
					return
				case ch <- raw:
				}
			}
			if err == nil {
				continue
			}
			// EOF: wait for more content.
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch, nil
}

// Query reads the whole file as one RawLog so multi-line traces survive.
func (c *Connector) Query(_ context.Context, cfg connector.Config, _ connector.QueryParams) ([]model.RawLog, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file connector: missing path")
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file connector: %w", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return []model.RawLog{{
		Timestamp: time.Now(),
		Source:    "file",
		Raw:       text,
	}}, nil
}
