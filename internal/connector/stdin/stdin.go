// Package stdin reads raw logs from standard input, one per line in
// streaming mode or the whole input as one blob in query mode (a pasted
// traceback spans many lines and must stay together).
package stdin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/model"
)

func init() {
	connector.Register("stdin", func() connector.Connector {
		return &Connector{in: os.Stdin}
	})
}

// Connector implements connector.Connector over an io.Reader.
type Connector struct {
	in io.Reader
}

// NewWithReader creates a stdin connector over a custom reader. Used in
// tests and by callers that already hold the input.
func NewWithReader(r io.Reader) *Connector {
	return &Connector{in: r}
}

// Stream sends one RawLog per input line until EOF or ctx cancellation.
func (c *Connector) Stream(ctx context.Context, _ connector.Config) (<-chan model.RawLog, error) {
	ch := make(chan model.RawLog)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			raw := model.RawLog{
				Timestamp: time.Now(),
				Source:    "stdin",
				Raw:       scanner.Text(),
			}
			select {
			case <-ctx.Done():
				return
			case ch <- raw:
			}
		}
	}()
	return ch, nil
}

// Query reads everything until EOF and returns it as a single RawLog,
// preserving multi-line traces.
func (c *Connector) Query(ctx context.Context, _ connector.Config, _ connector.QueryParams) ([]model.RawLog, error) {
	data, err := io.ReadAll(c.in)
	if err != nil {
		return nil, fmt.Errorf("stdin connector: %w", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return []model.RawLog{{
		Timestamp: time.Now(),
		Source:    "stdin",
		Raw:       text,
	}}, nil
}
