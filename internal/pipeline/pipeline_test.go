package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/engine"
	"github.com/silvermoss/loupe/internal/model"
)

// chanConnector streams a fixed set of lines.
type chanConnector struct {
	lines []string
}

func (c *chanConnector) Stream(ctx context.Context, _ connector.Config) (<-chan model.RawLog, error) {
	ch := make(chan model.RawLog)
	go func() {
		defer close(ch)
		for _, line := range c.lines {
			select {
			case <-ctx.Done():
				return
			case ch <- model.RawLog{Timestamp: time.Now(), Source: "test", Raw: line}:
			}
		}
	}()
	return ch, nil
}

func (c *chanConnector) Query(_ context.Context, _ connector.Config, _ connector.QueryParams) ([]model.RawLog, error) {
	return []model.RawLog{{Timestamp: time.Now(), Source: "test", Raw: strings.Join(c.lines, "\n")}}, nil
}

// captureOutput records every written result.
type captureOutput struct {
	mu      sync.Mutex
	results []model.Result
	closed  bool
}

func (o *captureOutput) Write(_ context.Context, res model.Result) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, res)
	return nil
}

func (o *captureOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

func (o *captureOutput) all() []model.Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]model.Result(nil), o.results...)
}

var pythonTraceLines = []string{
	"Traceback (most recent call last):",
	`  File "/app/worker.py", line 12, in run`,
	"    item = queue[idx]",
	"IndexError: list index out of range",
}

func TestStreamCoalescesTraceLines(t *testing.T) {
	conn := &chanConnector{lines: pythonTraceLines}
	out := &captureOutput{}
	p := New(conn, engine.New(), out,
		WithWindow(50*time.Millisecond),
		WithAnalysisOptions(model.Options{Tags: true}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Stream(ctx, connector.Config{}); err != nil {
		t.Fatalf("Stream: %v", err)
	}

	results := out.all()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (lines should coalesce)", len(results))
	}
	if !contains(results[0].Tags, "Stack Trace") {
		t.Errorf("coalesced blob not recognized as trace; tags = %v", results[0].Tags)
	}
	if results[0].Metadata.LanguageDetected != model.LangPython {
		t.Errorf("language = %v", results[0].Metadata.LanguageDetected)
	}
}

func TestStreamFlushesOnWindow(t *testing.T) {
	// A connector that sends one line and then stalls until cancelled.
	ch := make(chan model.RawLog)
	conn := connectorFunc(func(ctx context.Context, _ connector.Config) (<-chan model.RawLog, error) {
		go func() {
			ch <- model.RawLog{Raw: "ERROR something failed", Source: "test", Timestamp: time.Now()}
			<-ctx.Done()
			close(ch)
		}()
		return ch, nil
	})

	out := &captureOutput{}
	p := New(conn, engine.New(), out, WithWindow(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Stream(ctx, connector.Config{})
		close(done)
	}()

	deadline := time.After(3 * time.Second)
	for {
		if len(out.all()) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("window flush never produced a result")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

// connectorFunc adapts a function to connector.Connector for stream tests.
type connectorFunc func(context.Context, connector.Config) (<-chan model.RawLog, error)

func (f connectorFunc) Stream(ctx context.Context, cfg connector.Config) (<-chan model.RawLog, error) {
	return f(ctx, cfg)
}

func (f connectorFunc) Query(context.Context, connector.Config, connector.QueryParams) ([]model.RawLog, error) {
	return nil, errors.New("not implemented")
}

func TestQueryProcessesBatch(t *testing.T) {
	conn := &chanConnector{lines: pythonTraceLines}
	out := &captureOutput{}
	p := New(conn, engine.New(), out, WithAnalysisOptions(model.Options{Summary: true, Tags: true}))

	if err := p.Query(context.Background(), connector.Config{}, connector.QueryParams{}); err != nil {
		t.Fatalf("Query: %v", err)
	}

	results := out.all()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Summary == "" {
		t.Error("summary requested but empty")
	}
	if !contains(results[0].Tags, "Stack Trace") {
		t.Errorf("tags = %v", results[0].Tags)
	}
}

func TestQueryConnectorError(t *testing.T) {
	conn := connectorFunc(func(context.Context, connector.Config) (<-chan model.RawLog, error) {
		return nil, nil
	})
	out := &captureOutput{}
	p := New(conn, engine.New(), out)

	if err := p.Query(context.Background(), connector.Config{}, connector.QueryParams{}); err == nil {
		t.Fatal("expected error from connector")
	}
}

func TestCloseClosesOutput(t *testing.T) {
	out := &captureOutput{}
	p := New(&chanConnector{}, engine.New(), out)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !out.closed {
		t.Error("output not closed")
	}
}

func contains(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
