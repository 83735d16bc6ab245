// Package pipeline connects a connector, the analysis engine, and an output
// into a processing pipeline.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/engine"
	"github.com/silvermoss/loupe/internal/model"
	"github.com/silvermoss/loupe/internal/output"
)

const defaultWindow = 2 * time.Second

// Pipeline wires a log source through the engine to a destination.
type Pipeline struct {
	connector connector.Connector
	engine    *engine.Engine
	output    output.Output
	opts      model.Options
	window    time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAnalysisOptions sets the per-log analysis options applied to every
// raw log the pipeline processes.
func WithAnalysisOptions(opts model.Options) Option {
	return func(p *Pipeline) { p.opts = opts }
}

// WithWindow sets how long streamed lines are buffered before being
// analyzed as one blob. Default: 2s.
func WithWindow(d time.Duration) Option {
	return func(p *Pipeline) { p.window = d }
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, eng *engine.Engine, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		connector: conn,
		engine:    eng,
		output:    out,
		window:    defaultWindow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stream starts the pipeline in streaming mode. Lines from the connector are
// buffered into windows so multi-line traces are analyzed together. Blocks
// until the context is cancelled or an error occurs.
func (p *Pipeline) Stream(ctx context.Context, cfg connector.Config) error {
	ch, err := p.connector.Stream(ctx, cfg)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}

	buf := newStreamBuffer(p.window, maxBufferedLines)
	flush := func() error {
		raw, ok := buf.flush()
		if !ok {
			return nil
		}
		res := p.engine.Process(model.RawLog{
			Timestamp: raw.Timestamp,
			Source:    raw.Source,
			Raw:       raw.Raw,
			Options:   p.opts,
		})
		if err := p.output.Write(ctx, res); err != nil {
			return fmt.Errorf("pipeline output: %w", err)
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return ctx.Err()
		case <-buf.flushCh():
			if err := flush(); err != nil {
				return err
			}
		case raw, ok := <-ch:
			if !ok {
				if err := flush(); err != nil {
					return err
				}
				return nil
			}
			if buf.add(raw) {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
}

// Query runs the pipeline in one-shot mode: fetch, analyze, write.
func (p *Pipeline) Query(ctx context.Context, cfg connector.Config, params connector.QueryParams) error {
	raws, err := p.connector.Query(ctx, cfg, params)
	if err != nil {
		return fmt.Errorf("pipeline query: %w", err)
	}

	for _, raw := range raws {
		raw.Options = p.opts
		res := p.engine.Process(raw)
		if err := p.output.Write(ctx, res); err != nil {
			return fmt.Errorf("pipeline output: %w", err)
		}
	}
	return nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
