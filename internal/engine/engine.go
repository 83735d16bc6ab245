// Package engine orchestrates the full log-analysis pass: truncate,
// detect language, recognize stack traces, deduplicate, tag, explain,
// and optionally style the output.
//
// The engine is a pure function of its input. It holds no mutable state
// across calls, performs no I/O, and all its pattern tables are built once
// at process start, so one Engine may be shared by any number of
// concurrent callers without locking.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/silvermoss/loupe/internal/engine/dedup"
	"github.com/silvermoss/loupe/internal/engine/highlight"
	"github.com/silvermoss/loupe/internal/engine/langdetect"
	"github.com/silvermoss/loupe/internal/engine/tagger"
	"github.com/silvermoss/loupe/internal/engine/trace"
	"github.com/silvermoss/loupe/internal/enrich"
	"github.com/silvermoss/loupe/internal/model"
)

// DefaultMaxLines caps processing when the caller doesn't set a limit.
const DefaultMaxLines = 1000

// Engine runs the analysis pipeline. The zero value is not usable; call New.
type Engine struct {
	maxLines   int
	thresholds tagger.Thresholds
	log        zerolog.Logger
	enricher   *enrich.Collector
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxLines sets the default truncation limit for requests that don't
// carry their own.
func WithMaxLines(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxLines = n
		}
	}
}

// WithThresholds tunes the severity-verdict heuristics.
func WithThresholds(th tagger.Thresholds) Option {
	return func(e *Engine) { e.thresholds = th }
}

// WithLogger sets the logger used for degraded-stage warnings.
// Default: a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithEnricher attaches the optional context-enrichment collaborator used
// by ProcessWithContext.
func WithEnricher(c *enrich.Collector) Option {
	return func(e *Engine) { e.enricher = c }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxLines:   DefaultMaxLines,
		thresholds: tagger.DefaultThresholds,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process analyzes one raw log and returns a fully populated result. It
// never fails on textual input: optional stages that blow up degrade to a
// pass-through of their input, logged but not surfaced.
func (e *Engine) Process(raw model.RawLog) model.Result {
	start := time.Now()
	opts := raw.Options

	lines := splitLines(raw.Raw)
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = e.maxLines
	}
	truncated := len(lines) > maxLines
	if truncated {
		lines = lines[:maxLines]
	}
	// Every later stage sees only the truncated content.
	text := strings.Join(lines, "\n")

	lang := opts.LanguageHint
	if lang == model.LangUnknown || lang == "" {
		lang = langdetect.Detect(text)
	}

	var cleaned, summary string
	if text != "" && trace.IsStackTrace(text) {
		chain := trace.ExtractChain(text)
		cleaned = buildTraceReport(text, chain)
		if opts.Summary {
			summary = e.runTextStage("summary", "", func(string) string {
				return traceSummary(chain)
			})
		}
	} else {
		cleaned = dedup.CleanAndDeduplicate(text)
		if opts.Summary {
			summary = e.runTextStage("summary", "", func(string) string {
				return lineSummary(text)
			})
		}
	}

	tags := []string{}
	if opts.Tags {
		tags = e.runTagStage(text)
	}

	if opts.Highlight {
		cleaned = e.runTextStage("highlight", cleaned, highlight.Apply)
	}

	return model.Result{
		CleanedLog: cleaned,
		Summary:    summary,
		Tags:       tags,
		Metadata: model.Metadata{
			LanguageDetected: lang,
			Lines:            len(lines),
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			Truncated:        truncated,
		},
	}
}

// ProcessWithContext runs Process and then the optional context-enrichment
// collaborator. Enrichment is purely additive: it can fail or return empty
// fields without affecting the base result.
func (e *Engine) ProcessWithContext(ctx context.Context, raw model.RawLog, filePath string) (model.Result, *enrich.Context) {
	result := e.Process(raw)
	if e.enricher == nil {
		return result, nil
	}
	enriched := e.enricher.Collect(ctx, raw.Raw, filePath)
	return result, enriched
}

// runTextStage executes an optional string→string stage, degrading to the
// stage's input if it panics.
func (e *Engine) runTextStage(name, input string, fn func(string) string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Str("stage", name).Any("panic", r).Msg("optional stage failed, passing through")
			out = input
		}
	}()
	return fn(input)
}

// runTagStage executes the tag classifier, degrading to no tags on panic.
func (e *Engine) runTagStage(text string) (tags []string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Str("stage", "tags").Any("panic", r).Msg("optional stage failed, passing through")
			tags = []string{}
		}
	}()
	tags = tagger.Tags(text, e.thresholds)
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// splitLines splits raw text into lines, ignoring a single trailing
// newline. Empty input has zero lines.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
