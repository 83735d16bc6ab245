package loupe

import (
	"time"

	"github.com/silvermoss/loupe/internal/engine"
	"github.com/silvermoss/loupe/internal/engine/tagger"
	"github.com/silvermoss/loupe/internal/model"
)

// Loupe is a log analysis engine. It detects the source language, recognizes
// stack traces, extracts causally ordered exception chains, and produces
// plain-language explanations. Safe for concurrent use.
type Loupe struct {
	engine *engine.Engine
	opts   options
}

// New creates a Loupe instance. Construction is cheap; all pattern tables
// are package-level and compiled once at init.
func New(opts ...Option) *Loupe {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	engOpts := []engine.Option{
		engine.WithMaxLines(o.maxLines),
		engine.WithThresholds(tagger.Thresholds{
			SeriousRatio: o.seriousRatio,
			HealthyRatio: o.healthyRatio,
		}),
	}
	if o.logger != nil {
		engOpts = append(engOpts, engine.WithLogger(*o.logger))
	}

	return &Loupe{
		engine: engine.New(engOpts...),
		opts:   o,
	}
}

// Analyze analyzes a raw log text and returns a report.
func (l *Loupe) Analyze(text string) Report {
	return l.AnalyzeLog(Log{Text: text})
}

// AnalyzeLog analyzes a structured log entry. Use this when you have
// timestamp, source, or language information. For raw text, use Analyze().
func (l *Loupe) AnalyzeLog(log Log) Report {
	ts := log.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	raw := model.RawLog{
		Timestamp: ts,
		Source:    log.Source,
		Raw:       log.Text,
		Options: model.Options{
			LanguageHint: model.ParseLanguage(log.Language),
			MaxLines:     l.opts.maxLines,
			Highlight:    l.opts.highlight,
			Summary:      l.opts.summary,
			Tags:         l.opts.tags,
		},
	}
	return reportFromResult(l.engine.Process(raw))
}

// AnalyzeBatch analyzes multiple logs and returns one report per input.
func (l *Loupe) AnalyzeBatch(texts []string) []Report {
	reports := make([]Report, len(texts))
	for i, text := range texts {
		reports[i] = l.Analyze(text)
	}
	return reports
}
