package loupe

import "github.com/rs/zerolog"

type options struct {
	maxLines     int
	seriousRatio float64
	healthyRatio float64
	highlight    bool
	summary      bool
	tags         bool
	logger       *zerolog.Logger
}

// Option configures a Loupe instance.
type Option func(*options)

// WithMaxLines caps how many lines of each log are analyzed. Longer inputs
// are truncated and flagged in the report. Default: 1000.
func WithMaxLines(n int) Option {
	return func(o *options) {
		o.maxLines = n
	}
}

// WithSeverityRatios tunes the verdict thresholds: serious is the minimum
// problem-to-positive line ratio for "Serious Problems Detected", healthy
// the minimum positive-to-problem ratio for "Looks Healthy". Default: 2.0
// for both.
func WithSeverityRatios(serious, healthy float64) Option {
	return func(o *options) {
		o.seriousRatio = serious
		o.healthyRatio = healthy
	}
}

// WithHighlight enables ANSI color in cleaned logs. Default: off.
func WithHighlight(enabled bool) Option {
	return func(o *options) {
		o.highlight = enabled
	}
}

// WithSummary toggles one-line summaries in reports. Default: on.
func WithSummary(enabled bool) Option {
	return func(o *options) {
		o.summary = enabled
	}
}

// WithTags toggles tag classification in reports. Default: on.
func WithTags(enabled bool) Option {
	return func(o *options) {
		o.tags = enabled
	}
}

// WithLogger sets the logger used for internal diagnostics such as stage
// degradation warnings. Default: discard.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &log
	}
}

func defaultOptions() options {
	return options{
		maxLines:     1000,
		seriousRatio: 2.0,
		healthyRatio: 2.0,
		summary:      true,
		tags:         true,
	}
}
