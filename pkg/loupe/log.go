package loupe

import "time"

// Log is a raw log entry with optional context. Use with AnalyzeLog when
// you have timestamp, source, or language information. For raw text
// strings, use Analyze() instead.
type Log struct {
	Text      string    // The log text to analyze
	Timestamp time.Time // When the log was produced (zero = time.Now())
	Source    string    // Provider/origin name (optional)
	Language  string    // Language hint, e.g. "python" (optional; skips detection)
}
