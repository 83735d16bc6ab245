package model

// Metadata describes how a log was processed.
type Metadata struct {
	LanguageDetected Language `json:"language_detected"`
	Lines            int      `json:"lines"`              // lines actually processed (post-truncation)
	ProcessingTimeMS int64    `json:"processing_time_ms"`
	Truncated        bool     `json:"truncated"`
}

// Result is the engine's output, a structured diagnosis of one raw log.
type Result struct {
	CleanedLog string   `json:"cleaned_log,omitempty"` // deduplicated transcript or structured trace report
	Summary    string   `json:"summary,omitempty"` // one-line digest, only when requested
	Tags       []string `json:"tags"`              // ordered, duplicate-free categorical labels
	Metadata   Metadata `json:"metadata"`
}
