package loupe

import "github.com/silvermoss/loupe/internal/model"

// Report is the analysis of one log. This is the stable public type;
// internal representations may evolve independently without breaking
// consumers.
type Report struct {
	CleanedLog string   `json:"cleaned_log,omitempty"` // deduplicated transcript or trace report
	Summary    string   `json:"summary,omitempty"`     // one-line digest
	Tags       []string `json:"tags"`                  // ordered, duplicate-free labels
	Language   string   `json:"language"`              // detected language, or "unknown"
	Lines      int      `json:"lines"`                 // lines analyzed (post-truncation)
	Truncated  bool     `json:"truncated"`             // input exceeded the line cap
	ElapsedMS  int64    `json:"elapsed_ms"`            // processing time
}

// reportFromResult converts the internal result to the public Report type.
func reportFromResult(res model.Result) Report {
	return Report{
		CleanedLog: res.CleanedLog,
		Summary:    res.Summary,
		Tags:       res.Tags,
		Language:   string(res.Metadata.LanguageDetected),
		Lines:      res.Metadata.Lines,
		Truncated:  res.Metadata.Truncated,
		ElapsedMS:  res.Metadata.ProcessingTimeMS,
	}
}
