package output

import "github.com/silvermoss/loupe/internal/model"

// Verbosity controls how much of a result an output emits.
type Verbosity int

const (
	// Minimal keeps the summary, tags and metadata but drops the cleaned
	// log body. Useful for webhooks where the full transcript is noise.
	Minimal Verbosity = iota
	// Standard preserves every field.
	Standard
)

// FormatResult returns a copy of the result with fields stripped according
// to verbosity. At Minimal the cleaned log is zeroed (omitted from JSON via
// omitempty); at Standard all fields are preserved.
func FormatResult(r model.Result, verbosity Verbosity) model.Result {
	if verbosity == Minimal {
		r.CleanedLog = ""
	}
	return r
}
