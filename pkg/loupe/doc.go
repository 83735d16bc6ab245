// Package loupe provides a log analysis engine that recognizes stack traces
// across languages, extracts exception chains, and explains what went wrong
// in plain terms.
//
// Quick start:
//
//	l := loupe.New()
//
//	report := l.Analyze(rawLogText)
//	fmt.Println(report.Summary)
//	fmt.Println(report.CleanedLog)
//
// The Loupe instance is safe for concurrent use. Create once, reuse across
// requests. See the README for full documentation.
package loupe
