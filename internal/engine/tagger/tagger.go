// Package tagger derives ordered, duplicate-free categorical tags and an
// aggregate severity verdict from raw log text. Like the rest of the
// engine it never fails: text with no matches simply yields no tags.
package tagger

import (
	"regexp"
	"strings"

	"github.com/silvermoss/loupe/internal/engine/langdetect"
	"github.com/silvermoss/loupe/internal/engine/trace"
	"github.com/silvermoss/loupe/internal/model"
)

// Severity verdict tags.
const (
	TagStackTrace = "Stack Trace"
	TagSerious    = "Serious Problems Detected"
	TagMixed      = "Mixed Results"
	TagHealthy    = "Looks Healthy"
	TagMockData   = "Test/Mock Data"
)

// Thresholds tunes the severity-balance verdict. The ratios are heuristic,
// not semantics; see the config package for the env knobs.
type Thresholds struct {
	// SeriousRatio: serious lines must outnumber positive lines by this
	// factor for the "Serious Problems Detected" verdict.
	SeriousRatio float64
	// HealthyRatio: positive lines must outnumber serious lines by this
	// factor for the "Looks Healthy" verdict.
	HealthyRatio float64
}

// DefaultThresholds is used when the caller passes a zero Thresholds.
var DefaultThresholds = Thresholds{SeriousRatio: 2.0, HealthyRatio: 2.0}

var (
	seriousLinePattern  = regexp.MustCompile(`(?i)\b(?:ERROR|FATAL|CRITICAL|SEVERE|PANIC|EXCEPTION)\b|(?:Exception|Error):|Traceback`)
	positiveLinePattern = regexp.MustCompile(`(?i)\bSUCCESS(?:FUL|FULLY)?\b|\bOK\b|\bcompleted?\b|\bpassed\b`)

	// Fictitious-looking identifiers that suggest synthetic or templated
	// content. Best-effort only; a real user named "John Doe" will
	// mislabel, which is why this tag is advisory.
	mockPatterns = pats(
		`(?i)\b(?:john|jane) doe\b`,
		`(?i)\bfoo(?:bar)?\b|\blorem ipsum\b`,
		`(?i)example\.(?:com|org|net)`,
		`(?i)\btest[-_ ](?:user|data|account)\b`,
		`\b(?:123-?45-?6789|555-\d{4})\b`,
	)
)

// Tags classifies text into an ordered, duplicate-free tag list using the
// given thresholds (zero value → DefaultThresholds).
//
// Priority order: stack-trace tags first (marker, one per distinct exception
// type, language), then category signature matches, then the severity
// verdict, then the advisory mock-data flag.
func Tags(text string, th Thresholds) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if th == (Thresholds{}) {
		th = DefaultThresholds
	}

	set := newOrderedSet()

	if trace.IsStackTrace(text) {
		set.add(TagStackTrace)
		for _, frame := range trace.ExtractChain(text) {
			set.add(shortTypeName(frame.Type))
		}
		if lang := langdetect.Detect(text); lang != model.LangUnknown {
			set.add(lang.Display())
		}
	}

	for _, cat := range Categories {
		if cat.Matches(text) {
			set.add(cat.Tag)
		}
	}

	if verdict := severityVerdict(text, th); verdict != "" {
		set.add(verdict)
	}

	if looksLikeMockData(text) {
		set.add(TagMockData)
	}

	return set.values
}

// severityVerdict counts serious vs. positive lines and returns the
// aggregate verdict tag, or "" when neither marker appears.
func severityVerdict(text string, th Thresholds) string {
	var serious, positive int
	for _, line := range strings.Split(text, "\n") {
		switch {
		case seriousLinePattern.MatchString(line):
			serious++
		case positiveLinePattern.MatchString(line):
			positive++
		}
	}

	switch {
	case serious == 0 && positive == 0:
		return ""
	case positive == 0 || float64(serious) >= th.SeriousRatio*float64(positive):
		return TagSerious
	case serious == 0 || float64(positive) >= th.HealthyRatio*float64(serious):
		return TagHealthy
	default:
		return TagMixed
	}
}

// looksLikeMockData is a non-authoritative heuristic for synthetic or
// templated content.
func looksLikeMockData(text string) bool {
	for _, p := range mockPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// shortTypeName strips the package qualifier from a dotted exception type:
// "java.lang.NullPointerException" → "NullPointerException".
func shortTypeName(typ string) string {
	if i := strings.LastIndexByte(typ, '.'); i >= 0 && i < len(typ)-1 {
		return typ[i+1:]
	}
	return typ
}

// orderedSet is a first-seen-order, duplicate-free string collection.
type orderedSet struct {
	seen   map[string]bool
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.values = append(s.values, v)
}
