// Package explain turns exception types and log lines into plain-language
// text a non-expert can act on. All lookups are static tables built at init;
// unknown inputs fall back to generic wording, never to an empty string.
package explain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/silvermoss/loupe/internal/engine/tagger"
)

// typeExplanations maps well-known exception type names (package qualifier
// stripped) to one-sentence explanations.
var typeExplanations = map[string]string{
	"NullPointerException":           "The code tried to use an object that doesn't exist (a null value) as if it were real.",
	"NullReferenceException":         "The code tried to use an object reference that was never set to anything.",
	"IndexError":                     "The code tried to access a list position (index) that doesn't exist.",
	"IndexOutOfBoundsException":      "The code asked for a position (index) beyond the end of a list or array.",
	"ArrayIndexOutOfBoundsException": "The code read past the end of an array: the index was too large or negative.",
	"KeyError":                       "The code looked up a dictionary key that isn't there.",
	"TypeError":                      "A value of one type was used where a different type was expected.",
	"ValueError":                     "A function received a value of the right type but an unacceptable content.",
	"AttributeError":                 "The code asked an object for a method or attribute it doesn't have.",
	"OutOfMemoryError":               "The program ran out of memory: it needed more than the runtime was allowed to use.",
	"StackOverflowError":             "The call stack overflowed, usually because a function kept calling itself without stopping.",
	"IllegalStateException":          "A component was used at the wrong time: it was not in a valid state for that operation.",
	"IllegalArgumentException":       "A method was called with an argument it cannot accept.",
	"ConcurrentModificationException": "A collection was modified by one part of the code while another part was still iterating over it.",
	"ClassNotFoundException":         "The runtime could not find a class it needed, usually a packaging or classpath problem.",
	"NoClassDefFoundError":           "A class that was present at compile time is missing at runtime.",
	"FileNotFoundException":          "A file the program needed does not exist at the expected path.",
	"FileNotFoundError":              "A file the program needed does not exist at the expected path.",
	"IOException":                    "A read or write operation failed: disk, network, or pipe trouble.",
	"SQLException":                   "A database operation failed: the query, the connection, or the schema is the likely culprit.",
	"ConnectException":               "The program could not open a network connection to another service.",
	"SocketTimeoutException":         "A network peer took too long to answer and the connection gave up waiting.",
	"InterruptedException":           "A waiting thread was told to stop waiting before it finished.",
	"UnsupportedOperationException":  "The code called an operation this object deliberately does not support.",
	"ZeroDivisionError":              "The code divided a number by zero.",
	"ArithmeticException":            "A math operation produced an impossible result, such as dividing by zero.",
	"ModuleNotFoundError":            "A Python module the code imports is not installed or not on the path.",
	"ReferenceError":                 "JavaScript code used a variable that was never declared.",
	"RangeError":                     "A value fell outside the range something could handle, such as a too-deep recursion.",
	"panic":                          "The Go runtime hit an unrecoverable error and stopped the goroutine.",
}

// ExceptionType returns a one-sentence plain-language explanation for an
// exception type name. Unknown types get a generic templated sentence;
// the result is never empty.
func ExceptionType(typ string) string {
	name := shortName(typ)
	if text, ok := typeExplanations[name]; ok {
		return text
	}
	if name == "" {
		name = "unknown error"
	}
	return fmt.Sprintf("The program hit a %s; an error of this type usually means the operation it was attempting could not finish.", name)
}

// suggestionRule maps a content signature to remediation tips.
type suggestionRule struct {
	pattern *regexp.Regexp
	tips    []string
}

var suggestionRules = []suggestionRule{
	{
		pattern: regexp.MustCompile(`(?i)\bheap\b|OutOfMemory|memory exhausted`),
		tips: []string{
			"Check the process memory limit and raise it if the workload has legitimately grown.",
			"Look for unbounded caches or collections that grow with input size.",
			"Capture a heap snapshot at failure time to see what is holding memory.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)initializ|\border\b.*(?:startup|boot)|IllegalState`),
		tips: []string{
			"Check the startup order: something was used before the component that provides it was initialized.",
			"Make initialization explicit rather than relying on side effects of import or load order.",
		},
	},
	{
		pattern: regexp.MustCompile(`ConcurrentModification|(?i)\bdata race\b|(?i)concurrent map`),
		tips: []string{
			"Guard shared collections with a lock, or switch to a concurrency-safe collection type.",
			"Avoid mutating a collection while iterating over it; collect changes and apply them after the loop.",
		},
	},
	{
		pattern: regexp.MustCompile(`NullPointer|NullReference|(?i)nil pointer|(?i)undefined`),
		tips: []string{
			"Trace the null value back to where it was produced; the bug is usually upstream of where it exploded.",
			"Add a guard or default at the boundary where the missing value enters the system.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)connection refused|ConnectException|\bECONNREFUSED\b`),
		tips: []string{
			"Confirm the target service is running and listening on the expected host and port.",
			"Check firewalls, container networking, and service discovery configuration between the two services.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\btim(?:ed?)[- ]?out\b|deadline exceeded`),
		tips: []string{
			"Find out whether the remote side is slow or the timeout is simply too tight for the workload.",
			"Add retries with backoff for transient slowness, but fix persistent latency at the source.",
		},
	},
}

// genericSuggestions is the fallback when nothing matches; also the floor
// that keeps StackTraceSuggestions non-empty.
var genericSuggestions = []string{
	"Start from the root cause (the last 'Caused by' entry); outer exceptions are usually just wrappers.",
	"Look at the first stack frame that belongs to your own code, not the framework.",
	"Reproduce the failure with the same input; intermittent traces point to timing or environment issues.",
}

// StackTraceSuggestions scans trace text for contextual keywords and returns
// tailored remediation tips, falling back to generic debugging advice.
// The result always has at least one entry.
func StackTraceSuggestions(text string) []string {
	var out []string
	for _, rule := range suggestionRules {
		if rule.pattern.MatchString(text) {
			out = append(out, rule.tips...)
		}
	}
	if len(out) == 0 {
		out = append(out, genericSuggestions...)
	}
	return out
}

var errorLevelPattern = regexp.MustCompile(`(?i)\b(?:ERROR|FATAL|CRITICAL|WARN(?:ING)?)\b`)

// SimpleTerms explains a single non-trace log line in plain language by
// matching it against the tagger's category signatures. Unmatched
// INFO/DEBUG-level chatter gets a generic "normal activity" explanation.
func SimpleTerms(line string) string {
	for _, cat := range tagger.Categories {
		if cat.Matches(line) {
			return cat.Description
		}
	}
	if errorLevelPattern.MatchString(line) {
		return "Something went wrong here, but it doesn't match a known failure pattern; read the message text itself for specifics."
	}
	return "This looks like normal activity, an informational message rather than a problem."
}

// shortName strips a dotted package qualifier from a type name.
func shortName(typ string) string {
	typ = strings.TrimSpace(typ)
	if i := strings.LastIndexByte(typ, '.'); i >= 0 && i < len(typ)-1 {
		return typ[i+1:]
	}
	return typ
}
