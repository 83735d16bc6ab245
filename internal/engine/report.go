package engine

import (
	"fmt"
	"strings"

	"github.com/silvermoss/loupe/internal/engine/explain"
	"github.com/silvermoss/loupe/internal/engine/trace"
	"github.com/silvermoss/loupe/internal/model"
)

// buildTraceReport renders the structured multi-section report for text
// recognized as a stack trace. Section headings are fixed; downstream
// consumers (and the highlighter) key off them.
func buildTraceReport(text string, chain []model.ExceptionFrame) string {
	var b strings.Builder

	root := rootCause(chain)

	b.WriteString("Main Problem:\n")
	if root.Type != "" {
		b.WriteString("  " + frameHeadline(root) + "\n")
		b.WriteString("  " + explain.ExceptionType(root.Type) + "\n")
	} else {
		b.WriteString("  A stack trace was detected, but its exception declaration could not be parsed.\n")
	}

	if len(chain) > 1 {
		b.WriteString("\nWhat Happened:\n")
		for i, frame := range chain {
			line := fmt.Sprintf("  %d. %s", i+1, frameHeadline(frame))
			if frame.Location != "" {
				line += " (" + frame.Location + ")"
			}
			if i < len(chain)-1 {
				line += ", caused by:"
			}
			b.WriteString(line + "\n")
		}
	}

	if frames := trace.RelevantFrames(text); len(frames) > 0 {
		b.WriteString("\nKey Code Locations:\n")
		for _, f := range frames {
			b.WriteString("  " + f + "\n")
		}
	}

	b.WriteString("\nSuggested Actions:\n")
	for _, tip := range explain.StackTraceSuggestions(text) {
		b.WriteString("  - " + tip + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// traceSummary is the one-line digest of a trace: the root cause plus its
// plain-language explanation.
func traceSummary(chain []model.ExceptionFrame) string {
	root := rootCause(chain)
	if root.Type == "" {
		return "A stack trace was detected but could not be fully parsed."
	}
	return frameHeadline(root) + " - " + explain.ExceptionType(root.Type)
}

// lineSummary digests non-trace input: the first line that looks like a
// problem, explained in simple terms, or the first non-empty line otherwise.
func lineSummary(text string) string {
	normal := explain.SimpleTerms("")
	fallback := ""
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if s := explain.SimpleTerms(line); s != normal {
			return s
		}
		if fallback == "" {
			fallback = normal
		}
	}
	return fallback
}

// rootCause returns the last (innermost) link of a chain.
func rootCause(chain []model.ExceptionFrame) model.ExceptionFrame {
	if len(chain) == 0 {
		return model.ExceptionFrame{}
	}
	return chain[len(chain)-1]
}

// frameHeadline renders "Type: message" or just "Type".
func frameHeadline(f model.ExceptionFrame) string {
	if f.Message == "" {
		return f.Type
	}
	return f.Type + ": " + f.Message
}
