package trace

import (
	"strings"

	"github.com/silvermoss/loupe/internal/model"
)

// extractor state machine states.
type state int

const (
	seekingDeclarator state = iota // scanning for the next link-opening line
	inFrameList                    // inside the frame list of the current link
)

// ExtractChain scans text top to bottom and returns the causally ordered
// exception chain: outermost (most recent) link first, root cause last.
//
// The scan is a small state machine over the line stream. A declarator line
// opens a new link; "Caused by:" and "Suppressed:" open causally nested
// links. A link's message is the text after its type token on the same line;
// its location is the first frame line between it and the next declarator.
// Malformed declarators still yield a partial link (type only) so garbled
// input degrades instead of aborting; the chain is whatever parsed.
func ExtractChain(text string) []model.ExceptionFrame {
	var (
		chain []model.ExceptionFrame
		st    = seekingDeclarator
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case isFrameLine(line):
			// First frame after a declarator supplies that link's location.
			if st == inFrameList && len(chain) > 0 && chain[len(chain)-1].Location == "" {
				chain[len(chain)-1].Location = LocationOf(line)
			}

		case isDeclaratorLine(line):
			chain = append(chain, parseDeclarator(trimmed))
			st = inFrameList

		default:
			// Continuation lines (python source echoes, "... 3 more",
			// multi-line messages) neither open links nor carry locations.
		}
	}
	return chain
}

// parseDeclarator builds an ExceptionFrame from a declarator line.
func parseDeclarator(trimmed string) model.ExceptionFrame {
	if m := declaratorPattern.FindStringSubmatch(trimmed); m != nil {
		return model.ExceptionFrame{Type: m[2], Message: m[3]}
	}
	if m := threadBannerPattern.FindStringSubmatch(trimmed); m != nil {
		return model.ExceptionFrame{Type: m[1], Message: m[2]}
	}
	if m := rustPanicPattern.FindStringSubmatch(trimmed); m != nil {
		return model.ExceptionFrame{Type: "panic", Message: m[1]}
	}
	// Malformed causal link: keep whatever token followed the prefix as the
	// type, with no message, rather than dropping the link.
	if m := causalPrefixPattern.FindStringSubmatch(trimmed); m != nil {
		typ := strings.TrimSuffix(m[2], ":")
		if typ == "" {
			typ = "unknown"
		}
		return model.ExceptionFrame{Type: typ}
	}
	return model.ExceptionFrame{Type: trimmed}
}
