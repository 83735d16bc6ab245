// Package dedup collapses repeated log lines into counted summaries.
package dedup

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// group accumulates occurrences of one distinct line.
type group struct {
	line  string
	count int
}

// CleanAndDeduplicate groups repeated identical lines (exact match after
// Unicode NFC normalization) into one displayed line annotated with an
// occurrence count. First-occurrence order is preserved; blank lines are
// dropped. Whitespace-only input returns "".
//
// The operation is idempotent: an already-annotated line is distinct from
// its unannotated form, so re-running is a no-op.
func CleanAndDeduplicate(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Ordered map: preserve first-occurrence order.
	var order []*group
	groups := make(map[string]*group)

	for _, line := range strings.Split(text, "\n") {
		line = norm.NFC.String(strings.TrimRight(line, " \t\r"))
		if strings.TrimSpace(line) == "" {
			continue
		}
		if g, ok := groups[line]; ok {
			g.count++
			continue
		}
		g := &group{line: line, count: 1}
		groups[line] = g
		order = append(order, g)
	}

	var b strings.Builder
	for i, g := range order {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(g.line)
		if g.count > 1 {
			fmt.Fprintf(&b, " (x%d)", g.count)
		}
	}
	return b.String()
}
