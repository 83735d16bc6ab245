package highlight

import (
	"regexp"
	"strings"
	"testing"
)

var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiEscapes.ReplaceAllString(s, "")
}

func TestApplyPreservesContent(t *testing.T) {
	inputs := []string{
		"",
		"plain line",
		"ERROR connection refused",
		"Main Problem:\nNullPointerException: boom\nSuggested Actions:\n- check the null",
		"retrying (x3)\nWARN slow\nDEBUG noise\nbuild completed",
	}
	for _, in := range inputs {
		got := stripANSI(Apply(in))
		if got != in {
			t.Fatalf("styling changed content:\n in: %q\nout: %q", in, got)
		}
	}
}

func TestApplyLineCountUnchanged(t *testing.T) {
	in := "a\nb\nc\nd"
	out := Apply(in)
	if strings.Count(out, "\n") != strings.Count(in, "\n") {
		t.Fatalf("line count changed: %q", out)
	}
}
