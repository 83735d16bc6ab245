// Package trace recognizes multi-frame stack traces in raw text and extracts
// a causally ordered exception chain from them. Extraction is deliberately
// forgiving: garbled or truncated traces yield whatever links could be
// parsed, never an error.
package trace

import (
	"regexp"
	"strings"
)

// Frame-marker forms, one per ecosystem. A line matching any of these counts
// as a stack frame for recognition and location extraction.
var (
	// Java / C# / JavaScript: "\tat pkg.Class.method(File.java:11)",
	// "   at Ns.Class.Method() in C:\src\f.cs:line 37",
	// "    at handler (/srv/user.js:42:17)".
	atFramePattern = regexp.MustCompile(`^\s+at\s+\S`)

	// Python: File "app.py", line 14, in <module>
	pyFramePattern = regexp.MustCompile(`^\s*File "([^"]+)", line (\d+)`)

	// Go: "\t/srv/app/main.go:24 +0x18"
	goFramePattern = regexp.MustCompile(`^\s+(\S+\.go):(\d+)`)

	// Rust backtrace: "   2: app::run" (location is on the following "at" line)
	rustFramePattern = regexp.MustCompile(`^\s+\d+:\s+\S`)
)

// Declarator forms. A declarator line opens a new link in the chain.
var (
	// Optional causal prefix, then a type token that looks like an
	// exception identifier (or a Go panic banner), then an optional
	// ": message".
	declaratorPattern = regexp.MustCompile(`^(Caused by:|Suppressed:)?\s*([A-Za-z_][\w.$]*(?:Exception|Error|Throwable|Fault)|panic)(?::\s?(.*))?\s*$`)

	// Java thread banner: Exception in thread "main" java.lang.Foo: msg
	threadBannerPattern = regexp.MustCompile(`^Exception in thread "[^"]*"\s+([\w.$]+)(?::\s?(.*))?\s*$`)

	// Rust panic banner: thread 'main' panicked at src/main.rs:9:14:
	rustPanicPattern = regexp.MustCompile(`^thread '[^']*' panicked at (.*?):?\s*$`)

	// Malformed causal link: "Caused by:" (or bare prefix + junk) with no
	// recognizable "Type: message" shape after it.
	causalPrefixPattern = regexp.MustCompile(`^(Caused by:|Suppressed:)\s*(\S*)`)
)

// Location patterns, tried in order against a frame line.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(([^()\s]+):(\d+)\)`),              // at pkg.Cls.m(File.java:11)
	regexp.MustCompile(`^\s*File "([^"]+)", line (\d+)`),    // python
	regexp.MustCompile(` in (.+):line (\d+)`),               // csharp
	regexp.MustCompile(`(?:^|\s)(/?[\w./\\-]+\.\w+):(\d+)`), // bare path:line (go, js, rust)
}

// isFrameLine reports whether line looks like a single stack frame.
func isFrameLine(line string) bool {
	return atFramePattern.MatchString(line) ||
		pyFramePattern.MatchString(line) ||
		goFramePattern.MatchString(line) ||
		rustFramePattern.MatchString(line)
}

// isDeclaratorLine reports whether line opens an exception link.
func isDeclaratorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	// Frame lines can embed type-looking tokens; they never declare.
	if isFrameLine(line) {
		return false
	}
	return declaratorPattern.MatchString(trimmed) ||
		threadBannerPattern.MatchString(trimmed) ||
		rustPanicPattern.MatchString(trimmed) ||
		causalPrefixPattern.MatchString(trimmed)
}

// IsStackTrace reports whether text contains a recognizable stack trace:
// at least one frame-marker line and at least one declarator line.
func IsStackTrace(text string) bool {
	var hasFrame, hasDeclarator bool
	for _, line := range strings.Split(text, "\n") {
		if !hasFrame && isFrameLine(line) {
			hasFrame = true
		} else if !hasDeclarator && isDeclaratorLine(line) {
			hasDeclarator = true
		}
		if hasFrame && hasDeclarator {
			return true
		}
	}
	return false
}

// LocationOf extracts a "file:line" string from a frame line, or "" when
// the line carries no recognizable location.
func LocationOf(line string) string {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return m[1] + ":" + m[2]
		}
	}
	return ""
}
