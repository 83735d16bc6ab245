package trace

import "strings"

// MaxRelevantFrames caps RelevantFrames output so downstream explanations
// stay compact.
const MaxRelevantFrames = 5

// runtimeNamespaces is the deny-list of package/path prefixes that mark a
// frame as runtime or standard-library noise rather than application code.
var runtimeNamespaces = []string{
	// Java / JVM
	"java.", "javax.", "jakarta.", "jdk.", "sun.", "com.sun.",
	"kotlin.", "scala.",
	"org.springframework.", "org.apache.", "org.hibernate.",
	// JavaScript / Node
	"node:", "node_modules/", "internal/process", "internal/modules",
	// Python
	"/usr/lib/python", "site-packages/", "importlib",
	// .NET
	"System.", "Microsoft.",
	// Go runtime
	"runtime.", "reflect.", "testing.",
	// Rust / native
	"core::", "std::", "alloc::", "/usr/lib/", "libc",
}

// RelevantFrames returns up to MaxRelevantFrames frame lines from text,
// application code first. Frames whose path or package matches the
// runtime deny-list rank below the rest; original order is preserved
// within each rank.
func RelevantFrames(text string) []string {
	var app, runtime []string
	for _, line := range strings.Split(text, "\n") {
		if !isFrameLine(line) {
			continue
		}
		frame := strings.TrimSpace(line)
		if isRuntimeFrame(frame) {
			runtime = append(runtime, frame)
		} else {
			app = append(app, frame)
		}
	}

	frames := append(app, runtime...)
	if len(frames) > MaxRelevantFrames {
		frames = frames[:MaxRelevantFrames]
	}
	return frames
}

func isRuntimeFrame(frame string) bool {
	for _, ns := range runtimeNamespaces {
		if strings.Contains(frame, ns) {
			return true
		}
	}
	return false
}
