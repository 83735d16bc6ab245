// Package langdetect guesses the programming language that produced a piece
// of log or stack-trace text. Detection is a best-effort heuristic: an
// ordered table of signatures is evaluated top to bottom and the first match
// wins. Every signature is a Go (RE2) regexp, so matching is linear in the
// input length with no backtracking blowups.
package langdetect

import (
	"regexp"

	"github.com/silvermoss/loupe/internal/model"
)

// signature pairs a compiled pattern with the language it indicates.
type signature struct {
	pattern *regexp.Regexp
	lang    model.Language
}

// signatures is evaluated in order; put the most distinctive markers first
// so generic ones (like a bare "TypeError") cannot shadow them. Ties are
// broken by registration order.
var signatures = []signature{
	// Python: the traceback header and File "x", line N frames are unambiguous.
	{regexp.MustCompile(`Traceback \(most recent call last\):`), model.LangPython},
	{regexp.MustCompile(`File "[^"]+", line \d+`), model.LangPython},
	{regexp.MustCompile(`\b(?:IndexError|KeyError|AttributeError|ValueError|ModuleNotFoundError|ZeroDivisionError)\b`), model.LangPython},

	// Go: panic banners and goroutine dumps.
	{regexp.MustCompile(`goroutine \d+ \[[a-z ]+\]:`), model.LangGo},
	{regexp.MustCompile(`panic: .*\n`), model.LangGo},
	{regexp.MustCompile(`\.go:\d+ \+0x[0-9a-f]+`), model.LangGo},

	// Rust: panic message plus the backtrace env hint.
	{regexp.MustCompile(`thread '[^']*' panicked at`), model.LangRust},
	{regexp.MustCompile(`RUST_BACKTRACE=`), model.LangRust},

	// C#: fully qualified System exceptions and the "in file:line N" frame form.
	{regexp.MustCompile(`System\.[A-Za-z.]*Exception`), model.LangCSharp},
	{regexp.MustCompile(`at [\w.<>\[\]]+\([^)]*\) in .+:line \d+`), model.LangCSharp},
	{regexp.MustCompile(`Unhandled exception\.`), model.LangCSharp},

	// Java: thread banner, caused-by links, and at pkg.Class.method(File.java:N).
	{regexp.MustCompile(`Exception in thread "[^"]*"`), model.LangJava},
	{regexp.MustCompile(`at [\w.$]+\([A-Za-z0-9_$]+\.(?:java|kt):\d+\)`), model.LangJava},
	{regexp.MustCompile(`\b[a-z][\w.]*\.[A-Z]\w*(?:Exception|Error)\b`), model.LangJava},
	{regexp.MustCompile(`Caused by: `), model.LangJava},

	// JavaScript: file.js frames, node internals, promise rejections.
	{regexp.MustCompile(`at .+\.[cm]?js:\d+:\d+`), model.LangJavaScript},
	{regexp.MustCompile(`at .+ \(.*\.[cm]?js:\d+:\d+\)`), model.LangJavaScript},
	{regexp.MustCompile(`\bnode_modules\b|\bUnhandledPromiseRejection\b|\(node:internal/`), model.LangJavaScript},
	{regexp.MustCompile(`\b(?:ReferenceError|TypeError): .*(?:undefined|null)`), model.LangJavaScript},

	// C++: terminate banners and segfaults.
	{regexp.MustCompile(`terminate called after throwing an instance of`), model.LangCPP},
	{regexp.MustCompile(`Segmentation fault|SIGSEGV|std::[a-z_]+`), model.LangCPP},
}

// Detect returns the best-guess language for text. It never fails: empty or
// unmatched input yields model.LangUnknown.
func Detect(text string) model.Language {
	if text == "" {
		return model.LangUnknown
	}
	for _, sig := range signatures {
		if sig.pattern.MatchString(text) {
			return sig.lang
		}
	}
	return model.LangUnknown
}
