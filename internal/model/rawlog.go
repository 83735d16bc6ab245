package model

import "time"

// RawLog is the intermediate type produced by connectors and consumed by the engine.
type RawLog struct {
	Timestamp time.Time
	Source    string  // provider name (e.g. "stdin", "file", "httpjson")
	Raw       string  // original log text, possibly multi-line
	Options   Options // per-request processing options
}

// Options controls which optional stages the engine runs.
// The zero value means: auto-detect language, default line cap,
// no highlighting, no summary, no tags.
type Options struct {
	LanguageHint Language // explicit hint wins over detection; LangUnknown means auto
	MaxLines     int      // truncate input to this many lines; 0 uses the engine default
	Highlight    bool     // apply presentation-only styling to the cleaned log
	Summary      bool     // produce a one-line summary
	Tags         bool     // run the tag classifier
}
