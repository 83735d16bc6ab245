package model

// ExceptionFrame is one link in a causally ordered exception chain.
// A chain runs outermost (most recent) first, root cause last.
type ExceptionFrame struct {
	Type     string `json:"type"`               // exception type name, e.g. "java.lang.NullPointerException"
	Message  string `json:"message,omitempty"`  // text after the type token, may be empty for malformed declarators
	Location string `json:"location,omitempty"` // "file:line" of the first frame under this link, may be empty
}
