package tagger

import "regexp"

// Category is one entry in the categorical signature library: a set of
// patterns that, when matched anywhere in the text, contribute a single
// human-readable tag. Description feeds the single-line explanation path.
type Category struct {
	Tag         string
	Description string
	patterns    []*regexp.Regexp
}

// Matches reports whether any of the category's signatures appear in text.
func (c Category) Matches(text string) bool {
	for _, p := range c.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func pats(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Categories is the fixed signature library, evaluated in order. Built once
// at init and read-only afterwards, so it is safe to share across goroutines.
var Categories = []Category{
	{
		Tag:         "Connection Issue",
		Description: "Something failed to reach another service or host: the connection was refused, dropped, or could not be established.",
		patterns: pats(
			`(?i)connection (?:refused|reset|closed|aborted|failed)`,
			`(?i)(?:could not|unable to|failed to) connect`,
			`(?i)\bECONNREFUSED\b|\bECONNRESET\b|\bEHOSTUNREACH\b`,
			`(?i)no route to host|broken pipe`,
		),
	},
	{
		Tag:         "Authentication Problem",
		Description: "A login or credential check failed: wrong password, expired token, or missing permission.",
		patterns: pats(
			`(?i)(?:authentication|authorization|login|sign[- ]?in) (?:fail|error|denied|reject)`,
			`(?i)invalid (?:credentials|password|token|api key)`,
			`(?i)access denied|permission denied|\b401\b.*unauthorized|unauthorized\b`,
		),
	},
	{
		Tag:         "File Access Error",
		Description: "The program tried to read or write a file that is missing, locked, or off-limits.",
		patterns: pats(
			`(?i)no such file or directory`,
			`(?i)file not found|FileNotFound`,
			`(?i)(?:cannot|can't|failed to) (?:open|read|write) (?:file|directory)`,
			`(?i)\bENOENT\b|\bEACCES\b`,
		),
	},
	{
		Tag:         "Timeout",
		Description: "An operation waited too long for a response and gave up.",
		patterns: pats(
			`(?i)\btim(?:ed?)[- ]?out\b`,
			`(?i)deadline exceeded`,
			`(?i)\bETIMEDOUT\b`,
		),
	},
	{
		Tag:         "Null Reference",
		Description: "The code tried to use a value that was empty (null/nil) as if it were a real object.",
		patterns: pats(
			`NullPointerException|NullReferenceException`,
			`(?i)nil pointer dereference`,
			`(?i)(?:cannot read|cannot access).*(?:of (?:undefined|null))`,
			`(?i)\bNoneType\b.*(?:has no attribute|is not)`,
		),
	},
	{
		Tag:         "Cache Problem",
		Description: "A cache lookup or cache server misbehaved: misses, evictions, or an unreachable cache backend.",
		patterns: pats(
			`(?i)cache (?:miss|error|fail|evict|corrupt)`,
			`(?i)\b(?:redis|memcached?)\b.*(?:error|fail|refused|down)`,
		),
	},
	{
		Tag:         "Scheduled Job Failure",
		Description: "A background or scheduled job (cron, worker, batch task) did not finish normally.",
		patterns: pats(
			`(?i)\bcron(?:job)?\b.*(?:fail|error|abort)`,
			`(?i)(?:scheduled|background) (?:job|task).*(?:fail|error|abort)`,
			`(?i)job [\w-]+ failed`,
		),
	},
	{
		Tag:         "Resource Contention",
		Description: "Two parts of the program are fighting over the same resource: locks, deadlocks, or pool exhaustion.",
		patterns: pats(
			`(?i)\bdeadlock\b`,
			`(?i)lock (?:wait )?timeout`,
			`(?i)(?:connection )?pool (?:exhausted|timeout)`,
			`(?i)too many (?:open files|connections)`,
		),
	},
}
