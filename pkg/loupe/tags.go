package loupe

import "github.com/silvermoss/loupe/internal/engine/tagger"

// Category describes one problem category the tagger can assign.
type Category struct {
	Tag         string // label applied to matching logs, e.g. "Connection Issue"
	Description string // plain-language explanation of the category
}

// Categories returns every problem category the engine classifies, in
// evaluation order.
func Categories() []Category {
	cats := make([]Category, len(tagger.Categories))
	for i, c := range tagger.Categories {
		cats[i] = Category{Tag: c.Tag, Description: c.Description}
	}
	return cats
}

// VerdictTags returns the mutually exclusive severity verdict labels, one of
// which appears in every tagged report.
func VerdictTags() []string {
	return []string{
		tagger.TagSerious,
		tagger.TagMixed,
		tagger.TagHealthy,
	}
}
