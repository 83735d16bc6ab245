package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a labeled log sample for end-to-end validation.
type CorpusEntry struct {
	Raw              string   `json:"raw"`
	ExpectedLanguage string   `json:"expected_language"`
	ExpectedTags     []string `json:"expected_tags"`
	IsTrace          bool     `json:"is_trace"`
	Description      string   `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
