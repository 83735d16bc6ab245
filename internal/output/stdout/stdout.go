package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/silvermoss/loupe/internal/model"
	"github.com/silvermoss/loupe/internal/output"
)

// Output writes JSON-encoded analysis results to stdout.
type Output struct {
	enc       *json.Encoder
	verbosity output.Verbosity
}

// New creates a stdout Output with verbosity-aware field omission and
// optional pretty-printed JSON.
func New(verbosity output.Verbosity, pretty bool) *Output {
	return NewWithWriter(os.Stdout, verbosity, pretty)
}

// NewWithWriter is New with an explicit destination. Used in tests.
func NewWithWriter(w io.Writer, verbosity output.Verbosity, pretty bool) *Output {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, verbosity: verbosity}
}

func (o *Output) Write(_ context.Context, res model.Result) error {
	formatted := output.FormatResult(res, o.verbosity)
	if err := o.enc.Encode(formatted); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
