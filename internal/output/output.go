package output

import (
	"context"

	"github.com/silvermoss/loupe/internal/model"
)

// Output defines the interface for analysis result destinations.
type Output interface {
	Write(ctx context.Context, res model.Result) error
	Close() error
}
