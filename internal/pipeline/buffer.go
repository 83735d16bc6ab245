package pipeline

import (
	"strings"
	"sync"
	"time"

	"github.com/silvermoss/loupe/internal/model"
)

// maxBufferedLines caps how many streamed lines accumulate before a forced
// flush, bounding memory during log storms.
const maxBufferedLines = 500

// streamBuffer coalesces streamed single-line logs into a window so that
// multi-line stack traces reach the engine as one blob. The timer starts on
// the first buffered line; the pipeline flushes when it fires or when the
// buffer fills.
type streamBuffer struct {
	window  time.Duration
	maxSize int

	mu      sync.Mutex
	pending []model.RawLog
	timer   *time.Timer
}

func newStreamBuffer(window time.Duration, maxSize int) *streamBuffer {
	return &streamBuffer{
		window:  window,
		maxSize: maxSize,
	}
}

// add appends a line to the buffer, starting the flush timer on the first
// one. Returns true when the buffer is full and needs flushing.
func (b *streamBuffer) add(raw model.RawLog) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, raw)
	if len(b.pending) == 1 {
		b.timer = time.NewTimer(b.window)
	}
	return b.maxSize > 0 && len(b.pending) >= b.maxSize
}

// flushCh returns the timer's channel, or nil if no timer is active.
// Receiving on a nil channel blocks forever, which is what the pipeline's
// select wants when the buffer is empty.
func (b *streamBuffer) flushCh() <-chan time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer == nil {
		return nil
	}
	return b.timer.C
}

// flush drains the buffer into a single RawLog joining the buffered lines.
// The timestamp and source come from the first buffered line. Returns false
// when the buffer is empty.
func (b *streamBuffer) flush() (model.RawLog, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.pending) == 0 {
		return model.RawLog{}, false
	}

	lines := make([]string, len(b.pending))
	for i, raw := range b.pending {
		lines[i] = raw.Raw
	}
	first := b.pending[0]
	b.pending = nil

	return model.RawLog{
		Timestamp: first.Timestamp,
		Source:    first.Source,
		Raw:       strings.Join(lines, "\n"),
	}, true
}
