package async

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/silvermoss/loupe/internal/model"
	"github.com/silvermoss/loupe/internal/output"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner output's Write fails.
// Default: logs a warning.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Write return immediately (dropping the result) when
// the buffer is full, instead of blocking. Use for destinations where
// lossiness is acceptable.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// WithLogger sets the logger used for dropped results and drain timeouts.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Async) { a.log = log }
}

// Async decouples result production from consumption via a buffered channel.
// The pipeline writes into the channel; a background goroutine drains it to
// the wrapped output. Errors from the inner output are passed to errFunc
// rather than propagated to the caller.
type Async struct {
	inner      output.Output
	ch         chan model.Result
	done       chan struct{}
	errFunc    func(error)
	log        zerolog.Logger
	bufSize    int
	dropOnFull bool
	closeOnce  sync.Once
}

// New wraps an output.Output in an async channel-based writer.
// The background drain goroutine starts immediately.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:   inner,
		bufSize: defaultBufferSize,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errFunc == nil {
		a.errFunc = func(err error) { a.log.Warn().Err(err).Msg("async output write failed") }
	}
	a.ch = make(chan model.Result, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write sends the result into the channel. By default, blocks if the channel
// is full (backpressure). With WithDropOnFull, returns nil immediately and
// the result is lost.
func (a *Async) Write(_ context.Context, res model.Result) error {
	if a.dropOnFull {
		select {
		case a.ch <- res:
		default:
			a.log.Warn().Strs("tags", res.Tags).Msg("async output buffer full, dropping result")
		}
		return nil
	}
	a.ch <- res
	return nil
}

// Close closes the channel, waits for the drain goroutine to finish
// (with a timeout), then closes the inner output.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(defaultDrainTimeout):
			a.log.Warn().Msg("async output drain timed out")
		}
		err = a.inner.Close()
	})
	return err
}

// drain reads results from the channel and writes them to the inner output.
func (a *Async) drain() {
	defer close(a.done)
	for res := range a.ch {
		if err := a.inner.Write(context.Background(), res); err != nil {
			a.errFunc(err)
		}
	}
}
