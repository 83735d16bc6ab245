package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/silvermoss/loupe/internal/model"
)

// recordingOutput captures writes for assertions.
type recordingOutput struct {
	mu       sync.Mutex
	results  []model.Result
	writeErr error
	closed   bool
	block    chan struct{} // when non-nil, Write blocks until closed
}

func (r *recordingOutput) Write(_ context.Context, res model.Result) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.results = append(r.results, res)
	return nil
}

func (r *recordingOutput) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingOutput) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func TestWriteDrainsToInner(t *testing.T) {
	inner := &recordingOutput{}
	a := New(inner)

	for i := 0; i < 5; i++ {
		if err := a.Write(context.Background(), model.Result{Summary: "s"}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := inner.count(); got != 5 {
		t.Errorf("inner received %d results, want 5", got)
	}
	if !inner.closed {
		t.Error("inner output not closed")
	}
}

func TestWriteErrorsGoToCallback(t *testing.T) {
	inner := &recordingOutput{writeErr: errors.New("sink broken")}
	errs := make(chan error, 1)
	a := New(inner, WithOnError(func(err error) { errs <- err }))

	if err := a.Write(context.Background(), model.Result{}); err != nil {
		t.Fatalf("Write should not propagate inner errors: %v", err)
	}

	select {
	case err := <-errs:
		if err.Error() != "sink broken" {
			t.Errorf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error callback never invoked")
	}
	a.Close()
}

func TestDropOnFull(t *testing.T) {
	block := make(chan struct{})
	inner := &recordingOutput{block: block}
	a := New(inner, WithBufferSize(1), WithDropOnFull())

	// First write is picked up by the drain goroutine and blocks inside
	// inner.Write; the second fills the buffer; the rest are dropped.
	for i := 0; i < 5; i++ {
		if err := a.Write(context.Background(), model.Result{}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	close(block)
	a.Close()

	if got := inner.count(); got > 2 {
		t.Errorf("inner received %d results, want at most 2", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	a := New(&recordingOutput{})
	if err := a.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
