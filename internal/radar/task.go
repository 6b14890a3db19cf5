package radar

import (
	"context"
	"sync"
	"time"
)

// taskSlot is a generic cancellable-task primitive: it runs at most one task
// at a time, stamps each launch with a monotonically increasing sequence
// number, and cancels the previous task when a new one starts. Completions
// check Latest to learn whether they were superseded; stale work is simply
// dropped, never rolled back.
type taskSlot struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Launch cancels any in-flight task, issues the next sequence number, and
// runs fn on its own goroutine under a deadline-bound context.
func (t *taskSlot) Launch(timeout time.Duration, fn func(ctx context.Context, seq uint64)) uint64 {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	seq := t.seq
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.cancel = cancel
	t.mu.Unlock()

	go func() {
		defer cancel()
		fn(ctx, seq)
	}()
	return seq
}

// Latest reports whether seq is still the most recently issued sequence
// number; a false return means the result must be discarded.
func (t *taskSlot) Latest(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq == t.seq
}

// Cancel aborts any in-flight task without issuing a new one.
func (t *taskSlot) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
