package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type countingProcessor struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (p *countingProcessor) Process(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	return p.err
}

func (p *countingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paths)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueueProcessesAllJobs(t *testing.T) {
	proc := &countingProcessor{}
	q := NewQueue(proc, discard(), WithWorkers(3), WithQueueSize(16))

	for i := 0; i < 10; i++ {
		if err := q.Enqueue(context.Background(), Job{Path: "inv.json", SubmittedAt: time.Now()}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	q.Shutdown(context.Background())

	if got := proc.count(); got != 10 {
		t.Errorf("processed %d jobs, want 10", got)
	}
}

func TestQueueContinuesAfterJobFailure(t *testing.T) {
	proc := &countingProcessor{err: errors.New("boom")}
	q := NewQueue(proc, discard(), WithWorkers(1))

	for i := 0; i < 3; i++ {
		_ = q.Enqueue(context.Background(), Job{Path: "bad.json"})
	}
	q.Shutdown(context.Background())

	if got := proc.count(); got != 3 {
		t.Errorf("processed %d jobs, want 3", got)
	}
}

func TestEnqueueAfterShutdownIsRejected(t *testing.T) {
	proc := &countingProcessor{}
	q := NewQueue(proc, discard(), WithWorkers(1))
	q.Shutdown(context.Background())

	if err := q.Enqueue(context.Background(), Job{Path: "late.json"}); err != nil {
		t.Fatalf("Enqueue after shutdown: %v", err)
	}
	if got := proc.count(); got != 0 {
		t.Errorf("processed %d jobs, want 0", got)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	q := NewQueue(&countingProcessor{}, discard(), WithWorkers(1))
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())
}
