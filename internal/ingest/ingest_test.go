package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type recordingProcessor struct {
	mu        sync.Mutex
	filenames []string
	err       error
}

func (p *recordingProcessor) ProcessDocument(_ context.Context, filename string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filenames = append(p.filenames, filename)
	return p.err
}

func (p *recordingProcessor) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.filenames...)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runIngestor(t *testing.T, proc Processor, paths ...string) {
	t.Helper()
	events := make(chan string, len(paths))
	for _, p := range paths {
		events <- p
	}
	close(events)
	NewIngestor(proc, discard()).Run(context.Background(), events)
}

func TestIngestorProcessesNewFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", "invoice a")
	b := writeFile(t, dir, "b.pdf", "invoice b")

	proc := &recordingProcessor{}
	runIngestor(t, proc, a, b)

	if got := proc.calls(); len(got) != 2 {
		t.Errorf("processed %v, want 2 files", got)
	}
}

func TestIngestorSkipsDuplicateContent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", "same bytes")
	// same content under a different name
	b := writeFile(t, dir, "copy-of-a.pdf", "same bytes")

	proc := &recordingProcessor{}
	runIngestor(t, proc, a, a, b)

	if got := proc.calls(); len(got) != 1 || got[0] != "a.pdf" {
		t.Errorf("processed %v, want just a.pdf", got)
	}
}

func TestIngestorRetriesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", "invoice a")

	proc := &recordingProcessor{err: errors.New("webhook down")}
	in := NewIngestor(proc, discard())
	in.handle(context.Background(), a)
	if got := proc.calls(); len(got) != 1 {
		t.Fatalf("processed %v, want one attempt", got)
	}

	// failed files are not marked seen, so the next event retries
	proc.err = nil
	in.handle(context.Background(), a)
	in.handle(context.Background(), a)
	if got := proc.calls(); len(got) != 2 {
		t.Errorf("got %d attempts, want 2 (one retry, then deduplicated)", len(got))
	}
}

func TestIngestorIgnoresEmptyAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "partial.pdf", "")

	proc := &recordingProcessor{}
	runIngestor(t, proc, empty, filepath.Join(dir, "gone.pdf"))

	if got := proc.calls(); len(got) != 0 {
		t.Errorf("processed %v, want none", got)
	}
}

func TestAllowedExtensions(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"inbox/invoice.pdf", true},
		{"inbox/scan.JPG", true},
		{"inbox/photo.jpeg", true},
		{"inbox/shot.png", true},
		{"inbox/notes.txt", false},
		{"inbox/noext", false},
	}
	for _, tc := range cases {
		if got := allowed(tc.path, defaultExts); got != tc.want {
			t.Errorf("allowed(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
