package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Processor handles one invoice document read from the inbox.
type Processor interface {
	ProcessDocument(ctx context.Context, filename string, content []byte) error
}

// Ingestor drains watcher events and hands each new document to the
// processor exactly once per content hash.
type Ingestor struct {
	proc   Processor
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{} // sha256 hex of already-processed content
}

func NewIngestor(proc Processor, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{proc: proc, logger: logger, seen: map[string]struct{}{}}
}

// Run consumes events until the channel closes or ctx is done.
func (in *Ingestor) Run(ctx context.Context, events <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-events:
			if !ok {
				return
			}
			in.handle(ctx, path)
		}
	}
}

func (in *Ingestor) handle(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		in.logger.Error("ingest.read_failed", "path", path, "error", err)
		return
	}
	if len(content) == 0 {
		// Likely caught mid-copy; the write event will fire again.
		return
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])
	if in.alreadySeen(hash) {
		in.logger.Info("ingest.skipped_duplicate", "path", path, "content_hash", hash)
		return
	}

	if err := in.proc.ProcessDocument(ctx, filepath.Base(path), content); err != nil {
		in.logger.Error("ingest.process_failed", "path", path, "error", err)
		return
	}
	in.markSeen(hash)
	in.logger.Info("ingest.ok", "path", path, "content_hash", hash)
}

func (in *Ingestor) alreadySeen(hash string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	_, ok := in.seen[hash]
	return ok
}

func (in *Ingestor) markSeen(hash string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.seen[hash] = struct{}{}
}
