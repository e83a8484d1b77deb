package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raxj06/Sales-Report-Generator/internal/batch"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
	"github.com/raxj06/Sales-Report-Generator/internal/recon"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Reconcile every extracted invoice payload in a directory",
	Long: `batch scans a directory for *.json extraction payloads and processes
them concurrently, writing one set of report files per invoice into the
output directory. Failures are logged and do not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&masterPath, "master", "m", "", "path to the product master JSON file")
	batchCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write report files into")
	batchCmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "report formats to write (csv, xlsx, pdf)")
	batchCmd.Flags().StringVar(&companyName, "company", "", "company name printed on report headers")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 4, "number of concurrent workers")
	rootCmd.AddCommand(batchCmd)
}

// payloadProcessor adapts the single-file pipeline to the batch queue.
type payloadProcessor struct {
	engine *recon.Engine
	master entity.ProductMaster
	logger *slog.Logger
}

func (p *payloadProcessor) Process(_ context.Context, path string) error {
	return processPayloadFile(path, p.engine, p.master, p.logger)
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	wanted, err := resolveFormats(formats)
	if err != nil {
		return err
	}
	formats = wanted

	master, err := loadMaster(masterPath)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(args[0], "*.json"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.json payloads found in %s", args[0])
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	proc := &payloadProcessor{engine: recon.NewEngine(logger), master: master, logger: logger}
	q := batch.NewQueue(proc, logger, batch.WithWorkers(batchWorkers), batch.WithQueueSize(len(paths)))
	for _, p := range paths {
		_ = q.Enqueue(cmd.Context(), batch.Job{Path: p, SubmittedAt: time.Now()})
	}
	q.Shutdown(context.Background())

	fmt.Fprintf(cmd.OutOrStdout(), "processed %d payloads into %s\n", len(paths), outDir)
	return nil
}

func resolveFormats(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return defaultFormats(), nil
	}
	for _, f := range requested {
		if !isKnownFormat(f) {
			return nil, fmt.Errorf("unknown format %q (want one of %s)", f, strings.Join(defaultFormats(), ", "))
		}
	}
	return requested, nil
}

func loadMaster(path string) (entity.ProductMaster, error) {
	master := entity.ProductMaster{}
	if path == "" {
		return master, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading product master: %w", err)
	}
	if err := json.Unmarshal(raw, &master); err != nil {
		return nil, fmt.Errorf("parsing product master: %w", err)
	}
	return master, nil
}
