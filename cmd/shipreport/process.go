package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raxj06/Sales-Report-Generator/constants"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
	"github.com/raxj06/Sales-Report-Generator/internal/extraction"
	"github.com/raxj06/Sales-Report-Generator/internal/recon"
	"github.com/raxj06/Sales-Report-Generator/internal/report"
)

var (
	masterPath  string
	outDir      string
	formats     []string
	companyName string
)

var processCmd = &cobra.Command{
	Use:   "process <extracted-invoice.json>",
	Short: "Reconcile an extracted invoice and write shipping reports",
	Long: `process takes the JSON payload returned by the extraction webhook,
reconciles its line items against the product master, and writes one
report file per requested format into the output directory.

The product master is a JSON object keyed by SKU:
  {"PROD-001": {"pieces_per_box": 50, "box_weight_kg": 4.0, ...}}`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&masterPath, "master", "m", "", "path to the product master JSON file")
	processCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write report files into")
	processCmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "report formats to write (csv, xlsx, pdf)")
	processCmd.Flags().StringVar(&companyName, "company", "", "company name printed on report headers")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
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

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := processPayloadFile(args[0], recon.NewEngine(logger), master, logger); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s reports for %s into %s\n",
		strings.Join(formats, ", "), filepath.Base(args[0]), outDir)
	return nil
}

// processPayloadFile runs one extraction payload through reconciliation
// and writes every requested report format next to each other in outDir.
func processPayloadFile(path string, engine *recon.Engine, master entity.ProductMaster, logger *slog.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading invoice payload: %w", err)
	}
	result, err := extraction.DecodeResult(raw, logger)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	items, totals, err := engine.Reconcile(result.LineItems, master)
	if err != nil {
		return fmt.Errorf("reconciling %s: %w", filepath.Base(path), err)
	}

	now := time.Now().UTC()
	rec := &entity.InvoiceRecord{
		ID:            uuid.New(),
		InvoiceNumber: result.InvoiceNumber,
		InvoiceDate:   result.InvoiceDate,
		PartyName:     result.PartyName,
		SourceFile:    filepath.Base(path),
		Items:         items,
		Totals:        totals,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	base := report.BaseName(rec)
	for _, f := range formats {
		if err := writeReport(filepath.Join(outDir, base+"."+f), f, rec); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(path, format string, rec *entity.InvoiceRecord) error {
	var data []byte
	var err error
	switch format {
	case "csv":
		var sb strings.Builder
		if err = report.WriteCSV(&sb, rec); err == nil {
			data = []byte(sb.String())
		}
	case "xlsx":
		data, err = report.BuildXLSX(rec, companyName)
	case "pdf":
		data, err = report.BuildPDF(rec, companyName)
	}
	if err != nil {
		return fmt.Errorf("building %s report: %w", format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func defaultFormats() []string {
	return slices.Clone(constants.ReportFormats)
}

func isKnownFormat(f string) bool {
	return slices.Contains(constants.ReportFormats, f)
}
