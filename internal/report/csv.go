// Package report renders shipping reports for a reconciled invoice in
// CSV, XLSX, and PDF form. Rendering is a pure function of the invoice
// record; callers own persistence and delivery.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

var itemHeader = []string{
	"SKU", "Description", "HSN Code", "Quantity", "Pieces/Box",
	"Boxes", "Box Weight (kg)", "Total Weight (kg)", "Box Dimensions (cm)",
	"Taxable Value", "Match",
}

// WriteCSV writes the shipping report as UTF-8 CSV with a byte-order mark,
// one row per enriched item and a trailing TOTAL row.
func WriteCSV(w io.Writer, rec *entity.InvoiceRecord) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(itemHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range rec.Items {
		row := []string{
			it.SKU,
			it.Description,
			it.HSNCode,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.PiecesPerBox),
			strconv.Itoa(it.NumBoxes),
			formatWeight(it.BoxWeightKg),
			formatWeight(it.TotalWeight),
			it.BoxDimensions,
			formatMoney(it.TaxableValue),
			string(it.MatchTier),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	total := []string{
		"TOTAL", "", "",
		strconv.Itoa(rec.Totals.Quantity),
		"",
		strconv.Itoa(rec.Totals.Boxes),
		"",
		formatWeight(rec.Totals.Weight),
		"",
		formatMoney(rec.Totals.Value),
		"",
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("write total row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
