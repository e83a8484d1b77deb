package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/wudi/pdfkit/builder"
	"github.com/wudi/pdfkit/ir/semantic"
	"github.com/wudi/pdfkit/writer"

	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// A4 in points.
const (
	pdfPageWidth  = 595.0
	pdfPageHeight = 842.0
)

// BuildPDF returns the shipping report as a PDF: title block, summary
// line, and the item table with header and totals rows. The table
// paginates on its own when the invoice runs long.
func BuildPDF(rec *entity.InvoiceRecord, companyName string) ([]byte, error) {
	b := builder.NewBuilder()
	b.SetInfo(&semantic.DocumentInfo{Title: "Shipping Report " + rec.InvoiceNumber})

	title := "Shipping Report"
	if companyName != "" {
		title = companyName + " - Shipping Report"
	}
	meta := fmt.Sprintf("Invoice %s  |  %s  |  %s", rec.InvoiceNumber, rec.InvoiceDate, rec.PartyName)
	summary := fmt.Sprintf("%d items   %d boxes   %s kg   value %s",
		len(rec.Items), rec.Totals.Boxes, formatWeight(rec.Totals.Weight), formatMoney(rec.Totals.Value))

	header := builder.TableRow{Cells: pdfCells([]string{
		"SKU", "Qty", "Pcs/Box", "Boxes", "Box kg", "Total kg", "Dimensions", "Value", "Match",
	})}
	rows := []builder.TableRow{header}
	for _, it := range rec.Items {
		rows = append(rows, builder.TableRow{Cells: pdfCells([]string{
			it.SKU,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.PiecesPerBox),
			strconv.Itoa(it.NumBoxes),
			formatWeight(it.BoxWeightKg),
			formatWeight(it.TotalWeight),
			it.BoxDimensions,
			formatMoney(it.TaxableValue),
			string(it.MatchTier),
		})})
	}
	rows = append(rows, builder.TableRow{Cells: pdfCells([]string{
		"TOTAL",
		strconv.Itoa(rec.Totals.Quantity),
		"",
		strconv.Itoa(rec.Totals.Boxes),
		"",
		formatWeight(rec.Totals.Weight),
		"",
		formatMoney(rec.Totals.Value),
		"",
	})})

	table := builder.Table{
		Columns:    []float64{90, 40, 50, 40, 45, 50, 75, 60, 55},
		Rows:       rows,
		HeaderRows: 1,
	}

	b.NewPage(pdfPageWidth, pdfPageHeight).
		DrawText(title, 50, 800, builder.TextOptions{FontSize: 18, Color: builder.Color{R: 0.1, G: 0.1, B: 0.1}}).
		DrawText(meta, 50, 778, builder.TextOptions{FontSize: 10}).
		DrawText(summary, 50, 762, builder.TextOptions{FontSize: 10}).
		DrawLine(50, 754, 545, 754, builder.LineOptions{StrokeColor: builder.Color{B: 0.5}, LineWidth: 1}).
		DrawTable(table, builder.TableOptions{
			X:             50,
			Y:             740,
			RepeatHeaders: true,
			BorderWidth:   0.5,
			CellPadding:   3,
			DefaultSize:   9,
			HeaderFill:    builder.Color{R: 0.9, G: 0.9, B: 0.9},
			BottomMargin:  50,
			TopMargin:     50,
			LeftMargin:    50,
		}).
		Finish()

	doc, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}

	var buf bytes.Buffer
	w := (&writer.WriterBuilder{}).Build()
	if err := w.Write(context.Background(), doc, &buf, writer.Config{Deterministic: true}); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfCells(values []string) []builder.TableCell {
	cells := make([]builder.TableCell, 0, len(values))
	for _, v := range values {
		cells = append(cells, builder.TableCell{Text: v})
	}
	return cells
}
