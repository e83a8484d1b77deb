package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// BuildXLSX returns the shipping report as an XLSX workbook: a header
// block (title + invoice metadata), a summary line, the items table, and
// a totals row on a single sheet.
func BuildXLSX(rec *entity.InvoiceRecord, companyName string) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Shipping Report"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet so the workbook has exactly one
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	title := "Shipping Report"
	if companyName != "" {
		title = companyName + " - Shipping Report"
	}
	write(1, 1, title)
	write(1, 2, "Invoice No")
	write(2, 2, rec.InvoiceNumber)
	write(1, 3, "Invoice Date")
	write(2, 3, rec.InvoiceDate)
	write(1, 4, "Party")
	write(2, 4, rec.PartyName)
	write(1, 5, "Summary")
	write(2, 5, fmt.Sprintf("%d items, %d boxes, %s kg, value %s",
		len(rec.Items), rec.Totals.Boxes, formatWeight(rec.Totals.Weight), formatMoney(rec.Totals.Value)))

	const headerRow = 7
	for i, h := range itemHeader {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, it := range rec.Items {
		write(1, row, it.SKU)
		write(2, row, it.Description)
		write(3, row, it.HSNCode)
		write(4, row, it.Quantity)
		write(5, row, it.PiecesPerBox)
		write(6, row, it.NumBoxes)
		write(7, row, it.BoxWeightKg)
		write(8, row, it.TotalWeight)
		write(9, row, it.BoxDimensions)
		write(10, row, it.TaxableValue)
		write(11, row, string(it.MatchTier))
		row++
	}

	write(1, row, "TOTAL")
	write(4, row, rec.Totals.Quantity)
	write(6, row, rec.Totals.Boxes)
	write(8, row, rec.Totals.Weight)
	write(10, row, rec.Totals.Value)

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // sku
	_ = f.SetColWidth(sheet, "B", "B", 32) // description
	_ = f.SetColWidth(sheet, "C", "C", 12) // hsn
	_ = f.SetColWidth(sheet, "D", "H", 14) // quantities/weights
	_ = f.SetColWidth(sheet, "I", "I", 18) // dimensions
	_ = f.SetColWidth(sheet, "J", "K", 14) // value, tier

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
