package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/raxj06/Sales-Report-Generator/constants"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

func sampleRecord() *entity.InvoiceRecord {
	return &entity.InvoiceRecord{
		InvoiceNumber: "INV-42",
		InvoiceDate:   "2026-03-15",
		PartyName:     "Acme Traders",
		Items: []entity.EnrichedLineItem{
			{
				LineItem:      entity.LineItem{SKU: "PROD-001", Description: "Widget", Quantity: 120, TaxableValue: 1000},
				PiecesPerBox:  50,
				BoxWeightKg:   4,
				BoxDimensions: "30×20×15",
				NumBoxes:      3,
				TotalWeight:   12,
				MatchTier:     constants.TierExact,
			},
			{
				LineItem:      entity.LineItem{SKU: "XYZ-999", Quantity: 48, TaxableValue: 250.5},
				PiecesPerBox:  48,
				BoxWeightKg:   5,
				BoxDimensions: "30×25×20",
				NumBoxes:      1,
				TotalWeight:   5,
				MatchTier:     constants.TierDefault,
			},
		},
		Totals: entity.Totals{Quantity: 168, Boxes: 4, Weight: 17, Value: 1250.5},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecord()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("output missing UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// header + 2 items + TOTAL
	if len(records) != 4 {
		t.Fatalf("rows = %d, want 4", len(records))
	}
	if records[0][0] != "SKU" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "PROD-001" || records[1][5] != "3" {
		t.Errorf("item row = %v", records[1])
	}
	if records[2][10] != string(constants.TierDefault) {
		t.Errorf("match column = %q, want DEFAULT", records[2][10])
	}

	total := records[3]
	if total[0] != "TOTAL" || total[3] != "168" || total[5] != "4" || total[7] != "17" || total[9] != "1250.50" {
		t.Errorf("total row = %v", total)
	}
}

func TestWriteCSVEmptyInvoice(t *testing.T) {
	var buf bytes.Buffer
	rec := &entity.InvoiceRecord{InvoiceNumber: "INV-0"}
	if err := WriteCSV(&buf, rec); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 { // header + zero TOTAL
		t.Fatalf("rows = %d, want 2", len(records))
	}
	if !strings.HasPrefix(records[1][0], "TOTAL") || records[1][3] != "0" {
		t.Errorf("total row = %v", records[1])
	}
}

func TestBuildXLSX(t *testing.T) {
	out, err := BuildXLSX(sampleRecord(), "Acme")
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}
	// xlsx is a zip archive
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Error("output is not a zip container")
	}
}

func TestBuildPDF(t *testing.T) {
	out, err := BuildPDF(sampleRecord(), "Acme")
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with %%PDF-: %q", out[:min(8, len(out))])
	}
}
