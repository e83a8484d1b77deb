package extraction

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeResultCleanPayload(t *testing.T) {
	raw := []byte(`{
		"invoice_number": "INV-42",
		"invoice_date": "2026-03-15",
		"party_name": "Acme Traders",
		"line_items": [
			{"sku": "PROD-001", "description": "Widget", "quantity": 120, "taxable_value": 1000}
		]
	}`)

	res, err := DecodeResult(raw, discardLogger())
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}
	if res.InvoiceNumber != "INV-42" {
		t.Errorf("InvoiceNumber = %q", res.InvoiceNumber)
	}
	if len(res.LineItems) != 1 {
		t.Fatalf("len(LineItems) = %d, want 1", len(res.LineItems))
	}
	it := res.LineItems[0]
	if it.SKU != "PROD-001" || it.Quantity != 120 || it.TaxableValue != 1000 {
		t.Errorf("item = %+v", it)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestDecodeResultCoercesNoisyPayload(t *testing.T) {
	raw := []byte(`{
		"line_items": [
			{"sku": null, "quantity": "48", "taxable_value": "1,250.50"},
			{"sku": "ABC-1"},
			{"sku": 12345, "quantity": 10}
		]
	}`)

	res, err := DecodeResult(raw, discardLogger())
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}
	if len(res.LineItems) != 3 {
		t.Fatalf("len(LineItems) = %d, want 3", len(res.LineItems))
	}

	if res.LineItems[0].SKU != "" {
		t.Errorf("null sku = %q, want empty", res.LineItems[0].SKU)
	}
	if res.LineItems[0].Quantity != 48 {
		t.Errorf("string quantity = %d, want 48", res.LineItems[0].Quantity)
	}
	if res.LineItems[0].TaxableValue != 1250.50 {
		t.Errorf("taxable_value = %v, want 1250.50", res.LineItems[0].TaxableValue)
	}
	if res.LineItems[1].Quantity != 0 {
		t.Errorf("missing quantity = %d, want 0", res.LineItems[1].Quantity)
	}
	if res.LineItems[2].SKU != "12345" {
		t.Errorf("numeric sku = %q, want \"12345\"", res.LineItems[2].SKU)
	}

	joined := strings.Join(res.Warnings, ";")
	for _, want := range []string{"sku(null)", "quantity(string)", "quantity(missing)", "sku(numeric)"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q: %v", want, res.Warnings)
		}
	}
}

func TestDecodeResultRejectsMissingLineItems(t *testing.T) {
	if _, err := DecodeResult([]byte(`{"invoice_number":"X"}`), discardLogger()); err == nil {
		t.Fatal("expected schema error for missing line_items")
	}
}

func TestDecodeResultRejectsNegativeQuantity(t *testing.T) {
	raw := []byte(`{"line_items":[{"sku":"A","quantity":-5}]}`)
	if _, err := DecodeResult(raw, discardLogger()); err == nil {
		t.Fatal("expected schema error for negative quantity")
	}
}

func TestDecodeResultRejectsGarbage(t *testing.T) {
	if _, err := DecodeResult([]byte(`not json at all`), discardLogger()); err == nil {
		t.Fatal("expected decode error")
	}
}
