package extraction

import (
	"context"

	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// Document is a scanned invoice handed to the extraction webhook.
type Document struct {
	Filename string
	Content  []byte
}

// Result is the normalized shape we want back from the webhook.
type Result struct {
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	InvoiceDate   string            `json:"invoice_date,omitempty"` // YYYY-MM-DD
	PartyName     string            `json:"party_name,omitempty"`
	LineItems     []entity.LineItem `json:"line_items"`
	Warnings      []string          `json:"-"` // coercions applied during sanitization
}

// Extractor is the interface the pipeline depends on. The second return
// value is the raw webhook response, kept for history/debugging.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*Result, []byte, error)
}
