package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/raxj06/Sales-Report-Generator/constants"
)

// LineItem is one extracted invoice row as returned by the extraction
// webhook. SKU may be noisy or empty; fields beyond sku/quantity are
// carried through untouched by the reconciliation core.
type LineItem struct {
	SKU          string  `json:"sku"`
	Description  string  `json:"description,omitempty"`
	HSNCode      string  `json:"hsn_code,omitempty"`
	Quantity     int     `json:"quantity"`
	Rate         float64 `json:"rate,omitempty"`
	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount,omitempty"`
}

// EnrichedLineItem is a LineItem plus the rollup derived from its matched
// box configuration. Derived on every reconciliation pass, never persisted
// independently of the raw item.
type EnrichedLineItem struct {
	LineItem

	PiecesPerBox  int                 `json:"pieces_per_box"`
	BoxWeightKg   float64             `json:"box_weight_kg"`
	BoxDimensions string              `json:"box_dimensions"`
	NumBoxes      int                 `json:"num_boxes"`
	TotalWeight   float64             `json:"total_weight"`
	MatchTier     constants.MatchTier `json:"match_tier"`
}

// Totals aggregates an enriched line-item sequence. Recomputed from
// scratch on every reconciliation pass.
type Totals struct {
	Quantity int     `json:"quantity"`
	Boxes    int     `json:"boxes"`
	Weight   float64 `json:"weight"`
	Value    float64 `json:"value"`
}

// InvoiceRecord is one processed invoice in history: the extraction
// output enriched by reconciliation, plus report metadata.
type InvoiceRecord struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   string             `json:"invoice_date"` // YYYY-MM-DD as extracted
	PartyName     string             `json:"party_name"`
	SourceFile    string             `json:"source_file"`
	Items         []EnrichedLineItem `json:"items"`
	Totals        Totals             `json:"totals"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
