// Package recon implements the SKU reconciliation and rollup engine: it
// matches extracted invoice line items against the product master, derives
// per-item box counts and weights, and aggregates invoice totals.
package recon

import (
	"fmt"
	"log/slog"

	"github.com/raxj06/Sales-Report-Generator/constants"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// Engine reconciles extracted line items against a product master. It is
// stateless between invocations and safe for concurrent use; the master is
// only read, never mutated.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Reconcile enriches each line item with its matched configuration and
// rollup, preserving order, and returns the aggregate totals. Output is
// purely a function of the inputs, so re-running after a master edit
// recomputes exactly the affected items.
//
// An unmatched SKU is not an error: it resolves at the default tier and is
// logged so an operator can update the master and re-run. A structurally
// invalid item (negative quantity) aborts with an error identifying it.
func (e *Engine) Reconcile(items []entity.LineItem, master entity.ProductMaster) ([]entity.EnrichedLineItem, entity.Totals, error) {
	enriched := make([]entity.EnrichedLineItem, 0, len(items))
	var totals entity.Totals

	for i, item := range items {
		cfg, tier := Match(item.SKU, master)
		roll, err := Rollup(cfg, item.Quantity)
		if err != nil {
			return nil, entity.Totals{}, fmt.Errorf("line item %d (sku %q): %w", i, item.SKU, err)
		}
		if tier == constants.TierDefault {
			e.logger.Warn("recon.item.unmatched", "index", i, "sku", item.SKU)
		}

		enriched = append(enriched, entity.EnrichedLineItem{
			LineItem:      item,
			PiecesPerBox:  roll.PiecesPerBox,
			BoxWeightKg:   roll.BoxWeightKg,
			BoxDimensions: roll.BoxDimensions,
			NumBoxes:      roll.NumBoxes,
			TotalWeight:   roll.TotalWeight,
			MatchTier:     tier,
		})

		totals.Quantity += item.Quantity
		totals.Boxes += roll.NumBoxes
		totals.Weight += roll.TotalWeight
		totals.Value += item.TaxableValue
	}

	e.logger.Info("recon.ok",
		"items", len(enriched),
		"quantity", totals.Quantity,
		"boxes", totals.Boxes,
		"weight", totals.Weight,
	)
	return enriched, totals, nil
}
