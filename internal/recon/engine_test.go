package recon

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/raxj06/Sales-Report-Generator/constants"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

func newTestEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReconcileKnownSKU(t *testing.T) {
	master := entity.ProductMaster{
		"PROD-001": {PiecesPerBox: 50, BoxWeightKg: 4, BoxLengthCm: 30, BoxWidthCm: 20, BoxHeightCm: 15},
	}
	items := []entity.LineItem{
		{SKU: "PROD-001", Quantity: 120, TaxableValue: 1000},
	}

	enriched, totals, err := newTestEngine().Reconcile(items, master)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(enriched) != 1 {
		t.Fatalf("len(enriched) = %d, want 1", len(enriched))
	}

	it := enriched[0]
	if it.NumBoxes != 3 {
		t.Errorf("NumBoxes = %d, want 3", it.NumBoxes)
	}
	if it.TotalWeight != 12 {
		t.Errorf("TotalWeight = %v, want 12", it.TotalWeight)
	}
	if it.BoxDimensions != "30×20×15" {
		t.Errorf("BoxDimensions = %q, want 30×20×15", it.BoxDimensions)
	}
	if it.MatchTier != constants.TierExact {
		t.Errorf("MatchTier = %s, want EXACT", it.MatchTier)
	}

	want := entity.Totals{Quantity: 120, Boxes: 3, Weight: 12, Value: 1000}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}
}

func TestReconcileUnknownSKUFallsBack(t *testing.T) {
	items := []entity.LineItem{{SKU: "XYZ-999", Quantity: 48}}

	enriched, totals, err := newTestEngine().Reconcile(items, entity.ProductMaster{})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	it := enriched[0]
	if it.MatchTier != constants.TierDefault {
		t.Errorf("MatchTier = %s, want DEFAULT", it.MatchTier)
	}
	if it.PiecesPerBox != 48 || it.NumBoxes != 1 || it.TotalWeight != 5 {
		t.Errorf("got pieces=%d boxes=%d weight=%v, want 48/1/5",
			it.PiecesPerBox, it.NumBoxes, it.TotalWeight)
	}
	if totals.Boxes != 1 || totals.Weight != 5 {
		t.Errorf("totals = %+v, want boxes=1 weight=5", totals)
	}
}

func TestReconcileEmptyInput(t *testing.T) {
	enriched, totals, err := newTestEngine().Reconcile(nil, entity.ProductMaster{})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(enriched) != 0 {
		t.Errorf("len(enriched) = %d, want 0", len(enriched))
	}
	if totals != (entity.Totals{}) {
		t.Errorf("totals = %+v, want zero", totals)
	}
}

func TestReconcileTotalsAdditive(t *testing.T) {
	master := entity.ProductMaster{"A": {PiecesPerBox: 10, BoxWeightKg: 2}}
	item := entity.LineItem{SKU: "A", Quantity: 25, TaxableValue: 300}

	_, single, err := newTestEngine().Reconcile([]entity.LineItem{item}, master)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	_, double, err := newTestEngine().Reconcile([]entity.LineItem{item, item}, master)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	want := entity.Totals{
		Quantity: single.Quantity * 2,
		Boxes:    single.Boxes * 2,
		Weight:   single.Weight * 2,
		Value:    single.Value * 2,
	}
	if double != want {
		t.Errorf("double = %+v, want %+v", double, want)
	}
}

func TestReconcileIsIdempotentAcrossMasterEdits(t *testing.T) {
	engine := newTestEngine()
	master := entity.ProductMaster{
		"A": {PiecesPerBox: 10, BoxWeightKg: 2},
	}
	items := []entity.LineItem{
		{SKU: "A", Quantity: 25, TaxableValue: 100},
		{SKU: "B", Quantity: 48, TaxableValue: 200}, // unmatched, default tier
	}

	before, _, err := engine.Reconcile(items, master)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if before[1].MatchTier != constants.TierDefault {
		t.Fatalf("item B tier = %s, want DEFAULT", before[1].MatchTier)
	}

	// Operator adds B to the master and re-runs. Only B's enrichment may
	// change; A's must be byte-for-byte identical.
	master["B"] = entity.ProductConfig{PiecesPerBox: 24, BoxWeightKg: 3}
	after, _, err := engine.Reconcile(items, master)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if !reflect.DeepEqual(before[0], after[0]) {
		t.Errorf("unaffected item changed: %+v vs %+v", before[0], after[0])
	}
	if after[1].MatchTier != constants.TierExact {
		t.Errorf("item B tier = %s, want EXACT after master edit", after[1].MatchTier)
	}
	if after[1].NumBoxes != 2 { // ceil(48/24)
		t.Errorf("item B NumBoxes = %d, want 2", after[1].NumBoxes)
	}
}

func TestReconcileOrderPreserved(t *testing.T) {
	items := []entity.LineItem{
		{SKU: "C", Quantity: 1},
		{SKU: "A", Quantity: 1},
		{SKU: "B", Quantity: 1},
	}
	enriched, _, err := newTestEngine().Reconcile(items, entity.ProductMaster{})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	for i := range items {
		if enriched[i].SKU != items[i].SKU {
			t.Errorf("position %d: got %q, want %q", i, enriched[i].SKU, items[i].SKU)
		}
	}
}

func TestReconcileNegativeQuantity(t *testing.T) {
	items := []entity.LineItem{
		{SKU: "A", Quantity: 5},
		{SKU: "B", Quantity: -3},
	}
	_, _, err := newTestEngine().Reconcile(items, entity.ProductMaster{})
	if err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestReconcileDoesNotMutateMaster(t *testing.T) {
	master := entity.ProductMaster{"A": {PiecesPerBox: 10, BoxWeightKg: 2}}
	snapshot := entity.ProductMaster{"A": {PiecesPerBox: 10, BoxWeightKg: 2}}

	_, _, err := newTestEngine().Reconcile([]entity.LineItem{{SKU: "A", Quantity: 5}, {SKU: "Z", Quantity: 1}}, master)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !reflect.DeepEqual(master, snapshot) {
		t.Errorf("master mutated: %+v", master)
	}
}
