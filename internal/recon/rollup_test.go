package recon

import (
	"errors"
	"testing"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

func TestRollupCeiling(t *testing.T) {
	tests := []struct {
		name     string
		pieces   int
		quantity int
		want     int
	}{
		{"zero quantity", 48, 0, 0},
		{"exact multiple", 48, 96, 2},
		{"partial box rounds up", 48, 100, 3},
		{"one piece", 48, 1, 1},
		{"single box boundary", 50, 50, 1},
		{"just over boundary", 50, 51, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll, err := Rollup(entity.ProductConfig{PiecesPerBox: tt.pieces, BoxWeightKg: 1}, tt.quantity)
			if err != nil {
				t.Fatalf("Rollup: %v", err)
			}
			if roll.NumBoxes != tt.want {
				t.Errorf("NumBoxes = %d, want %d", roll.NumBoxes, tt.want)
			}
		})
	}
}

func TestRollupZeroQuantityZeroWeight(t *testing.T) {
	roll, err := Rollup(entity.ProductConfig{PiecesPerBox: 48, BoxWeightKg: 5}, 0)
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	if roll.NumBoxes != 0 || roll.TotalWeight != 0 {
		t.Errorf("got boxes=%d weight=%v, want 0/0", roll.NumBoxes, roll.TotalWeight)
	}
}

func TestRollupWeight(t *testing.T) {
	roll, err := Rollup(entity.ProductConfig{PiecesPerBox: 50, BoxWeightKg: 4}, 120)
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	if roll.NumBoxes != 3 {
		t.Errorf("NumBoxes = %d, want 3", roll.NumBoxes)
	}
	if roll.TotalWeight != 12 {
		t.Errorf("TotalWeight = %v, want 12", roll.TotalWeight)
	}
}

func TestRollupDefaultsPerField(t *testing.T) {
	// Only weight is set; pieces and dimensions fall back independently.
	roll, err := Rollup(entity.ProductConfig{BoxWeightKg: 2.5}, 48)
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	if roll.PiecesPerBox != 48 {
		t.Errorf("PiecesPerBox = %d, want default 48", roll.PiecesPerBox)
	}
	if roll.BoxWeightKg != 2.5 {
		t.Errorf("BoxWeightKg = %v, want 2.5", roll.BoxWeightKg)
	}
	if roll.BoxDimensions != "30×25×20" {
		t.Errorf("BoxDimensions = %q, want 30×25×20", roll.BoxDimensions)
	}
}

func TestRollupDimensionsFormatting(t *testing.T) {
	cfg := entity.ProductConfig{
		PiecesPerBox: 10, BoxWeightKg: 1,
		BoxLengthCm: 30, BoxWidthCm: 20, BoxHeightCm: 15.5,
	}
	roll, err := Rollup(cfg, 5)
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	if roll.BoxDimensions != "30×20×15.5" {
		t.Errorf("BoxDimensions = %q, want 30×20×15.5", roll.BoxDimensions)
	}
}

func TestRollupNegativeQuantity(t *testing.T) {
	_, err := Rollup(entity.ProductConfig{PiecesPerBox: 48}, -1)
	if err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
