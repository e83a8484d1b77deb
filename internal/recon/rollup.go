package recon

import (
	"fmt"
	"strconv"

	"github.com/raxj06/Sales-Report-Generator/constants"
	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// RollupResult holds the shipping metrics derived for one line item.
type RollupResult struct {
	PiecesPerBox  int
	BoxWeightKg   float64
	NumBoxes      int
	TotalWeight   float64
	BoxDimensions string
}

// Rollup computes box count and weight for a quantity under the given
// configuration. Each packaging field falls back to its default
// independently when unset or non-positive. A negative quantity is
// malformed input and rejected.
func Rollup(cfg entity.ProductConfig, quantity int) (RollupResult, error) {
	if quantity < 0 {
		return RollupResult{}, common.NewAppError("MALFORMED_ITEM",
			fmt.Sprintf("negative quantity %d", quantity), common.ErrInvalidInput)
	}

	pieces := cfg.PiecesPerBox
	if pieces <= 0 {
		pieces = constants.DefaultPiecesPerBox
	}
	weight := cfg.BoxWeightKg
	if weight <= 0 {
		weight = constants.DefaultBoxWeightKg
	}

	numBoxes := (quantity + pieces - 1) / pieces // ceil(q/p); 0 for q=0

	return RollupResult{
		PiecesPerBox:  pieces,
		BoxWeightKg:   weight,
		NumBoxes:      numBoxes,
		TotalWeight:   float64(numBoxes) * weight,
		BoxDimensions: formatDimensions(cfg),
	}, nil
}

func formatDimensions(cfg entity.ProductConfig) string {
	length := cfg.BoxLengthCm
	if length <= 0 {
		length = constants.DefaultBoxLengthCm
	}
	width := cfg.BoxWidthCm
	if width <= 0 {
		width = constants.DefaultBoxWidthCm
	}
	height := cfg.BoxHeightCm
	if height <= 0 {
		height = constants.DefaultBoxHeightCm
	}
	return fmt.Sprintf("%s×%s×%s", formatDim(length), formatDim(width), formatDim(height))
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
