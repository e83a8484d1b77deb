package entity

import (
	"github.com/raxj06/Sales-Report-Generator/constants"
)

// ProductConfig holds the packaging metadata for one SKU. A zero or
// negative numeric field means "not set"; consumers fall back to the
// default configuration per field.
type ProductConfig struct {
	Name         string  `json:"name,omitempty"`
	HSNCode      string  `json:"hsn_code,omitempty"`
	PiecesPerBox int     `json:"pieces_per_box"`
	BoxWeightKg  float64 `json:"box_weight_kg"`
	BoxLengthCm  float64 `json:"box_length_cm"`
	BoxWidthCm   float64 `json:"box_width_cm"`
	BoxHeightCm  float64 `json:"box_height_cm"`
}

// ProductMaster maps a SKU (case-sensitive, as stored) to its packaging
// configuration. Keys are unique; order is irrelevant.
type ProductMaster map[string]ProductConfig

// DefaultConfig returns the fixed fallback configuration used when a SKU
// has no master entry.
func DefaultConfig() ProductConfig {
	return ProductConfig{
		PiecesPerBox: constants.DefaultPiecesPerBox,
		BoxWeightKg:  constants.DefaultBoxWeightKg,
		BoxLengthCm:  constants.DefaultBoxLengthCm,
		BoxWidthCm:   constants.DefaultBoxWidthCm,
		BoxHeightCm:  constants.DefaultBoxHeightCm,
	}
}
