package constants

// Default box configuration applied when a product has no usable value
// for a packaging field. Each field falls back independently.
const (
	DefaultPiecesPerBox = 48
	DefaultBoxWeightKg  = 5.0
	DefaultBoxLengthCm  = 30.0
	DefaultBoxWidthCm   = 25.0
	DefaultBoxHeightCm  = 20.0
)

// ReportFormats holds the supported report output formats.
var ReportFormats = []string{"csv", "xlsx", "pdf"}
