package recon

import "strings"

// confusables maps visually-confusable non-Latin uppercase letters to the
// Latin letters they are misread from. OCR output on SKU labels regularly
// lands on the Cyrillic or Greek homoglyph instead of the Latin original.
var confusables = map[rune]rune{
	// Cyrillic
	'А': 'A', 'В': 'B', 'Е': 'E', 'І': 'I', 'Ј': 'J', 'К': 'K',
	'М': 'M', 'Н': 'H', 'О': 'O', 'Р': 'P', 'С': 'C', 'Т': 'T',
	'У': 'Y', 'Х': 'X',
	// Greek
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H', 'Ι': 'I',
	'Κ': 'K', 'Μ': 'M', 'Ν': 'N', 'Ο': 'O', 'Ρ': 'P', 'Τ': 'T',
	'Υ': 'Y', 'Χ': 'X',
}

// Normalize canonicalizes a SKU for comparison: uppercases it and maps
// every confusable homoglyph to its Latin equivalent. Total and
// deterministic; empty input stays empty.
func Normalize(sku string) string {
	if sku == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if latin, ok := confusables[r]; ok {
			return latin
		}
		return r
	}, strings.ToUpper(sku))
}
