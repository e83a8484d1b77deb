package recon

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "prod-001", "PROD-001"},
		{"already upper", "PROD-001", "PROD-001"},
		{"cyrillic homoglyphs", "РRОD-001", "PROD-001"}, // Cyrillic Р and О
		{"greek homoglyphs", "ΑΒC-12", "ABC-12"},        // Greek Α and Β
		{"lowercase cyrillic", "рrоd-7", "PROD-7"},      // uppercased then mapped
		{"mixed noise", "sku-Х9", "SKU-X9"},             // Cyrillic Х
		{"digits untouched", "0O1I", "0O1I"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "prod-001", "РRОD-001", "ΑΒΓ", "abc-ХУЗ", "SKU 42/B"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
