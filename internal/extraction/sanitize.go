package extraction

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// NormalizeAndSanitizeJSON repairs the permissive output of the extraction
// webhook before schema validation:
//   - null sku -> ""; numeric sku -> its string form
//   - missing quantity -> 0 (recorded as a warning, per the lenient
//     reading of the extraction contract)
//   - numeric strings in quantity/rate/taxable_value/tax_amount -> numbers
//   - trims string fields; drops null optionals
//
// It never fixes a negative quantity: that stays in the document so the
// schema (and the reconciliation engine) reject it loudly instead of
// propagating silently wrong aggregates.
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	warnings := make([]string, 0, 4)

	// header strings
	for _, k := range []string{"invoice_number", "invoice_date", "party_name"} {
		switch v := m[k].(type) {
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				delete(m, k)
				warnings = append(warnings, k+"(empty)")
			} else {
				m[k] = s
			}
		case nil:
			if _, ok := m[k]; ok {
				delete(m, k)
				warnings = append(warnings, k+"(null)")
			}
		}
	}

	rawItems, ok := m["line_items"].([]any)
	if !ok {
		// leave it to schema validation to report a missing/typed mismatch
		out, err := json.Marshal(m)
		return out, warnings, err
	}

	for i, ri := range rawItems {
		item, ok := ri.(map[string]any)
		if !ok {
			continue
		}

		// sku: null -> "", numbers -> string, trim
		switch v := item["sku"].(type) {
		case nil:
			item["sku"] = ""
			warnings = append(warnings, fmt.Sprintf("line_items[%d].sku(null)", i))
		case float64:
			item["sku"] = strconv.FormatFloat(v, 'f', -1, 64)
			warnings = append(warnings, fmt.Sprintf("line_items[%d].sku(numeric)", i))
		case string:
			item["sku"] = strings.TrimSpace(v)
		}

		// quantity: string -> number, then missing or null -> 0
		coerceNumber(item, "quantity", i, &warnings)
		if _, present := item["quantity"]; !present {
			item["quantity"] = float64(0)
			warnings = append(warnings, fmt.Sprintf("line_items[%d].quantity(missing)", i))
		}
		coerceNumber(item, "rate", i, &warnings)
		coerceNumber(item, "taxable_value", i, &warnings)
		coerceNumber(item, "tax_amount", i, &warnings)

		for _, k := range []string{"description", "hsn_code"} {
			switch v := item[k].(type) {
			case string:
				item[k] = strings.TrimSpace(v)
			case nil:
				delete(item, k)
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, warnings, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(warnings) > 0 {
		logger.Warn("extraction.sanitize", "coercions", warnings)
	}
	return out, warnings, nil
}

// coerceNumber turns a numeric string (or null) value into a JSON number,
// dropping values that cannot be parsed so validation reports them.
func coerceNumber(item map[string]any, key string, idx int, warnings *[]string) {
	switch v := item[key].(type) {
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			item[key] = f
			*warnings = append(*warnings, fmt.Sprintf("line_items[%d].%s(string)", idx, key))
		}
	case nil:
		if _, ok := item[key]; ok {
			delete(item, key)
			*warnings = append(*warnings, fmt.Sprintf("line_items[%d].%s(null)", idx, key))
		}
	}
}
