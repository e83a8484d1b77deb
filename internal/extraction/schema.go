package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map for the extraction webhook's response document. Line items
// keep additionalProperties open: passthrough fields (tax amounts etc.)
// must survive, only sku and quantity are structurally required.
func BuildInvoiceJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sku":           map[string]any{"type": "string"},
			"description":   map[string]any{"type": "string"},
			"hsn_code":      map[string]any{"type": "string"},
			"quantity":      map[string]any{"type": "integer", "minimum": 0},
			"rate":          map[string]any{"type": "number"},
			"taxable_value": map[string]any{"type": "number", "minimum": 0},
			"tax_amount":    map[string]any{"type": "number"},
		},
		"required": []string{"sku", "quantity"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"invoice_number": map[string]any{"type": "string"},
			"invoice_date":   map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"party_name":     map[string]any{"type": "string"},
			"line_items": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
		"required": []string{"line_items"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
