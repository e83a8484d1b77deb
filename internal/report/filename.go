package report

import (
	"strings"

	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// BaseName derives a safe report file name from the invoice number,
// falling back to the record ID. The invoice number comes from the
// extraction webhook, so anything outside [A-Za-z0-9_-] is replaced
// before it can reach a filesystem path or a Content-Disposition header.
func BaseName(rec *entity.InvoiceRecord) string {
	name := rec.InvoiceNumber
	if name == "" {
		name = rec.ID.String()
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
