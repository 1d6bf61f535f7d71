// backend/internal/scraping/collectors/salesevents/mapper.go
package salesevents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

// Extract parses a sales-events document and pulls out the suburb name and
// its private sales. Only malformed JSON is an error: any missing or
// mistyped level of nesting falls back to domain.NotAvailable (or no sales).
func Extract(raw []byte) (domain.SuburbSales, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return domain.SuburbSales{}, fmt.Errorf("decode sales-events json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.SuburbSales{}, fmt.Errorf("decode sales-events json: unexpected data after document")
	}

	name := stringAt(doc, "data", "suburb", "name")
	entries, _ := lookup(doc, "data", "privateSaleResults").([]any)

	out := domain.SuburbSales{Name: name}
	for _, entry := range entries {
		out.Sales = append(out.Sales, domain.SaleRecord{
			Suburb:  name,
			Address: stringAt(entry, "listing", "address"),
			Price:   stringAt(entry, "price", "display"),
		})
	}
	return out, nil
}

// lookup walks nested objects and returns nil as soon as a key is missing
// or an intermediate value is not an object.
func lookup(v any, keys ...string) any {
	for _, k := range keys {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		if v, ok = obj[k]; !ok {
			return nil
		}
	}
	return v
}

func stringAt(v any, keys ...string) string {
	switch leaf := lookup(v, keys...).(type) {
	case nil:
		return domain.NotAvailable
	case string:
		return leaf
	case json.Number:
		return leaf.String()
	case bool:
		return strconv.FormatBool(leaf)
	default:
		b, err := json.Marshal(leaf)
		if err != nil {
			return domain.NotAvailable
		}
		return string(b)
	}
}
