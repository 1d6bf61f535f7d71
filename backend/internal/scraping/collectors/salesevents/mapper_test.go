package salesevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

const fullDocument = `{
  "data": {
    "suburb": {"name": "Abbotsford"},
    "privateSaleResults": [
      {"listing": {"address": "1 Acacia St"}, "price": {"display": "$1,200,000"}},
      {"listing": {"address": "2/14 Park Rd"}, "price": {"display": "Contact agent"}},
      {"listing": {"address": "7 Hoddle St"}, "price": {"display": "$850,000"}}
    ]
  }
}`

func TestExtractFullDocument(t *testing.T) {
	got, err := Extract([]byte(fullDocument))
	require.NoError(t, err)

	assert.Equal(t, "Abbotsford", got.Name)
	require.Len(t, got.Sales, 3)
	assert.Equal(t, domain.SaleRecord{Suburb: "Abbotsford", Address: "1 Acacia St", Price: "$1,200,000"}, got.Sales[0])
	assert.Equal(t, []string{"Abbotsford", "2/14 Park Rd", "Contact agent"}, got.Sales[1].Row())
	assert.Equal(t, "7 Hoddle St", got.Sales[2].Address)
}

func TestExtractDefaults(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		suburb  string
		address string
		price   string
	}{
		{
			name:    "missing address",
			doc:     `{"data":{"suburb":{"name":"Kew"},"privateSaleResults":[{"price":{"display":"$1"}}]}}`,
			suburb:  "Kew",
			address: domain.NotAvailable,
			price:   "$1",
		},
		{
			name:    "missing price display",
			doc:     `{"data":{"suburb":{"name":"Kew"},"privateSaleResults":[{"listing":{"address":"3 Main St"},"price":{}}]}}`,
			suburb:  "Kew",
			address: "3 Main St",
			price:   domain.NotAvailable,
		},
		{
			name:    "missing suburb",
			doc:     `{"data":{"privateSaleResults":[{"listing":{"address":"3 Main St"},"price":{"display":"$2"}}]}}`,
			suburb:  domain.NotAvailable,
			address: "3 Main St",
			price:   "$2",
		},
		{
			name:    "null leaves",
			doc:     `{"data":{"suburb":{"name":null},"privateSaleResults":[{"listing":{"address":null},"price":null}]}}`,
			suburb:  domain.NotAvailable,
			address: domain.NotAvailable,
			price:   domain.NotAvailable,
		},
		{
			name:    "intermediate is not an object",
			doc:     `{"data":{"suburb":"Kew","privateSaleResults":[{"listing":"3 Main St","price":[1,2]}]}}`,
			suburb:  domain.NotAvailable,
			address: domain.NotAvailable,
			price:   domain.NotAvailable,
		},
		{
			name:    "entry is not an object",
			doc:     `{"data":{"suburb":{"name":"Kew"},"privateSaleResults":["junk"]}}`,
			suburb:  "Kew",
			address: domain.NotAvailable,
			price:   domain.NotAvailable,
		},
		{
			name:    "numeric price",
			doc:     `{"data":{"suburb":{"name":"Kew"},"privateSaleResults":[{"listing":{"address":"3 Main St"},"price":{"display":1250000}}]}}`,
			suburb:  "Kew",
			address: "3 Main St",
			price:   "1250000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(tt.doc))
			require.NoError(t, err)
			require.Len(t, got.Sales, 1)
			assert.Equal(t, tt.suburb, got.Name)
			assert.Equal(t, domain.SaleRecord{Suburb: tt.suburb, Address: tt.address, Price: tt.price}, got.Sales[0])
		})
	}
}

func TestExtractNoSales(t *testing.T) {
	for name, doc := range map[string]string{
		"empty list":    `{"data":{"suburb":{"name":"Ascot Vale"},"privateSaleResults":[]}}`,
		"missing list":  `{"data":{"suburb":{"name":"Ascot Vale"}}}`,
		"list is null":  `{"data":{"suburb":{"name":"Ascot Vale"},"privateSaleResults":null}}`,
		"list mistyped": `{"data":{"suburb":{"name":"Ascot Vale"},"privateSaleResults":{"a":1}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Extract([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, "Ascot Vale", got.Name)
			assert.Empty(t, got.Sales)
		})
	}

	got, err := Extract([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, domain.NotAvailable, got.Name)
	assert.Empty(t, got.Sales)
}

func TestExtractAllowsTrailingWhitespace(t *testing.T) {
	got, err := Extract([]byte("{\"data\":{\"suburb\":{\"name\":\"Kew\"}}}\n\t "))
	require.NoError(t, err)
	assert.Equal(t, "Kew", got.Name)
}

func TestExtractInvalidJSON(t *testing.T) {
	for _, doc := range []string{``, `<html>`, `{"data":`, `{} trailing`, `{"data":{}}}`, `{} ]`, `{} {}`} {
		_, err := Extract([]byte(doc))
		assert.Error(t, err, "document %q", doc)
	}
}
