// backend/internal/domain/sale.go
package domain

// NotAvailable is written in place of any field the API did not return.
const NotAvailable = "N/A"

// CSVHeader is the first row of every output file.
var CSVHeader = []string{"Suburb", "Address", "Price"}

// SaleRecord is one private sale as written to the output.
type SaleRecord struct {
	Suburb  string `json:"suburb"`
	Address string `json:"address"`
	Price   string `json:"price"`
}

// Row returns the record in output column order.
func (s SaleRecord) Row() []string {
	return []string{s.Suburb, s.Address, s.Price}
}

// SuburbSales is what a single sales-events page yields.
type SuburbSales struct {
	Name  string
	Sales []SaleRecord
}
