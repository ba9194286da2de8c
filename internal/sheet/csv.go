package sheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"deckgen/internal/model"
)

// ParseCSV reads a single-table CSV into Domains, grouping by the domain
// column (adjacency) when present.
func ParseCSV(r io.Reader) ([]model.Domain, Report, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, Report{}, fmt.Errorf("parse csv: %w", err)
	}
	return DomainsFromRows(records)
}
