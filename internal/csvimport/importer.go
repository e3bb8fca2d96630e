// Package csvimport implements the bulk offer import. Row-level problems are
// collected as warnings and never abort the batch; a broken header aborts
// before any row is applied.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"offerwall-service/internal/stores"
)

var requiredColumns = []string{"id", "name", "sum_to", "term_to", "percent_rate", "status", "url"}

type Result struct {
	Created  int
	Updated  int
	Warnings []string
}

type Importer struct {
	offers *stores.OfferStore
}

func New(offers *stores.OfferStore) *Importer {
	return &Importer{offers: offers}
}

// Import upserts offers by name from CSV rows. Rows commit individually, so
// partial success is expected; the returned error covers only header-level
// problems that abort the whole import.
func (imp *Importer) Import(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &Result{Warnings: make([]string, 0)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Error reading row: %v", err))
			continue
		}
		if len(record) < len(header) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Error reading row: expected %d fields, got %d", len(header), len(record)))
			continue
		}
		imp.importRow(record, columns, result)
	}
	return result, nil
}

func (imp *Importer) importRow(record []string, columns map[string]int, result *Result) {
	rowID := strings.TrimSpace(record[columns["id"]])
	name := strings.TrimSpace(record[columns["name"]])

	id, err := strconv.Atoi(rowID)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Error in row %s: invalid id", rowID))
		return
	}
	sumTo, err := strconv.ParseFloat(strings.TrimSpace(record[columns["sum_to"]]), 64)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Error in row %s: invalid sum_to", rowID))
		return
	}
	termTo, err := strconv.Atoi(strings.TrimSpace(record[columns["term_to"]]))
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Error in row %s: invalid term_to", rowID))
		return
	}
	percentRate, err := strconv.ParseFloat(strings.TrimSpace(record[columns["percent_rate"]]), 64)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Error in row %s: invalid percent_rate", rowID))
		return
	}

	offer, created, err := imp.offers.UpsertByName(stores.OfferUpsert{
		ID:          id,
		Name:        name,
		URL:         strings.TrimSpace(record[columns["url"]]),
		IsActive:    strings.EqualFold(strings.TrimSpace(record[columns["status"]]), "true"),
		SumTo:       sumTo,
		TermTo:      termTo,
		PercentRate: percentRate,
	})
	if errors.Is(err, stores.ErrUnknownOfferName) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid offer name in row %s: %s", rowID, name))
		return
	}
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Error in row %s: %v", rowID, err))
		return
	}

	if created {
		result.Created++
		return
	}
	result.Updated++
	if offer.ID != id {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Row %s: offer %q already exists with id %d, row id ignored", rowID, name, offer.ID))
	}
}
