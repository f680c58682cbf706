package importer

import (
	"strings"

	"ponto/internal/textutil"
)

type Record struct {
	RowNumber int
	Values    map[string]string
	// Numeric holds the headers whose cell the sheet stored as a number.
	Numeric map[string]bool
}

func (r Record) lookup(keys []string) (string, bool) {
	for _, key := range keys {
		header := textutil.NormalizeHeader(key)
		if _, ok := r.Values[header]; ok {
			return header, true
		}
	}
	return "", false
}

// Get returns the first value whose normalized header matches one of keys.
func (r Record) Get(keys ...string) string {
	if header, ok := r.lookup(keys); ok {
		return strings.TrimSpace(r.Values[header])
	}
	return ""
}

// IsNumeric reports whether the cell Get would return was stored as a number.
func (r Record) IsNumeric(keys ...string) bool {
	header, ok := r.lookup(keys)
	return ok && r.Numeric[header]
}

// Table is a sheet reduced to normalized headers and data rows. Row numbers
// are 1-based and count the header row.
type Table struct {
	Headers []string
	Records []Record
}

func (t *Table) HasHeader(key string) bool {
	normalized := textutil.NormalizeHeader(key)
	for _, header := range t.Headers {
		if header == normalized {
			return true
		}
	}
	return false
}

// tableFromRows builds a table from text-only rows.
func tableFromRows(rows [][]string) (*Table, error) {
	return tableFromCells(rows, nil)
}

// tableFromCells uses the first row as header and drops fully blank rows.
// The first occurrence wins when two headers normalize to the same key.
// numeric, when set, reports the cells stored as numbers by sheet position.
func tableFromCells(rows [][]string, numeric func(row, col int) bool) (*Table, error) {
	if len(rows) == 0 {
		return nil, errEmptySheet
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = textutil.NormalizeHeader(header)
	}

	table := &Table{Headers: headers, Records: make([]Record, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		var numericCells map[string]bool
		values := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if _, seen := values[header]; seen {
				continue
			}
			if col >= len(row) {
				values[header] = ""
				continue
			}
			values[header] = row[col]
			if numeric != nil && numeric(i+1, col) {
				if numericCells == nil {
					numericCells = make(map[string]bool)
				}
				numericCells[header] = true
			}
		}
		table.Records = append(table.Records, Record{RowNumber: i + 2, Values: values, Numeric: numericCells})
	}
	return table, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
