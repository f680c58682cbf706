package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader reads comma, semicolon or tab separated exports. A UTF-8 or
// UTF-16 byte order mark is honored; without one the input is read as UTF-8.
type CSVReader struct {
	Comma rune
}

func (r *CSVReader) Read(input io.Reader) (*Table, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(input, decoder))
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = r.Comma
	if reader.Comma == 0 {
		reader.Comma = detectDelimiter(data)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return tableFromRows(rows)
}

// detectDelimiter picks the most frequent candidate in the header line.
func detectDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t'} {
		if count := bytes.Count(line, []byte(string(candidate))); count > bestCount {
			best, bestCount = candidate, count
		}
	}
	return best
}
