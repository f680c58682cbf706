package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"ponto/punch"
)

type CSVWriter struct{}

func (w *CSVWriter) WriteRecords(out io.Writer, records []punch.DerivedRecord) error {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, recordCells(record))
	}
	return writeCSV(out, recordHeaders, rows)
}

func (w *CSVWriter) WriteRanking(out io.Writer, entries []punch.RankingEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, rankingCells(entry))
	}
	return writeCSV(out, rankingHeaders, rows)
}

func writeCSV(out io.Writer, headers []string, rows [][]any) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, cells := range rows {
		row := make([]string, 0, len(cells))
		for _, cell := range cells {
			row = append(row, csvCell(cell))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

func csvCell(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case bool:
		return strconv.FormatBool(typed)
	case decimal.Decimal:
		return typed.StringFixed(2)
	default:
		return fmt.Sprint(typed)
	}
}
