package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ponto/punch"
)

// Writer renders the derived record table and the ranking view.
type Writer interface {
	WriteRecords(w io.Writer, records []punch.DerivedRecord) error
	WriteRanking(w io.Writer, entries []punch.RankingEntry) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatForPath maps a file extension to a writer format.
func FormatForPath(path string) (string, error) {
	switch normalizeFormat(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "csv":
		return "csv", nil
	case "xlsx":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported output extension for %s (use .csv or .xlsx)", path)
	}
}

// ContentType is the download media type for a writer format.
func ContentType(format string) string {
	if normalizeFormat(format) == "csv" {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// WriteFile creates path and hands it to write. A failed write removes the
// partial file.
func WriteFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
