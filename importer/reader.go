package importer

import (
	"fmt"
	"io"
	"strings"
)

// Reader turns one spreadsheet stream into a header-keyed table.
type Reader interface {
	Read(r io.Reader) (*Table, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel":
		return &ExcelReader{}, nil
	case "xls":
		return &XLSReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case "csv", "txt":
		return "csv"
	case "excel", "xlsx", "xlsm":
		return "excel"
	case "xls":
		return "xls"
	default:
		return ""
	}
}
