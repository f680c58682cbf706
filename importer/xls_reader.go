package importer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// XLSReader reads the first sheet of a legacy BIFF workbook.
type XLSReader struct{}

func (r *XLSReader) Read(input io.Reader) (*Table, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read xls workbook: %w", err)
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("xls workbook has no sheets")
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, errEmptySheet
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for col := row.FirstCol(); col <= row.LastCol(); col++ {
			cells[col] = row.Col(col)
		}
		rows = append(rows, cells)
	}
	return tableFromRows(rows)
}
