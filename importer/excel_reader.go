package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first sheet of an xlsx/xlsm workbook. Cells are
// returned as stored, without number formats, so date and time cells arrive
// as serial numbers and are marked numeric.
type ExcelReader struct{}

func (r *ExcelReader) Read(input io.Reader) (*Table, error) {
	file, err := excelize.OpenReader(input)
	if err != nil {
		return nil, fmt.Errorf("open excel workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}

	return tableFromCells(rows, func(row, col int) bool {
		return numericCell(file, sheetName, row, col, rows[row][col])
	})
}

// numericCell reports whether a non-empty cell holds a number. Cells without
// an explicit type attribute are numbers in the sheet XML.
func numericCell(file *excelize.File, sheet string, row, col int, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	cellType, err := file.GetCellType(sheet, cell)
	if err != nil {
		return false
	}
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	default:
		return false
	}
}
