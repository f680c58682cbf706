package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ponto/punch"
)

const (
	recordsSheet = "Records"
	rankingSheet = "Ranking"
)

type ExcelWriter struct{}

func (w *ExcelWriter) WriteRecords(out io.Writer, records []punch.DerivedRecord) error {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, recordCells(record))
	}
	return writeExcel(out, recordsSheet, recordHeaders, rows)
}

func (w *ExcelWriter) WriteRanking(out io.Writer, entries []punch.RankingEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, rankingCells(entry))
	}
	return writeExcel(out, rankingSheet, rankingHeaders, rows)
}

func writeExcel(out io.Writer, sheet string, headers []string, rows [][]any) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename excel sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create excel header style: %w", err)
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := file.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style excel header: %w", err)
	}

	for i, cells := range rows {
		row := i + 2
		for col, value := range cells {
			if value == nil {
				continue
			}
			if amount, ok := value.(decimal.Decimal); ok {
				value = amount.InexactFloat64()
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.Write(out); err != nil {
		return fmt.Errorf("write excel output: %w", err)
	}
	return nil
}
