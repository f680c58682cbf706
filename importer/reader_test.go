package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
)

func TestCSVReaderDetectsSemicolonAndBOM(t *testing.T) {
	t.Parallel()

	input := "\ufeffNome;Data;Entrada 1;Saída 1\nAna;05/03/2024;08:05;18:20\n;;;\nBruno;05/03/2024;10:30;\n"
	table, err := (&CSVReader{}).Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"nome", "data", "entrada1", "saida1"}, table.Headers)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "Ana", table.Records[0].Get("Nome"))
	assert.Equal(t, "18:20", table.Records[0].Get("SAIDA 1"))
	assert.Equal(t, 2, table.Records[0].RowNumber)
	assert.Equal(t, 4, table.Records[1].RowNumber, "blank rows keep numbering")
	assert.Equal(t, "", table.Records[1].Get("saida_1"))
}

func TestCSVReaderDecodesUTF16(t *testing.T) {
	t.Parallel()

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("Nome\tData\nJoão\t06/03/2024\n")
	require.NoError(t, err)

	table, err := (&CSVReader{}).Read(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "João", table.Records[0].Get("nome"))
	assert.Equal(t, "06/03/2024", table.Records[0].Get("data"))
}

func TestCSVReaderEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := (&CSVReader{}).Read(strings.NewReader(""))
	require.ErrorIs(t, err, errEmptySheet)
}

func TestTableFromRowsKeepsFirstDuplicateHeader(t *testing.T) {
	t.Parallel()

	table, err := tableFromRows([][]string{{"Nome", "nome", ""}, {"Ana", "Other", "x"}})
	require.NoError(t, err)
	assert.Equal(t, "Ana", table.Records[0].Get("nome"))
	assert.True(t, table.HasHeader("NOME"))
	assert.False(t, table.HasHeader("data"))
}

func TestExcelReaderReadsFirstSheet(t *testing.T) {
	t.Parallel()

	data := workbookBytes(t, [][]any{
		{"Nome", "Data", "Entrada 1", "Saída 1", "Turnos.ENTRADA", "Turnos.SAIDA"},
		{"Ana", "05/03/2024", "08:05", "18:20", "08:00", "17:00"},
	})

	table, err := (&ExcelReader{}).Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "08:00", table.Records[0].Get("turnos.entrada"))
	assert.Equal(t, "17:00", table.Records[0].Get("Turnos.SAIDA"))
}

func TestExcelReaderKeepsNumericDateAndTimeCells(t *testing.T) {
	t.Parallel()

	data := styledWorkbookBytes(t, [][]any{
		{"Nome", "Data", "Entrada 1", "Saída 1", "Turnos.ENTRADA", "Turnos.SAIDA"},
		{"Ana", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 0.25, 0.75, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), 17.0 / 24},
		{"Bruno", "15/01/2024", "08:00", "0.25", "08:00", "17:00"},
	}, map[string]int{"B2": 14, "C2": 20, "D2": 21, "E2": 22})

	table, err := (&ExcelReader{}).Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	typed := table.Records[0]
	assert.Equal(t, "45306", typed.Get("data"), "date cells arrive as the serial, not 01-15-24")
	assert.Equal(t, "0.25", typed.Get("entrada 1"))
	assert.Equal(t, "0.75", typed.Get("saida 1"))
	for _, header := range []string{"data", "entrada1", "saida1", "turnos.entrada", "turnos.saida"} {
		assert.True(t, typed.IsNumeric(header), header)
	}
	assert.False(t, typed.IsNumeric("nome"))

	text := table.Records[1]
	assert.Equal(t, "0.25", text.Get("saida 1"))
	assert.False(t, text.IsNumeric("saida 1"), "text cells stay text")
	assert.False(t, text.IsNumeric("data"))
}

func TestExcelReaderRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := (&ExcelReader{}).Read(strings.NewReader("not a workbook"))
	require.Error(t, err)
}

func TestReaderForFormat(t *testing.T) {
	t.Parallel()

	for format, want := range map[string]Reader{
		"csv":   &CSVReader{},
		"XLSX":  &ExcelReader{},
		".xlsm": &ExcelReader{},
		"excel": &ExcelReader{},
		"xls":   &XLSReader{},
	} {
		got, err := ReaderForFormat(format)
		require.NoError(t, err, format)
		assert.IsType(t, want, got, format)
	}

	_, err := ReaderForFormat("ods")
	require.Error(t, err)
}

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, file.SetSheetRow(sheet, cell, &values))
	}

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}

// styledWorkbookBytes writes cells one by one so time values become serials,
// then applies the number formats keyed by cell reference.
func styledWorkbookBytes(t *testing.T, rows [][]any, numFmts map[string]int) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, file.SetCellValue(sheet, cell, value))
		}
	}
	for cell, numFmt := range numFmts {
		style, err := file.NewStyle(&excelize.Style{NumFmt: numFmt})
		require.NoError(t, err)
		require.NoError(t, file.SetCellStyle(sheet, cell, cell, style))
	}

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}
