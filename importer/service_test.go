package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ponto/analysis"
	"ponto/punch"
)

var fullHeader = []any{"Nome", "Data", "Entrada 1", "Saída 1", "Turnos.ENTRADA", "Turnos.SAIDA", "Gestor"}

func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, workbookBytes(t, rows), 0o644))
	return path
}

func TestLoadLocalWorkbook(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "ponto.xlsx", [][]any{
		fullHeader,
		{"Ana", "05/03/2024", "08:05", "18:20", "08:00", "17:00", "Lucia"},
		{"Bruno", "05/03/2024", "10:30", "", "08:00", "17:00", "Marcos"},
	})

	result, err := Load(context.Background(), []string{path}, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsRead)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Ana", result.Rows[0].Employee)
	assert.Equal(t, "08:05", result.Rows[0].ActualIn)
	assert.Equal(t, "17:00", result.Rows[0].ScheduledOut)
	assert.Equal(t, "Lucia", result.Rows[0].Supervisor)
	assert.Equal(t, path, result.Rows[0].Source)
	assert.Equal(t, 2, result.Rows[0].RowNumber)
	assert.Equal(t, "", result.Rows[1].ActualOut)
	assert.Equal(t, "excel", result.Sources[0].Format)
}

func TestLoadFormattedWorkbookThroughAnalysis(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ponto.xlsx")
	data := styledWorkbookBytes(t, [][]any{
		fullHeader,
		{"Ana", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 0.25, 0.75, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), 17.0 / 24, "Lucia"},
		{"Bruno", 45306, 0.375, 0.75, 0.375, 0.75, "Lucia"},
		{"Carla", "15/01/2024", "08:00", "0.25", "08:00", "17:00", "Marcos"},
	}, map[string]int{"B2": 14, "C2": 20, "D2": 21, "E2": 22, "B3": 14})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(context.Background(), []string{path}, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, loaded.Rows, 3)
	assert.Equal(t, punch.FieldDate|punch.FieldActualIn|punch.FieldActualOut|punch.FieldScheduledIn|punch.FieldScheduledOut, loaded.Rows[0].NumericCells)
	assert.Zero(t, loaded.Rows[2].NumericCells)

	result := analysis.Run(analysis.NewSnapshot(loaded.SourceLabel(), loaded.Rows, time.Now()), analysis.DefaultTolerances())
	require.Empty(t, result.Skipped, "formatted date cells must not be skipped")
	require.Len(t, result.Records, 3)

	wantDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	ana := result.Records[0]
	assert.True(t, ana.Record.Date.Equal(wantDate), ana.Record.Date.String())
	assertClock(t, "06:00", ana.Record.ActualIn)
	assertClock(t, "18:00", ana.Record.ActualOut)
	assertClock(t, "08:00", ana.Record.ScheduledIn)
	assertClock(t, "17:00", ana.Record.ScheduledOut)
	assert.True(t, ana.IsOvertime)
	assert.True(t, ana.IsOutOfShift)

	bruno := result.Records[1]
	assert.True(t, bruno.Record.Date.Equal(wantDate), bruno.Record.Date.String())
	assertClock(t, "09:00", bruno.Record.ActualIn)
	assertClock(t, "18:00", bruno.Record.ActualOut)
	assert.False(t, bruno.Flagged())

	carla := result.Records[2]
	assert.True(t, carla.Record.Date.Equal(wantDate), carla.Record.Date.String())
	assertClock(t, "08:00", carla.Record.ActualIn)
	assertClock(t, "06:00", carla.Record.ActualOut)
}

func assertClock(t *testing.T, want string, got *punch.TimeOfDay) {
	t.Helper()
	require.NotNil(t, got, "expected %s", want)
	assert.Equal(t, want, got.Clock())
}

func TestLoadMergesSourcesInInputOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeWorkbook(t, dir, "a.xlsx", [][]any{fullHeader, {"Ana", "01/03/2024", "08:00", "17:00", "08:00", "17:00", ""}})
	second := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(second, []byte("Nome;Data;Entrada 1;Saida 1;Turnos.ENTRADA;Turnos.SAIDA\nBruno;02/03/2024;08:00;17:00;08:00;17:00\nCarla;02/03/2024;08:00;17:00;08:00;17:00\n"), 0o644))

	remote := workbookBytes(t, [][]any{fullHeader, {"Davi", "03/03/2024", "08:00", "17:00", "08:00", "17:00", ""}})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(remote)
	}))
	defer server.Close()

	result, err := Load(context.Background(), []string{server.URL + "/PONTO.xlsx?raw=1", first, second}, LoadOptions{})
	require.NoError(t, err)

	employees := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		employees = append(employees, row.Employee)
	}
	assert.Equal(t, []string{"Davi", "Ana", "Bruno", "Carla"}, employees)
	assert.Equal(t, 4, result.RowsRead)
	require.Len(t, result.Sources, 3)
	assert.Equal(t, "csv", result.Sources[2].Format)
	assert.Contains(t, result.SourceLabel(), "a.xlsx")
}

func TestLoadMissingColumn(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "ponto.xlsx", [][]any{
		{"Nome", "Data", "Entrada 1"},
		{"Ana", "05/03/2024", "08:05"},
	})

	_, err := Load(context.Background(), []string{path}, LoadOptions{})
	require.ErrorIs(t, err, ErrMissingColumn)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Saída 1", "Turnos.ENTRADA", "Turnos.SAIDA"}, missing.Columns)
	assert.False(t, errors.Is(err, ErrDataUnavailable))
}

func TestLoadCustomAliases(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "custom.xlsx", [][]any{
		{"Worker", "Day", "In", "Out", "Plan In", "Plan Out"},
		{"Ana", "05/03/2024", "08:05", "18:20", "08:00", "17:00"},
	})

	columns := Columns{
		Employee:     []string{"Worker"},
		Date:         []string{"Day"},
		ActualIn:     []string{"In"},
		ActualOut:    []string{"Out"},
		ScheduledIn:  []string{"plan_in"},
		ScheduledOut: []string{"PLAN-OUT"},
	}
	result, err := Load(context.Background(), []string{path}, LoadOptions{Columns: columns})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "08:00", result.Rows[0].ScheduledIn)
	assert.Equal(t, "", result.Rows[0].Supervisor)
}

func TestLoadUnavailableSources(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("nope"), 0o644))

	for name, sources := range map[string][]string{
		"http 404":       {server.URL + "/PONTO.xlsx"},
		"missing file":   {filepath.Join(dir, "absent.xlsx")},
		"corrupt file":   {broken},
		"unknown format": {filepath.Join(dir, "ponto.ods")},
		"no sources":     nil,
	} {
		_, err := Load(context.Background(), sources, LoadOptions{})
		assert.ErrorIs(t, err, ErrDataUnavailable, name)
	}
}

func TestInferFormat(t *testing.T) {
	t.Parallel()

	got, err := InferFormat("https://example.com/files/PONTO.XLSX?token=1", "")
	require.NoError(t, err)
	assert.Equal(t, "excel", got)

	got, err = InferFormat("export.txt", "csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", got)

	got, err = InferFormat("legacy.xls", "")
	require.NoError(t, err)
	assert.Equal(t, "xls", got)

	_, err = InferFormat("notes.pdf", "")
	require.Error(t, err)
}
