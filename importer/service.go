package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ponto/punch"
)

// DefaultSource is the published timesheet workbook used when no input is
// configured.
const DefaultSource = "https://raw.githubusercontent.com/Patriciazambianco/PONTO/main/PONTO.xlsx"

type LoadOptions struct {
	// Format overrides extension based detection for every source.
	Format     string
	Columns    Columns
	Timeout    time.Duration
	HTTPClient httpDoer
	Logger     *slog.Logger
}

type SourceStats struct {
	Source   string
	Format   string
	RowsRead int
}

type LoadResult struct {
	Sources  []SourceStats
	RowsRead int
	Rows     []punch.RawRow
}

// SourceLabel joins the source names for display and snapshot metadata.
func (r *LoadResult) SourceLabel() string {
	names := make([]string, 0, len(r.Sources))
	for _, source := range r.Sources {
		names = append(names, source.Source)
	}
	return strings.Join(names, ", ")
}

type sourceRows struct {
	stats SourceStats
	rows  []punch.RawRow
}

// Load reads all sources concurrently and merges their rows in input order.
// Any failing source fails the whole load.
func Load(ctx context.Context, sources []string, opts LoadOptions) (*LoadResult, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no input sources configured", ErrDataUnavailable)
	}

	columns := opts.Columns.WithDefaults()
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	loaded := make([]sourceRows, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, source := range sources {
		group.Go(func() error {
			started := time.Now()
			out, err := loadSource(groupCtx, client, source, opts.Format, columns)
			if err != nil {
				return err
			}
			loaded[i] = out
			logger.Debug("source loaded",
				slog.String("source", source),
				slog.String("format", out.stats.Format),
				slog.Int("rows", out.stats.RowsRead),
				slog.Duration("elapsed", time.Since(started)),
			)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &LoadResult{Sources: make([]SourceStats, 0, len(loaded)), Rows: make([]punch.RawRow, 0, 256)}
	for _, out := range loaded {
		result.Sources = append(result.Sources, out.stats)
		result.RowsRead += out.stats.RowsRead
		result.Rows = append(result.Rows, out.rows...)
	}
	return result, nil
}

func loadSource(ctx context.Context, client httpDoer, source, format string, columns Columns) (sourceRows, error) {
	sourceFormat, err := InferFormat(source, format)
	if err != nil {
		return sourceRows{}, unavailable(source, err)
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return sourceRows{}, unavailable(source, err)
	}

	data, err := fetch(ctx, client, source)
	if err != nil {
		return sourceRows{}, unavailable(source, err)
	}

	table, err := reader.Read(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, errEmptySheet) {
			return sourceRows{}, &MissingColumnError{Source: source, Columns: requiredLabels(columns)}
		}
		return sourceRows{}, unavailable(source, err)
	}
	if err := columns.Check(source, table); err != nil {
		return sourceRows{}, err
	}

	rows := make([]punch.RawRow, 0, len(table.Records))
	for _, record := range table.Records {
		rows = append(rows, columns.RawRow(source, record))
	}
	return sourceRows{
		stats: SourceStats{Source: source, Format: sourceFormat, RowsRead: len(table.Records)},
		rows:  rows,
	}, nil
}

func requiredLabels(columns Columns) []string {
	labels := make([]string, 0, 6)
	for _, column := range columns.required() {
		labels = append(labels, column.label())
	}
	return labels
}
