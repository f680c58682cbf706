package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataUnavailable covers sources that cannot be opened, fetched or parsed.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrMissingColumn is matched by *MissingColumnError.
	ErrMissingColumn = errors.New("missing required column")

	errEmptySheet = errors.New("sheet is empty")
)

type MissingColumnError struct {
	Source  string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Source, ErrMissingColumn, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

func unavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, source, err)
}
