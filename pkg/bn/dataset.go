package bn

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMissingHeader is returned by [ReadCSV] when the input has no header
	// row or the header contains an empty variable name.
	ErrMissingHeader = errors.New("missing or malformed header row")

	// ErrNoRows is returned by [ReadCSV] when the input has a header but no
	// data rows. Cardinalities are inferred from observed states, so an empty
	// table has no usable variable model.
	ErrNoRows = errors.New("dataset has no data rows")

	// ErrRowWidth is returned when a data row does not have exactly one value
	// per header column.
	ErrRowWidth = errors.New("row width does not match header")

	// ErrBadValue is returned when a cell is not a positive integer.
	// State codes are 1-indexed; 0 and negative values are invalid.
	ErrBadValue = errors.New("state value must be a positive integer")
)

// Dataset pairs the variable list with the observation rows. Rows are
// independent observations; Rows[o][i] is the 1-indexed state of variable i
// in observation o.
type Dataset struct {
	Variables []Variable
	Rows      [][]int
}

// NumVariables returns the number of variables (columns).
func (d *Dataset) NumVariables() int { return len(d.Variables) }

// NumRows returns the number of observations.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// Validate checks that every row has one value per variable and every value
// is within its variable's 1..R range.
func (d *Dataset) Validate() error {
	for o, row := range d.Rows {
		if len(row) != len(d.Variables) {
			return fmt.Errorf("row %d has %d values, want %d: %w", o, len(row), len(d.Variables), ErrRowWidth)
		}
		for i, v := range row {
			if v < 1 || v > d.Variables[i].R {
				return fmt.Errorf("row %d, variable %q: state %d outside 1..%d: %w",
					o, d.Variables[i].Name, v, d.Variables[i].R, ErrBadValue)
			}
		}
	}
	return nil
}

// ReadCSV parses a categorical dataset from CSV. The first record is the
// header of variable names; every following record is one observation of
// positive-integer state codes. Each variable's cardinality is inferred as
// the maximum state observed in its column.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	vars := make([]Variable, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("column %d: %w", i, ErrMissingHeader)
		}
		vars[i] = Variable{Name: name, R: 1}
	}

	var rows [][]int
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows), err)
		}
		if len(record) != len(vars) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", len(rows), len(record), len(vars), ErrRowWidth)
		}
		row := make([]int, len(record))
		for i, cell := range record {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil || v < 1 {
				return nil, fmt.Errorf("row %d, column %q: %q: %w", len(rows), vars[i].Name, cell, ErrBadValue)
			}
			row[i] = v
			if v > vars[i].R {
				vars[i].R = v
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return &Dataset{Variables: vars, Rows: rows}, nil
}

// ReadCSVFile reads a dataset from a CSV file at path.
func ReadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
