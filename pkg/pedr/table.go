package pedr

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/runner"
)

// Run invokes pedr2tab on a PEDR list file, streaming its combined output to
// w. pedr2tab reads PEDR2TAB.PRM from the working directory and fails on a
// nonzero exit.
func Run(ctx context.Context, w io.Writer, pedrList string) error {
	if err := runner.Run(ctx, w, "pedr2tab", pedrList); err != nil {
		return fmt.Errorf("pedr2tab: %w", err)
	}
	return nil
}

// Table holds a pedr2tab output table. Values stay as written; Column parses
// on demand.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTable parses a pedr2tab table. With a nil cols the column names are
// taken from the first line and the two header lines are skipped; otherwise
// the table is assumed headerless (lhdr flag F) and cols names its columns.
func ReadTable(r io.Reader, cols []string) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	if cols == nil {
		if !sc.Scan() {
			return nil, fmt.Errorf("empty pedr2tab table")
		}
		cols = strings.Fields(sc.Text())
		// second header line carries units
		if !sc.Scan() {
			return nil, fmt.Errorf("truncated pedr2tab table")
		}
		line = 2
	}

	t := &Table{Columns: cols}
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(cols) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, len(cols), len(fields))
		}
		t.Rows = append(t.Rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Column returns a named column parsed as floats.
func (t *Table) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("table has no column %q", name)
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// ToCSV writes the named columns (all of them when none are given) as CSV
// with a header row.
func (t *Table) ToCSV(w io.Writer, cols ...string) error {
	if len(cols) == 0 {
		cols = t.Columns
	}
	idx := make([]int, len(cols))
	for i, name := range cols {
		idx[i] = -1
		for j, c := range t.Columns {
			if c == name {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return fmt.Errorf("table has no column %q", name)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	rec := make([]string, len(idx))
	for _, row := range t.Rows {
		for i, j := range idx {
			rec[i] = row[j]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
