// Package surfacefit aligns SOCET ground points to reference elevation data
// by driving the Ames Stereo Pipeline pc_align program: one run to align a
// stereo-derived DTM, a second zero-iteration run to apply the resulting
// transform to the ground points themselves.
package surfacefit

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// asciiDTMHeaderLines is the fixed header length of a SOCET ASCII DTM.
const asciiDTMHeaderLines = 14

// ASCIIDTMToCSV converts a SOCET ASCII DTM (long lat z triplets after a
// fixed-length header) to the headerless lat,long,z CSV pc_align reads by
// default. Note the column swap.
func ASCIIDTMToCSV(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)

	line := 0
	for sc.Scan() {
		line++
		if line <= asciiDTMHeaderLines {
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return fmt.Errorf("line %d: expected 3 columns, got %d", line, len(fields))
		}
		for _, f := range fields {
			if _, err := strconv.ParseFloat(f, 64); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
		}
		fmt.Fprintf(bw, "%s,%s,%s\n", fields[1], fields[0], fields[2])
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

// PedrTabToCSV converts a pedr2tab table to a headerless
// areod_lat,long_East,topography CSV for pc_align. pedr2tab emits whichever
// columns its PRM asked for, so the required three are located by name from
// the first header line.
func PedrTabToCSV(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		return fmt.Errorf("empty pedr2tab table")
	}
	cols := strings.Fields(sc.Text())
	idx := map[string]int{}
	for i, c := range cols {
		idx[c] = i
	}
	var want [3]int
	for i, name := range []string{"areod_lat", "long_East", "topography"} {
		j, ok := idx[name]
		if !ok {
			return fmt.Errorf("pedr2tab table is missing column %q", name)
		}
		want[i] = j
	}

	// second header line carries units
	if !sc.Scan() {
		return fmt.Errorf("truncated pedr2tab table")
	}

	bw := bufio.NewWriter(w)
	line := 2
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(cols) {
			return fmt.Errorf("line %d: expected %d columns, got %d", line, len(cols), len(fields))
		}
		fmt.Fprintf(bw, "%s,%s,%s\n", fields[want[0]], fields[want[1]], fields[want[2]])
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

// convertFile runs convert from one path to another.
func convertFile(in, out string, convert func(io.Reader, io.Writer) error) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := convert(src, dst); err != nil {
		dst.Close()
		return fmt.Errorf("converting %s: %w", in, err)
	}
	return dst.Close()
}

// readTransSource parses the trans_source.csv pc_align writes: three comment
// lines, then lat,long,height rows.
func readTransSource(path string) ([][3]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for i := 0; i < 3; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("%s: truncated header: %w", path, err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	var rows [][3]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("%s: expected 3 columns, got %d", path, len(rec))
		}
		var row [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
