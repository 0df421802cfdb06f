// Package socet reads, writes, and manipulates SOCET Set / SOCET GXP ground
// point files (GPF) and image point files (IPF) — the text formats the
// photogrammetry network utilities exchange with the workstation.
package socet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	gpfHeader = "GROUND POINT FILE"
	gpfBanner = "point_id,stat,known,lat_Y_North,long_X_East,ht,sig(3),res(3)"
)

// Point type values used in the "known" field.
const (
	KnownTiePoint   = 0
	KnownXYZControl = 3
)

// GroundPoint is one record of a GPF. Latitude and longitude are stored in
// radians, height in meters, exactly as the file carries them.
type GroundPoint struct {
	ID    string
	Stat  int // 1 = active, 0 = inactive
	Known int // point type: 0 tie, 3 XYZ control, others workstation-defined
	Lat   float64
	Lon   float64
	Ht    float64
	Sig   [3]float64
	Res   [3]float64
}

// ReadGPF reads a GPF file from disk.
func ReadGPF(path string) ([]GroundPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := ParseGPF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// ParseGPF parses GPF content from r.
func ParseGPF(r io.Reader) ([]GroundPoint, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, gpfHeader) {
		return nil, fmt.Errorf("not a ground point file (header %q)", header)
	}

	countLine, err := readLine(br)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("bad point count %q", countLine)
	}

	// Column banner; contents are fixed for GPFs.
	if _, err := readLine(br); err != nil {
		return nil, err
	}

	tok := newTokenizer(br)
	pts := make([]GroundPoint, 0, count)
	for i := 0; i < count; i++ {
		var p GroundPoint
		if p.ID, err = tok.next(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		if p.Stat, err = tok.nextInt(); err != nil {
			return nil, fmt.Errorf("point %s: stat: %w", p.ID, err)
		}
		if p.Known, err = tok.nextInt(); err != nil {
			return nil, fmt.Errorf("point %s: known: %w", p.ID, err)
		}
		fields := []*float64{&p.Lat, &p.Lon, &p.Ht, &p.Sig[0], &p.Sig[1], &p.Sig[2], &p.Res[0], &p.Res[1], &p.Res[2]}
		for _, dst := range fields {
			if *dst, err = tok.nextFloat(); err != nil {
				return nil, fmt.Errorf("point %s: %w", p.ID, err)
			}
		}
		pts = append(pts, p)
	}

	return pts, nil
}

// WriteGPF writes points to a GPF file at path.
func WriteGPF(path string, pts []GroundPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := FormatGPF(f, pts); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// FormatGPF writes GPF content to w.
func FormatGPF(w io.Writer, pts []GroundPoint) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, gpfHeader)
	fmt.Fprintln(bw, len(pts))
	fmt.Fprintln(bw, gpfBanner)
	for _, p := range pts {
		fmt.Fprintf(bw, "%s %d %d\n", p.ID, p.Stat, p.Known)
		fmt.Fprintf(bw, "%s %s %s\n", ftoa(p.Lat), ftoa(p.Lon), ftoa(p.Ht))
		fmt.Fprintf(bw, "%s %s %s\n", ftoa(p.Sig[0]), ftoa(p.Sig[1]), ftoa(p.Sig[2]))
		fmt.Fprintf(bw, "%s %s %s\n\n", ftoa(p.Res[0]), ftoa(p.Res[1]), ftoa(p.Res[2]))
	}
	return bw.Flush()
}

// ftoa formats a float with round-trip precision.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// tokenizer yields whitespace-separated tokens, skipping blank lines between
// records.
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.sc.Text(), nil
}

func (t *tokenizer) nextInt() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func (t *tokenizer) nextFloat() (float64, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}
