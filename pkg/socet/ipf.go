package socet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	ipfHeader = "IMAGE POINT FILE"
	ipfBanner = "pt_id,val,fid_val,no_obs,l.,s.,sig_l,sig_s,res_l,res_s,fid_x,fid_y"
)

// ImagePoint is one record of an IPF. File carries the basename (without
// extension) of the IPF the point belongs to, so merged point sets can be
// split back into per-image files on write.
type ImagePoint struct {
	ID        string
	Val       int // 1 = valid/active
	FidVal    int
	NoObs     int
	Line      float64
	Sample    float64
	SigLine   float64
	SigSample float64
	ResLine   float64
	ResSample float64
	FidX      float64
	FidY      float64
	File      string
}

// ReadIPF reads a single IPF file, tagging every point with the file's
// basename.
func ReadIPF(path string) ([]ImagePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := ParseIPF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range pts {
		pts[i].File = base
	}
	return pts, nil
}

// ReadIPFs reads and concatenates several IPF files in order.
func ReadIPFs(paths []string) ([]ImagePoint, error) {
	var all []ImagePoint
	for _, p := range paths {
		pts, err := ReadIPF(p)
		if err != nil {
			return nil, err
		}
		all = append(all, pts...)
	}
	return all, nil
}

// ParseIPF parses IPF content from r. File tags are left empty.
func ParseIPF(r io.Reader) ([]ImagePoint, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, ipfHeader) {
		return nil, fmt.Errorf("not an image point file (header %q)", header)
	}

	countLine, err := readLine(br)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("bad point count %q", countLine)
	}

	if _, err := readLine(br); err != nil {
		return nil, err
	}

	tok := newTokenizer(br)
	pts := make([]ImagePoint, 0, count)
	for i := 0; i < count; i++ {
		var p ImagePoint
		if p.ID, err = tok.next(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		ints := []*int{&p.Val, &p.FidVal, &p.NoObs}
		for _, dst := range ints {
			if *dst, err = tok.nextInt(); err != nil {
				return nil, fmt.Errorf("point %s: %w", p.ID, err)
			}
		}
		floats := []*float64{&p.Line, &p.Sample, &p.SigLine, &p.SigSample, &p.ResLine, &p.ResSample, &p.FidX, &p.FidY}
		for _, dst := range floats {
			if *dst, err = tok.nextFloat(); err != nil {
				return nil, fmt.Errorf("point %s: %w", p.ID, err)
			}
		}
		pts = append(pts, p)
	}

	return pts, nil
}

// WriteIPFs groups points by their File tag and writes one
// `<dir>/<file>.ipf` per group, preserving point order within each group.
func WriteIPFs(dir string, pts []ImagePoint) error {
	groups := make(map[string][]ImagePoint)
	var order []string
	for _, p := range pts {
		if p.File == "" {
			return fmt.Errorf("point %s has no ipf file tag", p.ID)
		}
		if _, seen := groups[p.File]; !seen {
			order = append(order, p.File)
		}
		groups[p.File] = append(groups[p.File], p)
	}

	for _, name := range order {
		path := filepath.Join(dir, name+".ipf")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := FormatIPF(f, groups[name]); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// FormatIPF writes IPF content to w.
func FormatIPF(w io.Writer, pts []ImagePoint) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ipfHeader)
	fmt.Fprintln(bw, len(pts))
	fmt.Fprintln(bw, ipfBanner)
	for _, p := range pts {
		fmt.Fprintf(bw, "%s %d %d %d\n", p.ID, p.Val, p.FidVal, p.NoObs)
		fmt.Fprintf(bw, "%s %s\n", ftoa(p.Line), ftoa(p.Sample))
		fmt.Fprintf(bw, "%s %s\n", ftoa(p.SigLine), ftoa(p.SigSample))
		fmt.Fprintf(bw, "%s %s\n", ftoa(p.ResLine), ftoa(p.ResSample))
		fmt.Fprintf(bw, "%s %s\n\n", ftoa(p.FidX), ftoa(p.FidY))
	}
	return bw.Flush()
}
