package shape

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Shot is one reformatted altimeter point: longitude in ±180 degrees,
// latitude ographic for Mars, elevation and radius in meters.
type Shot struct {
	Lon     float64
	Lat     float64
	ElevM   float64
	RadiusM float64
	UTC     string
	Orbit   int
}

// ReadShots parses an ODE point CSV for the given body and applies the
// per-body reformatting: longitudes folded to ±180, Mars latitudes converted
// from ocentric to ographic, Moon and Mercury radii and elevations converted
// from kilometers to meters (for the Moon the elevation is derived by
// subtracting the reference radius).
func ReadShots(r io.Reader, b Body) ([]Shot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{b.lonField, b.latField, b.elevField, b.radiusField, b.utcField, b.orbitField} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("CSV is missing column %q expected for %s", name, b.Name)
		}
	}

	var shots []Shot
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		field := func(name string) string {
			return strings.TrimSpace(row[col[name]])
		}
		lon, err := strconv.ParseFloat(field(b.lonField), 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude %q: %w", field(b.lonField), err)
		}
		lat, err := strconv.ParseFloat(field(b.latField), 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q: %w", field(b.latField), err)
		}
		elev, err := strconv.ParseFloat(field(b.elevField), 64)
		if err != nil {
			return nil, fmt.Errorf("bad elevation %q: %w", field(b.elevField), err)
		}
		radius, err := strconv.ParseFloat(field(b.radiusField), 64)
		if err != nil {
			return nil, fmt.Errorf("bad radius %q: %w", field(b.radiusField), err)
		}
		orbit, err := strconv.Atoi(field(b.orbitField))
		if err != nil {
			return nil, fmt.Errorf("bad orbit %q: %w", field(b.orbitField), err)
		}

		s := Shot{
			Lon:   round5(LonTo180(lon)),
			UTC:   field(b.utcField),
			Orbit: orbit,
		}
		switch b.Name {
		case "Mars":
			s.Lat = round5(OcToOg(lat, b.MajorRadius, b.MinorRadius))
			s.ElevM = elev
			s.RadiusM = radius
		case "Moon":
			s.Lat = round5(lat)
			s.RadiusM = radius * 1000
			s.ElevM = s.RadiusM - b.MajorRadius
		case "Mercury":
			s.Lat = round5(lat)
			s.RadiusM = radius * 1000
			s.ElevM = elev * 1000
		}
		shots = append(shots, s)
	}
	return shots, nil
}

// round5 keeps coordinates at the five decimal places the downstream
// shapefiles have always carried.
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// ShortBase derives the output basename from an input filename: the first
// three underscore-separated parts, or the whole stem when there are fewer.
func ShortBase(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "_")
	if len(parts) > 3 {
		return strings.Join(parts[:3], "_")
	}
	return stem
}

// ConvertFile converts one ODE point CSV into <short>_Z.shp (plus sidecars)
// in dir, returning the shapefile path.
func ConvertFile(input, dir string, b Body) (string, error) {
	f, err := os.Open(input)
	if err != nil {
		return "", err
	}
	defer f.Close()

	shots, err := ReadShots(f, b)
	if err != nil {
		return "", fmt.Errorf("%s: %w", input, err)
	}
	base := filepath.Join(dir, ShortBase(input)+"_Z")
	if err := WriteShapefile(base, shots, b); err != nil {
		return "", err
	}
	return base + ".shp", nil
}

// ConvertGlob converts every CSV matching pattern, returning the shapefiles
// written.
func ConvertGlob(pattern, dir string, b Body) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	var out []string
	for _, m := range matches {
		shp, err := ConvertFile(m, dir, b)
		if err != nil {
			return nil, err
		}
		out = append(out, shp)
	}
	return out, nil
}
