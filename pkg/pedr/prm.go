// Package pedr drives the MOLA "pedr2tab" extractor: it writes the arcane
// PEDR2TAB.PRM parameter file, runs the program, and reshapes its tabular
// output for downstream alignment tools.
package pedr

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// DefaultFlattening is the IAU2000 inverse flattening for Mars,
// 1/((a-b)/a) with a = 3396190 m and b = 3376200 m. pedr2tab uses it to
// compute areographic latitudes.
const DefaultFlattening = 169.8944472236118

// PRMFileName is the fixed parameter file name pedr2tab looks for in its
// working directory.
const PRMFileName = "PEDR2TAB.PRM"

// DefaultFlags is the flag sequence for the standard topography extraction:
// header line, shot ground data, areodetic latitude block, ground returns
// only, crossover correction, one big output file.
var DefaultFlags = [13]bool{true, true, false, true, true, false, false, false, false, false, true, true, true}

// PRM describes a PEDR2TAB.PRM parameter file. Longitudes are positive east
// and folded to the 0–360 domain on write; latitudes are planetocentric.
type PRM struct {
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64

	// The 13 T/F switches pedr2tab reads in order. Zero value means all F;
	// most callers want DefaultFlags.
	Flags [13]bool

	// Output file template, used when the OneBigFile flag (13th) is set.
	Out string

	// Inverse flattening; zero selects DefaultFlattening.
	Flattening float64
}

const prmTemplate = `%s # lhdr
%s # 0: shot longitude, latitude, topo, range, planetary_radius,ichan,aflag
%s # 1: MGS_longitude, MGS_latitude, MGS_radius
%s # 2: offnadir_angle, EphemerisTime, areodetic_lat,areoid
%s # 3: ishot, iseq, irev, gravity model number
%s # 4: local_time, solar_phase, solar_incidence
%s # 5: emission_angle, Range_Correction,Pulse_Width_at_threshold,Sigma_optical,E_laser,E_recd,Refl*Trans
%s # 6: bkgrd,thrsh,ipact,ipwct
%s # 7: range_window, range_delay
%s #   All shots, regardless of shot_classification_code
%s # F = noise or clouds, T = ground returns
%s # do crossover correction
%s "%s" # OneBigFile, output file template(must be enclosed in quotes).

%v   # ground_longitude_min
%v   # ground_longitude_max
%v   # ground_latitude_min
%v     # ground_latitude_max

%v	# flattening used to compute areographic ("areodetic") latitudes
`

// Write renders the parameter file.
func (p PRM) Write(w io.Writer) error {
	f := p.Flattening
	if f == 0 {
		f = DefaultFlattening
	}
	args := make([]interface{}, 0, 19)
	for _, flag := range p.Flags {
		args = append(args, tf(flag))
	}
	args = append(args, p.Out,
		lon360(p.MinLon), lon360(p.MaxLon), p.MinLat, p.MaxLat, f)
	_, err := fmt.Fprintf(w, prmTemplate, args...)
	return err
}

// WriteFile writes PEDR2TAB.PRM into dir, where pedr2tab will find it.
func (p PRM) WriteFile(dir string) error {
	f, err := os.Create(filepath.Join(dir, PRMFileName))
	if err != nil {
		return err
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func tf(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

func lon360(lon float64) float64 {
	return math.Mod(360+math.Mod(lon, 360), 360)
}
