package surfacefit

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/runner"
	"github.com/dpmayerUSGS/APPL-Tools/pkg/socet"
)

// Format describes how an elevation input should be staged for pc_align.
type Format string

const (
	FormatASCIIDTM Format = "ascii_dtm" // SOCET ASCII DTM, converted to CSV
	FormatCSV      Format = "csv"       // pc_align-compatible CSV, used as-is
	FormatRaster   Format = "raster"    // pc_align-compatible raster, used as-is
	FormatTable    Format = "table"     // pedr2tab MOLA table, converted to CSV
)

// datums pc_align understands by name.
var datums = map[string]bool{
	"D_MARS": true, "D_MOON": true, "MOLA": true,
	"NAD27": true, "NAD83": true, "WGS72": true, "WGS_1984": true,
}

// Options configures an alignment run.
type Options struct {
	RefDTM      string
	RefFormat   Format
	SocetDTM    string
	SocetFormat Format
	SocetGPF    string
	OutputGPF   string

	// Update every active point, not just tie points.
	AllPoints bool

	// Exactly one of Datum or Radii is required: the surface GPF heights are
	// referenced to.
	Datum string
	Radii []float64 // semi-major, semi-minor axes in meters

	// Passed through to the first pc_align run; at minimum
	// --max-displacement.
	AlignArgs []string

	Log *zap.Logger
	Out io.Writer // streamed pc_align output
}

func (o *Options) validate(needSocetDTM bool) error {
	if !strings.HasSuffix(o.OutputGPF, ".gpf") {
		return fmt.Errorf(`output file name must include ".gpf" extension`)
	}
	if (o.Datum == "") == (len(o.Radii) == 0) {
		return fmt.Errorf("exactly one of a datum or a radii pair is required")
	}
	if o.Datum != "" && !datums[o.Datum] {
		return fmt.Errorf("unknown datum %q", o.Datum)
	}
	if len(o.Radii) != 0 && len(o.Radii) != 2 {
		return fmt.Errorf("radii must be the semi-major and semi-minor axes")
	}
	if needSocetDTM {
		switch o.SocetFormat {
		case FormatASCIIDTM, FormatCSV, FormatRaster:
		default:
			return fmt.Errorf("unsupported surface format %q", o.SocetFormat)
		}
		switch o.RefFormat {
		case FormatASCIIDTM, FormatCSV, FormatRaster, FormatTable:
		default:
			return fmt.Errorf("unsupported reference format %q", o.RefFormat)
		}
	}
	return nil
}

func (o *Options) log() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

func (o *Options) out() io.Writer {
	if o.Out == nil {
		return io.Discard
	}
	return o.Out
}

// datumArgs renders the shared datum/radii arguments.
func (o *Options) datumArgs() []string {
	if o.Datum != "" {
		return []string{"--datum", o.Datum}
	}
	return []string{
		"--semi-major-axis", strconv.FormatFloat(o.Radii[0], 'f', -1, 64),
		"--semi-minor-axis", strconv.FormatFloat(o.Radii[1], 'f', -1, 64),
	}
}

func basename(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Align runs the full two-step pipeline: align the stereo DTM to the
// reference, then apply the resulting transform to the GPF's points and
// write the updated GPF.
func Align(ctx context.Context, opts Options) error {
	if err := opts.validate(true); err != nil {
		return err
	}
	log := opts.log()

	refPC, err := stageReference(opts)
	if err != nil {
		return err
	}
	surfacePC := opts.SocetDTM
	if opts.SocetFormat == FormatASCIIDTM {
		surfacePC = basename(opts.SocetDTM) + ".csv"
		if err := convertFile(opts.SocetDTM, surfacePC, ASCIIDTMToCSV); err != nil {
			return err
		}
	}

	alignPrefix := basename(opts.SocetDTM) + "_pcAligned_DTM"

	args := []string{"--save-inv-transformed-reference-points", "-o", alignPrefix}
	args = append(args, opts.datumArgs()...)
	args = append(args, opts.AlignArgs...)
	args = append(args, surfacePC, refPC)

	log.Info("aligning surface to reference",
		zap.String("surface", surfacePC),
		zap.String("reference", refPC))
	if err := runner.Run(ctx, opts.out(), "pc_align", args...); err != nil {
		return fmt.Errorf("pc_align: %w", err)
	}

	return applyTransform(ctx, opts, alignPrefix+"-transform.txt")
}

// ApplyTransform skips the alignment step and applies an existing pc_align
// transform matrix to the GPF's points.
func ApplyTransform(ctx context.Context, opts Options, transformMatrix string) error {
	if err := opts.validate(false); err != nil {
		return err
	}
	if _, err := os.Stat(transformMatrix); err != nil {
		return fmt.Errorf("transform matrix: %w", err)
	}
	return applyTransform(ctx, opts, transformMatrix)
}

func applyTransform(ctx context.Context, opts Options, transformMatrix string) error {
	log := opts.log()

	pts, err := socet.ReadGPF(opts.SocetGPF)
	if err != nil {
		return err
	}
	selected := selectPoints(pts, opts.AllPoints)
	if len(selected) == 0 {
		return fmt.Errorf("%s contains no active points to transform", opts.SocetGPF)
	}

	gpfBase := basename(opts.SocetGPF)
	gpfCSV := gpfBase + ".csv"
	if err := writePointCSV(gpfCSV, selected); err != nil {
		return err
	}

	tiesPrefix := basename(opts.SocetGPF) + "_pcAligned_gpfTies"
	args := []string{
		"--initial-transform", transformMatrix,
		"--num-iterations", "0",
		"--max-displacement", "-1",
		"--save-transformed-source-points",
		"-o", tiesPrefix,
	}
	args = append(args, opts.datumArgs()...)
	// pc_align wants two clouds even when only applying a transform
	args = append(args, gpfCSV, gpfCSV)

	log.Info("applying transform to ground points",
		zap.String("transform", transformMatrix),
		zap.Int("points", len(selected)))
	if err := runner.Run(ctx, opts.out(), "pc_align", args...); err != nil {
		return fmt.Errorf("pc_align: %w", err)
	}

	rows, err := readTransSource(tiesPrefix + "-trans_source.csv")
	if err != nil {
		return err
	}
	if len(rows) != len(selected) {
		return fmt.Errorf("pc_align returned %d points, expected %d", len(rows), len(selected))
	}

	// back to radians, longitude folded to ±180
	tfm := make(map[string][3]float64, len(selected))
	for i, p := range selected {
		tfm[p.ID] = [3]float64{
			radians(rows[i][0]),
			radians(lonTo180(rows[i][1])),
			rows[i][2],
		}
	}

	out := updateGPF(pts, tfm, opts.AllPoints)
	log.Info("writing transformed GPF", zap.String("path", opts.OutputGPF))
	if err := socet.WriteGPF(opts.OutputGPF, out); err != nil {
		return err
	}
	return writeTiePointIDs(gpfBase+".tiePointIds.txt", selected)
}

// stageReference converts the reference input to a pc_align-compatible file
// when needed.
func stageReference(opts Options) (string, error) {
	switch opts.RefFormat {
	case FormatTable:
		fmt.Fprint(opts.out(), "\n\n *** WARNING: Using MOLA heights above geoid ***\n\n")
		out := basename(opts.RefDTM) + "_RefPC.csv"
		return out, convertFile(opts.RefDTM, out, PedrTabToCSV)
	case FormatASCIIDTM:
		out := basename(opts.RefDTM) + "_RefPC.csv"
		return out, convertFile(opts.RefDTM, out, ASCIIDTMToCSV)
	default:
		return opts.RefDTM, nil
	}
}

// writePointCSV writes selected points as a headerless lat,long,height CSV
// in degrees, longitudes folded to 0–360.
func writePointCSV(path string, pts []socet.GroundPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	for _, p := range pts {
		rec := []string{
			strconv.FormatFloat(degrees(p.Lat), 'g', -1, 64),
			strconv.FormatFloat(lonTo360(degrees(p.Lon)), 'g', -1, 64),
			strconv.FormatFloat(p.Ht, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeTiePointIDs records which points were transformed. Kept for
// compatibility with the legacy SurfaceFit workflow; nothing reads it.
func writeTiePointIDs(path string, pts []socet.GroundPoint) error {
	var b strings.Builder
	for _, p := range pts {
		b.WriteString(p.ID)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
