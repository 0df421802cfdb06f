package surfacefit

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/socet"
)

func TestOptionsValidate(t *testing.T) {
	base := Options{
		OutputGPF: "out.gpf",
		Datum:     "D_MARS",
	}
	require.NoError(t, base.validate(false))

	o := base
	o.OutputGPF = "out.txt"
	require.Error(t, o.validate(false))

	o = base
	o.Datum = "D_PLUTO"
	require.Error(t, o.validate(false))

	o = base
	o.Datum = ""
	require.Error(t, o.validate(false)) // neither datum nor radii

	o.Radii = []float64{3396190, 3376200}
	require.NoError(t, o.validate(false))

	o.Datum = "D_MARS"
	require.Error(t, o.validate(false)) // both
}

func TestSelectPoints(t *testing.T) {
	pts := []socet.GroundPoint{
		{ID: "tie", Stat: 1, Known: 0},
		{ID: "gcp", Stat: 1, Known: 3},
		{ID: "off", Stat: 0, Known: 0},
	}
	sel := selectPoints(pts, false)
	require.Len(t, sel, 1)
	require.Equal(t, "tie", sel[0].ID)

	sel = selectPoints(pts, true)
	require.Len(t, sel, 2)
}

func TestUpdateGPF(t *testing.T) {
	pts := []socet.GroundPoint{
		{ID: "tie", Stat: 1, Known: 0, Lat: 0.1, Sig: [3]float64{5, 5, 5}, Res: [3]float64{2, 2, 2}},
		{ID: "gcp", Stat: 1, Known: 3, Lat: 0.2},
		{ID: "off", Stat: 0, Known: 0, Lat: 0.3},
	}
	tfm := map[string][3]float64{"tie": {0.5, -1.0, 42}}

	out := updateGPF(pts, tfm, false)
	require.Equal(t, "tie", out[0].ID)
	require.Equal(t, socet.KnownXYZControl, out[0].Known)
	require.Equal(t, 0.5, out[0].Lat)
	require.Equal(t, -1.0, out[0].Lon)
	require.Equal(t, 42.0, out[0].Ht)
	require.Equal(t, [3]float64{1, 1, 1}, out[0].Sig)
	require.Equal(t, [3]float64{0, 0, 0}, out[0].Res)

	// active non-tie demoted, coordinates untouched
	require.Equal(t, socet.KnownTiePoint, out[1].Known)
	require.Equal(t, 0.2, out[1].Lat)

	// inactive untouched
	require.Equal(t, 0.3, out[2].Lat)
	require.Equal(t, 0, out[2].Known)
}

func TestUpdateGPFAllPoints(t *testing.T) {
	pts := []socet.GroundPoint{
		{ID: "tie", Stat: 1, Known: 0},
		{ID: "gcp", Stat: 1, Known: 3},
	}
	out := updateGPF(pts, nil, true)
	require.Equal(t, socet.KnownXYZControl, out[0].Known)
	require.Equal(t, socet.KnownXYZControl, out[1].Known)
}

func TestLonFolding(t *testing.T) {
	require.InDelta(t, 350, lonTo360(-10), 1e-12)
	require.InDelta(t, 10, lonTo360(370), 1e-12)
	require.InDelta(t, -10, lonTo180(350), 1e-12)
	require.InDelta(t, 170, lonTo180(170), 1e-12)
}

// fakePCAlign installs a pc_align stand-in on PATH. It mimics the two run
// modes: an alignment run writes the transform matrix, an apply run copies
// the source CSV (shifting latitude by +1 degree and height by +10 meters)
// into the trans_source file.
const fakePCAlign = `#!/bin/sh
prefix=""
prev=""
apply=0
for a in "$@"; do
	[ "$prev" = "-o" ] && prefix="$a"
	[ "$a" = "--initial-transform" ] && apply=1
	prev="$a"
	src="$a"
done
if [ "$apply" = "1" ]; then
	{
		echo "# generated"
		echo "# lat,lon,height"
		echo "# datum"
		awk -F, '{printf "%.10f,%s,%.10f\n", $1+1, $2, $3+10}' "$src"
	} > "$prefix-trans_source.csv"
else
	echo "fake transform" > "$prefix-transform.txt"
fi
`

func installFakePCAlign(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pc_align"), []byte(fakePCAlign), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestAlignEndToEnd(t *testing.T) {
	installFakePCAlign(t)
	dir := t.TempDir()

	// surface DTM in SOCET ASCII format
	dtm := filepath.Join(dir, "surface.asc")
	require.NoError(t, os.WriteFile(dtm, []byte(asciiDTM("341.5 24.25 -906.25\n")), 0o644))

	// reference already in CSV form
	ref := filepath.Join(dir, "ref.csv")
	require.NoError(t, os.WriteFile(ref, []byte("24.25,341.5,-900\n"), 0o644))

	gpfPath := filepath.Join(dir, "net.gpf")
	pts := []socet.GroundPoint{
		{ID: "tie_1", Stat: 1, Known: 0, Lat: 0.5, Lon: radians(-10), Ht: 100},
		{ID: "gcp_1", Stat: 1, Known: 3, Lat: 0.4, Lon: 0.1, Ht: 50},
		{ID: "dead", Stat: 0, Known: 0, Lat: 0.3, Lon: 0.2, Ht: 10},
	}
	require.NoError(t, socet.WriteGPF(gpfPath, pts))

	var console bytes.Buffer
	opts := Options{
		RefDTM:      ref,
		RefFormat:   FormatCSV,
		SocetDTM:    dtm,
		SocetFormat: FormatASCIIDTM,
		SocetGPF:    gpfPath,
		OutputGPF:   filepath.Join(dir, "out.gpf"),
		Datum:       "D_MARS",
		AlignArgs:   []string{"--max-displacement", "300"},
		Out:         &console,
	}
	require.NoError(t, Align(context.Background(), opts))

	// the ASCII DTM was staged as a CSV
	staged, err := os.ReadFile(filepath.Join(dir, "surface.csv"))
	require.NoError(t, err)
	require.Equal(t, "24.25,341.5,-906.25\n", string(staged))

	out, err := socet.ReadGPF(opts.OutputGPF)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// tie point transformed: +1 degree latitude, +10 m height, promoted
	require.Equal(t, "tie_1", out[0].ID)
	require.Equal(t, socet.KnownXYZControl, out[0].Known)
	require.InDelta(t, 0.5+radians(1), out[0].Lat, 1e-9)
	require.InDelta(t, radians(-10), out[0].Lon, 1e-9)
	require.InDelta(t, 110, out[0].Ht, 1e-6)
	require.Equal(t, [3]float64{1, 1, 1}, out[0].Sig)

	// control point demoted to tie, inactive point untouched
	require.Equal(t, socet.KnownTiePoint, out[1].Known)
	require.InDelta(t, 0.4, out[1].Lat, 1e-12)
	require.Equal(t, 0, out[2].Known)

	// legacy id list
	ids, err := os.ReadFile(filepath.Join(dir, "net.tiePointIds.txt"))
	require.NoError(t, err)
	require.Equal(t, "tie_1\n", string(ids))
}

func TestApplyTransformRequiresMatrix(t *testing.T) {
	opts := Options{
		SocetGPF:  "net.gpf",
		OutputGPF: "out.gpf",
		Datum:     "D_MARS",
	}
	err := ApplyTransform(context.Background(), opts, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestDegreesRadians(t *testing.T) {
	require.InDelta(t, 180, degrees(math.Pi), 1e-12)
	require.InDelta(t, math.Pi, radians(180), 1e-12)
}
