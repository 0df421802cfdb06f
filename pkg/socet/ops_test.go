package socet

import (
	"bytes"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func gp(id string, stat, known int) GroundPoint {
	return GroundPoint{ID: id, Stat: stat, Known: known, Lat: 0.5, Lon: -1.2, Ht: 10}
}

func ip(id string, val int, file string) ImagePoint {
	return ImagePoint{ID: id, Val: val, File: file}
}

func TestMergeGPF(t *testing.T) {
	a := []GroundPoint{gp("a", 1, 0)}
	b := []GroundPoint{gp("b", 1, 0), gp("c", 0, 0)}
	out := MergeGPF(a, b)
	require.Len(t, out, 3)
	require.Equal(t, "a", out[0].ID)
	require.Equal(t, "c", out[2].ID)
}

func TestMergeIPFRetags(t *testing.T) {
	pts := []ImagePoint{ip("a", 1, "left"), ip("b", 1, "right")}
	out := MergeIPF(pts, "merged")
	for _, p := range out {
		require.Equal(t, "merged", p.File)
	}
	// input untouched
	require.Equal(t, "left", pts[0].File)
}

func TestSampleFiltersInactiveAndKeepsOrder(t *testing.T) {
	pts := []GroundPoint{
		gp("a", 1, 0), gp("b", 0, 0), gp("c", 1, 0), gp("d", 1, 0), gp("e", 1, 0),
	}
	rng := rand.New(rand.NewSource(42))
	out, err := Sample(pts, 1.0, rng)
	require.NoError(t, err)
	require.Len(t, out, 4)
	require.Equal(t, []string{"a", "c", "d", "e"}, ids(out))
}

func TestSampleFraction(t *testing.T) {
	var pts []GroundPoint
	for i := 0; i < 100; i++ {
		pts = append(pts, gp(string(rune('a'+i%26))+string(rune('0'+i/26)), 1, 0))
	}
	rng := rand.New(rand.NewSource(1))
	out, err := Sample(pts, 0.25, rng)
	require.NoError(t, err)
	require.Len(t, out, 25)
}

func TestSampleRejectsBadFraction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Sample(nil, 0, rng)
	require.Error(t, err)
	_, err = Sample(nil, 1.5, rng)
	require.Error(t, err)
}

func TestCleanDropsOrphansAndInactive(t *testing.T) {
	gpf := []GroundPoint{
		gp("both", 1, 0),    // measured on two images: kept
		gp("single", 1, 0),  // measured on one image: dropped
		gp("dead", 0, 0),    // inactive in GPF: dropped
		gp("unseen", 1, 0),  // no image measurements: dropped
	}
	ipf := []ImagePoint{
		ip("both", 1, "left"), ip("both", 1, "right"),
		ip("single", 1, "left"),
		ip("dead", 1, "left"), ip("dead", 1, "right"),
		ip("both", 0, "right"), // invalid measurement ignored
	}

	cleanGPF, cleanIPF := Clean(gpf, ipf, "clean")
	require.Equal(t, []string{"both"}, ids(cleanGPF))
	require.Len(t, cleanIPF, 2)
	for _, p := range cleanIPF {
		require.Equal(t, "both", p.ID)
		require.True(t, strings.HasSuffix(p.File, "_clean"))
	}
}

func TestGPFToCSVConvertsToDegrees(t *testing.T) {
	pts := []GroundPoint{{ID: "p1", Stat: 1, Known: 0, Lat: math.Pi / 2, Lon: -math.Pi, Ht: 5}}

	var buf bytes.Buffer
	require.NoError(t, GPFToCSV(&buf, pts, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "point_id,stat,known,lat_Y_North,long_X_East,ht,sig0,sig1,sig2,res0,res1,res2", lines[0])

	fields := strings.Split(lines[1], ",")
	require.Equal(t, "p1", fields[0])
	lat, err := strconv.ParseFloat(fields[3], 64)
	require.NoError(t, err)
	lon, err := strconv.ParseFloat(fields[4], 64)
	require.NoError(t, err)
	require.InDelta(t, 90, lat, 1e-9)
	require.InDelta(t, -180, lon, 1e-9)

	buf.Reset()
	require.NoError(t, GPFToCSV(&buf, pts, false))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Contains(t, lines[1], ftoa(math.Pi/2))
}

func TestNetToCSVInnerJoin(t *testing.T) {
	gpf := []GroundPoint{gp("a", 1, 0), gp("b", 1, 0)}
	ipf := []ImagePoint{ip("a", 1, "left"), ip("a", 1, "right"), ip("zzz", 1, "left")}

	var buf bytes.Buffer
	require.NoError(t, NetToCSV(&buf, gpf, ipf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header + two joined rows for "a"; "b" and "zzz" have no partner
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "left")
	require.Contains(t, lines[2], "right")
}

func ids(pts []GroundPoint) []string {
	var out []string
	for _, p := range pts {
		out = append(out, p.ID)
	}
	return out
}
