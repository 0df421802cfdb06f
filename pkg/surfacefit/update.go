package surfacefit

import (
	"math"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/socet"
)

// selectPoints returns the ground points to be transformed: active tie
// points, or every active point when allPoints is set. Order follows the GPF.
func selectPoints(pts []socet.GroundPoint, allPoints bool) []socet.GroundPoint {
	var out []socet.GroundPoint
	for _, p := range pts {
		if p.Stat != 1 {
			continue
		}
		if !allPoints && p.Known != socet.KnownTiePoint {
			continue
		}
		out = append(out, p)
	}
	return out
}

// updateGPF merges transformed coordinates (radians, by point id) back into
// the full point list and rewrites point types: transformed points become XYZ
// control with sigmas of 1 meter and zero residuals; without allPoints,
// active non-tie points are demoted to tie points. Point order is preserved
// and inactive points pass through untouched.
func updateGPF(pts []socet.GroundPoint, tfm map[string][3]float64, allPoints bool) []socet.GroundPoint {
	out := make([]socet.GroundPoint, len(pts))
	for i, p := range pts {
		if c, ok := tfm[p.ID]; ok {
			p.Lat, p.Lon, p.Ht = c[0], c[1], c[2]
		}
		switch {
		case p.Stat != 1:
			// inactive: as-is
		case allPoints || p.Known == socet.KnownTiePoint:
			p.Known = socet.KnownXYZControl
			p.Sig = [3]float64{1, 1, 1}
			p.Res = [3]float64{0, 0, 0}
		default:
			p.Known = socet.KnownTiePoint
		}
		out[i] = p
	}
	return out
}

// lonTo360 folds a degree longitude into 0–360 for the pc_align CSVs.
func lonTo360(lon float64) float64 {
	return math.Mod(360+math.Mod(lon, 360), 360)
}

// lonTo180 folds a degree longitude back into ±180.
func lonTo180(lon float64) float64 {
	return math.Mod(lon+180, 360) - 180
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func radians(deg float64) float64 { return deg * math.Pi / 180 }
