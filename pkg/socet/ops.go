package socet

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// MergeGPF concatenates several point sets in order.
func MergeGPF(sets ...[]GroundPoint) []GroundPoint {
	var out []GroundPoint
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// MergeIPF retags every point with the given file basename so a later
// WriteIPFs call produces a single merged IPF.
func MergeIPF(pts []ImagePoint, outBase string) []ImagePoint {
	out := make([]ImagePoint, len(pts))
	copy(out, pts)
	for i := range out {
		out[i].File = outBase
	}
	return out
}

// Sample returns a random sample, without replacement, of the active
// (stat == 1) points. frac must lie on (0, 1]. Point order in the result
// follows the input.
func Sample(pts []GroundPoint, frac float64, rng *rand.Rand) ([]GroundPoint, error) {
	if frac <= 0 || frac > 1 {
		return nil, fmt.Errorf("sample fraction %g outside (0, 1]", frac)
	}

	var active []int
	for i, p := range pts {
		if p.Stat == 1 {
			active = append(active, i)
		}
	}

	n := int(math.Round(frac * float64(len(active))))
	perm := rng.Perm(len(active))[:n]
	sort.Ints(perm)

	out := make([]GroundPoint, 0, n)
	for _, k := range perm {
		out = append(out, pts[active[k]])
	}
	return out, nil
}

// Clean drops inactive points from a GPF and its IPFs, inner-joins the
// remainder on point id, and keeps only points measured on at least two
// images, so no orphan points survive. Returned IPF points carry their file
// tag with `_<suffix>` appended.
func Clean(gpf []GroundPoint, ipf []ImagePoint, suffix string) ([]GroundPoint, []ImagePoint) {
	activeGPF := make(map[string]bool)
	for _, p := range gpf {
		if p.Stat == 1 {
			activeGPF[p.ID] = true
		}
	}

	// Count active image measurements per ground point.
	obs := make(map[string]int)
	for _, ip := range ipf {
		if ip.Val == 1 && activeGPF[ip.ID] {
			obs[ip.ID]++
		}
	}

	keep := make(map[string]bool)
	for id, n := range obs {
		if n >= 2 {
			keep[id] = true
		}
	}

	var cleanGPF []GroundPoint
	for _, p := range gpf {
		if p.Stat == 1 && keep[p.ID] {
			cleanGPF = append(cleanGPF, p)
		}
	}

	var cleanIPF []ImagePoint
	for _, ip := range ipf {
		if ip.Val == 1 && keep[ip.ID] {
			ip.File = ip.File + "_" + suffix
			cleanIPF = append(cleanIPF, ip)
		}
	}

	return cleanGPF, cleanIPF
}
