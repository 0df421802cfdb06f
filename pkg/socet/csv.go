package socet

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// gpfCSVHeader expands the sig(3)/res(3) banner groups the way the network
// utilities have always exported them.
var gpfCSVHeader = []string{
	"point_id", "stat", "known", "lat_Y_North", "long_X_East", "ht",
	"sig0", "sig1", "sig2", "res0", "res1", "res2",
}

var ipfCSVHeader = []string{
	"pt_id", "val", "fid_val", "no_obs", "l.", "s.",
	"sig_l", "sig_s", "res_l", "res_s", "fid_x", "fid_y", "ipf_file",
}

// GPFToCSV writes points as CSV. When convert is true (the default for the
// command), lat_Y_North and long_X_East are converted from radians to
// degrees.
func GPFToCSV(w io.Writer, pts []GroundPoint, convert bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gpfCSVHeader); err != nil {
		return err
	}
	for _, p := range pts {
		lat, lon := p.Lat, p.Lon
		if convert {
			lat = degrees(lat)
			lon = degrees(lon)
		}
		rec := []string{
			p.ID, itoa(p.Stat), itoa(p.Known), ftoa(lat), ftoa(lon), ftoa(p.Ht),
			ftoa(p.Sig[0]), ftoa(p.Sig[1]), ftoa(p.Sig[2]),
			ftoa(p.Res[0]), ftoa(p.Res[1]), ftoa(p.Res[2]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// NetToCSV inner-joins a GPF with a set of image points on point id and
// writes the combined rows as CSV, lat/lon in degrees. Row order follows the
// GPF, with matching image points in their file order.
func NetToCSV(w io.Writer, gpf []GroundPoint, ipf []ImagePoint) error {
	byID := make(map[string][]ImagePoint)
	for _, ip := range ipf {
		byID[ip.ID] = append(byID[ip.ID], ip)
	}

	cw := csv.NewWriter(w)
	header := append(append([]string{}, gpfCSVHeader...), ipfCSVHeader...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, gp := range gpf {
		matches := byID[gp.ID]
		for _, ip := range matches {
			rec := []string{
				gp.ID, itoa(gp.Stat), itoa(gp.Known),
				ftoa(degrees(gp.Lat)), ftoa(degrees(gp.Lon)), ftoa(gp.Ht),
				ftoa(gp.Sig[0]), ftoa(gp.Sig[1]), ftoa(gp.Sig[2]),
				ftoa(gp.Res[0]), ftoa(gp.Res[1]), ftoa(gp.Res[2]),
				ip.ID, itoa(ip.Val), itoa(ip.FidVal), itoa(ip.NoObs),
				ftoa(ip.Line), ftoa(ip.Sample),
				ftoa(ip.SigLine), ftoa(ip.SigSample),
				ftoa(ip.ResLine), ftoa(ip.ResSample),
				ftoa(ip.FidX), ftoa(ip.FidY), ip.File,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
