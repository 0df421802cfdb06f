// Package ode queries the PDS Geoscience Node's Orbital Data Explorer REST
// interface for laser altimeter shot data (MOLA, LOLA, MLA) and downloads
// the resulting point CSV products.
package ode

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// Target selects the body, which in turn selects the altimeter product the
// ODE interface expects.
type Target string

const (
	TargetMars    Target = "mars"    // MOLA PEDR
	TargetMercury Target = "mercury" // MLA RDR
	TargetMoon    Target = "moon"    // LOLA RDR
)

// products maps a target body to the ODE product type.
var products = map[Target]string{
	TargetMars:    "molapedr",
	TargetMercury: "mlardr",
	TargetMoon:    "lolardr",
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Query is a bounding-box product search. Latitudes are degrees in
// [-90, 90]; longitudes are degrees positive east and may be given in either
// the ±180 or 0–360 domain (they are folded to 0–360 on submission).
type Query struct {
	Target  Target
	MinLat  float64
	MaxLat  float64
	WestLon float64
	EastLon float64
	Async   bool
	Email   string
}

// Validate checks bounds, internal consistency, and target-specific rules.
// MLA queries must be submitted asynchronously, so Target mercury requires
// Async.
func (q Query) Validate() error {
	if _, ok := products[q.Target]; !ok {
		return fmt.Errorf("unsupported target %q", q.Target)
	}
	if q.Target == TargetMercury && !q.Async {
		return fmt.Errorf("target mercury requires an asynchronous query")
	}
	if q.MinLat < -90 || q.MinLat >= 90 {
		return fmt.Errorf("minlat must be >= -90 and < 90")
	}
	if q.MaxLat <= -90 || q.MaxLat > 90 {
		return fmt.Errorf("maxlat must be > -90 and <= 90")
	}
	if q.WestLon < -180 || q.WestLon >= 360 {
		return fmt.Errorf("westernlon must be >= -180 and < 360")
	}
	if q.EastLon <= -180 || q.EastLon > 360 {
		return fmt.Errorf("easternlon must be > -180 and <= 360")
	}
	if q.MinLat >= q.MaxLat {
		return fmt.Errorf("minlat must be < maxlat")
	}
	if q.WestLon >= q.EastLon {
		return fmt.Errorf("westernlon must be < easternlon")
	}
	if q.Email != "" && !validEmail(q.Email) {
		return fmt.Errorf("%s does not appear to be a valid email address", q.Email)
	}
	return nil
}

// params renders the query as livegds request parameters.
func (q Query) params() url.Values {
	v := url.Values{}
	v.Set("results", "v")
	v.Set("output", "json")
	v.Set("query", products[q.Target])
	v.Set("minlat", ftoa(q.MinLat))
	v.Set("maxlat", ftoa(q.MaxLat))
	v.Set("westernlon", ftoa(LonTo360(q.WestLon)))
	v.Set("easternlon", ftoa(LonTo360(q.EastLon)))
	if q.Email != "" {
		v.Set("email", q.Email)
	}
	if q.Async {
		v.Set("async", "t")
	} else {
		v.Set("async", "f")
	}
	return v
}

// LonTo360 folds a longitude into the 0–360 domain.
func LonTo360(lon float64) float64 {
	lon = lon - 360*float64(int(lon/360))
	if lon < 0 {
		lon += 360
	}
	return lon
}

func validEmail(email string) bool {
	return len(email) > 4 && emailRe.MatchString(email)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
