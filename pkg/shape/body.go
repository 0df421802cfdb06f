// Package shape converts ODE laser-altimeter point CSVs into Esri PointZ
// shapefiles with a planetary GCS projection file.
package shape

import (
	"fmt"
	"math"
	"strings"
)

// Body describes a target body: its reference spheroid and the column names
// its altimeter product uses in the ODE point CSV.
type Body struct {
	Name        string
	MajorRadius float64 // meters
	MinorRadius float64 // meters
	Year        int

	lonField    string
	latField    string
	elevField   string
	radiusField string
	utcField    string
	orbitField  string
}

var bodies = map[string]Body{
	"mars": {
		Name:        "Mars",
		MajorRadius: 3396190.0,
		MinorRadius: 3376200.0,
		Year:        2000,
		lonField:    "LONG_EAST",
		latField:    "LAT_NORTH",
		elevField:   "TOPOGRAPHY",
		radiusField: "PLANET_RAD",
		utcField:    "UTC",
		orbitField:  "ORBIT",
	},
	"mercury": {
		Name:        "Mercury",
		MajorRadius: 2439400.0,
		MinorRadius: 2439400.0,
		Year:        2015,
		lonField:    "longitude",
		latField:    "latitude",
		elevField:   "altitude",
		radiusField: "radius",
		utcField:    "UTC",
		orbitField:  "chn",
	},
	"moon": {
		Name:        "Moon",
		MajorRadius: 1737400.0,
		MinorRadius: 1737400.0,
		Year:        2000,
		lonField:    "Pt_Longitude",
		latField:    "Pt_Latitude",
		elevField:   "Pt_Radius",
		radiusField: "Pt_Radius",
		utcField:    "Coordinated_Universal_Time",
		// The LOLA RDR CSV mislabels the shot-number column as "S".
		orbitField: "S",
	},
}

// BodyFor looks up a target body by name (case-insensitive).
func BodyFor(target string) (Body, error) {
	b, ok := bodies[strings.ToLower(target)]
	if !ok {
		return Body{}, fmt.Errorf("target %s currently not supported", target)
	}
	return b, nil
}

// WKT renders the body's geographic coordinate system, with a vertical CS in
// meters, in the form SOCET GXP accepts for shapefile .prj sidecars.
func (b Body) WKT() string {
	var ecc float64
	if b.MajorRadius-b.MinorRadius > 0.00001 {
		ecc = b.MajorRadius / (b.MajorRadius - b.MinorRadius)
	}
	return fmt.Sprintf(`GEOGCS["GCS_%[1]s_%[2]d",DATUM["D_%[1]s_%[2]d",SPHEROID["%[1]s_%[2]d_IAU",%.1[3]f,%.14[4]f]],PRIMEM["Reference_Meridian",0.0],UNIT["Degree",0.0174532925199433]],VERTCS["Mars_2000",DATUM["D_%[1]s_%[2]d",SPHEROID["%[1]s_%[2]d_IAU",%.1[3]f,%.14[4]f]],PARAMETER["Vertical_Shift",0.0],PARAMETER["Direction",1.0],UNIT["Meter",1.0]]`,
		b.Name, b.Year, b.MajorRadius, ecc)
}

// OcToOg converts an ocentric latitude (degrees) to ographic.
func OcToOg(lat, major, minor float64) float64 {
	rad := lat * math.Pi / 180
	rad = math.Atan(math.Pow(major/minor, 2) * math.Tan(rad))
	return rad * 180 / math.Pi
}

// OgToOc converts an ographic latitude (degrees) to ocentric.
func OgToOc(lat, major, minor float64) float64 {
	rad := lat * math.Pi / 180
	rad = math.Atan(math.Tan(rad) / math.Pow(major/minor, 2))
	return rad * 180 / math.Pi
}

// LonTo180 folds a 0–360 longitude into the ±180 domain.
func LonTo180(lon float64) float64 {
	if lon > 180 {
		return lon - 360
	}
	return lon
}
