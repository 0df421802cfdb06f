package shape

import (
	"fmt"
	"os"

	shp "github.com/jonas-p/go-shp"
)

// WriteShapefile writes shots as an Esri PointZ shapefile at base+".shp"
// (go-shp also emits the .shx and .dbf sidecars) and the body's GCS WKT at
// base+".prj".
func WriteShapefile(base string, shots []Shot, b Body) error {
	w, err := shp.Create(base+".shp", shp.POINTZ)
	if err != nil {
		return fmt.Errorf("creating shapefile: %w", err)
	}

	fields := []shp.Field{
		shp.FloatField("Longitude", 19, 5),
		shp.FloatField("Latitude", 19, 5),
		shp.FloatField("Elev_m", 19, 5),
		shp.FloatField("Radius_m", 19, 2),
		shp.StringField("UTC", 30),
		shp.NumberField("Orbit", 10),
	}
	if err := w.SetFields(fields); err != nil {
		w.Close()
		return err
	}

	for i, s := range shots {
		w.Write(&shp.PointZ{X: s.Lon, Y: s.Lat, Z: s.ElevM})
		attrs := []interface{}{s.Lon, s.Lat, s.ElevM, s.RadiusM, s.UTC, s.Orbit}
		for j, v := range attrs {
			if err := w.WriteAttribute(i, j, v); err != nil {
				w.Close()
				return fmt.Errorf("writing attribute row %d: %w", i, err)
			}
		}
	}
	w.Close()

	return os.WriteFile(base+".prj", []byte(b.WKT()), 0o644)
}
