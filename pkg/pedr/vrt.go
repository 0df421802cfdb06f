package pedr

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

// Field names a CSV column and its OGR type (Integer, Real, String).
type Field struct {
	Name string
	Type string
}

type vrtField struct {
	Name string `xml:"name,attr"`
	Src  string `xml:"src,attr"`
	Type string `xml:"type,attr"`
}

type vrtGeometryField struct {
	Encoding string `xml:"encoding,attr"`
	X        string `xml:"x,attr"`
	Y        string `xml:"y,attr"`
	Z        string `xml:"z,attr"`
}

type vrtLayer struct {
	Name          string           `xml:"name,attr"`
	SrcDataSource string           `xml:"SrcDataSource"`
	LayerSRS      string           `xml:"LayerSRS"`
	GeometryType  string           `xml:"GeometryType"`
	GeometryField vrtGeometryField `xml:"GeometryField"`
	Fields        []vrtField       `xml:"Field"`
}

type vrtDataSource struct {
	XMLName xml.Name `xml:"OGRVRTDataSource"`
	Layer   vrtLayer `xml:"OGRVRTLayer"`
}

// WriteVRT writes an OGR vector VRT describing a point CSV, so GDAL tools
// can read the shot data directly. srs is the layer SRS (WKT or an authority
// string); x, y, z name the coordinate columns. Returns the VRT path, which
// is the CSV path with its extension swapped.
func WriteVRT(csvPath, srs string, fields []Field, x, y, z string) (string, error) {
	stem := strings.TrimSuffix(csvPath, filepath.Ext(csvPath))

	ds := vrtDataSource{
		Layer: vrtLayer{
			Name:          filepath.Base(stem),
			SrcDataSource: csvPath,
			LayerSRS:      srs,
			GeometryType:  "wkbPoint",
			GeometryField: vrtGeometryField{
				Encoding: "PointFromColumns",
				X:        x,
				Y:        y,
				Z:        z,
			},
		},
	}
	for _, f := range fields {
		ds.Layer.Fields = append(ds.Layer.Fields, vrtField{Name: f.Name, Src: f.Name, Type: f.Type})
	}

	out, err := xml.MarshalIndent(ds, "", "    ")
	if err != nil {
		return "", err
	}
	vrtPath := stem + ".vrt"
	if err := os.WriteFile(vrtPath, out, 0o644); err != nil {
		return "", err
	}
	return vrtPath, nil
}
