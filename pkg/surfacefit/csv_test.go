package surfacefit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func asciiDTM(rows string) string {
	var b strings.Builder
	for i := 0; i < asciiDTMHeaderLines; i++ {
		b.WriteString("header line\n")
	}
	b.WriteString(rows)
	return b.String()
}

func TestASCIIDTMToCSVSwapsColumns(t *testing.T) {
	in := asciiDTM("341.5 24.25 -906.25\n341.6 24.25 -900.0\n")

	var out strings.Builder
	require.NoError(t, ASCIIDTMToCSV(strings.NewReader(in), &out))
	require.Equal(t, "24.25,341.5,-906.25\n24.25,341.6,-900.0\n", out.String())
}

func TestASCIIDTMToCSVRejectsBadRow(t *testing.T) {
	var out strings.Builder
	err := ASCIIDTMToCSV(strings.NewReader(asciiDTM("1 2\n")), &out)
	require.ErrorContains(t, err, "expected 3 columns")

	err = ASCIIDTMToCSV(strings.NewReader(asciiDTM("a b c\n")), &out)
	require.Error(t, err)
}

const pedrTab = `long_East areod_lat topography planet_rad
(deg) (deg) (m) (m)
341.50 24.25 -906.25 3394000.5
341.60 24.26 -900.00 3394010.0
`

func TestPedrTabToCSVSelectsColumns(t *testing.T) {
	var out strings.Builder
	require.NoError(t, PedrTabToCSV(strings.NewReader(pedrTab), &out))
	require.Equal(t, "24.25,341.50,-906.25\n24.26,341.60,-900.00\n", out.String())
}

func TestPedrTabToCSVMissingColumn(t *testing.T) {
	var out strings.Builder
	err := PedrTabToCSV(strings.NewReader("a b\nu u\n1 2\n"), &out)
	require.ErrorContains(t, err, "missing column")
}

func TestReadTransSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x-trans_source.csv")
	content := "# File generated by pc_align\n# lat,lon,height\n# datum info\n24.25,341.5,-906.25\n24.26,341.6,-900\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := readTransSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, [3]float64{24.25, 341.5, -906.25}, rows[0])
}
