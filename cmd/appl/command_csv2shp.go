package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/shape"
)

func newCsv2ShpCmd(a *app) *cobra.Command {
	var (
		input   string
		pattern string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "csv2shp <mars|moon|mercury>",
		Short: "Convert ODE point CSVs to PointZ shapefiles",
		Long: `Converts ODE altimeter shot CSVs (as downloaded by "appl ode get") into
Esri PointZ shapefiles with a planetary .prj sidecar. Longitudes are folded
to the ±180 domain; Mars latitudes are converted from ocentric to ographic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := shape.BodyFor(args[0])
			if err != nil {
				return err
			}
			if (input == "") == (pattern == "") {
				return fmt.Errorf("exactly one of --input or --pattern is required")
			}

			var files []string
			if input != "" {
				shp, err := shape.ConvertFile(input, out, body)
				if err != nil {
					return err
				}
				files = []string{shp}
			} else {
				files, err = shape.ConvertGlob(pattern, out, body)
				if err != nil {
					return err
				}
			}
			for _, f := range files {
				fmt.Println(f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input ODE point CSV")
	cmd.Flags().StringVar(&pattern, "pattern", "", `glob of CSVs to convert, e.g. "*_pts_csv.csv"`)
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}
