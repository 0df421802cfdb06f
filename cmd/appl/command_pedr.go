package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/pedr"
	"github.com/dpmayerUSGS/APPL-Tools/pkg/shape"
)

func newPedrCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pedr",
		Short: "Extract MOLA PEDR shot data with pedr2tab",
	}

	cmd.AddCommand(newPedrExtractCmd(a))
	cmd.AddCommand(newPedrToCSVCmd(a))

	return cmd
}

func newPedrExtractCmd(a *app) *cobra.Command {
	var (
		prm      pedr.PRM
		pedrList string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run pedr2tab over a bounding box",
		Long: `Writes PEDR2TAB.PRM into the working directory and runs pedr2tab over the
configured PEDR list. The output table lands at the path given by --table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pedrList == "" {
				pedrList = a.cfg.Reference.PEDRList
			}
			prm.Flags = pedr.DefaultFlags

			if err := prm.WriteFile("."); err != nil {
				return err
			}
			a.log.Info("running pedr2tab",
				zap.String("list", pedrList),
				zap.String("table", prm.Out))
			return pedr.Run(cmd.Context(), os.Stdout, pedrList)
		},
	}
	cmd.Flags().Float64Var(&prm.MinLon, "minlon", 0, "minimum longitude (degrees east)")
	cmd.Flags().Float64Var(&prm.MaxLon, "maxlon", 0, "maximum longitude (degrees east)")
	cmd.Flags().Float64Var(&prm.MinLat, "minlat", 0, "minimum planetocentric latitude")
	cmd.Flags().Float64Var(&prm.MaxLat, "maxlat", 0, "maximum planetocentric latitude")
	cmd.Flags().StringVar(&prm.Out, "table", "pedr_shots.tab", "output table name")
	cmd.Flags().StringVar(&pedrList, "pedr-list", "", "PEDR list file (default from config)")
	for _, f := range []string{"minlon", "maxlon", "minlat", "maxlat"} {
		cobra.CheckErr(cmd.MarkFlagRequired(f))
	}
	return cmd
}

func newPedrToCSVCmd(a *app) *cobra.Command {
	var (
		out     string
		vrt     bool
		columns []string
	)
	cmd := &cobra.Command{
		Use:   "tocsv <table.tab>",
		Short: "Convert a pedr2tab table to CSV",
		Long: `Converts a pedr2tab output table to CSV, optionally restricted to named
columns. With --vrt an OGR vector VRT is written alongside, describing the
CSV as a Mars point layer for GDAL tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			table, err := pedr.ReadTable(f, nil)
			f.Close()
			if err != nil {
				return err
			}

			if out == "" && vrt {
				return fmt.Errorf("--vrt requires --out")
			}
			w, closeFn, err := openCSVOutput(out)
			if err != nil {
				return err
			}
			if err := table.ToCSV(w, columns...); err != nil {
				closeFn()
				return err
			}
			if err := closeFn(); err != nil {
				return err
			}

			if vrt {
				mars, err := shape.BodyFor("mars")
				if err != nil {
					return err
				}
				selected := columns
				if len(selected) == 0 {
					selected = table.Columns
				}
				fields := make([]pedr.Field, len(selected))
				for i, c := range selected {
					fields[i] = pedr.Field{Name: c, Type: "Real"}
				}
				vrtPath, err := pedr.WriteVRT(out, mars.WKT(), fields,
					"long_East", "areod_lat", "topography")
				if err != nil {
					return err
				}
				fmt.Println(vrtPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output CSV (default stdout)")
	cmd.Flags().BoolVar(&vrt, "vrt", false, "also write an OGR VRT next to the CSV")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to keep (default all)")
	return cmd
}
