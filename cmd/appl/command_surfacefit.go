package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/surfacefit"
)

func surfaceFitFlags(cmd *cobra.Command, opts *surfacefit.Options, radii *[]float64) {
	cmd.Flags().BoolVar(&opts.AllPoints, "all-points", false,
		"update all active points, not just tie points")
	cmd.Flags().StringVar(&opts.Datum, "datum", "",
		"datum for heights (D_MARS, D_MOON, MOLA, NAD27, NAD83, WGS72, WGS_1984)")
	cmd.Flags().Float64SliceVar(radii, "radii", nil,
		"semi-major and semi-minor axes in meters (alternative to --datum)")
}

func newSurfaceFitCmd(a *app) *cobra.Command {
	var (
		opts  surfacefit.Options
		radii []float64
	)
	cmd := &cobra.Command{
		Use:   "surfacefit <ref_dtm> <ref_format> <socet_dtm> <socet_format> <socet_gpf> <out_gpf> [-- pc_align args...]",
		Short: "Align SOCET tie points to reference elevation data",
		Long: `Aligns a stereo-derived SOCET DTM to reference elevation data with
pc_align, then applies the resulting transform to the GPF's tie points.
Formats: ascii_dtm (SOCET ASCII DTM), csv, raster; the reference also
accepts table (pedr2tab MOLA output). Arguments after -- go straight to
pc_align; at minimum pass --max-displacement.`,
		Args: cobra.MinimumNArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RefDTM = args[0]
			opts.RefFormat = surfacefit.Format(args[1])
			opts.SocetDTM = args[2]
			opts.SocetFormat = surfacefit.Format(args[3])
			opts.SocetGPF = args[4]
			opts.OutputGPF = args[5]
			opts.AlignArgs = args[6:]
			opts.Radii = radii
			opts.Log = a.log
			opts.Out = os.Stdout

			return surfacefit.Align(cmd.Context(), opts)
		},
	}
	surfaceFitFlags(cmd, &opts, &radii)
	return cmd
}

func newGpfTransformCmd(a *app) *cobra.Command {
	var (
		opts  surfacefit.Options
		radii []float64
	)
	cmd := &cobra.Command{
		Use:   "gpftransform <socet_gpf> <out_gpf> <transform.txt>",
		Short: "Apply an existing pc_align transform to a GPF",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SocetGPF = args[0]
			opts.OutputGPF = args[1]
			opts.Radii = radii
			opts.Log = a.log
			opts.Out = os.Stdout

			return surfacefit.ApplyTransform(cmd.Context(), opts, args[2])
		},
	}
	surfaceFitFlags(cmd, &opts, &radii)
	return cmd
}
