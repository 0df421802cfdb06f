package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/socet"
)

func newGpfCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpf",
		Short: "SOCET ground point file utilities",
	}

	cmd.AddCommand(newGpfToCSVCmd(a))
	cmd.AddCommand(newGpfMergeCmd(a))
	cmd.AddCommand(newGpfSampleCmd(a))
	cmd.AddCommand(newGpfCleanCmd(a))

	return cmd
}

// openCSVOutput returns stdout for an empty path.
func openCSVOutput(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newGpfToCSVCmd(a *app) *cobra.Command {
	var (
		out       string
		noConvert bool
	)
	cmd := &cobra.Command{
		Use:   "tocsv <file.gpf>",
		Short: "Export a GPF as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := socet.ReadGPF(args[0])
			if err != nil {
				return err
			}
			w, closeFn, err := openCSVOutput(out)
			if err != nil {
				return err
			}
			if err := socet.GPFToCSV(w, pts, !noConvert); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output CSV (default stdout)")
	cmd.Flags().BoolVar(&noConvert, "no-convert", false, "keep lat/long in radians")
	return cmd
}

func newGpfMergeCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "merge <a.gpf> <b.gpf> [more.gpf...]",
		Short: "Concatenate ground point files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets := make([][]socet.GroundPoint, 0, len(args))
			for _, path := range args {
				pts, err := socet.ReadGPF(path)
				if err != nil {
					return err
				}
				sets = append(sets, pts)
			}
			merged := socet.MergeGPF(sets...)
			a.log.Info("merged ground point files",
				zap.Int("files", len(args)),
				zap.Int("points", len(merged)))
			return socet.WriteGPF(out, merged)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output GPF")
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
	return cmd
}

func newGpfSampleCmd(a *app) *cobra.Command {
	var (
		out      string
		fraction float64
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "sample <file.gpf>",
		Short: "Randomly sample active ground points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := socet.ReadGPF(args[0])
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			sampled, err := socet.Sample(pts, fraction, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			fmt.Printf("sampled %d of %d points\n", len(sampled), len(pts))
			return socet.WriteGPF(out, sampled)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output GPF")
	cmd.Flags().Float64Var(&fraction, "fraction", 0.1, "fraction of active points to keep (0,1]")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
	return cmd
}

func newGpfCleanCmd(a *app) *cobra.Command {
	var (
		out    string
		outDir string
		suffix string
	)
	cmd := &cobra.Command{
		Use:   "clean <net.gpf> <image.ipf> [more.ipf...]",
		Short: "Drop inactive and under-measured points from a control network",
		Long: `Removes inactive ground points, invalid image measurements, and any point
measured on fewer than two images, then writes the cleaned GPF and IPFs
(tagged with the suffix) to the output directory.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gpf, err := socet.ReadGPF(args[0])
			if err != nil {
				return err
			}
			ipf, err := socet.ReadIPFs(args[1:])
			if err != nil {
				return err
			}

			cleanGPF, cleanIPF := socet.Clean(gpf, ipf, suffix)
			a.log.Info("cleaned network",
				zap.Int("ground_points", len(cleanGPF)),
				zap.Int("image_points", len(cleanIPF)))

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			if err := socet.WriteGPF(out, cleanGPF); err != nil {
				return err
			}
			return socet.WriteIPFs(outDir, cleanIPF)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output GPF")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for cleaned IPFs")
	cmd.Flags().StringVar(&suffix, "suffix", "clean", "suffix appended to cleaned IPF names")
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
	return cmd
}
