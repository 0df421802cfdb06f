package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/socet"
)

func newIpfCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipf",
		Short: "SOCET image point file utilities",
	}

	cmd.AddCommand(newIpfMergeCmd(a))

	return cmd
}

func newIpfMergeCmd(a *app) *cobra.Command {
	var (
		out    string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "merge <a.ipf> <b.ipf> [more.ipf...]",
		Short: "Merge image point files under one name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := socet.ReadIPFs(args)
			if err != nil {
				return err
			}
			merged := socet.MergeIPF(pts, out)
			a.log.Info("merged image point files",
				zap.Int("files", len(args)),
				zap.Int("points", len(merged)))
			return socet.WriteIPFs(outDir, merged)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "basename for the merged IPF")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "output directory")
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
	return cmd
}
