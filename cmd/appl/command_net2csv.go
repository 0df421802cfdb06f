package main

import (
	"github.com/spf13/cobra"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/socet"
)

func newNet2CSVCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "net2csv <net.gpf> <image.ipf> [more.ipf...]",
		Short: "Export a control network (GPF joined with IPFs) as CSV",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gpf, err := socet.ReadGPF(args[0])
			if err != nil {
				return err
			}
			ipf, err := socet.ReadIPFs(args[1:])
			if err != nil {
				return err
			}

			w, closeFn, err := openCSVOutput(out)
			if err != nil {
				return err
			}
			if err := socet.NetToCSV(w, gpf, ipf); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output CSV (default stdout)")
	return cmd
}
