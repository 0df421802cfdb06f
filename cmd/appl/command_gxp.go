package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/gxp"
	"github.com/dpmayerUSGS/APPL-Tools/pkg/osutil"
)

func newGxpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gxp",
		Short: "SOCET GXP session utilities",
	}

	cmd.AddCommand(newConnectCmd(a))
	cmd.AddCommand(newLaunchCmd(a))

	return cmd
}

func newConnectCmd(a *app) *cobra.Command {
	var (
		launch bool
		wait   int
	)
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to the GXP workstation service and disconnect",
		Long: `Exercises the connection lifecycle against the GXP workstation service:
initialize, connect, disconnect, uninitialize. Failures are reported on
stdout; the command exits 0 either way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if launch {
				pid := osutil.StartGxpApplication()
				a.log.Info("launched SOCET GXP", zap.Int("pid", pid))
			}
			if wait > 0 {
				osutil.Sleep(wait)
			}

			api, err := gxp.InitializeApi()
			if err != nil {
				return err
			}
			defer api.Uninitialize()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			mgr := api.NewManager(gxp.NewTCPTransport(a.cfg.GXP.Address, 15*time.Second))
			comm, status := mgr.Connect(ctx)
			if gxp.FprintCheckStatus(os.Stdout, comm, status) {
				a.log.Info("connected", zap.String("address", a.cfg.GXP.Address))
			} else {
				a.log.Warn("connect failed",
					zap.Int32("comm", int32(comm)),
					zap.Int32("api", status.Code))
			}

			// teardown runs whether or not connect succeeded
			mgr.Disconnect()
			return nil
		},
	}
	cmd.Flags().BoolVar(&launch, "launch", false, "start SOCET GXP (from SOCETGXPEXE) before connecting")
	cmd.Flags().IntVar(&wait, "wait", 0, "seconds to sleep before connecting")
	return cmd
}

func newLaunchCmd(a *app) *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "launch [application]",
		Short: "Launch SOCET GXP or another application",
		Long: `Launches the named application, or SOCET GXP from the SOCETGXPEXE install
directory when no argument is given. Prints the process id.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pid int
			if len(args) == 0 {
				pid = osutil.StartGxpApplication()
			} else {
				pid = osutil.StartApplication(args[0])
			}
			if pid == 0 {
				return nil
			}
			fmt.Println(pid)
			if wait {
				osutil.WaitOnProcess(pid)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the launched process to exit")
	return cmd
}
