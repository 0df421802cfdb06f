package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/config"
	"github.com/dpmayerUSGS/APPL-Tools/pkg/logging"
)

// app carries the configuration and logger shared by every subcommand.
type app struct {
	cfgFile  string
	logLevel string
	logFile  string

	cfg *config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "appl",
		Short:         "Planetary photogrammetry support tools for SOCET GXP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")

	root.AddCommand(newGxpCmd(a))
	root.AddCommand(newOdeCmd(a))
	root.AddCommand(newCsv2ShpCmd(a))
	root.AddCommand(newGpfCmd(a))
	root.AddCommand(newIpfCmd(a))
	root.AddCommand(newNet2CSVCmd(a))
	root.AddCommand(newSurfaceFitCmd(a))
	root.AddCommand(newGpfTransformCmd(a))
	root.AddCommand(newPedrCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}
