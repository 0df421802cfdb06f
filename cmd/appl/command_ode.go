package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/ode"
)

func newOdeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ode",
		Short: "Query the PDS ODE REST service for laser altimeter shots",
	}

	cmd.AddCommand(newOdeGetCmd(a))
	cmd.AddCommand(newOdeStatusCmd(a))
	cmd.AddCommand(newOdeJobsCmd(a))

	return cmd
}

func (a *app) odeClient() *ode.Client {
	return ode.NewClient(a.cfg.ODE.BaseURL, a.cfg.ODE.Timeout, a.log)
}

func newOdeGetCmd(a *app) *cobra.Command {
	var (
		q   ode.Query
		out string
	)
	cmd := &cobra.Command{
		Use:   "get <mars|moon|mercury>",
		Short: "Fetch altimeter shots for a bounding box",
		Long: `Queries the ODE livegds interface for MOLA, LOLA, or MLA shot data within
a bounding box. Synchronous queries download the point CSVs immediately;
asynchronous ones (required for Mercury) are recorded locally and polled
later with "appl ode status".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Target = ode.Target(args[0])

			client := a.odeClient()
			res, err := client.Submit(cmd.Context(), q)
			if err != nil {
				return err
			}

			if q.Async {
				store, err := ode.OpenJobStore(a.cfg.Jobs.Database)
				if err != nil {
					return err
				}
				defer store.Close()
				if _, err := store.Record(q, res.JobID, res.State()); err != nil {
					return err
				}
				fmt.Println(res.JobID)
				return nil
			}

			if res.Count != "" {
				a.log.Info("query finished", zap.String("count", res.Count))
			}
			paths, err := client.DownloadPointFiles(cmd.Context(), res, out)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&q.MinLat, "minlat", 0, "minimum latitude (degrees)")
	cmd.Flags().Float64Var(&q.MaxLat, "maxlat", 0, "maximum latitude (degrees)")
	cmd.Flags().Float64Var(&q.WestLon, "westernlon", 0, "western longitude (degrees east)")
	cmd.Flags().Float64Var(&q.EastLon, "easternlon", 0, "eastern longitude (degrees east)")
	cmd.Flags().StringVar(&q.Email, "email", "", "notification email for asynchronous queries")
	cmd.Flags().BoolVar(&q.Async, "async", false, "submit as an asynchronous job")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory for downloaded point CSVs")
	for _, f := range []string{"minlat", "maxlat", "westernlon", "easternlon"} {
		cobra.CheckErr(cmd.MarkFlagRequired(f))
	}
	return cmd
}

func newOdeStatusCmd(a *app) *cobra.Command {
	var (
		download bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "status <jobid>",
		Short: "Check an asynchronous ODE job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			client := a.odeClient()
			res, err := client.JobStatus(cmd.Context(), jobID)
			if err != nil {
				return err
			}
			fmt.Println(res.State())

			store, err := ode.OpenJobStore(a.cfg.Jobs.Database)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.UpdateState(jobID, res.State()); err != nil {
				// job may have been submitted elsewhere
				a.log.Debug("job not tracked locally", zap.String("jobid", jobID))
			}

			if download && res.Finished() {
				paths, err := client.DownloadPointFiles(cmd.Context(), res, out)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Println(p)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&download, "download", false, "download point CSVs when the job is finished")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory for downloaded point CSVs")
	return cmd
}

func newOdeJobsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List locally tracked ODE jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ode.OpenJobStore(a.cfg.Jobs.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.List()
			if err != nil {
				return err
			}
			printJobsTable(jobs)
			return nil
		},
	}
}
