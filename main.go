package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dbexport",
		Short:        "Export orders and customer totals from SQL databases to CSV",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("env-file", "", "path of the key=value file with database settings (default ../.env)")
	flags.String("output-dir", "", "directory the CSV file is written to (default current directory)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("log-dev", false, "human readable console logs")
	flags.Int("preview", 5, "number of exported rows to print, 0 to disable")

	root.AddCommand(
		newJobCmd(jobCombine, "Merge recent orders of all databases into one file", 30),
		newJobCmd(jobTotals, "Export the total spent by every customer", 0),
	)

	return root
}

func newJobCmd(job, short string, days int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   job,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), cmd, job)
		},
	}

	cmd.Flags().Int("days", days, "only include orders from the last N days, 0 for all orders")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
