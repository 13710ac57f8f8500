package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kndndrj/dbexport/adapters"
	"github.com/kndndrj/dbexport/config"
	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/logger"
	"github.com/kndndrj/dbexport/pipeline"
)

const (
	jobCombine = "combine"
	jobTotals  = "totals"
)

// env file prefixes of the two databases
const (
	primaryPrefix   = "PG"
	secondaryPrefix = "MSSQL"
)

// clock is replaced in tests.
var clock = time.Now

func runExport(ctx context.Context, cmd *cobra.Command, job string) error {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return err
	}

	base, err := logger.New(logger.Config{Level: settings.LogLevel, DevMode: settings.LogDev})
	if err != nil {
		return err
	}
	defer base.Sync()
	log := base.Named("export").With("job", job)

	out := cmd.OutOrStdout()
	now := clock()
	cutoff := pipeline.Cutoff(now, settings.Days)

	fmt.Fprintln(out, "1. Loading database configuration...")
	values, err := config.Load(settings.EnvFile)
	if err != nil {
		log.Errorf("loading %s: %s", settings.EnvFile, err)
		return err
	}
	if len(values) == 0 {
		err := fmt.Errorf("%w: no settings found in %s", config.ErrConfigMissing, settings.EnvFile)
		log.Error(err.Error())
		return err
	}

	primaryCfg, err := config.DatabaseFromValues(values, primaryPrefix, "postgres")
	if err != nil {
		log.Error(err.Error())
		return err
	}

	fmt.Fprintln(out, "2. Connecting to databases...")
	primary, closePrimary := connectSource(ctx, log, pipeline.LabelPostgres, primaryCfg, pipeline.OrderColumns, queryFor(job), cutoff)
	defer closePrimary()

	var j *pipeline.Job
	switch job {
	case jobCombine:
		secondary, closeSecondary := secondarySource(ctx, log, values, cutoff)
		defer closeSecondary()

		j = pipeline.CombineJob(pipeline.Required(primary), secondary)
	case jobTotals:
		j = pipeline.TotalsJob(pipeline.Required(primary))
	default:
		return fmt.Errorf("unknown job %q", job)
	}

	fmt.Fprintf(out, "3. Exporting %s since %s...\n", job, cutoff)
	runner := pipeline.NewRunner(log,
		pipeline.RunnerWithProgress(out),
		pipeline.RunnerWithOutputDir(settings.OutputDir),
		pipeline.RunnerWithClock(func() time.Time { return now }),
		pipeline.RunnerWithPreview(settings.Preview),
	)

	report, err := runner.Run(ctx, j)
	if err != nil {
		log.Errorf("export failed: %s", err)
		return err
	}

	fmt.Fprintln(out)
	return printReport(out, report)
}

func printReport(w io.Writer, report *pipeline.Report) error {
	if err := pipeline.PrintReport(w, report); err != nil {
		return fmt.Errorf("pipeline.PrintReport: %w", err)
	}
	return nil
}

func queryFor(job string) string {
	if job == jobTotals {
		return pipeline.CustomerTotalsQuery
	}
	return pipeline.OrdersQuery
}

// connectSource opens a connection for cfg and wraps it in a query source.
// A failed connection yields a source reporting that failure.
func connectSource(ctx context.Context, log core.Logger, label string, cfg *config.Database, header core.Header, query string, args ...any) (pipeline.Source, func()) {
	conn, err := adapters.NewConnection(ctx, cfg.Params(label))
	if err != nil {
		log.Errorf("connecting to %s: %s", label, err)
		return pipeline.UnavailableSource(label, header, err), func() {}
	}
	if details, err := json.Marshal(conn); err == nil {
		log.Debugf("connected to %s: %s", label, details)
	}
	log.Infof("connected to %s (%s, id %s)", conn.GetName(), conn.GetType(), conn.GetID())

	return pipeline.NewQuerySource(label, conn, query, args...), func() {
		if err := conn.Close(); err != nil {
			log.Warnf("closing %s: %s", label, err)
		}
	}
}

// secondarySource is the SQL Server side of the combine job. Without any
// MSSQL settings it stays a placeholder.
func secondarySource(ctx context.Context, log core.Logger, values config.Values, cutoff string) (pipeline.Source, func()) {
	if !config.Present(values, secondaryPrefix) {
		return pipeline.NewPlaceholderSource(pipeline.LabelSQLServer, pipeline.OrderColumns,
			"not configured, set MSSQLHOST to enable", log), func() {}
	}

	cfg, err := config.DatabaseFromValues(values, secondaryPrefix, "sqlserver")
	if err != nil {
		if !errors.Is(err, config.ErrConfigMissing) {
			err = fmt.Errorf("%w: %w", config.ErrConfigMissing, err)
		}
		log.Errorf("%s settings: %s", pipeline.LabelSQLServer, err)
		return pipeline.UnavailableSource(pipeline.LabelSQLServer, pipeline.OrderColumns, err), func() {}
	}

	return connectSource(ctx, log, pipeline.LabelSQLServer, cfg, pipeline.OrderColumns, pipeline.OrdersQuery, cutoff)
}
