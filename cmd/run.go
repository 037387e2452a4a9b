package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/sales-analytics/internal/model"
	"github.com/sells-group/sales-analytics/internal/resilience"
	"github.com/sells-group/sales-analytics/internal/sink"
)

var (
	runInputs         []string
	runFormat         string
	runSheet          string
	runConcurrency    int
	runNoStore        bool
	runNoSink         bool
	runPublishRetries int
)

// retryPublisher wraps a sink with caller-owned retry policy: the
// pipeline itself only reports publish failures.
type retryPublisher struct {
	inner sink.Publisher
	cfg   resilience.RetryConfig
}

func (p retryPublisher) Publish(ctx context.Context, doc []byte, key string) error {
	return resilience.Do(ctx, p.cfg, func(ctx context.Context) error {
		return p.inner.Publish(ctx, doc, key)
	})
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the analytics pipeline over one or more datasets",
	Long: `Ingests each dataset, computes KPIs, dimensional aggregations and
top-performer rankings, publishes the report to the configured sink and
writes a local copy.

Examples:
  # Single CSV, file sink from config
  sales-analytics run --input sales_report.csv

  # XLSX workbook, named sheet
  sales-analytics run --input sales.xlsx --format xlsx --sheet Orders

  # Several datasets, two at a time, skip the remote sink
  sales-analytics run --input q1.csv --input q2.csv --concurrency 2 --no-sink`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		inputs := runInputs
		if len(inputs) == 0 {
			if cfg.Input.Path == "" {
				return eris.New("run: no input dataset; pass --input or set input.path")
			}
			inputs = []string{cfg.Input.Path}
		}
		if runFormat != "" {
			cfg.Input.Format = runFormat
		}
		if runSheet != "" {
			cfg.Input.Sheet = runSheet
		}

		st, err := openStore(ctx, runNoStore)
		if err != nil {
			return eris.Wrap(err, "run: open store")
		}
		if st != nil {
			defer st.Close()
		}

		var pub sink.Publisher
		if !runNoSink {
			pub, err = sink.New(cfg.Sink)
			if err != nil {
				return eris.Wrap(err, "run: init sink")
			}
			if runPublishRetries > 0 {
				retryCfg := resilience.DefaultRetryConfig()
				retryCfg.MaxAttempts = runPublishRetries + 1
				pub = retryPublisher{inner: pub, cfg: retryCfg}
			}
		}

		// Each run owns its own records and partitions; only the file-level
		// fan-out is concurrent.
		if runConcurrency < 1 {
			runConcurrency = 1
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runConcurrency)

		outcomes := make([]*runOutcome, len(inputs))
		for i, input := range inputs {
			g.Go(func() error {
				outcome, err := executeRun(gctx, cfg, input, st, pub)
				if err != nil {
					return eris.Wrapf(err, "run: %s", input)
				}
				outcomes[i] = outcome
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, outcome := range outcomes {
			printSummary(outcome.Report)
			if outcome.PublishErr != nil {
				zap.L().Warn("run: report computed but sink publish failed",
					zap.String("source", outcome.Run.Source),
					zap.Error(outcome.PublishErr),
				)
			}
		}

		return nil
	},
}

// printSummary writes the headline figures to stdout the way the
// nightly job's log excerpt is read by humans.
func printSummary(r *model.Report) {
	p := message.NewPrinter(language.English)

	p.Fprintf(os.Stdout, "Total Revenue:       %.2f\n", r.KPIs.TotalRevenue)
	p.Fprintf(os.Stdout, "Total Orders:        %d\n", r.KPIs.TotalOrders)
	if r.KPIs.AverageOrderValue != nil {
		p.Fprintf(os.Stdout, "Average Order Value: %.2f\n", *r.KPIs.AverageOrderValue)
	}
	if r.KPIs.CancellationRate != nil {
		p.Fprintf(os.Stdout, "Cancellation Rate:   %.2f%%\n", *r.KPIs.CancellationRate)
	}
	if top := r.TopPerformers.TopState; top != nil {
		p.Fprintf(os.Stdout, "Top State:           %s (%.2f)\n", top.State, top.Revenue)
	}
	if top := r.TopPerformers.TopCategory; top != nil {
		p.Fprintf(os.Stdout, "Top Category:        %s (%.2f)\n", top.Category, top.Revenue)
	}
}

func init() {
	runCmd.Flags().StringArrayVar(&runInputs, "input", nil, "dataset path (repeatable)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "input format: csv or xlsx (default from config)")
	runCmd.Flags().StringVar(&runSheet, "sheet", "", "xlsx sheet name (default first sheet)")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 1, "max datasets processed at once")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "skip recording the run in the store")
	runCmd.Flags().BoolVar(&runNoSink, "no-sink", false, "skip the configured sink, keep the local copy")
	runCmd.Flags().IntVar(&runPublishRetries, "publish-retries", 0, "retries for a failed sink publish")
	rootCmd.AddCommand(runCmd)
}
