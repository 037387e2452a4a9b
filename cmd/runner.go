package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sales-analytics/internal/analytics"
	"github.com/sells-group/sales-analytics/internal/config"
	"github.com/sells-group/sales-analytics/internal/ingest"
	"github.com/sells-group/sales-analytics/internal/model"
	"github.com/sells-group/sales-analytics/internal/sink"
	"github.com/sells-group/sales-analytics/internal/store"
)

// runOutcome is the result of one full pipeline invocation. PublishErr
// is set when the sink write failed; the run itself still counts as
// computed and the report is valid.
type runOutcome struct {
	Report     *model.Report
	Doc        []byte
	Run        model.Run
	PublishErr error
}

// executeRun performs one complete pipeline invocation: ingest,
// transform and aggregate, publish, record. A failure before assembly
// discards everything for that run; no partial report exists anywhere.
// The run is recorded in the store either way when a store is given.
func executeRun(ctx context.Context, cfg *config.Config, inputPath string, st store.Store, pub sink.Publisher) (*runOutcome, error) {
	inputCfg := cfg.Input
	if inputPath != "" {
		inputCfg.Path = inputPath
	}

	run := model.Run{
		ID:        uuid.New().String(),
		Source:    inputCfg.Path,
		CreatedAt: time.Now().UTC(),
	}

	ds, err := ingest.ReadDataset(ctx, inputCfg)
	if err != nil {
		recordFailure(ctx, st, run, err)
		return nil, err
	}

	report := analytics.BuildReport(ds.Records, ds.HasB2B, time.Now().UTC())

	doc, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		err = eris.Wrap(err, "run: marshal report")
		recordFailure(ctx, st, run, err)
		return nil, err
	}

	run.Status = model.RunStatusSucceeded
	run.TotalRecords = report.Metadata.TotalRecordsProcessed
	run.ActiveRecords = report.Metadata.ActiveOrdersProcessed

	outcome := &runOutcome{Report: report, Doc: doc, Run: run}

	// Publish failure does not fail the run; the report is computed and
	// the local copy below still lands. Retry policy belongs to the caller.
	if pub != nil {
		if pubErr := pub.Publish(ctx, doc, cfg.Sink.Key); pubErr != nil {
			zap.L().Error("run: publish failed",
				zap.String("key", cfg.Sink.Key),
				zap.Error(pubErr),
			)
			outcome.PublishErr = pubErr
		}
	}

	if cfg.Sink.LocalCopy != "" {
		local := sink.NewFileSink(".")
		if localErr := local.Publish(ctx, doc, cfg.Sink.LocalCopy); localErr != nil {
			zap.L().Warn("run: local copy failed", zap.Error(localErr))
		}
	}

	if st != nil {
		if saveErr := st.SaveRun(ctx, run, report); saveErr != nil {
			zap.L().Warn("run: record run failed", zap.Error(saveErr))
		}
	}

	return outcome, nil
}

func recordFailure(ctx context.Context, st store.Store, run model.Run, cause error) {
	if st == nil {
		return
	}
	run.Status = model.RunStatusFailed
	run.Error = cause.Error()
	if err := st.SaveRun(ctx, run, nil); err != nil {
		zap.L().Warn("run: record failure failed", zap.Error(err))
	}
}

// openStore opens the configured store, or returns nil when disabled.
func openStore(ctx context.Context, disabled bool) (store.Store, error) {
	if disabled {
		return nil, nil
	}
	return store.Open(ctx, cfg.Store)
}
