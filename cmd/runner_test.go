package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-analytics/internal/model"
	"github.com/sells-group/sales-analytics/internal/sink"
	"github.com/sells-group/sales-analytics/internal/store"
)

func TestExecuteRun_PublishesAndRecords(t *testing.T) {
	testCfg, st := newTestEnv(t)
	sinkDir := t.TempDir()
	testCfg.Sink.Kind = "file"
	testCfg.Sink.Dir = sinkDir

	pub, err := sink.New(testCfg.Sink)
	require.NoError(t, err)

	outcome, err := executeRun(context.Background(), testCfg, "", st, pub)
	require.NoError(t, err)
	require.NoError(t, outcome.PublishErr)

	// Published document parses back into the same report.
	data, err := os.ReadFile(filepath.Join(sinkDir, "processed", "aggregated_sales.json"))
	require.NoError(t, err)
	var published model.Report
	require.NoError(t, json.Unmarshal(data, &published))
	assert.Equal(t, outcome.Report.KPIs.TotalRevenue, published.KPIs.TotalRevenue)

	// Run history recorded.
	got, err := st.GetRun(context.Background(), outcome.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSucceeded, got.Status)
	assert.Equal(t, 3, got.TotalRecords)
	assert.Equal(t, 2, got.ActiveRecords)
}

func TestExecuteRun_IngestFailureRecordsFailedRun(t *testing.T) {
	testCfg, st := newTestEnv(t)
	badInput := filepath.Join(t.TempDir(), "missing.csv")

	_, err := executeRun(context.Background(), testCfg, badInput, st, nil)
	require.Error(t, err)

	runs, err := st.ListRuns(context.Background(), store.RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, badInput, runs[0].Source)
	assert.NotEmpty(t, runs[0].Error)
}

func TestExecuteRun_PublishFailureDoesNotFailRun(t *testing.T) {
	testCfg, st := newTestEnv(t)
	testCfg.Sink.Kind = "http"
	testCfg.Sink.URL = "http://127.0.0.1:1/unreachable"
	testCfg.Sink.TimeoutSecs = 1

	pub, err := sink.New(testCfg.Sink)
	require.NoError(t, err)

	outcome, err := executeRun(context.Background(), testCfg, "", st, pub)
	require.NoError(t, err)
	require.NotNil(t, outcome.Report)
	assert.Error(t, outcome.PublishErr)

	// The run still counts as computed successfully.
	got, err := st.GetRun(context.Background(), outcome.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSucceeded, got.Status)
}

func TestExecuteRun_SchemaErrorAbortsBeforeAggregation(t *testing.T) {
	testCfg, st := newTestEnv(t)

	badCSV := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(badCSV, []byte("Order ID,Date\n1,2022-04-30\n"), 0o644))

	_, err := executeRun(context.Background(), testCfg, badCSV, st, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column")

	report, err := st.LatestReport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report) // no partial document anywhere
}
