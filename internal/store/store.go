// Package store persists run history and the reports each run produced.
// Two backends are provided: sqlite for single-host deployments and
// postgres for shared ones.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sales-analytics/internal/config"
	"github.com/sells-group/sales-analytics/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for pipeline run history.
type Store interface {
	// SaveRun records one finished invocation. The report is nil for
	// failed runs.
	SaveRun(ctx context.Context, run model.Run, report *model.Report) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// LatestReport returns the report of the most recent successful run,
	// or nil when no run has succeeded yet.
	LatestReport(ctx context.Context) (*model.Report, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open builds a Store from configuration and runs migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		s, err = NewSQLite(cfg.Path)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
