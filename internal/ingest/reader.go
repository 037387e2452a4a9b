package ingest

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sales-analytics/internal/config"
	"github.com/sells-group/sales-analytics/internal/model"
)

// Dataset is the output of ingestion: typed records plus the schema
// facts downstream stages need (whether the optional B2B column existed
// in the source at all).
type Dataset struct {
	Records []model.Record
	HasB2B  bool
	Source  string
}

// ReadDataset loads and normalizes the dataset named by the input
// configuration, dispatching on the configured format.
func ReadDataset(ctx context.Context, cfg config.InputConfig) (*Dataset, error) {
	var aliases map[string]string
	if cfg.AliasFile != "" {
		a, err := LoadAliases(cfg.AliasFile)
		if err != nil {
			return nil, err
		}
		aliases = a
	}

	var (
		ds  *Dataset
		err error
	)
	switch cfg.Format {
	case "", "csv":
		ds, err = ReadCSVFile(ctx, cfg.Path, aliases)
	case "xlsx":
		ds, err = ReadXLSXFile(cfg.Path, cfg.Sheet, aliases)
	default:
		return nil, eris.Errorf("ingest: unsupported input format %q", cfg.Format)
	}
	if err != nil {
		return nil, err
	}
	ds.Source = cfg.Path
	return ds, nil
}
