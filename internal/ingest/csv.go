package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// streamCSV reads CSV rows and sends them to a channel. The first row is
// delivered on the header channel. Caller must consume the row channel;
// both channels are closed when processing completes.
func streamCSV(ctx context.Context, r io.Reader, headerCh chan<- []string) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // allow variable fields

		first := true
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if first {
				first = false
				select {
				case headerCh <- record:
				case <-ctx.Done():
					errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled sending header")
					return
				}
				continue
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV parses a CSV dataset into typed records. The first row is
// bound as the header; missing required columns fail before any row is
// normalized.
func ReadCSV(ctx context.Context, r io.Reader, aliases map[string]string) (*Dataset, error) {
	headerCh := make(chan []string, 1)
	rowCh, errCh := streamCSV(ctx, r, headerCh)

	var header []string
	select {
	case header = <-headerCh:
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
		return nil, eris.New("ingest: empty dataset, no header row")
	case <-ctx.Done():
		return nil, eris.Wrap(ctx.Err(), "ingest: context cancelled")
	}

	sc, err := BindHeader(header, aliases)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	records, _, err := Normalize(sc, rows)
	if err != nil {
		return nil, err
	}

	zap.L().Info("ingest: csv parsed",
		zap.Int("rows", len(records)),
		zap.Bool("has_b2b", sc.HasB2B()),
	)
	return &Dataset{Records: records, HasB2B: sc.HasB2B()}, nil
}

// ReadCSVFile reads and normalizes a CSV dataset from disk.
func ReadCSVFile(ctx context.Context, path string, aliases map[string]string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()

	return ReadCSV(ctx, f, aliases)
}
