// Package sink publishes assembled report documents to an external
// destination. The pipeline core calls Publish once per run; retry
// policy belongs to the caller, not here.
package sink

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sales-analytics/internal/config"
)

// Publisher writes one report document to a destination key with
// overwrite semantics. Implementations must not retry internally.
type Publisher interface {
	Publish(ctx context.Context, doc []byte, key string) error
}

// New builds a Publisher from configuration. Kind "none" returns a
// discard publisher for runs that only want the local copy.
func New(cfg config.SinkConfig) (Publisher, error) {
	switch cfg.Kind {
	case "file":
		return NewFileSink(cfg.Dir), nil
	case "ftp":
		return NewFTPSink(cfg.FTPAddr, cfg.FTPUser, cfg.FTPPassword, cfg.TimeoutSecs)
	case "http":
		return NewHTTPSink(cfg.URL, cfg.TimeoutSecs)
	case "none":
		return discardSink{}, nil
	default:
		return nil, eris.Errorf("sink: unknown kind %q", cfg.Kind)
	}
}

type discardSink struct{}

func (discardSink) Publish(ctx context.Context, doc []byte, key string) error {
	return nil
}
