package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FileSink writes reports under a base directory. The destination key
// may contain slashes; intermediate directories are created as needed.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

func (s *FileSink) Publish(ctx context.Context, doc []byte, key string) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "file sink: context cancelled")
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "file sink: mkdir")
	}

	// Write-then-rename so a concurrent reader never sees a torn file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return eris.Wrap(err, "file sink: write")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return eris.Wrap(err, "file sink: rename")
	}

	zap.L().Info("sink: report written",
		zap.String("path", path),
		zap.Int("bytes", len(doc)),
	)
	return nil
}
