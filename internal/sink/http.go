package sink

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// HTTPSink POSTs reports to a webhook URL. The destination key travels
// in the X-Report-Key header since the document body is the report
// itself.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink creates an HTTPSink.
func NewHTTPSink(url string, timeoutSecs int) (*HTTPSink, error) {
	if url == "" {
		return nil, eris.New("http sink: url required")
	}

	timeout := 30 * time.Second
	if timeoutSecs > 0 {
		timeout = time.Duration(timeoutSecs) * time.Second
	}

	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPSink) Publish(ctx context.Context, doc []byte, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(doc))
	if err != nil {
		return eris.Wrap(err, "http sink: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Report-Key", key)

	resp, err := s.client.Do(req)
	if err != nil {
		return eris.Wrapf(err, "http sink: post %s", s.url)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return eris.Errorf("http sink: unexpected status %d from %s", resp.StatusCode, s.url)
	}

	zap.L().Info("sink: report posted",
		zap.String("url", s.url),
		zap.String("key", key),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
