package sink

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPSink uploads reports to an FTP server. Each publish dials a fresh
// connection; there is no pooling across runs.
type FTPSink struct {
	addr     string
	user     string
	password string
	timeout  time.Duration
}

// NewFTPSink creates an FTPSink. A missing port defaults to 21.
func NewFTPSink(addr, user, password string, timeoutSecs int) (*FTPSink, error) {
	if addr == "" {
		return nil, eris.New("ftp sink: address required")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "21")
	}

	timeout := 30 * time.Second
	if timeoutSecs > 0 {
		timeout = time.Duration(timeoutSecs) * time.Second
	}

	return &FTPSink{addr: addr, user: user, password: password, timeout: timeout}, nil
}

func (s *FTPSink) Publish(ctx context.Context, doc []byte, key string) error {
	conn, err := ftp.Dial(s.addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.timeout))
	if err != nil {
		return eris.Wrapf(err, "ftp sink: dial %s", s.addr)
	}
	defer func() {
		if quitErr := conn.Quit(); quitErr != nil {
			zap.L().Warn("ftp sink: quit failed", zap.Error(quitErr))
		}
	}()

	user := s.user
	if user == "" {
		user = "anonymous"
	}
	if err := conn.Login(user, s.password); err != nil {
		return eris.Wrap(err, "ftp sink: login")
	}

	if err := conn.Stor(key, bytes.NewReader(doc)); err != nil {
		return eris.Wrapf(err, "ftp sink: store %s", key)
	}

	zap.L().Info("sink: report uploaded",
		zap.String("addr", s.addr),
		zap.String("key", key),
		zap.Int("bytes", len(doc)),
	)
	return nil
}
