package dataset

import (
	"context"
	"errors"
	"io"
	"net"
	"net/textproto"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/insights-cli/internal/model"
)

// FTPSource retrieves archived dataset snapshots from an FTP host. It sits
// last in the source chain; snapshot drops are published there before they
// reach the blob store.
type FTPSource struct {
	addr     string
	user     string
	password string
	dir      string
	timeout  time.Duration
}

// NewFTPSource creates an FTPSource. Anonymous login is used when user is
// empty.
func NewFTPSource(addr, user, password, dir string, timeout time.Duration) *FTPSource {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if user == "" {
		user = "anonymous"
		password = "anonymous"
	}
	return &FTPSource{addr: addr, user: user, password: password, dir: dir, timeout: timeout}
}

// Name implements Source.
func (s *FTPSource) Name() string { return "ftp:" + s.addr }

// Load implements Source.
func (s *FTPSource) Load(ctx context.Context, key string) (*model.RawDataset, error) {
	addr := s.addr
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "21")
	}

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.timeout))
	if err != nil {
		return nil, eris.Wrapf(err, "ftp: dial %s", addr)
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login(s.user, s.password); err != nil {
		return nil, eris.Wrap(err, "ftp: login")
	}

	remote := path.Join(s.dir, key+".json")
	resp, err := conn.Retr(remote)
	if err != nil {
		var proto *textproto.Error
		if errors.As(err, &proto) && proto.Code == ftp.StatusFileUnavailable {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "ftp: retrieve %s", remote)
	}
	defer func() { _ = resp.Close() }()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, eris.Wrapf(err, "ftp: read %s", remote)
	}

	ds, err := Decode(data)
	if err != nil {
		return nil, eris.Wrapf(err, "ftp: decode %s", remote)
	}
	return ds, nil
}
