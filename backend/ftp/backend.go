package ftp

import (
	"context"
	"fmt"
	"time"

	_ftp "github.com/jlaffaye/ftp"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/backend"
	"github.com/shuttlefs/shuttle/utils"
)

// Scheme defines the backend type.
const Scheme = "ftp"

// DefaultPort is the ftp control port used when the URI carries none.
const DefaultPort = 21

const defaultUsername = "anonymous"
const defaultPassword = "anonymous"

// Options holds ftp-specific options.
type Options struct {
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	DialTimeout time.Duration
}

// Backend implements backend.SourceOpener for FTP servers.
type Backend struct {
	options Options
}

// NewBackend returns an FTP source backend with default options.
func NewBackend() *Backend {
	return &Backend{}
}

// WithOptions sets options for the connection and returns the backend (chainable)
func (b *Backend) WithOptions(opts Options) *Backend {
	b.options = opts
	return b
}

// OpenSource resolves an ftp://host/path URI into a ready-to-read source.
func (b *Backend) OpenSource(ctx context.Context, uri string) (shuttle.Source, error) {
	scheme, auth, p, err := utils.ParseURI(uri)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}
	if scheme != Scheme {
		return nil, utils.WrapOpenError(fmt.Errorf("expected %s uri, got %q", Scheme, uri))
	}
	if p == "" || p == "/" {
		return nil, utils.WrapOpenError(fmt.Errorf("uri %q must name a file path", uri))
	}

	conn, err := _ftp.Dial(
		auth.HostPortStrDefault(DefaultPort),
		_ftp.DialWithContext(ctx),
		_ftp.DialWithTimeout(b.options.DialTimeout),
	)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	username, password := b.credentials(auth)
	if err := conn.Login(username, password); err != nil {
		_ = conn.Quit()
		return nil, utils.WrapOpenError(err)
	}

	size, err := conn.FileSize(p)
	if err != nil {
		_ = conn.Quit()
		return nil, utils.WrapOpenError(fmt.Errorf("size of %q: %w", p, err))
	}

	body, err := conn.Retr(p)
	if err != nil {
		_ = conn.Quit()
		return nil, utils.WrapOpenError(err)
	}

	return &Source{
		conn: conn,
		body: body,
		size: size,
		uri:  fmt.Sprintf("%s://%s%s", Scheme, auth.String(), p),
	}, nil
}

func (b *Backend) credentials(auth utils.Authority) (username, password string) {
	username = b.options.Username
	if username == "" {
		username = auth.UserInfo().Username()
	}
	if username == "" {
		username = defaultUsername
	}

	password = b.options.Password
	if password == "" {
		password = auth.UserInfo().Password()
	}
	if password == "" {
		password = defaultPassword
	}
	return username, password
}

func init() {
	// registers a default backend
	backend.RegisterSource(Scheme, NewBackend())
}
