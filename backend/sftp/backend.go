package sftp

import (
	"context"
	"fmt"
	"path"

	_sftp "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/backend"
	"github.com/shuttlefs/shuttle/utils"
)

// Scheme defines the backend type.
const Scheme = "sftp"

// Backend implements backend.SourceOpener and backend.SinkOpener over SFTP.
type Backend struct {
	options   Options
	client    *_sftp.Client
	sshClient *ssh.Client
}

// NewBackend returns an SFTP backend with default options.
func NewBackend() *Backend {
	return &Backend{}
}

// WithOptions sets options for the client and returns the backend (chainable)
func (b *Backend) WithOptions(opts Options) *Backend {
	b.options = opts
	// client is reset so that a new one is created from the new options
	b.client = nil
	b.sshClient = nil
	return b
}

// Client returns the underlying sftp client, creating it, if necessary
// See package docs for authentication resolution.
func (b *Backend) Client(authority utils.Authority) (*_sftp.Client, error) {
	if b.client == nil {
		var err error
		b.client, b.sshClient, err = getClient(authority, b.options)
		if err != nil {
			return nil, err
		}
	}
	return b.client, nil
}

// OpenSource resolves an sftp://user@host/path URI into a ready-to-read source.
func (b *Backend) OpenSource(_ context.Context, uri string) (shuttle.Source, error) {
	auth, filePath, err := b.parse(uri)
	if err != nil {
		return nil, err
	}

	client, err := b.Client(auth)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	info, err := client.Stat(filePath)
	if err != nil {
		return nil, utils.WrapOpenError(fmt.Errorf("stat %q: %w", filePath, err))
	}
	if info.IsDir() {
		return nil, utils.WrapOpenError(fmt.Errorf("%q is a directory", filePath))
	}

	f, err := client.Open(filePath)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	return &Source{
		file: f,
		size: info.Size(),
		uri:  fmt.Sprintf("%s://%s%s", Scheme, auth.String(), filePath),
	}, nil
}

// OpenSink resolves an sftp://user@host/path URI into a ready-to-write sink.
// Parent directories are created as needed; an existing file is overwritten.
func (b *Backend) OpenSink(_ context.Context, uri string) (shuttle.Sink, error) {
	auth, filePath, err := b.parse(uri)
	if err != nil {
		return nil, err
	}

	client, err := b.Client(auth)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	if err := client.MkdirAll(path.Dir(filePath)); err != nil {
		return nil, utils.WrapOpenError(err)
	}

	f, err := client.Create(filePath)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	return &Sink{
		file: f,
		uri:  fmt.Sprintf("%s://%s%s", Scheme, auth.String(), filePath),
	}, nil
}

// Close tears down the sftp and ssh connections, if open.
func (b *Backend) Close() error {
	var firstErr error
	if b.client != nil {
		firstErr = b.client.Close()
		b.client = nil
	}
	if b.sshClient != nil {
		if err := b.sshClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.sshClient = nil
	}
	return firstErr
}

func (b *Backend) parse(uri string) (utils.Authority, string, error) {
	scheme, auth, p, err := utils.ParseURI(uri)
	if err != nil {
		return utils.Authority{}, "", utils.WrapOpenError(err)
	}
	if scheme != Scheme {
		return utils.Authority{}, "", utils.WrapOpenError(fmt.Errorf("expected %s uri, got %q", Scheme, uri))
	}
	if p == "" || p == "/" {
		return utils.Authority{}, "", utils.WrapOpenError(fmt.Errorf("uri %q must name a file path", uri))
	}
	return auth, path.Clean(p), nil
}

func init() {
	// registers a default backend for both roles
	b := NewBackend()
	backend.RegisterSource(Scheme, b)
	backend.RegisterSink(Scheme, b)
}
