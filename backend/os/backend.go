// Package os provides the local-file source and sink backends behind file://
// URIs. Besides local endpoints, it grounds engine integration tests without
// a network.
package os

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/backend"
	"github.com/shuttlefs/shuttle/utils"
)

// Scheme defines the backend type.
const Scheme = "file"

// MaxWriteSize is the write ceiling advertised by the local sink. Local files
// have no protocol-negotiated maximum; the cap just bounds buffer allocation.
const MaxWriteSize = 1 << 30

// Backend implements backend.SourceOpener and backend.SinkOpener for local files.
type Backend struct{}

// NewBackend returns a local-file backend.
func NewBackend() *Backend {
	return &Backend{}
}

// OpenSource resolves a file:///path URI into a ready-to-read source.
func (b *Backend) OpenSource(_ context.Context, uri string) (shuttle.Source, error) {
	p, err := parsePath(uri)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", shuttle.ErrNotExist, p)
		}
		return nil, utils.WrapOpenError(err)
	}
	if info.IsDir() {
		return nil, utils.WrapOpenError(fmt.Errorf("%q is a directory", p))
	}

	f, err := os.Open(p) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	return &Source{file: f, size: info.Size()}, nil
}

// OpenSink resolves a file:///path URI into a ready-to-write sink. Parent
// directories are created as needed; an existing file is overwritten.
func (b *Backend) OpenSink(_ context.Context, uri string) (shuttle.Sink, error) {
	p, err := parsePath(uri)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		return nil, utils.WrapOpenError(err)
	}

	f, err := os.Create(p) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	return &Sink{file: f}, nil
}

func parsePath(uri string) (string, error) {
	scheme, _, p, err := utils.ParseURI(uri)
	if err != nil {
		return "", utils.WrapOpenError(err)
	}
	if scheme != Scheme {
		return "", utils.WrapOpenError(fmt.Errorf("expected %s uri, got %q", Scheme, uri))
	}
	if p == "" {
		return "", utils.WrapOpenError(fmt.Errorf("uri %q must name a file path", uri))
	}
	return p, nil
}

func init() {
	// registers a default backend for both roles
	b := NewBackend()
	backend.RegisterSource(Scheme, b)
	backend.RegisterSink(Scheme, b)
}
