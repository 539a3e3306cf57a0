package smb

import (
	"context"
	"fmt"
	"net"
	"strings"

	smb2 "github.com/hirochachacha/go-smb2"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/backend"
	"github.com/shuttlefs/shuttle/utils"
)

// Scheme defines the backend type.
const Scheme = "smb"

// Backend implements backend.SinkOpener for SMB2 shares.
type Backend struct {
	options Options
}

// NewBackend returns an SMB sink backend with default options.
func NewBackend() *Backend {
	return &Backend{}
}

// WithOptions sets options for the session and returns the backend (chainable)
func (b *Backend) WithOptions(opts Options) *Backend {
	b.options = opts
	return b
}

// OpenSink resolves an smb://server/share/path URI into a ready-to-write sink.
// The destination file is created, or overwritten if it exists. Everything up
// to the first write can fail here: dial, session setup, tree connect, create.
func (b *Backend) OpenSink(ctx context.Context, uri string) (shuttle.Sink, error) {
	scheme, auth, p, err := utils.ParseURI(uri)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}
	if scheme != Scheme {
		return nil, utils.WrapOpenError(fmt.Errorf("expected %s uri, got %q", Scheme, uri))
	}

	share, filePath, err := SplitSharePath(p)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	username := b.options.Username
	if username == "" {
		username = auth.UserInfo().Username()
	}
	password := b.options.Password
	if password == "" {
		password = auth.UserInfo().Password()
	}

	dialer := &net.Dialer{Timeout: b.options.DialTimeout}
	if dialer.Timeout == 0 {
		dialer.Timeout = DefaultDialTimeout
	}
	conn, err := dialer.DialContext(ctx, "tcp", auth.HostPortStrDefault(DefaultPort))
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     username,
			Password: password,
			Domain:   b.options.Domain,
		},
	}

	session, err := d.DialContext(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, utils.WrapOpenError(err)
	}

	tree, err := session.Mount(share)
	if err != nil {
		_ = session.Logoff()
		_ = conn.Close()
		return nil, utils.WrapOpenError(fmt.Errorf("mount share %q: %w", share, err))
	}

	f, err := tree.Create(ToWindowsPath(filePath))
	if err != nil {
		_ = tree.Umount()
		_ = session.Logoff()
		_ = conn.Close()
		return nil, utils.WrapOpenError(fmt.Errorf("create %q: %w", filePath, err))
	}

	return &Sink{
		conn:    conn,
		session: session,
		tree:    tree,
		file:    f,
		max:     b.options.writeCeiling(),
		uri:     fmt.Sprintf("%s://%s/%s/%s", Scheme, auth.HostPortStr(), share, filePath),
	}, nil
}

// SplitSharePath splits a URI path into the share name (first segment) and the
// file path within the share.
func SplitSharePath(p string) (share, filePath string, err error) {
	trimmed := utils.RemoveLeadingSlash(p)
	share, filePath, found := strings.Cut(trimmed, "/")
	if !found || share == "" || filePath == "" {
		return "", "", fmt.Errorf("path %q must name a share and a file within it", p)
	}
	return share, filePath, nil
}

// ToWindowsPath converts a slash-separated path within a share to the
// backslash form the wire protocol expects.
func ToWindowsPath(p string) string {
	return strings.ReplaceAll(utils.RemoveLeadingSlash(p), "/", `\`)
}

func init() {
	// registers a default backend
	backend.RegisterSink(Scheme, NewBackend())
}
