package smb

import (
	"net"

	smb2 "github.com/hirochachacha/go-smb2"

	"github.com/shuttlefs/shuttle/utils"
)

// Sink implements shuttle.Sink for a file on a mounted SMB2 share. Writes are
// sequential within the open session; ordering is the file's write ordering.
type Sink struct {
	conn    net.Conn
	session *smb2.Session
	tree    *smb2.Share
	file    *smb2.File
	max     int64
	uri     string
	closed  bool
}

// Write persists p to the open file, returning the number of bytes the server
// acknowledged.
func (s *Sink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// MaxWriteSize returns the session write ceiling. See package docs.
func (s *Sink) MaxWriteSize() int64 {
	return s.max
}

// Close releases the file, share, session, and connection in order. It runs
// every release step even when an earlier one fails and reports the first
// error. Close is idempotent.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if err := s.file.Close(); err != nil {
		firstErr = err
	}
	if err := s.tree.Umount(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.session.Logoff(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.conn.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	if firstErr != nil {
		return utils.WrapCloseError(firstErr)
	}
	return nil
}

// String implements fmt.Stringer, returning the destination URI.
func (s *Sink) String() string {
	return s.uri
}
