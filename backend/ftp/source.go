package ftp

import (
	_ftp "github.com/jlaffaye/ftp"
)

// Source implements shuttle.Source over a single RETR stream.
type Source struct {
	conn *_ftp.ServerConn
	body *_ftp.Response
	size int64
	uri  string
}

// Size returns the length resolved with SIZE at open time.
func (s *Source) Size() (int64, error) {
	return s.size, nil
}

// Read reads from the RETR body.
func (s *Source) Read(p []byte) (int, error) {
	return s.body.Read(p)
}

// Close drains the data connection and quits the control connection.
func (s *Source) Close() error {
	err := s.body.Close()
	if qerr := s.conn.Quit(); qerr != nil && err == nil {
		err = qerr
	}
	return err
}

// String implements fmt.Stringer, returning the file's URI.
func (s *Source) String() string {
	return s.uri
}
