package sftp

import (
	_sftp "github.com/pkg/sftp"
)

// Source implements shuttle.Source for a remote file opened for reading.
type Source struct {
	file *_sftp.File
	size int64
	uri  string
}

// Size returns the file length captured by Stat at open time.
func (s *Source) Size() (int64, error) {
	return s.size, nil
}

// Read calls the underlying sftp.File Read.
func (s *Source) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

// Close calls the underlying sftp.File Close.
func (s *Source) Close() error {
	return s.file.Close()
}

// String implements fmt.Stringer, returning the file's URI.
func (s *Source) String() string {
	return s.uri
}

// Sink implements shuttle.Sink for a remote file opened for writing.
type Sink struct {
	file *_sftp.File
	uri  string
}

// Write calls the underlying sftp.File Write. The client splits larger
// buffers into write packets; MaxWriteSize keeps the engine below that
// boundary so one engine write is one protocol write.
func (s *Sink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// MaxWriteSize returns the sftp write packet payload ceiling.
func (s *Sink) MaxWriteSize() int64 {
	return MaxPacketSize
}

// Close calls the underlying sftp.File Close.
func (s *Sink) Close() error {
	return s.file.Close()
}

// String implements fmt.Stringer, returning the file's URI.
func (s *Sink) String() string {
	return s.uri
}
