package os

import (
	"fmt"
	"os"
)

// Source implements shuttle.Source for a local file.
type Source struct {
	file *os.File
	size int64
}

// Size returns the file length captured by Stat at open time.
func (s *Source) Size() (int64, error) {
	return s.size, nil
}

// Read calls the underlying os.File Read.
func (s *Source) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

// Close calls the underlying os.File Close.
func (s *Source) Close() error {
	return s.file.Close()
}

// String implements fmt.Stringer, returning the file's URI.
func (s *Source) String() string {
	return fmt.Sprintf("%s://%s", Scheme, s.file.Name())
}

// Sink implements shuttle.Sink for a local file.
type Sink struct {
	file *os.File
}

// Write calls the underlying os.File Write.
func (s *Sink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// MaxWriteSize returns the local write ceiling.
func (s *Sink) MaxWriteSize() int64 {
	return MaxWriteSize
}

// Close calls the underlying os.File Close.
func (s *Sink) Close() error {
	return s.file.Close()
}

// String implements fmt.Stringer, returning the file's URI.
func (s *Sink) String() string {
	return fmt.Sprintf("%s://%s", Scheme, s.file.Name())
}
