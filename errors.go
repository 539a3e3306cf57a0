package shuttle

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidWriteSize - the write-size specification could not be resolved to a positive byte count
	ErrInvalidWriteSize = Error("invalid write size")

	// ErrSourceRead - the source failed mid-read, including premature end of stream
	ErrSourceRead = Error("source read failed")

	// ErrSinkWrite - the sink failed to persist a write
	ErrSinkWrite = Error("sink write failed")

	// ErrShortWrite - the sink persisted fewer bytes than requested without reporting its own error
	ErrShortWrite = Error("short write")

	// ErrNotExist - source object does not exist
	ErrNotExist = Error("object does not exist")
)
