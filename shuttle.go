// Package shuttle defines the core capabilities used to stream a single
// object from a remote storage source to a remote file-share sink: a Source
// that produces bytes on demand and knows its total length, and a Sink that
// persists buffers sequentially within a session-negotiated write ceiling.
package shuttle

import (
	"fmt"
	"io"
)

// Source is a sequential byte producer with a known total length. Read must
// fill the requested slice except at end of stream; the transfer engine treats
// a premature end of stream as a read failure.
type Source interface {
	io.Reader
	io.Closer
	fmt.Stringer

	// Size returns the total length of the source in bytes. The value is fixed
	// for the lifetime of one transfer.
	Size() (int64, error)
}

// Sink is a sequential byte consumer bound by a maximum single-write size.
// Writes must be persisted in the order received. The sink is opened before
// the transfer engine runs and closed by the caller afterward; the engine only
// issues Write calls during an already-open session.
type Sink interface {
	io.Writer
	io.Closer
	fmt.Stringer

	// MaxWriteSize returns the largest number of bytes a single Write call may
	// carry. It is known once the sink session has been opened/negotiated.
	MaxWriteSize() int64
}

// Progress is a snapshot emitted after each successful write operation.
type Progress struct {
	Bytes int64 // bytes written so far
	Total int64 // total bytes expected
	Ops   int64 // write operations completed
}

// ProgressFunc receives Progress snapshots. Implementations must not retain
// the snapshot across calls; each value is complete in itself.
type ProgressFunc func(Progress)
