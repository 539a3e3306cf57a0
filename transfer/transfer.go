// Package transfer drives a single linear copy from a shuttle.Source to a
// shuttle.Sink and reports aggregate performance. One Engine instance runs one
// transfer at a time; counters are never shared across transfers.
package transfer

import (
	"fmt"
	"io"
	"time"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/utils"
)

// Engine executes a sequential copy using a fixed write size. The zero value
// is ready to use.
type Engine struct {
	counters Counters
}

// NewEngine returns an Engine ready to run a transfer.
func NewEngine() *Engine {
	return &Engine{}
}

// Counters returns a snapshot of the counters accumulated so far. After a
// failed Run, the snapshot reflects only operations confirmed before the
// failure, which callers may inspect for diagnostics.
func (e *Engine) Counters() Counters {
	return e.counters
}

// Run copies the full contents of source to sink in writes of at most
// writeSize bytes, invoking progress after each successful write. The sink
// must already be open; open/close lifecycle belongs to the caller.
//
// writeSize is clamped to the sink's negotiated MaxWriteSize and is then fixed
// for the remainder of the transfer. A nil progress callback is permitted.
//
// Failures propagate immediately with no retry: a source failure (including a
// premature end of stream) wraps shuttle.ErrSourceRead, a sink failure wraps
// shuttle.ErrSinkWrite, and a write persisting fewer bytes than requested
// without its own error wraps shuttle.ErrShortWrite.
func (e *Engine) Run(source shuttle.Source, sink shuttle.Sink, writeSize int64, progress shuttle.ProgressFunc) (Result, error) {
	if writeSize <= 0 {
		return Result{}, fmt.Errorf("%w: write size must be positive, got %d", shuttle.ErrInvalidWriteSize, writeSize)
	}

	total, err := source.Size()
	if err != nil {
		return Result{}, utils.WrapSourceReadError(err)
	}
	if total < 0 {
		return Result{}, utils.WrapSourceReadError(fmt.Errorf("source reports negative size %d", total))
	}

	// The negotiated maximum is only known once the sink session is open, so
	// the clamp happens here rather than at size-parse time. Requested sizes
	// above the maximum clamp silently.
	if max := sink.MaxWriteSize(); max > 0 && writeSize > max {
		writeSize = max
	}

	e.counters = Counters{}
	buf := make([]byte, writeSize)

	start := time.Now()
	for e.counters.Bytes < total {
		want := writeSize
		if remaining := total - e.counters.Bytes; remaining < want {
			want = remaining
		}

		if _, err := io.ReadFull(source, buf[:want]); err != nil {
			return Result{}, utils.WrapSourceReadError(err)
		}

		n, err := sink.Write(buf[:want])
		if err != nil {
			return Result{}, utils.WrapSinkWriteError(err)
		}
		if int64(n) < want {
			return Result{}, fmt.Errorf("%w: persisted %d of %d bytes", shuttle.ErrShortWrite, n, want)
		}

		e.counters.Bytes += int64(n)
		e.counters.Ops++

		if progress != nil {
			progress(shuttle.Progress{
				Bytes: e.counters.Bytes,
				Total: total,
				Ops:   e.counters.Ops,
			})
		}
	}

	return Summarize(e.counters, time.Since(start)), nil
}
