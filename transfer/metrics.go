package transfer

import "time"

// Counters accumulates per-transfer totals. Both fields are monotonically
// non-decreasing for the duration of one transfer; Ops is incremented exactly
// once per successful write.
type Counters struct {
	Bytes int64
	Ops   int64
}

// Result is the immutable record of a completed transfer.
type Result struct {
	Bytes   int64
	Ops     int64
	Elapsed time.Duration

	AvgWriteSize float64 // bytes per write operation
	BytesPerSec  float64
	OpsPerSec    float64
}

// Summarize derives a Result from frozen counters and an elapsed wall-clock
// duration. It is pure and never fails: degenerate inputs (zero-length
// transfer, zero elapsed time) yield zero rates rather than division errors,
// because reporting must never abort a transfer that otherwise succeeded.
func Summarize(c Counters, elapsed time.Duration) Result {
	r := Result{
		Bytes:   c.Bytes,
		Ops:     c.Ops,
		Elapsed: elapsed,
	}

	if c.Ops > 0 {
		r.AvgWriteSize = float64(c.Bytes) / float64(c.Ops)
	}

	secs := elapsed.Seconds()
	if secs > 0 && c.Bytes > 0 {
		r.BytesPerSec = float64(c.Bytes) / secs
		r.OpsPerSec = float64(c.Ops) / secs
	}

	return r
}
