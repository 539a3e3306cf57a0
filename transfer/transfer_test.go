package transfer

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shuttlefs/shuttle"
)

/**********************************
 ************TESTS*****************
 **********************************/

type transferTestSuite struct {
	suite.Suite
}

// fakeSource produces a deterministic byte pattern up to size bytes. It can be
// told to fail after a number of successful reads or to end prematurely.
type fakeSource struct {
	size       int64
	offset     int64
	reads      int
	failReadAt int   // 1-based read index to fail on; 0 disables
	readErr    error // error returned at failReadAt
	truncateAt int64 // report size but end the stream at this offset; 0 disables
}

func (s *fakeSource) Size() (int64, error) { return s.size, nil }

func (s *fakeSource) Read(p []byte) (int, error) {
	s.reads++
	if s.failReadAt > 0 && s.reads >= s.failReadAt {
		return 0, s.readErr
	}

	end := s.size
	if s.truncateAt > 0 && s.truncateAt < end {
		end = s.truncateAt
	}
	if s.offset >= end {
		return 0, io.EOF
	}

	n := int64(len(p))
	if remaining := end - s.offset; remaining < n {
		n = remaining
	}
	for i := int64(0); i < n; i++ {
		p[i] = byte((s.offset + i) % 251)
	}
	s.offset += n
	return int(n), nil
}

func (s *fakeSource) Close() error   { return nil }
func (s *fakeSource) String() string { return "fake://source" }

// fakeSink records per-write sizes. It can fail or short-write on a given
// 1-based operation index.
type fakeSink struct {
	max          int64
	writeSizes   []int
	failWriteAt  int
	writeErr     error
	shortWriteAt int
	verify       bool // check the byte pattern lines up with the write offset
	offset       int64
	t            *testing.T
}

func (s *fakeSink) Write(p []byte) (int, error) {
	op := len(s.writeSizes) + 1
	if s.failWriteAt > 0 && op >= s.failWriteAt {
		return 0, s.writeErr
	}
	if s.shortWriteAt > 0 && op >= s.shortWriteAt {
		n := len(p) / 2
		s.writeSizes = append(s.writeSizes, n)
		s.offset += int64(n)
		return n, nil
	}
	if s.verify {
		for i := range p {
			if p[i] != byte((s.offset+int64(i))%251) {
				s.t.Fatalf("byte %d out of order", s.offset+int64(i))
			}
		}
	}
	s.writeSizes = append(s.writeSizes, len(p))
	s.offset += int64(len(p))
	return len(p), nil
}

func (s *fakeSink) MaxWriteSize() int64 { return s.max }
func (s *fakeSink) Close() error        { return nil }
func (s *fakeSink) String() string      { return "fake://sink" }

func (ts *transferTestSuite) TestOperationCounts() {
	tests := []struct {
		total     int64
		writeSize int64
		wantOps   int64
		message   string
	}{
		{0, 65536, 0, "zero-length source"},
		{10, 65536, 1, "write size larger than source"},
		{100, 30, 4, "uneven final write"},
		{300, 30, 10, "exact multiple"},
		{1073741824, 262144, 4096, "1GiB in 256KB writes"},
		{1073741824, 16384, 65536, "1GiB in 16KB writes"},
	}

	for _, test := range tests {
		src := &fakeSource{size: test.total}
		snk := &fakeSink{max: 1 << 30}

		eng := NewEngine()
		result, err := eng.Run(src, snk, test.writeSize, nil)
		ts.Require().NoError(err, test.message)

		ts.Equal(test.wantOps, result.Ops, test.message)
		ts.Equal(test.total, result.Bytes, test.message)
		ts.Equal(Counters{Bytes: test.total, Ops: test.wantOps}, eng.Counters(), test.message)

		// per-operation sizes must sum exactly to the total with no overshoot
		var sum int64
		for i, n := range snk.writeSizes {
			sum += int64(n)
			if i < len(snk.writeSizes)-1 {
				ts.Equal(test.writeSize, int64(n), test.message)
			}
		}
		ts.Equal(test.total, sum, test.message)

		if test.wantOps > 0 {
			ts.Equal(float64(test.total)/float64(test.wantOps), result.AvgWriteSize, test.message)
		} else {
			ts.Zero(result.AvgWriteSize, test.message)
			ts.Zero(result.BytesPerSec, test.message)
			ts.Zero(result.OpsPerSec, test.message)
		}
	}
}

func (ts *transferTestSuite) TestWritesStayInSourceOrder() {
	src := &fakeSource{size: 100000}
	snk := &fakeSink{max: 1 << 30, verify: true, t: ts.T()}

	result, err := NewEngine().Run(src, snk, 4096, nil)
	ts.Require().NoError(err)
	ts.Equal(int64(100000), result.Bytes)
}

func (ts *transferTestSuite) TestClampsToSinkMax() {
	src := &fakeSource{size: 1 << 20}
	snk := &fakeSink{max: 65536}

	result, err := NewEngine().Run(src, snk, 1<<20, nil)
	ts.Require().NoError(err)

	// requested size above the negotiated max clamps silently
	ts.Equal(int64(16), result.Ops)
	for _, n := range snk.writeSizes {
		ts.LessOrEqual(n, 65536)
	}
}

func (ts *transferTestSuite) TestInvalidWriteSize() {
	src := &fakeSource{size: 10}
	snk := &fakeSink{max: 1 << 20}

	for _, size := range []int64{0, -1} {
		_, err := NewEngine().Run(src, snk, size, nil)
		ts.Require().ErrorIs(err, shuttle.ErrInvalidWriteSize)
	}
}

func (ts *transferTestSuite) TestProgressEvents() {
	src := &fakeSource{size: 100}
	snk := &fakeSink{max: 1 << 20}

	var events []shuttle.Progress
	_, err := NewEngine().Run(src, snk, 30, func(p shuttle.Progress) {
		events = append(events, p)
	})
	ts.Require().NoError(err)

	ts.Len(events, 4, "one event per successful write")
	var prev int64
	for i, ev := range events {
		ts.Equal(int64(100), ev.Total)
		ts.Equal(int64(i+1), ev.Ops)
		ts.Greater(ev.Bytes, prev, "bytes are monotonically increasing")
		prev = ev.Bytes
	}
	ts.Equal(int64(100), events[len(events)-1].Bytes)
}

func (ts *transferTestSuite) TestShortWrite() {
	src := &fakeSource{size: 100}
	snk := &fakeSink{max: 1 << 20, shortWriteAt: 3}

	eng := NewEngine()
	_, err := eng.Run(src, snk, 30, nil)
	ts.Require().ErrorIs(err, shuttle.ErrShortWrite)

	// counters reflect only writes confirmed before the short write
	ts.Equal(Counters{Bytes: 60, Ops: 2}, eng.Counters())
}

func (ts *transferTestSuite) TestSourceReadFailure() {
	someErr := errors.New("connection reset")
	src := &fakeSource{size: 100, failReadAt: 4, readErr: someErr}
	snk := &fakeSink{max: 1 << 20}

	eng := NewEngine()
	_, err := eng.Run(src, snk, 30, nil)
	ts.Require().ErrorIs(err, shuttle.ErrSourceRead)
	ts.Require().ErrorIs(err, someErr, "cause is preserved")

	// exactly 3 operations' worth of bytes, no more
	ts.Equal(Counters{Bytes: 90, Ops: 3}, eng.Counters())
}

func (ts *transferTestSuite) TestSinkWriteFailure() {
	someErr := errors.New("permission denied")
	src := &fakeSource{size: 100}
	snk := &fakeSink{max: 1 << 20, failWriteAt: 2, writeErr: someErr}

	eng := NewEngine()
	_, err := eng.Run(src, snk, 30, nil)
	ts.Require().ErrorIs(err, shuttle.ErrSinkWrite)
	ts.Require().ErrorIs(err, someErr, "cause is preserved")
	ts.Equal(Counters{Bytes: 30, Ops: 1}, eng.Counters())
}

func (ts *transferTestSuite) TestPrematureEndOfStream() {
	// source claims 100 bytes but the stream ends at 50
	src := &fakeSource{size: 100, truncateAt: 50}
	snk := &fakeSink{max: 1 << 20}

	_, err := NewEngine().Run(src, snk, 30, nil)
	ts.Require().ErrorIs(err, shuttle.ErrSourceRead)
}

func TestTransfer(t *testing.T) {
	suite.Run(t, new(transferTestSuite))
}
