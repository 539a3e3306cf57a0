package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

/**********************************
 ************TESTS*****************
 **********************************/

type metricsTestSuite struct {
	suite.Suite
}

func (ts *metricsTestSuite) TestSummarize() {
	tests := []struct {
		counters Counters
		elapsed  time.Duration
		want     Result
		message  string
	}{
		{
			counters: Counters{Bytes: 1048576, Ops: 4},
			elapsed:  2 * time.Second,
			want: Result{
				Bytes:        1048576,
				Ops:          4,
				Elapsed:      2 * time.Second,
				AvgWriteSize: 262144,
				BytesPerSec:  524288,
				OpsPerSec:    2,
			},
			message: "normal derivation",
		},
		{
			counters: Counters{},
			elapsed:  time.Second,
			want:     Result{Elapsed: time.Second},
			message:  "zero-length transfer yields zero rates, not division errors",
		},
		{
			counters: Counters{Bytes: 100, Ops: 1},
			elapsed:  0,
			want:     Result{Bytes: 100, Ops: 1, AvgWriteSize: 100},
			message:  "zero elapsed yields zero rates",
		},
		{
			counters: Counters{Bytes: 100, Ops: 1},
			elapsed:  -time.Second,
			want:     Result{Bytes: 100, Ops: 1, Elapsed: -time.Second, AvgWriteSize: 100},
			message:  "negative elapsed yields zero rates",
		},
	}

	for _, test := range tests {
		ts.Equal(test.want, Summarize(test.counters, test.elapsed), test.message)
	}
}

func (ts *metricsTestSuite) TestSummarizeIsIdempotent() {
	c := Counters{Bytes: 1073741824, Ops: 4096}
	elapsed := 3700 * time.Millisecond

	first := Summarize(c, elapsed)
	second := Summarize(c, elapsed)
	ts.Equal(first, second, "same frozen counters yield identical results")
	ts.Equal(float64(262144), first.AvgWriteSize)
}

func TestMetrics(t *testing.T) {
	suite.Run(t, new(metricsTestSuite))
}
