package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/transfer"
)

// progressPrinter rewrites a single console line per write operation.
type progressPrinter struct {
	w       io.Writer
	written bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

func (p *progressPrinter) update(ev shuttle.Progress) {
	p.written = true
	pct := 0.0
	if ev.Total > 0 {
		pct = float64(ev.Bytes) / float64(ev.Total) * 100
	}
	fmt.Fprintf(p.w, "\rProgress: %.1f%% (%s/%s bytes) - operations: %d",
		pct, humanize.Comma(ev.Bytes), humanize.Comma(ev.Total), ev.Ops)
}

// finish terminates the progress line, if one was started.
func (p *progressPrinter) finish() {
	if p.written {
		fmt.Fprintln(p.w)
	}
}

// printSummary writes the final performance block.
func printSummary(w io.Writer, r transfer.Result) {
	color.New(color.FgGreen, color.Bold).Fprintln(w, "\n=== Transfer Complete ===")
	fmt.Fprintf(w, "Total time:            %.2fs\n", r.Elapsed.Seconds())
	fmt.Fprintf(w, "Bytes written:         %s (%s)\n", humanize.Comma(r.Bytes), humanize.IBytes(uint64(r.Bytes)))
	fmt.Fprintf(w, "Write operations:      %s\n", humanize.Comma(r.Ops))
	fmt.Fprintf(w, "Average write size:    %s\n", humanize.IBytes(uint64(r.AvgWriteSize)))
	fmt.Fprintf(w, "Throughput:            %s/s\n", humanize.IBytes(uint64(r.BytesPerSec)))
	fmt.Fprintf(w, "Operations per second: %.1f\n", r.OpsPerSec)
}
