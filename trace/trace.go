// This file is part of corebench.
//
// corebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// corebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with corebench.  If not, see <https://www.gnu.org/licenses/>.

// Package trace writes the bus signals of a running scenario as a waveform.
// The Writer type is a scheduler.Observer and records the signals after every
// phase, writing only the signals that have changed.
//
// Only the Value Change Dump format is written. It is the format produced by
// the verilator simulator and can be viewed with any waveform viewer.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/bus"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/simulator"
)

// UnsupportedFormat is the pattern of the error returned by NewWriter() when
// the format cannot be written.
const UnsupportedFormat = "trace: %s format is not supported"

// Probe gives the Writer access to the bus.
type Probe interface {
	Bus() *bus.Signals
}

// ResetProbe is implemented by devices that can report the state of the
// reset line. The rst_n signal is only traced for these devices.
type ResetProbe interface {
	ResetAsserted() bool
}

type signal struct {
	name  string
	width int
	id    string
	value func() uint64
	last  uint64
}

// Writer implements the scheduler.Observer interface.
type Writer struct {
	w       *bufio.Writer
	signals []*signal
	clk     bool

	time uint64

	// the first write error. once an error has occurred nothing more is
	// written
	err error
}

// NewWriter is the preferred method of initialisation for the Writer type. The
// header and the initial values of every signal are written immediately. The
// scope is the name of the module the signals are shown under.
func NewWriter(w io.Writer, format simulator.TraceFormat, scope string, probe Probe) (*Writer, error) {
	if format != simulator.VCD {
		return nil, curated.Errorf(UnsupportedFormat, format)
	}

	tw := &Writer{
		w: bufio.NewWriter(w),
	}

	sig := probe.Bus()

	tw.add("clk", 1, func() uint64 { return b2u(tw.clk) })
	if rp, ok := probe.(ResetProbe); ok {
		tw.add("rst_n", 1, func() uint64 { return b2u(!rp.ResetAsserted()) })
	}
	tw.add("addr", 16, func() uint64 { return uint64(sig.Addr) })
	tw.add("read", 1, func() uint64 { return b2u(sig.Read) })
	tw.add("write", 1, func() uint64 { return b2u(sig.Write) })
	tw.add("data_in", 16, func() uint64 { return uint64(sig.DataIn) })
	tw.add("data_out", 16, func() uint64 { return uint64(sig.DataOut) })
	tw.add("read_done", 1, func() uint64 { return b2u(sig.ReadDone) })
	tw.add("write_done", 1, func() uint64 { return b2u(sig.WriteDone) })

	tw.printf("$version corebench $end\n")
	tw.printf("$timescale 1ns $end\n")
	tw.printf("$scope module %s $end\n", scope)
	for _, s := range tw.signals {
		if s.width == 1 {
			tw.printf("$var wire 1 %s %s $end\n", s.id, s.name)
		} else {
			tw.printf("$var wire %d %s %s [%d:0] $end\n", s.width, s.id, s.name, s.width-1)
		}
	}
	tw.printf("$upscope $end\n")
	tw.printf("$enddefinitions $end\n")

	tw.printf("#0\n$dumpvars\n")
	for _, s := range tw.signals {
		s.last = s.value()
		tw.value(s)
	}
	tw.printf("$end\n")

	if tw.err != nil {
		return nil, tw.err
	}

	return tw, nil
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// identifiers are printable ASCII characters starting from '!'
func (tw *Writer) add(name string, width int, value func() uint64) {
	tw.signals = append(tw.signals, &signal{
		name:  name,
		width: width,
		id:    string(rune('!' + len(tw.signals))),
		value: value,
	})
}

func (tw *Writer) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	if _, err := fmt.Fprintf(tw.w, format, args...); err != nil {
		tw.err = curated.Errorf("trace: %v", err)
	}
}

func (tw *Writer) value(s *signal) {
	if s.width == 1 {
		tw.printf("%d%s\n", s.last, s.id)
		return
	}
	tw.printf("b%s %s\n", strconv.FormatUint(s.last, 2), s.id)
}

// Observe implements the scheduler.Observer interface.
func (tw *Writer) Observe(phase scheduler.Phase, time uint64) {
	switch phase {
	case scheduler.RisingEdge:
		tw.clk = true
	case scheduler.FallingEdge:
		tw.clk = false
	}

	stamped := false
	for _, s := range tw.signals {
		v := s.value()
		if v == s.last {
			continue
		}
		if !stamped && time != tw.time {
			tw.printf("#%d\n", time)
			tw.time = time
		}
		stamped = true
		s.last = v
		tw.value(s)
	}
}

// Flush any buffered output. Returns the first error encountered while
// writing the trace.
func (tw *Writer) Flush() error {
	if tw.err != nil {
		return tw.err
	}
	if err := tw.w.Flush(); err != nil {
		tw.err = curated.Errorf("trace: %v", err)
	}
	return tw.err
}
