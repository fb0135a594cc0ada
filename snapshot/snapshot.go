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

// Package snapshot records the architectural state of a core. A Core is a
// plain value and can be compared with the == operator.
//
// Sampling the state of a cycle level device is only meaningful once the
// signals have settled, which is the read-only phase of the scheduler. The
// Capture() function enforces this.
package snapshot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/isa"
)

// TornSample is the pattern of the error returned by Capture() when called
// outside of the read-only phase.
const TornSample = "snapshot: cannot sample core during %s phase"

// Core is the program counter and the general purpose registers of an mrav
// core.
type Core struct {
	PC uint16
	R  [isa.NumRegisters]uint16
}

// Source is implemented by anything that exposes the state of a core.
type Source interface {
	PC() uint16
	Register(i int) uint16
}

// Clock reports the current phase of the simulation.
type Clock interface {
	Phase() scheduler.Phase
}

// Capture the state of src. The clock must be in the read-only phase.
func Capture(clk Clock, src Source) (Core, error) {
	if p := clk.Phase(); p != scheduler.ReadOnly {
		return Core{}, curated.Errorf(TornSample, p)
	}

	c := Core{PC: src.PC()}
	for i := range c.R {
		c.R[i] = src.Register(i)
	}

	return c, nil
}

// String returns the state of the core showing the program counter and the
// requested registers. For example:
//
//	(PC = 000E, r = [1:03E8 2:BEEF])
//
// Registers are listed in ascending order. Duplicate and out of range indexes
// are ignored.
func (c Core) String(regs ...int) string {
	idx := make([]int, 0, len(regs))
	for _, r := range regs {
		if r >= 0 && r < len(c.R) {
			idx = append(idx, r)
		}
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("(PC = %04X, r = [", c.PC))
	for i, r := range idx {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%d:%04X", r, c.R[r]))
	}
	s.WriteString("])")

	return s.String()
}

// Equal returns true if the program counter and every register are equal.
func (c Core) Equal(o Core) bool {
	return c == o
}

// Difference is a single field that differs between two snapshots.
type Difference struct {
	Field    string
	Expected uint16
	Actual   uint16
}

func (d Difference) String() string {
	return fmt.Sprintf("%s: expected %04X got %04X", d.Field, d.Expected, d.Actual)
}

// Diff lists the fields that differ between the expected snapshot and the
// actual snapshot. The program counter is listed first and then the registers
// in ascending order.
func (c Core) Diff(actual Core) []Difference {
	var d []Difference

	if c.PC != actual.PC {
		d = append(d, Difference{Field: "pc", Expected: c.PC, Actual: actual.PC})
	}
	for i := range c.R {
		if c.R[i] != actual.R[i] {
			d = append(d, Difference{Field: fmt.Sprintf("r%d", i), Expected: c.R[i], Actual: actual.R[i]})
		}
	}

	return d
}
