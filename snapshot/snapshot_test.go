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

package snapshot_test

import (
	"testing"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/snapshot"
	"github.com/mrav/corebench/test"
)

type clock scheduler.Phase

func (c clock) Phase() scheduler.Phase {
	return scheduler.Phase(c)
}

type source struct {
	pc uint16
	r  [16]uint16
}

func (s *source) PC() uint16 {
	return s.pc
}

func (s *source) Register(i int) uint16 {
	return s.r[i]
}

func TestCapture(t *testing.T) {
	src := &source{pc: 0x000e}
	src.r[1] = 0x03e8
	src.r[2] = 0xbeef

	c, err := snapshot.Capture(clock(scheduler.ReadOnly), src)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.PC, uint16(0x000e))
	test.ExpectEquality(t, c.R[1], uint16(0x03e8))
	test.ExpectEquality(t, c.R[2], uint16(0xbeef))

	// the snapshot is a copy
	src.r[1] = 0
	test.ExpectEquality(t, c.R[1], uint16(0x03e8))

	for _, p := range []scheduler.Phase{scheduler.RisingEdge, scheduler.ReadWrite, scheduler.FallingEdge, scheduler.Halt} {
		_, err := snapshot.Capture(clock(p), src)
		test.ExpectSuccess(t, curated.Is(err, snapshot.TornSample), p)
	}
}

func TestString(t *testing.T) {
	var c snapshot.Core
	c.PC = 0x000e
	c.R[1] = 0x03e8
	c.R[2] = 0xbeef
	c.R[15] = 0x00ff

	test.ExpectEquality(t, c.String(1, 2), "(PC = 000E, r = [1:03E8 2:BEEF])")
	test.ExpectEquality(t, c.String(2, 1, 2, 99, -1), "(PC = 000E, r = [1:03E8 2:BEEF])")
	test.ExpectEquality(t, c.String(), "(PC = 000E, r = [])")
	test.ExpectEquality(t, c.String(15, 0), "(PC = 000E, r = [0:0000 15:00FF])")
}

func TestEqualAndDiff(t *testing.T) {
	var a, b snapshot.Core
	a.PC = 0x12
	a.R[3] = 1
	b = a

	test.ExpectSuccess(t, a.Equal(b))
	test.ExpectEquality(t, len(a.Diff(b)), 0)

	b.R[3] = 2
	b.R[15] = 0xffff
	b.PC = 0x14
	test.ExpectFailure(t, a.Equal(b))

	d := a.Diff(b)
	test.DemandEquality(t, len(d), 3)
	test.ExpectEquality(t, d[0].String(), "pc: expected 0012 got 0014")
	test.ExpectEquality(t, d[1].String(), "r3: expected 0001 got 0002")
	test.ExpectEquality(t, d[2].Field, "r15")
}
