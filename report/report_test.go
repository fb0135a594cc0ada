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

package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mrav/corebench/report"
	"github.com/mrav/corebench/scenario"
	"github.com/mrav/corebench/snapshot"
	"github.com/mrav/corebench/terminal/ansi"
	"github.com/mrav/corebench/test"
)

func result() (scenario.Result, scenario.Expectation) {
	var final snapshot.Core
	final.PC = 0x0e
	final.R[1] = 0x03e8
	final.R[2] = 0xbeef

	mem := make([]uint8, 1024)
	mem[1000] = 0xbe
	mem[1001] = 0xef

	exp := scenario.Expectation{
		Registers: map[int]uint16{1: 0x03e8, 2: 0xbeef},
		Memory:    map[int]uint8{1000: 0xbe, 1001: 0xef},
	}

	res := scenario.Result{
		Final:  final,
		Memory: mem,
		Cycles: 15,
		Reads:  9,
		Writes: 1,
	}
	res.Mismatches = exp.Check(res.Final, res.Memory)

	return res, exp
}

func TestPass(t *testing.T) {
	res, exp := result()

	var b bytes.Buffer
	test.ExpectSuccess(t, report.Write(&b, res, exp, false))
	test.ExpectEquality(t, b.String(), "PASS: 15 cycles, 9 reads, 1 writes\n"+
		"(PC = 000E, r = [1:03E8 2:BEEF])\n"+
		"memory:\n"+
		"  03E8: BE (expected BE)\n"+
		"  03E9: EF (expected EF)\n")
}

func TestFail(t *testing.T) {
	res, exp := result()
	exp.Registers[2] = 0xffff
	exp.Memory[1001] = 0x00
	res.Mismatches = exp.Check(res.Final, res.Memory)

	var b bytes.Buffer
	test.ExpectSuccess(t, report.Write(&b, res, exp, false))

	s := b.String()
	test.ExpectEquality(t, strings.HasPrefix(s, "FAIL: 15 cycles"), true)
	test.ExpectEquality(t, strings.Contains(s, "  literal r2: expected FFFF got BEEF\n"), true)
	test.ExpectEquality(t, strings.Contains(s, " *03E9: EF (expected 00)\n"), true)
	test.ExpectEquality(t, strings.Contains(s, "reference"), false)
}

func TestReferenceDiff(t *testing.T) {
	res, exp := result()
	ref := res.Final
	ref.PC = 0x12
	exp.Reference = &ref
	exp.Memory = nil
	res.Mismatches = exp.Check(res.Final, res.Memory)
	test.DemandEquality(t, len(res.Mismatches), 1)

	var b bytes.Buffer
	test.ExpectSuccess(t, report.Write(&b, res, exp, false))

	s := b.String()
	test.ExpectEquality(t, strings.Contains(s, "  reference pc: expected 0012 got 000E\n"), true)
	test.ExpectEquality(t, strings.Contains(s, "reference (-expected +actual):\n"), true)
	test.ExpectEquality(t, strings.Contains(s, "PC:"), true)
	test.ExpectEquality(t, strings.Contains(s, "memory:"), false)
}

func TestNoExpectation(t *testing.T) {
	res, _ := result()

	var b bytes.Buffer
	test.ExpectSuccess(t, report.Write(&b, res, scenario.Expectation{}, false))
	test.ExpectEquality(t, b.String(), "DONE: 15 cycles, 9 reads, 1 writes\n"+
		"(PC = 000E, r = [0:0000 1:03E8 2:BEEF 3:0000 4:0000 5:0000 6:0000 7:0000 8:0000 9:0000 10:0000 11:0000 12:0000 13:0000 14:0000 15:0000])\n")
}

func TestColor(t *testing.T) {
	res, exp := result()

	var b bytes.Buffer
	test.ExpectSuccess(t, report.Write(&b, res, exp, true))
	test.ExpectEquality(t, strings.HasPrefix(b.String(), ansi.Pens["green"]+"PASS"+ansi.NormalPen), true)
}

func TestGraph(t *testing.T) {
	res, _ := result()

	var b bytes.Buffer
	report.WriteGraph(&b, &res.Final)
	test.ExpectEquality(t, strings.Contains(b.String(), "digraph"), true)
}
