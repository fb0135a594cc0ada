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

package scenario_test

import (
	"testing"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/scenario"
	"github.com/mrav/corebench/snapshot"
	"github.com/mrav/corebench/test"
)

func TestParseExpectation(t *testing.T) {
	exp, err := scenario.ParseExpectation("pc=0x0e, r1=0x03e8, R2=48879, mem[1000]=0xbe, mem[0x3e9]=0xef,")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, exp.CheckPC, true)
	test.ExpectEquality(t, exp.PC, uint16(0x0e))
	test.ExpectEquality(t, len(exp.Registers), 2)
	test.ExpectEquality(t, exp.Registers[1], uint16(0x03e8))
	test.ExpectEquality(t, exp.Registers[2], uint16(0xbeef))
	test.ExpectEquality(t, len(exp.Memory), 2)
	test.ExpectEquality(t, exp.Memory[1000], uint8(0xbe))
	test.ExpectEquality(t, exp.Memory[1001], uint8(0xef))

	exp, err = scenario.ParseExpectation("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, exp.Empty(), true)

	for _, s := range []string{
		"pc",
		"pc=0x10000",
		"r16=1",
		"rx=1",
		"r1=-1",
		"mem[1000]=0x100",
		"mem[x]=1",
		"sp=1",
	} {
		_, err := scenario.ParseExpectation(s)
		test.ExpectEquality(t, curated.Is(err, scenario.InvalidExpectation), true, s)
	}
}

func TestMergeExpectation(t *testing.T) {
	a, err := scenario.ParseExpectation("pc=2, r1=1, mem[4]=4")
	test.DemandSuccess(t, err)

	b, err := scenario.ParseExpectation("r1=9, r2=2")
	test.DemandSuccess(t, err)
	b.Reference = &snapshot.Core{PC: 6}

	m := a.Merge(b)
	test.ExpectEquality(t, m.CheckPC, true)
	test.ExpectEquality(t, m.PC, uint16(2))
	test.ExpectEquality(t, m.Registers[1], uint16(9))
	test.ExpectEquality(t, m.Registers[2], uint16(2))
	test.ExpectEquality(t, m.Memory[4], uint8(4))
	test.ExpectEquality(t, m.Reference.PC, uint16(6))

	// the originals are unchanged
	test.ExpectEquality(t, a.Registers[1], uint16(1))
	test.ExpectEquality(t, a.Reference == nil, true)
}
