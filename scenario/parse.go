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

package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/isa"
)

// InvalidExpectation is the pattern of the error returned by
// ParseExpectation().
const InvalidExpectation = "scenario: expectation: %v"

// ParseExpectation parses a comma separated list of literal expectations.
// For example:
//
//	pc=0x0e, r1=0x03e8, mem[1000]=0xbe
//
// Numbers can be given in any base understood by the Go language.
func ParseExpectation(s string) (Expectation, error) {
	var exp Expectation

	for _, term := range strings.Split(s, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		name, value, ok := strings.Cut(term, "=")
		if !ok {
			return Expectation{}, curated.Errorf(InvalidExpectation, fmt.Sprintf("missing value (%s)", term))
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		switch {
		case name == "pc":
			v, err := strconv.ParseUint(value, 0, 16)
			if err != nil {
				return Expectation{}, curated.Errorf(InvalidExpectation, err)
			}
			exp.CheckPC = true
			exp.PC = uint16(v)

		case strings.HasPrefix(name, "mem[") && strings.HasSuffix(name, "]"):
			a, err := strconv.ParseUint(name[4:len(name)-1], 0, 16)
			if err != nil {
				return Expectation{}, curated.Errorf(InvalidExpectation, err)
			}
			v, err := strconv.ParseUint(value, 0, 8)
			if err != nil {
				return Expectation{}, curated.Errorf(InvalidExpectation, err)
			}
			if exp.Memory == nil {
				exp.Memory = make(map[int]uint8)
			}
			exp.Memory[int(a)] = uint8(v)

		case strings.HasPrefix(name, "r"):
			r, err := strconv.Atoi(name[1:])
			if err != nil || r < 0 || r >= isa.NumRegisters {
				return Expectation{}, curated.Errorf(InvalidExpectation, fmt.Sprintf("no register %s", name))
			}
			v, err := strconv.ParseUint(value, 0, 16)
			if err != nil {
				return Expectation{}, curated.Errorf(InvalidExpectation, err)
			}
			if exp.Registers == nil {
				exp.Registers = make(map[int]uint16)
			}
			exp.Registers[r] = uint16(v)

		default:
			return Expectation{}, curated.Errorf(InvalidExpectation, fmt.Sprintf("unknown field (%s)", name))
		}
	}

	return exp, nil
}

// Merge the literal expectations of o into exp. Values in o replace values in
// exp. The reference state of o is used if it has one.
func (exp Expectation) Merge(o Expectation) Expectation {
	m := Expectation{
		CheckPC:   exp.CheckPC,
		PC:        exp.PC,
		Reference: exp.Reference,
	}

	if o.CheckPC {
		m.CheckPC = true
		m.PC = o.PC
	}
	if o.Reference != nil {
		m.Reference = o.Reference
	}

	for _, src := range []map[int]uint16{exp.Registers, o.Registers} {
		for r, v := range src {
			if m.Registers == nil {
				m.Registers = make(map[int]uint16)
			}
			m.Registers[r] = v
		}
	}
	for _, src := range []map[int]uint8{exp.Memory, o.Memory} {
		for a, v := range src {
			if m.Memory == nil {
				m.Memory = make(map[int]uint8)
			}
			m.Memory[a] = v
		}
	}

	return m
}
