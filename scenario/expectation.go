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
	"slices"
	"strings"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/snapshot"
)

// AssertionMismatch is the pattern of the error returned by Result.Verdict()
// when the final state does not meet the expectation.
const AssertionMismatch = "scenario: %d mismatches: %s"

// Expectation is the state the device and memory should be in at the end of
// the scenario. Any combination of literal values and a reference state can
// be given.
type Expectation struct {
	CheckPC bool
	PC      uint16

	// register index to value
	Registers map[int]uint16

	// memory address to byte
	Memory map[int]uint8

	// compared field by field with the final snapshot
	Reference *snapshot.Core
}

// Empty returns true if the expectation doesn't check anything.
func (exp Expectation) Empty() bool {
	return !exp.CheckPC && len(exp.Registers) == 0 && len(exp.Memory) == 0 && exp.Reference == nil
}

// Validate checks that every register and memory address in the expectation
// exists.
func (exp Expectation) Validate(memorySize int) error {
	for r := range exp.Registers {
		if r < 0 || r >= isa.NumRegisters {
			return curated.Errorf(InvalidConfig, fmt.Sprintf("no register r%d", r))
		}
	}
	for a := range exp.Memory {
		if a < 0 || a >= memorySize {
			return curated.Errorf(InvalidConfig, fmt.Sprintf("memory address %d out of range", a))
		}
	}
	return nil
}

// Watched returns the register indexes named by the expectation in ascending
// order. If no registers are named then all registers are returned.
func (exp Expectation) Watched() []int {
	var w []int
	for r := range exp.Registers {
		w = append(w, r)
	}
	if len(w) == 0 {
		for r := range isa.NumRegisters {
			w = append(w, r)
		}
	}
	slices.Sort(w)
	return w
}

// Mismatch is a single failed expectation.
type Mismatch struct {
	// "literal" or "reference"
	Source string

	// "pc", "r1", "mem[1000]"
	Field string

	Expected uint16
	Actual   uint16

	// the field is a single byte
	Byte bool
}

func (m Mismatch) String() string {
	if m.Byte {
		return fmt.Sprintf("%s %s: expected %02X got %02X", m.Source, m.Field, m.Expected, m.Actual)
	}
	return fmt.Sprintf("%s %s: expected %04X got %04X", m.Source, m.Field, m.Expected, m.Actual)
}

// Check the final snapshot and memory against the expectation. Literal
// expectations are listed first, in the order pc, registers, memory. Then
// any differences with the reference state.
func (exp Expectation) Check(final snapshot.Core, mem []uint8) []Mismatch {
	var m []Mismatch

	if exp.CheckPC && final.PC != exp.PC {
		m = append(m, Mismatch{Source: "literal", Field: "pc", Expected: exp.PC, Actual: final.PC})
	}

	regs := make([]int, 0, len(exp.Registers))
	for r := range exp.Registers {
		regs = append(regs, r)
	}
	slices.Sort(regs)
	for _, r := range regs {
		if r < 0 || r >= len(final.R) {
			continue
		}
		if final.R[r] != exp.Registers[r] {
			m = append(m, Mismatch{Source: "literal", Field: fmt.Sprintf("r%d", r), Expected: exp.Registers[r], Actual: final.R[r]})
		}
	}

	addrs := make([]int, 0, len(exp.Memory))
	for a := range exp.Memory {
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)
	for _, a := range addrs {
		var v uint8
		if a >= 0 && a < len(mem) {
			v = mem[a]
		}
		if v != exp.Memory[a] {
			m = append(m, Mismatch{Source: "literal", Field: fmt.Sprintf("mem[%d]", a), Expected: uint16(exp.Memory[a]), Actual: uint16(v), Byte: true})
		}
	}

	if exp.Reference != nil {
		for _, d := range exp.Reference.Diff(final) {
			m = append(m, Mismatch{Source: "reference", Field: d.Field, Expected: d.Expected, Actual: d.Actual})
		}
	}

	return m
}

// Result of a scenario.
type Result struct {
	// state of the device at the last sample
	Final snapshot.Core

	// copy of memory at the end of the scenario
	Memory []uint8

	// number of cycles run after reset
	Cycles int

	// number of bus transactions serviced
	Reads  int
	Writes int

	Mismatches []Mismatch
}

// Passed returns true if there are no mismatches.
func (res Result) Passed() bool {
	return len(res.Mismatches) == 0
}

// Verdict returns an AssertionMismatch error if there are any mismatches.
func (res Result) Verdict() error {
	if res.Passed() {
		return nil
	}
	s := make([]string, len(res.Mismatches))
	for i, m := range res.Mismatches {
		s[i] = m.String()
	}
	return curated.Errorf(AssertionMismatch, len(res.Mismatches), strings.Join(s, "; "))
}
