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

// Package model is an instruction level model of the mrav core. It executes
// one complete instruction per call to Step() with no notion of bus timing and
// is used to compute reference states for the cycle level simulation.
package model

import (
	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/logger"
	"github.com/mrav/corebench/snapshot"
)

// MemoryFault is the pattern of the error returned by Step() when an
// instruction fetch, load or store falls outside of memory.
const MemoryFault = "model: %s at %#04x is out of bounds (memory size %d)"

// Core is the architectural state of the mrav core.
type Core struct {
	PC uint16
	R  [isa.NumRegisters]uint16

	// number of instructions executed
	Instructions int

	// log every instruction executed
	Verbose bool
}

// NewCore returns a core in the reset state.
func NewCore() *Core {
	return &Core{}
}

// Reset puts the program counter and all registers to zero.
func (c *Core) Reset() {
	c.PC = 0
	clear(c.R[:])
	c.Instructions = 0
}

// AllowLogging implements the logger.Permission interface.
func (c *Core) AllowLogging() bool {
	return c.Verbose
}

func (c *Core) String() string {
	return c.Snapshot().String(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
}

// Snapshot returns the current state of the core.
func (c *Core) Snapshot() snapshot.Core {
	return snapshot.Core{PC: c.PC, R: c.R}
}

func load(mem []uint8, address uint16, what string) (uint16, error) {
	a := int(address)
	if a+1 >= len(mem) {
		return 0, curated.Errorf(MemoryFault, what, address, len(mem))
	}
	return uint16(mem[a])<<8 | uint16(mem[a+1]), nil
}

// Step executes a single instruction against mem.
func (c *Core) Step(mem []uint8) error {
	w, err := load(mem, c.PC, "fetch")
	if err != nil {
		return err
	}

	ins := isa.Instruction(w)
	logger.Logf(c, "model", "%04X: %s", c.PC, ins)

	rd := ins.Rd()
	rs1 := ins.Rs1()

	switch ins.Opcode() {
	case isa.LW:
		v, err := load(mem, c.R[rs1], "load")
		if err != nil {
			return err
		}
		c.R[rd] = v
	case isa.SW:
		a := int(c.R[rd])
		if a+1 >= len(mem) {
			return curated.Errorf(MemoryFault, "store", c.R[rd], len(mem))
		}
		mem[a] = uint8(c.R[rs1] >> 8)
		mem[a+1] = uint8(c.R[rs1])
	}

	c.PC = ins.Execute(&c.R, c.PC)
	c.Instructions++

	return nil
}

// Run executes n instructions against mem. Execution stops at the first error.
func (c *Core) Run(mem []uint8, n int) error {
	for i := 0; i < n; i++ {
		if err := c.Step(mem); err != nil {
			return curated.Errorf("model: instruction %d: %v", c.Instructions, err)
		}
	}
	return nil
}
