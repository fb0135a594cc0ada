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

// Package mrav is a behavioural model of the mrav core at the level of its bus
// interface. It is clocked on the rising edge and has a synchronous active low
// reset.
//
// The core powers up idle and does nothing until it sees reset. After reset it
// fetches from address zero. An instruction is executed on the edge where the
// fetch is acknowledged and the fetch of the next instruction is issued on
// that same edge, so instructions that don't access memory take one cycle.
// Loads and stores take an extra cycle for the data transaction.
package mrav

import (
	"fmt"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/bus"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/logger"
)

// IllegalState is the pattern of the error returned by Edge() if the core is
// in an unknown state.
const IllegalState = "mrav: illegal state (%d)"

type state int

const (
	stateIdle state = iota
	stateFetch
	stateWaitFetch
	stateWaitLoad
	stateWaitStore
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateFetch:
		return "fetch"
	case stateWaitFetch:
		return "wait fetch"
	case stateWaitLoad:
		return "wait load"
	case stateWaitStore:
		return "wait store"
	}
	return "unknown"
}

// Core implements the dut.Device interface.
type Core struct {
	sig bus.Signals
	rst bool

	state state
	pc    uint16
	r     [isa.NumRegisters]uint16

	// the instruction being executed
	ir isa.Instruction

	retired int

	// log every instruction as it is executed
	Verbose bool
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore() *Core {
	return &Core{}
}

func (c *Core) String() string {
	return fmt.Sprintf("pc=%04X state=%s %s", c.pc, c.state, c.sig)
}

// AllowLogging implements the logger.Permission interface.
func (c *Core) AllowLogging() bool {
	return c.Verbose
}

// Bus implements the dut.Device interface.
func (c *Core) Bus() *bus.Signals {
	return &c.sig
}

// SetReset implements the dut.Device interface.
func (c *Core) SetReset(asserted bool) {
	c.rst = asserted
}

// ResetAsserted returns true if the reset line is being held low.
func (c *Core) ResetAsserted() bool {
	return c.rst
}

// PC implements the dut.Device interface.
func (c *Core) PC() uint16 {
	return c.pc
}

// Register implements the dut.Device interface.
func (c *Core) Register(i int) uint16 {
	return c.r[i]
}

// Retired returns the number of instructions completed since reset.
func (c *Core) Retired() int {
	return c.retired
}

// Edge implements the scheduler.Clocked interface.
func (c *Core) Edge(rising bool) error {
	if !rising {
		return nil
	}

	if c.rst {
		c.reset()
		return nil
	}

	switch c.state {
	case stateIdle:
		return nil

	case stateFetch:
		c.fetch()

	case stateWaitFetch:
		if !c.sig.ReadDone {
			return nil
		}
		c.ir = isa.Instruction(c.sig.DataIn)
		c.execute()

	case stateWaitLoad:
		if !c.sig.ReadDone {
			return nil
		}
		c.r[c.ir.Rd()] = c.sig.DataIn
		c.complete(c.pc + isa.InstructionSize)

	case stateWaitStore:
		if !c.sig.WriteDone {
			return nil
		}
		c.complete(c.pc + isa.InstructionSize)

	default:
		return curated.Errorf(IllegalState, c.state)
	}

	return nil
}

func (c *Core) reset() {
	c.pc = 0
	clear(c.r[:])
	c.ir = 0
	c.retired = 0
	c.sig.Addr = 0
	c.sig.Read = false
	c.sig.Write = false
	c.sig.DataOut = 0
	c.state = stateFetch
}

func (c *Core) fetch() {
	c.sig.Addr = c.pc
	c.sig.Read = true
	c.sig.Write = false
	c.state = stateWaitFetch
}

// complete the current instruction and fetch the next one
func (c *Core) complete(next uint16) {
	c.pc = next
	c.retired++
	c.fetch()
}

func (c *Core) execute() {
	ins := c.ir
	logger.Logf(c, "mrav", "%04X: %s", c.pc, ins)

	rd := ins.Rd()
	rs1 := ins.Rs1()

	switch ins.Opcode() {
	case isa.LW:
		c.sig.Addr = c.r[rs1]
		c.sig.Read = true
		c.sig.Write = false
		c.state = stateWaitLoad
		return
	case isa.SW:
		c.sig.Addr = c.r[rd]
		c.sig.DataOut = c.r[rs1]
		c.sig.Read = false
		c.sig.Write = true
		c.state = stateWaitStore
		return
	}

	c.complete(ins.Execute(&c.r, c.pc))
}
