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

package isa

import (
	"fmt"
	"strings"
)

// NumRegisters is the number of general purpose registers.
const NumRegisters = 16

// InstructionSize is the number of bytes occupied by a single instruction.
const InstructionSize = 2

// Opcode is the top four bits of an instruction.
type Opcode uint8

// List of valid Opcode values.
const (
	ADD Opcode = iota
	SUB
	LW
	SW
	XOR
	AND
	OR
	ADDI
	LDHI
	BZ
	BNZ
	JAL
	JALR
	SHL
	SHR
	SHRA
)

// Format describes how the operand bits of an instruction are used.
type Format int

// List of valid Format values.
const (
	// rd, rs1, rs2
	ThreeRegister Format = iota

	// rd, rs1
	TwoRegister

	// rd, imm8
	RegisterImm8

	// rd, imm4
	RegisterImm4
)

// Operands returns the number of operands taken by an instruction of the
// format.
func (f Format) Operands() int {
	if f == ThreeRegister {
		return 3
	}
	return 2
}

// Definition describes a single opcode.
type Definition struct {
	Opcode   Opcode
	Mnemonic string
	Format   Format
}

// Definitions is indexed by Opcode.
var Definitions = [16]Definition{
	{Opcode: ADD, Mnemonic: "ADD", Format: ThreeRegister},
	{Opcode: SUB, Mnemonic: "SUB", Format: ThreeRegister},
	{Opcode: LW, Mnemonic: "LW", Format: TwoRegister},
	{Opcode: SW, Mnemonic: "SW", Format: TwoRegister},
	{Opcode: XOR, Mnemonic: "XOR", Format: ThreeRegister},
	{Opcode: AND, Mnemonic: "AND", Format: ThreeRegister},
	{Opcode: OR, Mnemonic: "OR", Format: ThreeRegister},
	{Opcode: ADDI, Mnemonic: "ADDI", Format: RegisterImm8},
	{Opcode: LDHI, Mnemonic: "LDHI", Format: RegisterImm8},
	{Opcode: BZ, Mnemonic: "BZ", Format: RegisterImm8},
	{Opcode: BNZ, Mnemonic: "BNZ", Format: RegisterImm8},
	{Opcode: JAL, Mnemonic: "JAL", Format: RegisterImm8},
	{Opcode: JALR, Mnemonic: "JALR", Format: TwoRegister},
	{Opcode: SHL, Mnemonic: "SHL", Format: RegisterImm4},
	{Opcode: SHR, Mnemonic: "SHR", Format: RegisterImm4},
	{Opcode: SHRA, Mnemonic: "SHRA", Format: RegisterImm4},
}

func (op Opcode) String() string {
	return Definitions[op&0x0f].Mnemonic
}

// Lookup the definition for a mnemonic. Case insensitive.
func Lookup(mnemonic string) (Definition, bool) {
	m := strings.ToUpper(mnemonic)
	for _, d := range Definitions {
		if d.Mnemonic == m {
			return d, true
		}
	}
	return Definition{}, false
}

// Instruction is a single encoded instruction word.
type Instruction uint16

// Opcode field of the instruction.
func (ins Instruction) Opcode() Opcode {
	return Opcode(ins >> 12)
}

// Rd field of the instruction.
func (ins Instruction) Rd() int {
	return int((ins & 0x0f00) >> 8)
}

// Rs1 field of the instruction.
func (ins Instruction) Rs1() int {
	return int((ins & 0x00f0) >> 4)
}

// Rs2 field of the instruction.
func (ins Instruction) Rs2() int {
	return int(ins & 0x000f)
}

// Imm8 field of the instruction. The value is never sign extended.
func (ins Instruction) Imm8() uint8 {
	return uint8(ins & 0x00ff)
}

// Imm4 field of the instruction. Shares bit positions with Rs1.
func (ins Instruction) Imm4() uint8 {
	return uint8((ins & 0x00f0) >> 4)
}

// Definition of the instruction. Every 16 bit value is a valid instruction.
func (ins Instruction) Definition() Definition {
	return Definitions[ins.Opcode()]
}

// String returns the instruction in assembly form.
func (ins Instruction) String() string {
	d := ins.Definition()
	m := strings.ToLower(d.Mnemonic)
	switch d.Format {
	case ThreeRegister:
		return fmt.Sprintf("%s r%d, r%d, r%d", m, ins.Rd(), ins.Rs1(), ins.Rs2())
	case TwoRegister:
		return fmt.Sprintf("%s r%d, r%d", m, ins.Rd(), ins.Rs1())
	case RegisterImm8:
		return fmt.Sprintf("%s r%d, 0x%02x", m, ins.Rd(), ins.Imm8())
	}
	return fmt.Sprintf("%s r%d, %d", m, ins.Rd(), ins.Imm4())
}
