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

// IsMemory returns true for the opcodes that make a data transaction.
func (op Opcode) IsMemory() bool {
	return op == LW || op == SW
}

// Execute the instruction at address pc against the register file and return
// the address of the next instruction.
//
// Loads and stores are not executed. Their data transaction depends on how
// memory is attached, so the caller performs it. For these opcodes the
// registers are untouched and the next address is the following instruction.
func (ins Instruction) Execute(r *[NumRegisters]uint16, pc uint16) uint16 {
	rd := ins.Rd()
	rs1 := ins.Rs1()
	rs2 := ins.Rs2()
	next := pc + InstructionSize

	switch ins.Opcode() {
	case ADD:
		r[rd] = r[rs1] + r[rs2]
	case SUB:
		r[rd] = r[rs1] - r[rs2]
	case XOR:
		r[rd] = r[rs1] ^ r[rs2]
	case AND:
		r[rd] = r[rs1] & r[rs2]
	case OR:
		r[rd] = r[rs1] | r[rs2]
	case ADDI:
		r[rd] += uint16(ins.Imm8())
	case LDHI:
		r[rd] = uint16(ins.Imm8())<<8 | r[rd]&0x00ff
	case BZ:
		if r[rd] == 0 {
			next = uint16(ins.Imm8())
		}
	case BNZ:
		if r[rd] != 0 {
			next = uint16(ins.Imm8())
		}
	case JAL:
		r[rd] = next
		next = uint16(ins.Imm8())
	case JALR:
		// the link register is written first. if rd and rs1 are the same
		// register the jump is to the following instruction
		r[rd] = next
		next = r[rs1]
	case SHL:
		r[rd] <<= ins.Imm4()
	case SHR:
		r[rd] >>= ins.Imm4()
	case SHRA:
		r[rd] = uint16(int16(r[rd]) >> ins.Imm4())
	}

	return next
}
