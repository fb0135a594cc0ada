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

// Package isa describes the mrav instruction set. Every instruction is a
// single 16 bit word. The top four bits are the opcode and the remaining bits
// are split into register and immediate fields depending on the format of the
// instruction:
//
//	15    12 11     8 7      4 3      0
//	 opcode     rd      rs1      rs2       ADD SUB XOR AND OR
//	 opcode     rd      rs1      ----      LW SW JALR
//	 opcode     rd         imm8            ADDI LDHI BZ BNZ JAL
//	 opcode     rd      imm4     ----      SHL SHR SHRA
//
// There are sixteen general purpose registers. The program counter is
// separate and always moves in steps of InstructionSize when execution is
// sequential.
//
// The Assemble() function converts mrav assembly source into a software image
// suitable for loading into memory.
package isa
