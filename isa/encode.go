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

import "github.com/mrav/corebench/curated"

// Sentinal error patterns.
const (
	OperandCount    = "isa: %s takes %d operands (%d given)"
	InvalidRegister = "isa: invalid register (%d)"
	ImmediateRange  = "isa: immediate value %d out of range for %s"
)

// Encode an instruction from the opcode and a list of operands. Operands are
// register numbers or immediate values depending on the Format of the opcode.
//
// An 8 bit immediate can be given in the range -128 to 255. Negative values
// are stored as their two's complement bit pattern.
func Encode(op Opcode, operands ...int) (Instruction, error) {
	d := Definitions[op&0x0f]

	if len(operands) != d.Format.Operands() {
		return 0, curated.Errorf(OperandCount, d.Mnemonic, d.Format.Operands(), len(operands))
	}

	ins := Instruction(d.Opcode) << 12

	if err := checkRegister(operands[0]); err != nil {
		return 0, err
	}
	ins |= Instruction(operands[0]) << 8

	switch d.Format {
	case ThreeRegister:
		if err := checkRegister(operands[1]); err != nil {
			return 0, err
		}
		if err := checkRegister(operands[2]); err != nil {
			return 0, err
		}
		ins |= Instruction(operands[1])<<4 | Instruction(operands[2])

	case TwoRegister:
		if err := checkRegister(operands[1]); err != nil {
			return 0, err
		}
		ins |= Instruction(operands[1]) << 4

	case RegisterImm8:
		v := operands[1]
		if v < -128 || v > 0xff {
			return 0, curated.Errorf(ImmediateRange, v, d.Mnemonic)
		}
		ins |= Instruction(uint8(v))

	case RegisterImm4:
		v := operands[1]
		if v < 0 || v > 0x0f {
			return 0, curated.Errorf(ImmediateRange, v, d.Mnemonic)
		}
		ins |= Instruction(v) << 4
	}

	return ins, nil
}

func checkRegister(r int) error {
	if r < 0 || r >= NumRegisters {
		return curated.Errorf(InvalidRegister, r)
	}
	return nil
}
