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
	"strconv"
	"strings"
	"unicode"

	"github.com/mrav/corebench/curated"
)

// AssemblyError is the pattern of every error returned by Assemble().
const AssemblyError = "isa: line %d: %v"

// Assemble mrav assembly source into a software image. The image is a
// sequence of big-endian instruction words starting at address zero.
//
// Each line of the source contains at most one of the following, optionally
// preceded by a label of the form "name:"
//
//	mnemonic operands     an instruction. operands separated by commas or spaces
//	.word value           a literal 16 bit value
//	name = value          a symbol assignment
//
// Registers are written r0 to r15. Numeric values are parsed as Go integer
// literals, so 0x, 0b and 0o prefixes are all valid. A label or symbol name
// can be used wherever a numeric value is expected. Text following a ';' or
// '#' is a comment.
func Assemble(source string) ([]uint8, error) {
	var lines []asmLine

	symbols := make(map[string]int)
	address := 0

	// first pass collects symbols and labels
	for i, text := range strings.Split(source, "\n") {
		ln := i + 1

		l, err := parseLine(ln, text)
		if err != nil {
			return nil, err
		}

		if l.label != "" {
			if _, ok := symbols[l.label]; ok {
				return nil, curated.Errorf(AssemblyError, ln, curated.Errorf("duplicate symbol %s", l.label))
			}
			symbols[l.label] = address
		}

		if l.symbol != "" {
			if _, ok := symbols[l.symbol]; ok {
				return nil, curated.Errorf(AssemblyError, ln, curated.Errorf("duplicate symbol %s", l.symbol))
			}
			v, err := value(l.operands[0], symbols)
			if err != nil {
				return nil, curated.Errorf(AssemblyError, ln, err)
			}
			symbols[l.symbol] = v
			continue
		}

		if l.mnemonic != "" {
			lines = append(lines, l)
			address += InstructionSize
		}
	}

	if address > 0x10000 {
		return nil, curated.Errorf("isa: program too large (%d bytes)", address)
	}

	img := make([]uint8, 0, address)

	// second pass encodes instructions
	for _, l := range lines {
		var w uint16

		if l.mnemonic == ".word" {
			if len(l.operands) != 1 {
				return nil, curated.Errorf(AssemblyError, l.number, curated.Errorf(".word takes 1 operand (%d given)", len(l.operands)))
			}
			v, err := value(l.operands[0], symbols)
			if err != nil {
				return nil, curated.Errorf(AssemblyError, l.number, err)
			}
			if v < -0x8000 || v > 0xffff {
				return nil, curated.Errorf(AssemblyError, l.number, curated.Errorf("value %d does not fit in a word", v))
			}
			w = uint16(v)
		} else {
			ins, err := l.encode(symbols)
			if err != nil {
				return nil, curated.Errorf(AssemblyError, l.number, err)
			}
			w = uint16(ins)
		}

		img = append(img, uint8(w>>8), uint8(w))
	}

	return img, nil
}

type asmLine struct {
	number   int
	label    string
	symbol   string
	mnemonic string
	operands []string
}

func parseLine(ln int, text string) (asmLine, error) {
	l := asmLine{number: ln}

	if i := strings.IndexAny(text, ";#"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	if i := strings.Index(text, ":"); i >= 0 {
		l.label = strings.TrimSpace(text[:i])
		if !isIdentifier(l.label) {
			return l, curated.Errorf(AssemblyError, ln, curated.Errorf("invalid label %q", l.label))
		}
		text = strings.TrimSpace(text[i+1:])
	}

	if i := strings.Index(text, "="); i >= 0 {
		if l.label != "" {
			return l, curated.Errorf(AssemblyError, ln, curated.Errorf("label on symbol assignment"))
		}
		l.symbol = strings.TrimSpace(text[:i])
		if !isIdentifier(l.symbol) {
			return l, curated.Errorf(AssemblyError, ln, curated.Errorf("invalid symbol %q", l.symbol))
		}
		l.operands = []string{strings.TrimSpace(text[i+1:])}
		return l, nil
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return l, nil
	}

	l.mnemonic = strings.ToLower(fields[0])
	l.operands = fields[1:]

	if l.mnemonic != ".word" {
		if _, ok := Lookup(l.mnemonic); !ok {
			return l, curated.Errorf(AssemblyError, ln, curated.Errorf("unknown instruction %s", fields[0]))
		}
	}

	return l, nil
}

func (l asmLine) encode(symbols map[string]int) (Instruction, error) {
	d, _ := Lookup(l.mnemonic)

	if len(l.operands) != d.Format.Operands() {
		return 0, curated.Errorf(OperandCount, d.Mnemonic, d.Format.Operands(), len(l.operands))
	}

	ops := make([]int, len(l.operands))
	for i, o := range l.operands {
		var err error

		isReg := i == 0 || d.Format == ThreeRegister || d.Format == TwoRegister
		if isReg {
			ops[i], err = register(o)
		} else {
			ops[i], err = value(o, symbols)
		}
		if err != nil {
			return 0, err
		}
	}

	return Encode(d.Opcode, ops...)
}

func register(s string) (int, error) {
	s = strings.ToLower(s)
	if !strings.HasPrefix(s, "r") {
		return 0, curated.Errorf("expected register (%s)", s)
	}
	r, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, curated.Errorf("expected register (%s)", s)
	}
	if err := checkRegister(r); err != nil {
		return 0, err
	}
	return r, nil
}

func value(s string, symbols map[string]int) (int, error) {
	if v, ok := symbols[s]; ok {
		return v, nil
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		if isIdentifier(s) {
			return 0, curated.Errorf("undefined symbol %s", s)
		}
		return 0, curated.Errorf("invalid value %s", s)
	}
	return int(v), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
