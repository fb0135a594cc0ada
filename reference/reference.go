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

// Package reference reads and writes reference core states. A reference state
// is the expected state of the core at the end of a scenario, usually computed
// by running the same software on the instruction level model.
//
// The encoding is the protocol buffers message:
//
//	message CoreState {
//	    uint32 pc = 1;
//	    repeated uint32 r = 2;
//	}
//
// The r field must hold exactly sixteen values and no value may be wider than
// sixteen bits. Both packed and unpacked encodings of r are accepted. Unknown
// fields are skipped.
package reference

import (
	"os"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/snapshot"
)

// DecodeError is the pattern of every error returned by Decode().
const DecodeError = "reference: %v"

const (
	fieldPC protowire.Number = 1
	fieldR  protowire.Number = 2
)

// Decode a reference state.
func Decode(b []byte) (snapshot.Core, error) {
	var core snapshot.Core
	var regs []uint64

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return core, curated.Errorf(DecodeError, protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldPC:
			if typ != protowire.VarintType {
				return core, curated.Errorf(DecodeError, curated.Errorf("pc has wire type %d", typ))
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return core, curated.Errorf(DecodeError, protowire.ParseError(n))
			}
			b = b[n:]
			if v > 0xffff {
				return core, curated.Errorf(DecodeError, curated.Errorf("pc too large (%#x)", v))
			}
			core.PC = uint16(v)

		case fieldR:
			switch typ {
			case protowire.VarintType:
				v, n := protowire.ConsumeVarint(b)
				if n < 0 {
					return core, curated.Errorf(DecodeError, protowire.ParseError(n))
				}
				b = b[n:]
				regs = append(regs, v)

			case protowire.BytesType:
				packed, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return core, curated.Errorf(DecodeError, protowire.ParseError(n))
				}
				b = b[n:]
				for len(packed) > 0 {
					v, n := protowire.ConsumeVarint(packed)
					if n < 0 {
						return core, curated.Errorf(DecodeError, protowire.ParseError(n))
					}
					packed = packed[n:]
					regs = append(regs, v)
				}

			default:
				return core, curated.Errorf(DecodeError, curated.Errorf("r has wire type %d", typ))
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return core, curated.Errorf(DecodeError, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if len(regs) != isa.NumRegisters {
		return core, curated.Errorf(DecodeError, curated.Errorf("expected %d registers (got %d)", isa.NumRegisters, len(regs)))
	}
	for i, v := range regs {
		if v > 0xffff {
			return core, curated.Errorf(DecodeError, curated.Errorf("r%d too large (%#x)", i, v))
		}
		core.R[i] = uint16(v)
	}

	return core, nil
}

// Encode a reference state. The registers are written packed.
func Encode(core snapshot.Core) []byte {
	var b []byte

	b = protowire.AppendTag(b, fieldPC, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(core.PC))

	var packed []byte
	for _, r := range core.R {
		packed = protowire.AppendVarint(packed, uint64(r))
	}
	b = protowire.AppendTag(b, fieldR, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)

	return b
}

// ReadFile decodes the reference state in the named file.
func ReadFile(filename string) (snapshot.Core, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return snapshot.Core{}, curated.Errorf("reference: file: %v", err)
	}
	return Decode(b)
}

// WriteFile encodes the reference state to the named file.
func WriteFile(filename string, core snapshot.Core) error {
	if err := os.WriteFile(filename, Encode(core), 0644); err != nil {
		return curated.Errorf("reference: file: %v", err)
	}
	return nil
}
