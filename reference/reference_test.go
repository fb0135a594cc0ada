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

package reference_test

import (
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/reference"
	"github.com/mrav/corebench/snapshot"
	"github.com/mrav/corebench/test"
)

func sample() snapshot.Core {
	var c snapshot.Core
	c.PC = 0x000e
	for i := range c.R {
		c.R[i] = uint16(i * 0x1111)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	c := sample()
	d, err := reference.Decode(reference.Encode(c))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, c)

	// the zero state still carries sixteen registers
	d, err = reference.Decode(reference.Encode(snapshot.Core{}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, snapshot.Core{})
}

// unpacked is the encoding used by older protobuf implementations for
// repeated scalars. an unknown field is included
func unpacked(pc uint64, regs []uint64) []byte {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "unknown")
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, pc)
	for _, r := range regs {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, r)
	}
	b = protowire.AppendTag(b, 10, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0xdeadbeef)
	return b
}

func TestUnpacked(t *testing.T) {
	regs := make([]uint64, 16)
	regs[1] = 0x03e8
	regs[2] = 0xbeef

	d, err := reference.Decode(unpacked(0x0e, regs))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.PC, uint16(0x0e))
	test.ExpectEquality(t, d.R[1], uint16(0x03e8))
	test.ExpectEquality(t, d.R[2], uint16(0xbeef))
}

func TestDecodeErrors(t *testing.T) {
	regs := make([]uint64, 16)

	// register count
	_, err := reference.Decode(unpacked(0, regs[:15]))
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))
	_, err = reference.Decode(unpacked(0, append(regs, 0)))
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))
	_, err = reference.Decode(nil)
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))

	// value widths
	_, err = reference.Decode(unpacked(0x10000, regs))
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))
	wide := make([]uint64, 16)
	wide[15] = 0x10000
	_, err = reference.Decode(unpacked(0, wide))
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))

	// truncated message
	b := reference.Encode(sample())
	_, err = reference.Decode(b[:len(b)-1])
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))

	// pc with the wrong wire type
	var w []byte
	w = protowire.AppendTag(w, 1, protowire.Fixed32Type)
	w = protowire.AppendFixed32(w, 0)
	_, err = reference.Decode(w)
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))

	// r with the wrong wire type
	w = protowire.AppendTag(nil, 2, protowire.Fixed64Type)
	w = protowire.AppendFixed64(w, 0)
	_, err = reference.Decode(w)
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))

	// garbage
	_, err = reference.Decode([]byte{0xff, 0xff, 0xff})
	test.ExpectSuccess(t, curated.Is(err, reference.DecodeError))
}

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "reference.pb")

	c := sample()
	test.DemandSuccess(t, reference.WriteFile(fn, c))

	d, err := reference.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, c)

	_, err = reference.ReadFile(filepath.Join(t.TempDir(), "missing"))
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, curated.Is(err, reference.DecodeError))
}
