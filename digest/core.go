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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/mrav/corebench/snapshot"
)

// Core generates a SHA-1 value of the state of the core every cycle. Use the
// Cycle() function with scenario.Scenario.OnCycle().
type Core struct {
	digest [sha1.Size]byte

	// room for the previous digest followed by the program counter and every
	// register
	buf []byte

	cycles int
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore() *Core {
	return &Core{
		buf: make([]byte, sha1.Size+2+len(snapshot.Core{}.R)*2),
	}
}

// Hash implements digest.Digest interface.
func (dig *Core) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Core) ResetDigest() {
	clear(dig.digest[:])
	dig.cycles = 0
}

// Cycles returns the number of cycles included in the digest.
func (dig *Core) Cycles() int {
	return dig.cycles
}

// Cycle adds the state of the core to the digest.
func (dig *Core) Cycle(_ int, core snapshot.Core) error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the buffer
	n := copy(dig.buf, dig.digest[:])

	binary.BigEndian.PutUint16(dig.buf[n:], core.PC)
	n += 2
	for _, r := range core.R {
		binary.BigEndian.PutUint16(dig.buf[n:], r)
		n += 2
	}

	dig.digest = sha1.Sum(dig.buf)
	dig.cycles++

	return nil
}

// Memory adds the contents of memory to the digest. Usually called once at the
// end of the scenario.
func (dig *Core) Memory(mem []uint8) {
	b := make([]byte, 0, len(dig.digest)+len(mem))
	b = append(b, dig.digest[:]...)
	b = append(b, mem...)
	dig.digest = sha1.Sum(b)
}
