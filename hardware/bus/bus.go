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

// Package bus defines the signals of the mrav memory bus. The bus is a single
// master, 16 bit wide bus with separate read and write strobes and separate
// acknowledgement lines for each.
//
// The device under test drives Addr, Read, Write and DataOut. The memory
// responder drives DataIn, ReadDone and WriteDone. Neither side writes to the
// other side's signals.
package bus

import "fmt"

// Signals is the state of the bus wires at a moment in simulation time.
type Signals struct {
	// driven by the device
	Addr    uint16
	Read    bool
	Write   bool
	DataOut uint16

	// driven by the responder
	DataIn    uint16
	ReadDone  bool
	WriteDone bool
}

func (s Signals) String() string {
	return fmt.Sprintf("addr=%04X rd=%s wr=%s out=%04X in=%04X rd_done=%s wr_done=%s",
		s.Addr, bit(s.Read), bit(s.Write), s.DataOut, s.DataIn, bit(s.ReadDone), bit(s.WriteDone))
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Idle returns true if neither strobe is asserted.
func (s Signals) Idle() bool {
	return !s.Read && !s.Write
}
