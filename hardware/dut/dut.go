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

// Package dut defines the interface between the simulation and the device
// under test. The device is a bus master: it drives the address, strobe and
// write data signals of the bus and samples the read data and acknowledgement
// signals on the edges of the clock.
//
// The mrav sub-package is a behavioural model of the mrav core that satisfies
// the Device interface.
package dut

import (
	"github.com/mrav/corebench/hardware/bus"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/snapshot"
)

// Device is a cycle level model of a core attached to the mrav bus.
type Device interface {
	// Edge is called by the scheduler on every clock edge
	scheduler.Clocked

	// PC and Register expose the architectural state of the core
	snapshot.Source

	// Bus returns the signals shared by the device and the memory responder
	Bus() *bus.Signals

	// SetReset drives the active low reset line. asserted is true when the
	// line is low
	SetReset(asserted bool)
}
