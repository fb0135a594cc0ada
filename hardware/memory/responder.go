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

package memory

import (
	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/bus"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/logger"
)

// Responder services transactions on the bus against an Image. It implements
// the scheduler.Task and scheduler.Liveness interfaces and should be started
// waiting on scheduler.RisingEdge.
type Responder struct {
	img *Image
	bus *bus.Signals

	active bool

	// the bus as sampled during the read-only phase
	addr  uint16
	data  uint16
	read  bool
	write bool

	reads  int
	writes int

	// log every serviced transaction
	Verbose bool
}

// NewResponder is the preferred method of initialisation for the Responder type.
func NewResponder(img *Image, sig *bus.Signals) *Responder {
	return &Responder{
		img:    img,
		bus:    sig,
		active: true,
	}
}

// AllowLogging implements the logger.Permission interface.
func (r *Responder) AllowLogging() bool {
	return r.Verbose
}

// Active implements the scheduler.Liveness interface.
func (r *Responder) Active() bool {
	return r.active
}

// Deactivate stops the responder. It will be retired by the scheduler before
// the next phase.
func (r *Responder) Deactivate() {
	r.active = false
}

// Reads returns the number of read transactions serviced.
func (r *Responder) Reads() int {
	return r.reads
}

// Writes returns the number of write transactions serviced.
func (r *Responder) Writes() int {
	return r.writes
}

// Resume implements the scheduler.Task interface.
func (r *Responder) Resume(phase scheduler.Phase) (scheduler.Phase, error) {
	if !r.active {
		return scheduler.Halt, nil
	}

	switch phase {
	case scheduler.RisingEdge:
		return scheduler.ReadOnly, nil

	case scheduler.ReadOnly:
		r.addr = r.bus.Addr
		r.read = r.bus.Read
		r.write = r.bus.Write
		r.data = r.bus.DataOut
		return scheduler.ReadWrite, nil

	case scheduler.ReadWrite:
		if err := r.service(); err != nil {
			return scheduler.Halt, err
		}
		return scheduler.RisingEdge, nil
	}

	return scheduler.RisingEdge, nil
}

func (r *Responder) service() error {
	// acknowledgements last for one cycle only
	r.bus.ReadDone = false
	r.bus.WriteDone = false

	if r.read && r.write {
		return curated.Errorf(ProtocolViolation, r.addr)
	}

	// the address is checked every cycle, even when neither strobe is
	// asserted
	address := int(r.addr)
	if err := r.img.check(address); err != nil {
		return err
	}

	if !r.read && !r.write {
		return nil
	}

	if r.read {
		r.bus.DataIn = r.img.readWord(address)
		r.bus.ReadDone = true
		r.reads++
		logger.Logf(r, "responder", "read %04X from %04X", r.bus.DataIn, address)
		return nil
	}

	r.img.writeWord(address, r.data)
	r.bus.WriteDone = true
	r.writes++
	logger.Logf(r, "responder", "write %04X to %04X", r.data, address)

	return nil
}
