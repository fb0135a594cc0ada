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

package memory_test

import (
	"context"
	"testing"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/bus"
	"github.com/mrav/corebench/hardware/memory"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/test"
)

// cycle runs the responder through one clock cycle with the bus as set by
// the caller
func cycle(t *testing.T, r *memory.Responder) error {
	t.Helper()

	next, err := r.Resume(scheduler.RisingEdge)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, next, scheduler.ReadOnly)

	next, err = r.Resume(scheduler.ReadOnly)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, next, scheduler.ReadWrite)

	next, err = r.Resume(scheduler.ReadWrite)
	if err != nil {
		test.ExpectEquality(t, next, scheduler.Halt)
		return err
	}
	test.ExpectEquality(t, next, scheduler.RisingEdge)
	return nil
}

func TestImageSetup(t *testing.T) {
	_, err := memory.NewImage(4, []uint8{1, 2, 3, 4, 5})
	test.ExpectSuccess(t, curated.Is(err, memory.ImageTooLarge))

	_, err = memory.NewImage(0, nil)
	test.ExpectSuccess(t, curated.Is(err, memory.InvalidCapacity))

	img, err := memory.NewImage(4, []uint8{1, 2, 3, 4})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Len(), 4)

	img, err = memory.NewImage(8, []uint8{0xaa, 0xbb})
	test.DemandSuccess(t, err)
	c := img.Copy()
	test.DemandEquality(t, len(c), 8)
	test.ExpectEquality(t, c[0], uint8(0xaa))
	test.ExpectEquality(t, c[1], uint8(0xbb))
	for i := 2; i < len(c); i++ {
		test.ExpectEquality(t, c[i], uint8(0), i)
	}

	// the copy is not a reference to the image
	c[0] = 0
	v, err := img.Peek(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xaa))
}

func TestRoundTrip(t *testing.T) {
	img, err := memory.NewImage(1024, nil)
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	sig = bus.Signals{Addr: 1000, Write: true, DataOut: 0xbeef}
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectSuccess(t, sig.WriteDone)
	test.ExpectFailure(t, sig.ReadDone)

	sig.Write = false
	sig.Read = true
	sig.DataOut = 0
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectSuccess(t, sig.ReadDone)
	test.ExpectFailure(t, sig.WriteDone)
	test.ExpectEquality(t, sig.DataIn, uint16(0xbeef))

	test.ExpectEquality(t, r.Reads(), 1)
	test.ExpectEquality(t, r.Writes(), 1)
}

func TestByteOrder(t *testing.T) {
	img, err := memory.NewImage(16, []uint8{0x12, 0x34})
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	sig = bus.Signals{Addr: 0, Read: true}
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectEquality(t, sig.DataIn, uint16(0x1234))

	sig = bus.Signals{Addr: 2, Write: true, DataOut: 0xabcd}
	test.DemandSuccess(t, cycle(t, r))

	hi, err := img.Peek(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hi, uint8(0xab))
	lo, err := img.Peek(3)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, lo, uint8(0xcd))

	w, err := img.PeekWord(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0xabcd))
}

func TestMutualExclusion(t *testing.T) {
	img, err := memory.NewImage(16, nil)
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	// leave a stale acknowledgement from a previous read
	sig = bus.Signals{Addr: 0, Read: true}
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectSuccess(t, sig.ReadDone)

	sig.Addr = 4
	sig.Write = true
	sig.DataOut = 0xffff
	err = cycle(t, r)
	test.ExpectSuccess(t, curated.Is(err, memory.ProtocolViolation))

	// acknowledgements are cleared and memory is untouched
	test.ExpectFailure(t, sig.ReadDone)
	test.ExpectFailure(t, sig.WriteDone)
	w, err := img.PeekWord(4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0))
}

func TestBounds(t *testing.T) {
	img, err := memory.NewImage(16, nil)
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	// the last complete word
	sig = bus.Signals{Addr: 14, Write: true, DataOut: 0x0102}
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectSuccess(t, sig.WriteDone)

	// second byte of the word falls outside memory
	sig = bus.Signals{Addr: 15, Read: true}
	err = cycle(t, r)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))
	test.ExpectFailure(t, sig.ReadDone)

	r = memory.NewResponder(img, &sig)
	sig = bus.Signals{Addr: 16, Write: true}
	err = cycle(t, r)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))

	// top of the address space must not wrap around to zero
	r = memory.NewResponder(img, &sig)
	sig = bus.Signals{Addr: 0xffff, Read: true}
	err = cycle(t, r)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))

	// the address is checked even when neither strobe is asserted
	r = memory.NewResponder(img, &sig)
	sig = bus.Signals{Addr: 15}
	err = cycle(t, r)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))
	test.ExpectFailure(t, sig.ReadDone)
	test.ExpectFailure(t, sig.WriteDone)

	r = memory.NewResponder(img, &sig)
	sig = bus.Signals{Addr: 0xffff}
	err = cycle(t, r)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))

	// the last word in memory is fine on an idle bus
	r = memory.NewResponder(img, &sig)
	sig = bus.Signals{Addr: 14}
	test.ExpectSuccess(t, cycle(t, r))

	_, err = img.PeekWord(15)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))
	_, err = img.Peek(16)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))
	_, err = img.Peek(-1)
	test.ExpectSuccess(t, curated.Is(err, memory.OutOfBoundsAccess))
}

func TestIdleClearsAcks(t *testing.T) {
	img, err := memory.NewImage(16, []uint8{0xde, 0xad})
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	sig = bus.Signals{Addr: 0, Read: true}
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectSuccess(t, sig.ReadDone)

	sig.Read = false
	test.DemandSuccess(t, cycle(t, r))
	test.ExpectFailure(t, sig.ReadDone)
	test.ExpectFailure(t, sig.WriteDone)

	// data in is left as it was
	test.ExpectEquality(t, sig.DataIn, uint16(0xdead))
	test.ExpectEquality(t, r.Reads(), 1)
}

func TestSampledAtReadOnly(t *testing.T) {
	img, err := memory.NewImage(16, nil)
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	sig = bus.Signals{Addr: 2, Write: true, DataOut: 0x5555}
	_, err = r.Resume(scheduler.RisingEdge)
	test.DemandSuccess(t, err)
	_, err = r.Resume(scheduler.ReadOnly)
	test.DemandSuccess(t, err)

	// changes after the sample point are not seen until the next cycle
	sig.Addr = 8
	sig.DataOut = 0xaaaa
	_, err = r.Resume(scheduler.ReadWrite)
	test.DemandSuccess(t, err)

	w, _ := img.PeekWord(2)
	test.ExpectEquality(t, w, uint16(0x5555))
	w, _ = img.PeekWord(8)
	test.ExpectEquality(t, w, uint16(0))
}

func TestDeactivate(t *testing.T) {
	img, err := memory.NewImage(16, nil)
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)
	test.ExpectSuccess(t, r.Active())

	r.Deactivate()
	test.ExpectFailure(t, r.Active())

	next, err := r.Resume(scheduler.RisingEdge)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, next, scheduler.Halt)
}

// the responder running under the scheduler with a simple bus master that
// writes a word and reads it back
func TestScheduled(t *testing.T) {
	img, err := memory.NewImage(64, nil)
	test.DemandSuccess(t, err)

	var sig bus.Signals
	r := memory.NewResponder(img, &sig)

	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)
	s.Start("responder", r, scheduler.RisingEdge)

	var readBack uint16
	step := 0
	s.Start("master", scheduler.TaskFunc(func(phase scheduler.Phase) (scheduler.Phase, error) {
		switch step {
		case 0:
			sig.Addr = 0x20
			sig.Write = true
			sig.DataOut = 0x1234
		case 1:
			test.ExpectSuccess(t, sig.WriteDone)
			sig.Write = false
			sig.Read = true
		case 2:
			test.ExpectSuccess(t, sig.ReadDone)
			readBack = sig.DataIn
			sig.Read = false
			r.Deactivate()
			return scheduler.Halt, nil
		}
		step++
		return scheduler.FallingEdge, nil
	}), scheduler.FallingEdge)

	test.DemandSuccess(t, s.Run(context.Background()))
	test.ExpectEquality(t, readBack, uint16(0x1234))
	test.ExpectEquality(t, s.NumTasks(), 0)
}
