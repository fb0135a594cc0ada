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

package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/test"
)

// recorder waits on every phase in turn and records what it sees
type recorder struct {
	log    []string
	edges  *[]string
	cycles int
	next   int
}

var sequence = []scheduler.Phase{
	scheduler.RisingEdge, scheduler.ReadOnly, scheduler.ReadWrite,
	scheduler.FallingEdge, scheduler.ReadOnly, scheduler.ReadWrite,
}

func (r *recorder) Resume(phase scheduler.Phase) (scheduler.Phase, error) {
	r.log = append(r.log, phase.String())
	if r.edges != nil {
		*r.edges = append(*r.edges, "task "+phase.String())
	}
	if r.next == len(sequence)-1 {
		r.cycles--
		if r.cycles == 0 {
			return scheduler.Halt, nil
		}
	}
	r.next = (r.next + 1) % len(sequence)
	return sequence[r.next], nil
}

type device struct {
	log *[]string
	err error
}

func (d *device) Edge(rising bool) error {
	if d.err != nil {
		return d.err
	}
	if rising {
		*d.log = append(*d.log, "device rising")
	} else {
		*d.log = append(*d.log, "device falling")
	}
	return nil
}

func TestInvalidClock(t *testing.T) {
	_, err := scheduler.NewScheduler(scheduler.Clock{Period: 0}, nil)
	test.ExpectSuccess(t, curated.Is(err, scheduler.InvalidClock))
	_, err = scheduler.NewScheduler(scheduler.Clock{Period: 5}, nil)
	test.ExpectSuccess(t, curated.Is(err, scheduler.InvalidClock))
	_, err = scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.ExpectSuccess(t, err)
}

func TestPhaseOrder(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)

	r := &recorder{cycles: 2}
	s.Start("recorder", r, scheduler.RisingEdge)

	test.DemandSuccess(t, s.Run(context.Background()))

	expected := []string{
		"rising edge", "read-only", "read-write", "falling edge", "read-only", "read-write",
		"rising edge", "read-only", "read-write", "falling edge", "read-only", "read-write",
	}
	test.DemandEquality(t, len(r.log), len(expected))
	for i := range expected {
		test.ExpectEquality(t, r.log[i], expected[i], i)
	}

	test.ExpectEquality(t, s.Cycle(), 2)
	test.ExpectEquality(t, s.Time(), uint64(20))
	test.ExpectEquality(t, s.NumTasks(), 0)
	test.ExpectEquality(t, s.Phase(), scheduler.Halt)
}

func TestDeviceClockedBeforeTasks(t *testing.T) {
	var log []string
	dev := &device{log: &log}

	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, dev)
	test.DemandSuccess(t, err)

	r := &recorder{cycles: 1, edges: &log}
	s.Start("recorder", r, scheduler.RisingEdge)
	test.DemandSuccess(t, s.Run(context.Background()))

	expected := []string{
		"device rising", "task rising edge", "task read-only", "task read-write",
		"device falling", "task falling edge", "task read-only", "task read-write",
	}
	test.DemandEquality(t, len(log), len(expected))
	for i := range expected {
		test.ExpectEquality(t, log[i], expected[i], i)
	}
}

func TestStartHigh(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10, StartHigh: true}, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, s.ClockHigh())

	var first scheduler.Phase = scheduler.Halt
	s.Start("first", scheduler.TaskFunc(func(phase scheduler.Phase) (scheduler.Phase, error) {
		first = phase
		return scheduler.Halt, nil
	}), scheduler.FallingEdge)

	test.DemandSuccess(t, s.Run(context.Background()))
	test.ExpectEquality(t, first, scheduler.FallingEdge)
	test.ExpectEquality(t, s.Cycle(), 0)
	test.ExpectFailure(t, s.ClockHigh())
}

// every task waiting on a phase is resumed once, in the order started, before
// the next phase
func TestResumeOrder(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 2}, nil)
	test.DemandSuccess(t, err)

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		s.Start(name, scheduler.TaskFunc(func(phase scheduler.Phase) (scheduler.Phase, error) {
			order = append(order, fmt.Sprintf("%s %s", name, phase))
			if phase == scheduler.ReadOnly {
				return scheduler.Halt, nil
			}
			return scheduler.ReadOnly, nil
		}), scheduler.RisingEdge)
	}

	test.DemandSuccess(t, s.Run(context.Background()))

	expected := []string{
		"a rising edge", "b rising edge", "c rising edge",
		"a read-only", "b read-only", "c read-only",
	}
	test.DemandEquality(t, len(order), len(expected))
	for i := range expected {
		test.ExpectEquality(t, order[i], expected[i], i)
	}
}

func TestPhaseDuringResume(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)

	var seen scheduler.Phase = scheduler.Halt
	s.Start("phase", scheduler.TaskFunc(func(phase scheduler.Phase) (scheduler.Phase, error) {
		seen = s.Phase()
		return scheduler.Halt, nil
	}), scheduler.ReadWrite)

	test.DemandSuccess(t, s.Run(context.Background()))
	test.ExpectEquality(t, seen, scheduler.ReadWrite)
}

type liveTask struct {
	active  bool
	resumed int
}

func (l *liveTask) Resume(_ scheduler.Phase) (scheduler.Phase, error) {
	l.resumed++
	return scheduler.RisingEdge, nil
}

func (l *liveTask) Active() bool {
	return l.active
}

func TestLiveness(t *testing.T) {
	var log []string
	dev := &device{log: &log}

	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, dev)
	test.DemandSuccess(t, err)

	live := &liveTask{active: true}
	s.Start("live", live, scheduler.RisingEdge)

	// deactivate the live task after three cycles
	count := 0
	s.Start("stopper", scheduler.TaskFunc(func(_ scheduler.Phase) (scheduler.Phase, error) {
		count++
		if count == 3 {
			live.active = false
			return scheduler.Halt, nil
		}
		return scheduler.ReadOnly, nil
	}), scheduler.ReadOnly)

	test.DemandSuccess(t, s.Run(context.Background()))

	// the stopper runs on the read-only phase after both the rising and the
	// falling edge. the third read-only phase is in the second cycle
	test.ExpectEquality(t, live.resumed, 2)
	test.ExpectEquality(t, s.Cycle(), 2)

	// no more edges once the live task has been deactivated
	test.ExpectEquality(t, len(log), 3)
}

func TestTaskError(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)

	fault := curated.Errorf("fault at %d", 10)
	s.Start("faulty", scheduler.TaskFunc(func(_ scheduler.Phase) (scheduler.Phase, error) {
		return scheduler.Halt, fault
	}), scheduler.ReadWrite)

	err = s.Run(context.Background())
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, "fault at %d"))
	test.ExpectEquality(t, s.Cycle(), 1)
}

func TestDeviceError(t *testing.T) {
	var log []string
	dev := &device{log: &log, err: errors.New("x propagation")}

	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, dev)
	test.DemandSuccess(t, err)
	s.Start("idle", scheduler.TaskFunc(func(_ scheduler.Phase) (scheduler.Phase, error) {
		return scheduler.RisingEdge, nil
	}), scheduler.RisingEdge)

	err = s.Run(context.Background())
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, dev.err))
}

func TestInvalidPhase(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)
	s.Start("bad", scheduler.TaskFunc(func(_ scheduler.Phase) (scheduler.Phase, error) {
		return scheduler.Phase(99), nil
	}), scheduler.RisingEdge)

	err = s.Run(context.Background())
	test.ExpectSuccess(t, curated.Is(err, scheduler.InvalidPhase))
}

func TestCancel(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	// a task that never finishes. cancel the context after five cycles
	s.Start("forever", scheduler.TaskFunc(func(_ scheduler.Phase) (scheduler.Phase, error) {
		if s.Cycle() == 5 {
			cancel()
		}
		return scheduler.RisingEdge, nil
	}), scheduler.RisingEdge)

	err = s.Run(ctx)
	test.ExpectSuccess(t, errors.Is(err, context.Canceled))
	test.ExpectEquality(t, s.Cycle(), 5)
}

type observer struct {
	phases []scheduler.Phase
	times  []uint64
}

func (o *observer) Observe(phase scheduler.Phase, time uint64) {
	o.phases = append(o.phases, phase)
	o.times = append(o.times, time)
}

func TestObserver(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.Clock{Period: 10}, nil)
	test.DemandSuccess(t, err)

	o := &observer{}
	s.AddObserver(o)
	s.Start("one", &recorder{cycles: 1}, scheduler.RisingEdge)
	test.DemandSuccess(t, s.Run(context.Background()))

	test.DemandEquality(t, len(o.phases), 6)
	test.ExpectEquality(t, o.phases[3], scheduler.FallingEdge)
	test.ExpectEquality(t, o.times[0], uint64(5))
	test.ExpectEquality(t, o.times[5], uint64(10))
}
