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

package scheduler

import (
	"context"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/logger"
)

// InvalidClock is the pattern of the error returned by NewScheduler() when
// the clock definition cannot be used.
const InvalidClock = "scheduler: clock period must be an even number greater than zero (%d)"

// InvalidPhase is the pattern of the error returned by Run() when a task asks
// to wait on a phase that does not exist.
const InvalidPhase = "scheduler: %s: cannot wait on phase %d"

// Clock defines the simulation clock. Period is in arbitrary time units
// (nanoseconds by convention) and must be even so that both edges fall on
// whole units.
type Clock struct {
	Period uint64

	// the level of the clock at time zero. the first edge will be a falling
	// edge if StartHigh is true
	StartHigh bool
}

type waiter struct {
	name  string
	task  Task
	await Phase
}

// Scheduler is the discrete-event scheduler. It must be created with
// NewScheduler().
type Scheduler struct {
	clock Clock
	dev   Clocked

	tasks     []*waiter
	observers []Observer

	// index into timeline of the next phase to run
	idx int

	current Phase
	time    uint64
	cycle   int
	high    bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The dev argument can be nil, in which case no device is clocked.
func NewScheduler(clock Clock, dev Clocked) (*Scheduler, error) {
	if clock.Period == 0 || clock.Period%2 != 0 {
		return nil, curated.Errorf(InvalidClock, clock.Period)
	}

	s := &Scheduler{
		clock:   clock,
		dev:     dev,
		current: Halt,
		high:    clock.StartHigh,
	}

	if clock.StartHigh {
		s.idx = fallingIdx
	}

	return s, nil
}

// Start a task. The task will first be resumed at the next occurrence of
// the await phase. A task started from inside another task's Resume() is
// never resumed in the phase it was started in.
func (s *Scheduler) Start(name string, task Task, await Phase) {
	s.tasks = append(s.tasks, &waiter{
		name:  name,
		task:  task,
		await: await,
	})
}

// AddObserver adds an Observer to the scheduler.
func (s *Scheduler) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Phase returns the phase currently being run. Returns Halt if the scheduler
// is between phases or not running.
func (s *Scheduler) Phase() Phase {
	return s.current
}

// Time returns the simulation time of the most recent edge.
func (s *Scheduler) Time() uint64 {
	return s.time
}

// Cycle returns the number of rising edges so far.
func (s *Scheduler) Cycle() int {
	return s.cycle
}

// ClockHigh returns the current level of the clock.
func (s *Scheduler) ClockHigh() bool {
	return s.high
}

// NumTasks returns the number of tasks that have not yet been retired.
func (s *Scheduler) NumTasks() int {
	return len(s.tasks)
}

// Run the scheduler until there are no more tasks. The first error returned
// by a task ends the run.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.retire()
		if len(s.tasks) == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.step(); err != nil {
			return err
		}
	}
}

// step runs the next phase in the timeline.
func (s *Scheduler) step() error {
	phase := timeline[s.idx]
	s.idx = (s.idx + 1) % len(timeline)

	s.current = phase
	defer func() {
		s.current = Halt
	}()

	if phase.IsEdge() {
		s.time += s.clock.Period / 2
		s.high = phase == RisingEdge
		if s.high {
			s.cycle++
		}

		if s.dev != nil {
			if err := s.dev.Edge(s.high); err != nil {
				return curated.Errorf("scheduler: device: %v", err)
			}
		}
	}

	// only the tasks waiting at the start of the phase are resumed
	waiting := make([]*waiter, 0, len(s.tasks))
	for _, w := range s.tasks {
		if w.await == phase {
			waiting = append(waiting, w)
		}
	}

	for _, w := range waiting {
		next, err := w.task.Resume(phase)
		if err != nil {
			logger.Logf(logger.Allow, "scheduler", "%s failed at cycle %d (%s)", w.name, s.cycle, phase)
			return curated.Errorf("scheduler: %s: %v", w.name, err)
		}
		if next != Halt && (next < RisingEdge || next > FallingEdge) {
			return curated.Errorf(InvalidPhase, w.name, next)
		}
		w.await = next
	}

	for _, o := range s.observers {
		o.Observe(phase, s.time)
	}

	return nil
}

// retire removes tasks that have halted or that are no longer active.
func (s *Scheduler) retire() {
	n := 0
	for _, w := range s.tasks {
		if w.await == Halt {
			continue
		}
		if l, ok := w.task.(Liveness); ok && !l.Active() {
			continue
		}
		s.tasks[n] = w
		n++
	}
	clear(s.tasks[n:])
	s.tasks = s.tasks[:n]
}
