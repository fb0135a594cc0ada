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

// Task is a resumable unit of work. Resume() is called when the scheduler
// reaches the phase the task is waiting for. It returns the next phase to
// wait for or Halt.
//
// An error returned by Resume() is fatal and ends the run.
type Task interface {
	Resume(phase Phase) (Phase, error)
}

// TaskFunc allows a simple function to be used as a Task.
type TaskFunc func(phase Phase) (Phase, error)

// Resume implements the Task interface.
func (f TaskFunc) Resume(phase Phase) (Phase, error) {
	return f(phase)
}

// Liveness is an optional interface for tasks. A task that reports it is no
// longer active is retired before the scheduler advances to the next phase.
type Liveness interface {
	Active() bool
}

// Clocked is implemented by the device being simulated. Edge() is called at
// every clock transition, before any task waiting on the edge is resumed.
type Clocked interface {
	Edge(rising bool) error
}

// Observer is notified at the end of every phase, after all tasks waiting on
// that phase have been resumed. Signal tracing is the main use.
type Observer interface {
	Observe(phase Phase, time uint64)
}
