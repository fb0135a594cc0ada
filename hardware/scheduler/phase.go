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

// Phase is a sub-step of a clock cycle.
type Phase int

// List of valid Phase values.
const (
	RisingEdge Phase = iota
	ReadOnly
	ReadWrite
	FallingEdge

	// Halt is returned by Task.Resume() when the task has finished. It is also
	// the value of Scheduler.Phase() when the scheduler is not running a phase.
	Halt Phase = -1
)

func (p Phase) String() string {
	switch p {
	case RisingEdge:
		return "rising edge"
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	case FallingEdge:
		return "falling edge"
	case Halt:
		return "halt"
	}
	return "unknown phase"
}

// IsEdge returns true if phase is one of the two clock edges.
func (p Phase) IsEdge() bool {
	return p == RisingEdge || p == FallingEdge
}

// the order of phases in a single clock cycle
var timeline = [...]Phase{RisingEdge, ReadOnly, ReadWrite, FallingEdge, ReadOnly, ReadWrite}

// index in the timeline of the falling edge. used when the clock starts high
const fallingIdx = 3
