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

// Package scheduler is a single-threaded discrete-event scheduler for
// phase-synchronised co-simulation.
//
// Every clock cycle is divided into a fixed sequence of phases:
//
//	RisingEdge -> ReadOnly -> ReadWrite -> FallingEdge -> ReadOnly -> ReadWrite
//
// The clocked device (the device under test) is evaluated at each edge before
// any task waiting on that edge is resumed. The ReadOnly phase that follows an
// edge is the point where every signal is settled and may be sampled. The
// ReadWrite phase is where tasks drive new signal values, which the device
// sees at its next edge.
//
// A Task is a resumable state machine. The scheduler calls Resume() with the
// phase the task was waiting for and the task returns the next phase it wants
// to wait for. Waiting on ReadOnly or ReadWrite means the next occurrence of
// that phase, whichever edge it follows. A task that has nothing more to do
// returns Halt.
//
// Every task waiting on a phase is resumed exactly once, in the order the
// tasks were started, before time advances to the next phase. There are no
// goroutines and no locks: only one task runs at a time.
//
// Tasks that implement the Liveness interface are retired when Active()
// returns false. This is how a scenario stops the bus responder at teardown
// without the scheduler clocking the device for a cycle nobody is waiting
// for.
//
// Run() returns when no tasks remain, when a task returns an error or when
// the context is cancelled. There is no timeout. A run that never ends is the
// caller's problem.
package scheduler
