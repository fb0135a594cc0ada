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

// Package scenario runs a device under test against the bus memory responder
// and checks the final state of the device against expectations.
//
// A scenario has three parts. The setup creates the memory image from the
// software and starts the responder. The orchestrator then drives reset,
// clocks the device for the configured number of cycles and samples the state
// of the device once per cycle in the read-only phase following the falling
// edge. Finally the oracle compares the last sample, and the contents of
// memory, against literal expectations and an optional reference state.
//
// Expectation failures do not stop the scenario. Every mismatch is collected
// in the Result and the Verdict() function summarises them as a single error.
// Bus protocol errors are fatal and stop the scenario immediately.
//
// Scenarios can be described by a Lua script. See LoadScript() for the
// globals that the script can set.
package scenario
