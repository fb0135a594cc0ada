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

// Package regression facilitates the regression testing of a device. A
// scenario script that passes is added to the regression database along with
// the digest of every cycle of the run. Running the regression tests repeats
// every scenario and compares the new digest with the recorded one.
//
// A regression test fails if the scenario no longer passes or if the device
// took a different route to the same final state, which only the digest will
// show.
//
// Tests are run concurrently. Each test builds its own device, memory and
// scheduler so nothing is shared between them.
package regression
