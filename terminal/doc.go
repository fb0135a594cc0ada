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

// Package terminal is the interactive terminal used by the STEP mode. The
// terminal is put into cbreak mode so that single key presses can advance
// the simulation without waiting for the return key.
//
// The ansi sub-package defines the control codes used to colour output. Use
// IsTerminal() to decide whether output should be coloured at all.
package terminal
