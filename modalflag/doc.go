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

// Package modalflag wraps the flag package so that a command line can be
// split into modes, each with its own set of flags. The corebench command
// line is of the form:
//
//	corebench [MODE [SUB-MODE]] [flags] [arguments]
//
// Arguments are given to the Modes type with NewArgs() and parsed one layer
// at a time with Parse(). Before each Parse() the flags and sub-modes for that
// layer are added. The first sub-mode added is the default and is selected
// when the next argument isn't a recognised mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "STEP", "REGRESS")
//	if r, err := md.Parse(); r != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		cycles := md.AddInt("cycles", 15, "number of cycles to run")
//		...
//	}
//
// Mode names are case insensitive and are reported in upper case. The path
// of modes found so far is returned by Path(), with modes separated by a
// forward slash.
//
// Help is printed to the Output writer when the -help flag is found. The
// ParseHelp result means there is nothing more to do.
package modalflag
