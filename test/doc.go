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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectSuccess and ExpectFailure functions test for failure and success
// under generic conditions: a bool is successful if it is true and an error
// is successful if it is nil.
//
// It is worth describing how the "Expect" functions handle the nil type
// because it is not obvious. The nil type is considered a success and
// consequently will cause ExpectFailure to fail and ExpectSuccess to succeed.
// This is because of how errors usually work (nil to indicate no error).
//
// ExpectEquality and ExpectInequality compare like-typed values.
// ExpectEquivalence is for values that cannot be compared with the ==
// operator and reports a diff of the two values on failure. The Demand
// variants are the same tests but failure is fatal to the test. They are
// useful when later parts of a test depend on the value being correct, for
// example that a scenario setup succeeded before the simulation is run.
//
// All functions other than the Equivalence functions accept an optional list of tags, which are prefixed to the
// failure message. Useful when the test is inside a loop.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. The Compare() function can then be used to test
// for equality.
package test
