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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function, which takes a
// pattern and placeholder values in the same way as fmt.Errorf(). The
// pattern is what distinguishes one kind of curated error from another. For
// that reason, every pattern that callers are expected to test for is stored
// as an exported const string in the package that raises it. For example,
// the memory package exports:
//
//	const OutOfBoundsAccess = "out of bounds access: address %#04x (memory size %d)"
//
// and a caller checks for it with:
//
//	if curated.Is(err, memory.OutOfBoundsAccess) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain:
//
//	e := curated.Errorf(memory.OutOfBoundsAccess, addr, size)
//	f := curated.Errorf("scenario: %v", e)
//
//	curated.Has(f, memory.OutOfBoundsAccess) // true
//	curated.Is(f, memory.OutOfBoundsAccess)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. Errors that are not curated are unexpected and
// should usually be treated more severely.
//
// The Error() function normalises the chain by removing adjacent duplicate
// parts, where parts are separated by the sub-string ": ". This means a
// caller can prefix an error with its own context without worrying about
// whether the callee already did the same:
//
//	scenario: scenario: image too large
//
// is printed as
//
//	scenario: image too large
package curated
