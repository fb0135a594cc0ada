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

package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// DemandEquality is the same as ExpectEquality except that failure ends the
// test immediately.
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) {
	t.Helper()
	equality(t.Fatalf, v, expectedValue, tags...)
}

// DemandEquivalence is the same as ExpectEquivalence except that failure ends
// the test immediately.
func DemandEquivalence(t *testing.T, v any, expectedValue any, opts ...cmp.Option) {
	t.Helper()
	equivalence(t.Fatalf, v, expectedValue, opts)
}

// DemandSuccess is the same as ExpectSuccess except that failure ends the
// test immediately.
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	outcome(t, t.Fatalf, true, v, tags...)
}

// DemandFailure is the same as ExpectFailure except that failure ends the
// test immediately.
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	outcome(t, t.Fatalf, false, v, tags...)
}
