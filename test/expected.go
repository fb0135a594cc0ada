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
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// failer is either t.Errorf or t.Fatalf
type failer func(format string, args ...any)

// id returns a prefix for test failure messages from the optional tags
// argument of the Expect and Demand functions
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := make([]string, 0, len(tags))
	for _, t := range tags {
		s = append(s, fmt.Sprint(t))
	}
	return strings.Join(s, " ") + ": "
}

// success returns true if v is a success value for its type:
//
//	bool -> bool == true
//	error -> error == nil
//	nil -> always success
//
// Any other type is a fatal test error.
func success(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	}

	t.Fatalf("%sunsupported type (%T) for success testing", id(tags...), v)
	return false
}

func equality[T comparable](fail failer, v T, expectedValue T, tags ...any) bool {
	if v != expectedValue {
		fail("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

func equivalence(fail failer, v any, expectedValue any, opts []cmp.Option, tags ...any) bool {
	if d := cmp.Diff(expectedValue, v, opts...); d != "" {
		fail("%sequivalence test of type %T failed (-expected +actual):\n%s", id(tags...), v, d)
		return false
	}
	return true
}

func outcome(t *testing.T, fail failer, want bool, v any, tags ...any) bool {
	t.Helper()

	if success(t, v, tags...) == want {
		return true
	}

	what := "failure"
	if want {
		what = "success"
	}

	if err, ok := v.(error); ok && err != nil {
		fail("%sa %s value is wanted for type %T: %v", id(tags...), what, v, err)
	} else {
		fail("%sa %s value is wanted for type %T", id(tags...), what, v)
	}

	return false
}

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	return equality(t.Errorf, v, expectedValue, tags...)
}

// ExpectInequality is the inverse of ExpectEquality.
func ExpectInequality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v == expectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectEquivalence compares values that cannot be compared with the ==
// operator, such as slices and maps. The failure message is a diff of the two
// values.
func ExpectEquivalence(t *testing.T, v any, expectedValue any, opts ...cmp.Option) bool {
	t.Helper()
	return equivalence(t.Errorf, v, expectedValue, opts)
}

// ExpectSuccess tests argument v for a success condition suitable for it's
// type. See the package documentation for how nil is treated.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	return outcome(t, t.Errorf, true, v, tags...)
}

// ExpectFailure tests argument v for a failure condition suitable for it's
// type.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	return outcome(t, t.Errorf, false, v, tags...)
}
