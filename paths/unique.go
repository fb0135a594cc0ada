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

package paths

import (
	"strings"
	"time"
)

// UniqueFilename creates a filename from the current time that should not
// collide with an earlier one. The function does not test for this. Used for
// trace files written to the resource directory.
//
// Format of returned string is:
//
//	prepend_name_YYYYMMDD_HHMMSS
//
// Spaces and path separators in name are replaced with underscores. If name
// is empty the format is:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, name string) string {
	return uniqueFilename(prepend, name, time.Now())
}

func uniqueFilename(prepend string, name string, t time.Time) string {
	stamp := t.Format("20060102_150405")

	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if name == "" {
		return prepend + "_" + stamp
	}
	return prepend + "_" + name + "_" + stamp
}
