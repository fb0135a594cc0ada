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

package logger

import (
	"io"
	"strings"
)

const (
	penNormal = "\033[0m"
	penDimRed = "\033[2;31m"
)

// Colorizer applies basic coloring rules to logging output. The first line
// of any write is printed normally and any following lines are dimmed red.
// Multi-line writes are usually verdict reports with mismatches following
// the summary line.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	l := strings.Split(strings.TrimRight(string(p), "\n"), "\n")

	_, err = io.WriteString(c.out, l[0]+"\n")
	if err != nil {
		return 0, err
	}

	if len(l) > 1 {
		_, err = io.WriteString(c.out, penDimRed)
		if err != nil {
			return 0, err
		}
		for _, s := range l[1:] {
			_, err = io.WriteString(c.out, s+"\n")
			if err != nil {
				return 0, err
			}
		}
		_, err = io.WriteString(c.out, penNormal)
		if err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
