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

// Package report renders the verdict of a scenario for the user.
//
// The Write() function produces a short summary line and, on failure, a list
// of mismatches followed by a structural diff of the reference state and the
// final state. WriteGraph() writes a Graphviz dot description of any value,
// which is useful for inspecting the state of a core or a result.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/google/go-cmp/cmp"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/scenario"
	"github.com/mrav/corebench/terminal/ansi"
)

// fields has the same layout as snapshot.Core but without the Equal()
// method, which would otherwise stop cmp from reporting individual fields.
type fields struct {
	PC uint16
	R  [isa.NumRegisters]uint16
}

// Write the verdict of a scenario. Colour is optional and should only be
// used when w is a terminal.
func Write(w io.Writer, res scenario.Result, exp scenario.Expectation, color bool) error {
	s := &strings.Builder{}

	verdict := "PASS"
	pen := ansi.Pens["green"]
	if !res.Passed() {
		verdict = "FAIL"
		pen = ansi.Pens["red"]
	} else if exp.Empty() {
		// nothing was checked
		verdict = "DONE"
		pen = ansi.Bold
	}
	if color {
		verdict = fmt.Sprintf("%s%s%s", pen, verdict, ansi.NormalPen)
	}

	fmt.Fprintf(s, "%s: %d cycles, %d reads, %d writes\n", verdict, res.Cycles, res.Reads, res.Writes)
	fmt.Fprintf(s, "%s\n", res.Final.String(exp.Watched()...))

	for _, m := range res.Mismatches {
		fmt.Fprintf(s, "  %s\n", m)
	}

	if exp.Reference != nil && !res.Passed() {
		if d := cmp.Diff(fields(*exp.Reference), fields(res.Final)); d != "" {
			s.WriteString("reference (-expected +actual):\n")
			s.WriteString(d)
			if !strings.HasSuffix(d, "\n") {
				s.WriteString("\n")
			}
		}
	}

	if len(exp.Memory) > 0 {
		s.WriteString(Memory(res.Memory, exp.Memory))
	}

	_, err := io.WriteString(w, s.String())
	return err
}

// Memory lists the expected memory cells in address order along with their
// actual value. Cells that differ are marked with an asterisk.
func Memory(mem []uint8, expected map[int]uint8) string {
	addrs := make([]int, 0, len(expected))
	for a := range expected {
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)

	s := &strings.Builder{}
	s.WriteString("memory:\n")
	for _, a := range addrs {
		var v uint8
		if a >= 0 && a < len(mem) {
			v = mem[a]
		}
		mark := " "
		if v != expected[a] {
			mark = "*"
		}
		fmt.Fprintf(s, " %s%04X: %02X (expected %02X)\n", mark, a, v, expected[a])
	}
	return s.String()
}

// WriteGraph writes a Graphviz dot description of the values.
func WriteGraph(w io.Writer, values ...any) {
	memviz.Map(w, values...)
}
