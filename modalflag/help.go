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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// help prints the flags and sub-modes of the current layer.
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var hasFlags bool
	md.flags.VisitAll(func(_ *flag.Flag) { hasFlags = true })

	if !hasFlags && len(md.subModes) == 0 {
		fmt.Fprintf(md.Output, "No help available for %s\n", md.banner())
		return
	}

	s := &strings.Builder{}
	fmt.Fprintf(s, "Usage of %s:\n", md.banner())

	if hasFlags {
		md.flags.SetOutput(s)
		md.flags.PrintDefaults()
		md.flags.SetOutput(io.Discard)
	}

	if len(md.subModes) > 0 {
		if hasFlags {
			s.WriteString("\n")
		}
		fmt.Fprintf(s, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(s, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		s.WriteString("\n")
		s.WriteString(strings.TrimRight(md.additionalHelp, "\n"))
		s.WriteString("\n")
	}

	md.Output.Write([]byte(s.String()))
}
