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

// Package version reports the version of corebench and the vcs revision it
// was built from.
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "corebench"

// number is set by the linker for release builds:
//
//	go build -ldflags "-X github.com/mrav/corebench/version.number=v1.0.0"
var number string

// Info describes the build.
type Info struct {
	// the release number, "unreleased" if built from a vcs checkout without a
	// release number, or "local" if there is no vcs information at all
	Version string

	// vcs revision. suffixed with "+dirty" if the source had uncommitted
	// changes
	Revision string

	// Version is a numbered release
	Release bool
}

func (inf Info) String() string {
	if inf.Release {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, inf.Version, inf.Revision)
}

// Version returns information about the build.
var Version = sync.OnceValue(func() Info {
	info, _ := debug.ReadBuildInfo()
	return build(number, info)
})

func build(number string, info *debug.BuildInfo) Info {
	var vcs bool
	var revision string
	var modified bool

	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	inf := Info{Revision: "no revision information"}
	if revision != "" {
		inf.Revision = revision
		if modified {
			inf.Revision += "+dirty"
		}
	}

	switch {
	case number != "":
		inf.Version = number
		inf.Release = true
	case vcs:
		inf.Version = "unreleased"
	default:
		inf.Version = "local"
	}

	return inf
}
