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

// Package simulator describes the simulators that can host the device under
// test. The behavioural model runs in process. The HDL simulators are
// external tools and the package only describes how the RTL should be built
// for them: the build arguments, the trace format and the build directory.
package simulator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/dut"
	"github.com/mrav/corebench/hardware/dut/mrav"
)

// Sentinal error patterns.
const (
	UnknownSimulator = "simulator: unknown simulator (%s)"
	External         = "simulator: %s is an external simulator (%s)"
)

// Simulator identifies a simulation backend.
type Simulator int

// List of valid Simulator values.
const (
	Model Simulator = iota
	Icarus
	Verilator
)

// List of simulator names. Index by Simulator.
var Names = []string{"model", "icarus", "verilator"}

func (s Simulator) String() string {
	if int(s) < len(Names) {
		return Names[s]
	}
	return "unknown"
}

// Parse a simulator name. Case insensitive. An empty string is the Model
// simulator.
func Parse(name string) (Simulator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Model, nil
	}
	for i, n := range Names {
		if n == name {
			return Simulator(i), nil
		}
	}
	return Model, curated.Errorf(UnknownSimulator, name)
}

// TraceFormat is the waveform format written by a simulator.
type TraceFormat int

// List of valid TraceFormat values.
const (
	VCD TraceFormat = iota
	FST
)

func (f TraceFormat) String() string {
	if f == FST {
		return "FST"
	}
	return "VCD"
}

// Extension returns the conventional filename extension for the format.
func (f TraceFormat) Extension() string {
	if f == FST {
		return ".fst"
	}
	return ".vcd"
}

// TraceFormat returns the waveform format of the simulator. The format is a
// property of the simulator and cannot be chosen independently.
func (s Simulator) TraceFormat() TraceFormat {
	if s == Icarus {
		return FST
	}
	return VCD
}

// BuildArgs returns the extra arguments that enable waveform output when the
// RTL is built for the simulator.
func (s Simulator) BuildArgs() []string {
	switch s {
	case Icarus:
		return []string{"-fst"}
	case Verilator:
		return []string{"--trace"}
	}
	return nil
}

// External returns true if the simulator cannot run in process.
func (s Simulator) External() bool {
	return s != Model
}

// BuildPlan is everything an external build of the RTL requires.
type BuildPlan struct {
	Simulator Simulator
	Sources   []string
	TopLevel  string
	BuildDir  string
	Args      []string
	Waves     bool
}

func (p BuildPlan) String() string {
	s := strings.Builder{}
	s.WriteString(p.Simulator.String())
	s.WriteString(" top=")
	s.WriteString(p.TopLevel)
	if p.BuildDir != "" {
		s.WriteString(" dir=")
		s.WriteString(p.BuildDir)
	}
	if len(p.Args) > 0 {
		s.WriteString(" args=")
		s.WriteString(strings.Join(p.Args, " "))
	}
	for _, src := range p.Sources {
		s.WriteString(" ")
		s.WriteString(src)
	}
	return s.String()
}

// Plan returns the build plan for the RTL sources with the top level module.
// The build directory is optional and is made absolute when given.
func (s Simulator) Plan(sources []string, topLevel string, buildDir string) (BuildPlan, error) {
	p := BuildPlan{
		Simulator: s,
		Sources:   sources,
		TopLevel:  topLevel,
		Args:      s.BuildArgs(),
		Waves:     true,
	}

	if buildDir != "" {
		var err error
		p.BuildDir, err = PrepareBuildDir(buildDir)
		if err != nil {
			return p, err
		}
	}

	return p, nil
}

// PrepareBuildDir makes the build directory absolute and creates it if it
// doesn't already exist.
func PrepareBuildDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", curated.Errorf("simulator: build dir: %v", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", curated.Errorf("simulator: build dir: %v", err)
	}
	return abs, nil
}

// Open the device under test for the simulator. Only the behavioural model
// can be opened in process. Other simulators return an error describing the
// build plan.
func Open(s Simulator, buildDir string) (dut.Device, error) {
	if !s.External() {
		return mrav.NewCore(), nil
	}

	p, err := s.Plan([]string{"mrav_core.v"}, "mrav_core", buildDir)
	if err != nil {
		return nil, err
	}

	return nil, curated.Errorf(External, s, p)
}
