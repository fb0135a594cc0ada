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

package simulator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/simulator"
	"github.com/mrav/corebench/test"
)

func TestParse(t *testing.T) {
	s, err := simulator.Parse("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, simulator.Model)

	s, err = simulator.Parse("Icarus")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, simulator.Icarus)

	s, err = simulator.Parse(" verilator ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, simulator.Verilator)

	_, err = simulator.Parse("questa")
	test.ExpectSuccess(t, curated.Is(err, simulator.UnknownSimulator))
}

func TestTraceFormat(t *testing.T) {
	test.ExpectEquality(t, simulator.Icarus.TraceFormat(), simulator.FST)
	test.ExpectEquality(t, simulator.Verilator.TraceFormat(), simulator.VCD)
	test.ExpectEquality(t, simulator.Model.TraceFormat(), simulator.VCD)
	test.ExpectEquality(t, simulator.FST.Extension(), ".fst")

	test.DemandEquality(t, len(simulator.Icarus.BuildArgs()), 1)
	test.ExpectEquality(t, simulator.Icarus.BuildArgs()[0], "-fst")
	test.DemandEquality(t, len(simulator.Verilator.BuildArgs()), 1)
	test.ExpectEquality(t, simulator.Verilator.BuildArgs()[0], "--trace")
	test.ExpectEquality(t, len(simulator.Model.BuildArgs()), 0)
}

func TestBuildDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build", "sim")

	p, err := simulator.Verilator.Plan([]string{"core.v"}, "mrav_core", dir)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, filepath.IsAbs(p.BuildDir))
	test.ExpectSuccess(t, p.Waves)

	info, err := os.Stat(dir)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())

	// preparing an existing directory is not an error
	_, err = simulator.PrepareBuildDir(dir)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, p.String(), "verilator top=mrav_core dir="+p.BuildDir+" args=--trace core.v")
}

func TestOpen(t *testing.T) {
	dev, err := simulator.Open(simulator.Model, "")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, dev != nil)

	_, err = simulator.Open(simulator.Icarus, "")
	test.ExpectSuccess(t, curated.Is(err, simulator.External))
}
