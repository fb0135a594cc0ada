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

package scenario

import (
	"fmt"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/reference"
	"github.com/mrav/corebench/simulator"
)

// ScriptError is the pattern of errors returned by LoadScript().
const ScriptError = "scenario: script: %v"

// LoadScript reads a scenario described by a Lua script. The script is run in
// a restricted state with only the base, string, table and math libraries
// available. Once the script has finished the following globals are read.
// All are optional and unset values take the default from Defaults()
//
//	software       filename of the software image
//	reference      filename of the reference state
//	cycles         number of cycles to run after reset
//	reset_cycles   number of cycles reset is held
//	memory_size    size of memory in bytes
//	simulator      "model", "icarus" or "verilator"
//	build_dir      build directory for external simulators
//	dut            top level module name
//	expect_pc      expected program counter
//	expect_regs    table of register index to expected value
//	expect_mem     table of memory address to expected byte
//
// Relative filenames are relative to the directory containing the script. If
// a reference filename is given the reference state is read and added to the
// expectation.
func LoadScript(filename string) (Config, Expectation, error) {
	cfg := Defaults()
	var exp Expectation

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	if err := L.DoFile(filename); err != nil {
		return cfg, exp, curated.Errorf(ScriptError, err)
	}

	dir := filepath.Dir(filename)
	s := &script{L: L}

	if v, ok := s.str("software"); ok {
		cfg.Software = resolve(dir, v)
	}
	if v, ok := s.str("reference"); ok {
		cfg.Reference = resolve(dir, v)
	}
	if v, ok := s.str("build_dir"); ok {
		cfg.BuildDir = resolve(dir, v)
	}
	if v, ok := s.str("dut"); ok {
		cfg.DUT = v
	}
	if v, ok := s.str("simulator"); ok {
		sim, err := simulator.Parse(v)
		if err != nil {
			return cfg, exp, curated.Errorf(ScriptError, err)
		}
		cfg.Simulator = sim
	}
	if v, ok := s.num("cycles"); ok {
		cfg.Cycles = v
	}
	if v, ok := s.num("reset_cycles"); ok {
		cfg.ResetCycles = v
	}
	if v, ok := s.num("memory_size"); ok {
		cfg.MemorySize = v
	}
	if v, ok := s.num("expect_pc"); ok {
		if v < 0 || v > 0xffff {
			return cfg, exp, curated.Errorf(ScriptError, fmt.Sprintf("expect_pc out of range (%d)", v))
		}
		exp.CheckPC = true
		exp.PC = uint16(v)
	}

	regs, err := s.table("expect_regs", 0xffff)
	if err != nil {
		return cfg, exp, curated.Errorf(ScriptError, err)
	}
	if len(regs) > 0 {
		exp.Registers = make(map[int]uint16, len(regs))
		for k, v := range regs {
			exp.Registers[k] = uint16(v)
		}
	}

	mem, err := s.table("expect_mem", 0xff)
	if err != nil {
		return cfg, exp, curated.Errorf(ScriptError, err)
	}
	if len(mem) > 0 {
		exp.Memory = make(map[int]uint8, len(mem))
		for k, v := range mem {
			exp.Memory[k] = uint8(v)
		}
	}

	if s.err != nil {
		return cfg, exp, curated.Errorf(ScriptError, s.err)
	}

	if cfg.Reference != "" {
		ref, err := reference.ReadFile(cfg.Reference)
		if err != nil {
			return cfg, exp, err
		}
		exp.Reference = &ref
	}

	return cfg, exp, nil
}

func resolve(dir string, fn string) string {
	if fn == "" || filepath.IsAbs(fn) {
		return fn
	}
	return filepath.Join(dir, fn)
}

// script reads globals from a Lua state. the first error encountered is kept
// and later reads do nothing
type script struct {
	L   *lua.LState
	err error
}

func (s *script) str(name string) (string, bool) {
	if s.err != nil {
		return "", false
	}
	switch v := s.L.GetGlobal(name).(type) {
	case *lua.LNilType:
		return "", false
	case lua.LString:
		return string(v), true
	default:
		s.err = curated.Errorf("%s should be a string (%s)", name, v.Type())
	}
	return "", false
}

func (s *script) num(name string) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	switch v := s.L.GetGlobal(name).(type) {
	case *lua.LNilType:
		return 0, false
	case lua.LNumber:
		n := int(v)
		if lua.LNumber(n) != v {
			s.err = curated.Errorf("%s should be an integer (%v)", name, v)
			return 0, false
		}
		return n, true
	default:
		s.err = curated.Errorf("%s should be a number (%s)", name, v.Type())
	}
	return 0, false
}

// table reads a global table of integer keys to integer values. every value
// must be between zero and max
func (s *script) table(name string, max int) (map[int]int, error) {
	if s.err != nil {
		return nil, nil
	}

	var t *lua.LTable
	switch v := s.L.GetGlobal(name).(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		t = v
	default:
		return nil, curated.Errorf("%s should be a table (%s)", name, v.Type())
	}

	m := make(map[int]int)
	var err error
	t.ForEach(func(k lua.LValue, v lua.LValue) {
		if err != nil {
			return
		}
		kn, ok := k.(lua.LNumber)
		if !ok || lua.LNumber(int(kn)) != kn {
			err = curated.Errorf("%s has a non-integer key (%v)", name, k)
			return
		}
		vn, ok := v.(lua.LNumber)
		if !ok || lua.LNumber(int(vn)) != vn || int(vn) < 0 || int(vn) > max {
			err = curated.Errorf("%s[%d] is not a value between 0 and %d (%v)", name, int(kn), max, v)
			return
		}
		m[int(kn)] = int(vn)
	})

	return m, err
}
