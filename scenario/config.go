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
	"os"
	"path/filepath"
	"strings"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/simulator"
)

// InvalidConfig is the pattern of the error returned by Config.Validate().
const InvalidConfig = "scenario: invalid config: %s"

// Default values for the Config type.
const (
	DefaultCycles      = 15
	DefaultResetCycles = 1
	DefaultMemorySize  = 1024
	DefaultClockPeriod = 10
	DefaultTopLevel    = "mrav_core"
)

// Config describes how to run a scenario.
type Config struct {
	// simulation backend and the directory the RTL is built in when the
	// backend is external
	Simulator simulator.Simulator
	BuildDir  string

	// number of clock cycles to run after reset
	Cycles int

	// number of cycles reset is held asserted
	ResetCycles int

	// size of memory in bytes
	MemorySize int

	// clock period in simulation time units. must be even
	ClockPeriod uint64

	// filename of the software image. files with the .s or .asm extension are
	// assembled, anything else is loaded verbatim
	Software string

	// filename of the reference state. can be empty
	Reference string

	// top level module of the device under test
	DUT string

	// log the state of the device every cycle
	Verbose bool
}

// Defaults returns a Config with every field set to its default value.
func Defaults() Config {
	return Config{
		Simulator:   simulator.Model,
		Cycles:      DefaultCycles,
		ResetCycles: DefaultResetCycles,
		MemorySize:  DefaultMemorySize,
		ClockPeriod: DefaultClockPeriod,
		DUT:         DefaultTopLevel,
	}
}

// Validate checks that the Config describes a scenario that can be run.
func (cfg Config) Validate() error {
	if cfg.Cycles <= 0 {
		return curated.Errorf(InvalidConfig, "cycles must be greater than zero")
	}
	if cfg.ResetCycles <= 0 {
		return curated.Errorf(InvalidConfig, "reset cycles must be greater than zero")
	}
	if cfg.MemorySize < 2 {
		return curated.Errorf(InvalidConfig, "memory must hold at least one word")
	}
	if cfg.ClockPeriod == 0 || cfg.ClockPeriod%2 != 0 {
		return curated.Errorf(InvalidConfig, "clock period must be even")
	}
	if cfg.DUT == "" {
		return curated.Errorf(InvalidConfig, "top level module not named")
	}
	return nil
}

// LoadSoftware reads the software image named by filename. Assembly source is
// assembled.
func LoadSoftware(filename string) ([]uint8, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("scenario: software: %v", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".s", ".asm":
		img, err := isa.Assemble(string(b))
		if err != nil {
			return nil, curated.Errorf("scenario: software: %v", err)
		}
		return img, nil
	}

	return b, nil
}
