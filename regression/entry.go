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

package regression

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/database"
	"github.com/mrav/corebench/digest"
	"github.com/mrav/corebench/scenario"
	"github.com/mrav/corebench/simulator"
)

const scenarioEntryID = "scenario"

const (
	scenarioFieldScript int = iota
	scenarioFieldSimulator
	scenarioFieldCycles
	scenarioFieldDigest
	numScenarioFields
)

// ScenarioEntry is the regression entry for a scenario script.
type ScenarioEntry struct {
	Script    string
	Simulator simulator.Simulator
	Cycles    int

	digest string
}

// NewScenarioEntry is the preferred method of initialisation for the
// ScenarioEntry type. The number of cycles and the simulator are taken from
// the script when the entry is added to the database.
func NewScenarioEntry(script string) (*ScenarioEntry, error) {
	abs, err := filepath.Abs(script)
	if err != nil {
		return nil, curated.Errorf(RegressionError, err)
	}
	return &ScenarioEntry{Script: abs}, nil
}

func deserialiseScenarioEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numScenarioFields {
		return nil, fmt.Errorf("wrong number of fields for scenario entry (%d)", len(fields))
	}

	ent := &ScenarioEntry{
		Script: fields[scenarioFieldScript],
		digest: fields[scenarioFieldDigest],
	}

	var err error

	ent.Simulator, err = simulator.Parse(fields[scenarioFieldSimulator])
	if err != nil {
		return nil, err
	}

	ent.Cycles, err = strconv.Atoi(fields[scenarioFieldCycles])
	if err != nil || ent.Cycles <= 0 {
		return nil, fmt.Errorf("invalid cycles field (%s)", fields[scenarioFieldCycles])
	}

	return ent, nil
}

// ID implements the database.Entry interface.
func (ent ScenarioEntry) ID() string {
	return scenarioEntryID
}

// String implements the database.Entry interface.
func (ent ScenarioEntry) String() string {
	return fmt.Sprintf("%s [%s] cycles=%d", filepath.Base(ent.Script), ent.Simulator, ent.Cycles)
}

// Serialise implements the database.Entry interface.
func (ent ScenarioEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		ent.Script,
		ent.Simulator.String(),
		strconv.Itoa(ent.Cycles),
		ent.digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (ent ScenarioEntry) CleanUp() error {
	return nil
}

// Digest returns the recorded digest of the scenario.
func (ent ScenarioEntry) Digest() string {
	return ent.digest
}

// regress runs the scenario. When adding a new entry the scenario must pass
// and the digest is recorded. Otherwise the scenario must pass and the digest
// must match the recorded digest.
//
// The failure string says why the test did not succeed.
func (ent *ScenarioEntry) regress(ctx context.Context, newEntry bool) (bool, string, error) {
	cfg, exp, err := scenario.LoadScript(ent.Script)
	if err != nil {
		return false, "", err
	}

	if newEntry {
		ent.Simulator = cfg.Simulator
		ent.Cycles = cfg.Cycles
	} else {
		cfg.Simulator = ent.Simulator
		cfg.Cycles = ent.Cycles
	}

	if exp.Empty() {
		return false, "", curated.Errorf(RegressionError, "scenario has no expectations")
	}

	sw, err := scenario.LoadSoftware(cfg.Software)
	if err != nil {
		return false, "", err
	}

	dev, err := simulator.Open(cfg.Simulator, cfg.BuildDir)
	if err != nil {
		return false, "", err
	}

	sc, err := scenario.NewScenario(cfg, dev, sw)
	if err != nil {
		return false, "", err
	}

	dig := digest.NewCore()
	sc.OnCycle(dig.Cycle)

	res, err := sc.Run(ctx, exp)
	if err != nil {
		return false, "", err
	}
	dig.Memory(res.Memory)

	if err := res.Verdict(); err != nil {
		return false, err.Error(), nil
	}

	if newEntry {
		ent.digest = dig.Hash()
		return true, "", nil
	}

	if dig.Hash() != ent.digest {
		return false, fmt.Sprintf("digest mismatch: expected %s got %s", ent.digest, dig.Hash()), nil
	}

	return true, "", nil
}
