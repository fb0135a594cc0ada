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
	"context"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/dut"
	"github.com/mrav/corebench/hardware/memory"
	"github.com/mrav/corebench/hardware/scheduler"
	"github.com/mrav/corebench/logger"
	"github.com/mrav/corebench/snapshot"
)

// Scenario is a single run of a device under test. A Scenario can be run only
// once.
type Scenario struct {
	cfg   Config
	dev   dut.Device
	img   *memory.Image
	resp  *memory.Responder
	sched *scheduler.Scheduler

	onCycle []func(cycle int, core snapshot.Core) error

	ran bool
}

// NewScenario prepares a scenario for the device. The software is loaded into
// a new memory image. Any error is returned before a single cycle has been
// simulated.
func NewScenario(cfg Config, dev dut.Device, software []uint8) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, curated.Errorf(InvalidConfig, "no device")
	}

	img, err := memory.NewImage(cfg.MemorySize, software)
	if err != nil {
		return nil, curated.Errorf("scenario: %v", err)
	}

	sched, err := scheduler.NewScheduler(scheduler.Clock{Period: cfg.ClockPeriod}, dev)
	if err != nil {
		return nil, curated.Errorf("scenario: %v", err)
	}

	sc := &Scenario{
		cfg:   cfg,
		dev:   dev,
		img:   img,
		resp:  memory.NewResponder(img, dev.Bus()),
		sched: sched,
	}
	sc.resp.Verbose = cfg.Verbose

	return sc, nil
}

// AllowLogging implements the logger.Permission interface.
func (sc *Scenario) AllowLogging() bool {
	return sc.cfg.Verbose
}

// Config returns the configuration of the scenario.
func (sc *Scenario) Config() Config {
	return sc.cfg
}

// Device returns the device under test.
func (sc *Scenario) Device() dut.Device {
	return sc.dev
}

// AddObserver adds an observer to the scheduler that runs the scenario.
func (sc *Scenario) AddObserver(o scheduler.Observer) {
	sc.sched.AddObserver(o)
}

// OnCycle adds a function that is called with every sample of the device. An
// error returned by the function stops the scenario.
func (sc *Scenario) OnCycle(f func(cycle int, core snapshot.Core) error) {
	sc.onCycle = append(sc.onCycle, f)
}

// Run the scenario and check the final state against the expectation. The
// returned error is only for errors that stopped the scenario. Failed
// expectations are recorded in the Result.
func (sc *Scenario) Run(ctx context.Context, exp Expectation) (Result, error) {
	if sc.ran {
		return Result{}, curated.Errorf("scenario: already run")
	}
	sc.ran = true

	if err := exp.Validate(sc.img.Len()); err != nil {
		return Result{}, err
	}

	orc := &orchestrator{
		sc:    sc,
		watch: exp.Watched(),
	}

	sc.sched.Start("responder", sc.resp, scheduler.RisingEdge)
	sc.sched.Start("orchestrator", orc, scheduler.RisingEdge)

	err := sc.sched.Run(ctx)

	res := Result{
		Final:  orc.last,
		Memory: sc.img.Copy(),
		Cycles: orc.cycle,
		Reads:  sc.resp.Reads(),
		Writes: sc.resp.Writes(),
	}

	if err != nil {
		return res, curated.Errorf("scenario: cycle %d: %v", orc.cycle, err)
	}

	res.Mismatches = exp.Check(res.Final, res.Memory)

	if res.Passed() {
		logger.Logf(logger.Allow, "scenario", "passed after %d cycles %s", res.Cycles, res.Final.String(orc.watch...))
	} else {
		logger.Logf(logger.Allow, "scenario", "failed with %d mismatches after %d cycles", len(res.Mismatches), res.Cycles)
	}

	return res, nil
}

type stage int

const (
	stageReset stage = iota
	stageAssert
	stagePulseRise
	stagePulseFall
	stageRise
	stageFall
	stageSample
)

// orchestrator is the scheduler task that drives reset and samples the device
// each cycle
type orchestrator struct {
	sc    *Scenario
	stage stage

	// remaining reset cycles
	pulses int

	cycle int
	last  snapshot.Core

	// registers shown in the log
	watch []int
}

func (orc *orchestrator) Resume(phase scheduler.Phase) (scheduler.Phase, error) {
	sc := orc.sc

	switch orc.stage {
	case stageReset:
		orc.stage = stageAssert
		return scheduler.FallingEdge, nil

	case stageAssert:
		sc.dev.SetReset(true)
		orc.pulses = sc.cfg.ResetCycles
		orc.stage = stagePulseRise
		return scheduler.RisingEdge, nil

	case stagePulseRise:
		orc.stage = stagePulseFall
		return scheduler.FallingEdge, nil

	case stagePulseFall:
		orc.pulses--
		if orc.pulses > 0 {
			orc.stage = stagePulseRise
			return scheduler.RisingEdge, nil
		}
		sc.dev.SetReset(false)
		orc.stage = stageRise
		return scheduler.RisingEdge, nil

	case stageRise:
		orc.stage = stageFall
		return scheduler.FallingEdge, nil

	case stageFall:
		orc.stage = stageSample
		return scheduler.ReadOnly, nil

	case stageSample:
		core, err := snapshot.Capture(sc.sched, sc.dev)
		if err != nil {
			return scheduler.Halt, err
		}

		orc.cycle++
		orc.last = core
		logger.Logf(sc, "scenario", "cycle %d: %s", orc.cycle, core.String(orc.watch...))

		for _, f := range sc.onCycle {
			if err := f(orc.cycle, core); err != nil {
				sc.resp.Deactivate()
				return scheduler.Halt, err
			}
		}

		if orc.cycle >= sc.cfg.Cycles {
			sc.resp.Deactivate()
			return scheduler.Halt, nil
		}

		orc.stage = stageRise
		return scheduler.RisingEdge, nil
	}

	return scheduler.Halt, curated.Errorf("scenario: orchestrator in unknown stage (%d) during %s", orc.stage, phase)
}
