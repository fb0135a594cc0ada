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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mrav/corebench/curated"
	"github.com/mrav/corebench/hardware/dut/mrav"
	"github.com/mrav/corebench/isa"
	"github.com/mrav/corebench/logger"
	"github.com/mrav/corebench/modalflag"
	"github.com/mrav/corebench/model"
	"github.com/mrav/corebench/paths"
	"github.com/mrav/corebench/reference"
	"github.com/mrav/corebench/regression"
	"github.com/mrav/corebench/report"
	"github.com/mrav/corebench/scenario"
	"github.com/mrav/corebench/simulator"
	"github.com/mrav/corebench/snapshot"
	"github.com/mrav/corebench/statsview"
	"github.com/mrav/corebench/terminal"
	"github.com/mrav/corebench/terminal/ansi"
	"github.com/mrav/corebench/trace"
	"github.com/mrav/corebench/version"
)

// exit values.
const (
	exitOK      = 0
	exitParse   = 10
	exitFailure = 20
)

func main() {
	// ctrl-c cancels the scenario or regression run in progress
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. Returns the value to
// use with os.Exit().
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "STEP", "REFERENCE", "ASM", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md, false)

	case "STEP":
		err = run(ctx, md, true)

	case "REFERENCE":
		err = makeReference(md)

	case "ASM":
		err = assemble(md)

	case "REGRESS":
		err = regress(ctx, md)

	case "VERSION":
		fmt.Fprintln(output, version.Version())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitFailure
	}

	return exitOK
}

// flags shared by the RUN and STEP modes.
type scenarioFlags struct {
	script      *string
	reference   *string
	expect      *string
	sim         *string
	buildDir    *string
	cycles      *int
	resetCycles *int
	memorySize  *int
	period      *uint64
	trace       *string
	graph       *string
	verbose     *bool
	log         *bool
	stats       *bool
}

func addScenarioFlags(md *modalflag.Modes) *scenarioFlags {
	def := scenario.Defaults()

	f := &scenarioFlags{
		script:      md.AddString("script", "", "scenario script (lua)"),
		reference:   md.AddString("reference", "", "reference state to compare the final state with"),
		expect:      md.AddString("expect", "", "expected values. eg. pc=0x0e,r1=0x03e8,mem[1000]=0xbe"),
		sim:         md.AddString("sim", "", fmt.Sprintf("simulator: %s", strings.Join(simulator.Names, ", "))),
		buildDir:    md.AddString("build", "", "build directory for external simulators"),
		cycles:      md.AddInt("cycles", 0, fmt.Sprintf("number of cycles to run after reset (default %d)", def.Cycles)),
		resetCycles: md.AddInt("reset", 0, fmt.Sprintf("number of cycles reset is asserted (default %d)", def.ResetCycles)),
		memorySize:  md.AddInt("memory", 0, fmt.Sprintf("size of memory in bytes (default %d)", def.MemorySize)),
		period:      md.AddUint64("period", 0, fmt.Sprintf("clock period (default %d)", def.ClockPeriod)),
		trace:       md.AddString("trace", "", fmt.Sprintf("write a VCD trace of the bus to file (%q for a unique file)", autoTrace)),
		graph:       md.AddString("graph", "", "write a graphviz description of the result to file"),
		verbose:     md.AddBool("verbose", false, "log the state of the device every cycle"),
		log:         md.AddBool("log", false, "echo log to stdout"),
	}

	if statsview.Available() {
		f.stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp("The software image is the single argument, or the software named by the script.\n" +
		"Files with the .s or .asm extension are assembled. Flags override the script.")

	return f
}

// config builds the scenario configuration and expectation from the script
// and the flags. Flags override the script.
func (f *scenarioFlags) config(args []string) (scenario.Config, scenario.Expectation, error) {
	cfg := scenario.Defaults()
	var exp scenario.Expectation

	if *f.script != "" {
		var err error
		cfg, exp, err = scenario.LoadScript(*f.script)
		if err != nil {
			return cfg, exp, err
		}
	}

	switch len(args) {
	case 0:
		if cfg.Software == "" {
			return cfg, exp, fmt.Errorf("software image required")
		}
	case 1:
		cfg.Software = args[0]
	default:
		return cfg, exp, fmt.Errorf("too many arguments")
	}

	if *f.sim != "" {
		sim, err := simulator.Parse(*f.sim)
		if err != nil {
			return cfg, exp, err
		}
		cfg.Simulator = sim
	}
	if *f.buildDir != "" {
		cfg.BuildDir = *f.buildDir
	}
	if *f.cycles != 0 {
		cfg.Cycles = *f.cycles
	}
	if *f.resetCycles != 0 {
		cfg.ResetCycles = *f.resetCycles
	}
	if *f.memorySize != 0 {
		cfg.MemorySize = *f.memorySize
	}
	if *f.period != 0 {
		cfg.ClockPeriod = *f.period
	}
	cfg.Verbose = *f.verbose

	if *f.reference != "" {
		ref, err := reference.ReadFile(*f.reference)
		if err != nil {
			return cfg, exp, err
		}
		cfg.Reference = *f.reference
		exp.Reference = &ref
	}

	lit, err := scenario.ParseExpectation(*f.expect)
	if err != nil {
		return cfg, exp, err
	}
	exp = exp.Merge(lit)

	return cfg, exp, nil
}

func run(ctx context.Context, md *modalflag.Modes, step bool) error {
	md.NewMode()
	f := addScenarioFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *f.log {
		if out, ok := md.Output.(*os.File); ok && terminal.IsTerminal(out) {
			logger.SetEcho(logger.NewColorizer(md.Output))
		} else {
			logger.SetEcho(md.Output)
		}
		defer logger.SetEcho(nil)
	}

	cfg, exp, err := f.config(md.RemainingArgs())
	if err != nil {
		return err
	}

	sw, err := scenario.LoadSoftware(cfg.Software)
	if err != nil {
		return err
	}

	dev, err := simulator.Open(cfg.Simulator, cfg.BuildDir)
	if err != nil {
		return err
	}

	if c, ok := dev.(*mrav.Core); ok {
		c.Verbose = cfg.Verbose
	}

	sc, err := scenario.NewScenario(cfg, dev, sw)
	if err != nil {
		return err
	}

	if *f.trace != "" {
		fn := *f.trace
		if fn == autoTrace {
			base := strings.TrimSuffix(filepath.Base(cfg.Software), filepath.Ext(cfg.Software))
			fn, err = paths.ResourcePath("traces", paths.UniqueFilename("trace", base)+cfg.Simulator.TraceFormat().Extension())
			if err != nil {
				return err
			}
		}

		tf, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer tf.Close()
		logger.Logf(logger.Allow, "trace", "writing to %s", fn)

		tw, err := trace.NewWriter(tf, cfg.Simulator.TraceFormat(), cfg.DUT, dev)
		if err != nil {
			return err
		}
		sc.AddObserver(tw)
		defer func() {
			if err := tw.Flush(); err != nil {
				logger.Log(logger.Allow, "trace", err)
			}
		}()
	}

	if f.stats != nil && *f.stats {
		stop := statsview.Launch(md.Output)
		defer stop()
	}

	if step {
		st, err := newStepper(md.Output, exp.Watched())
		if err != nil {
			return err
		}
		defer st.close()
		sc.OnCycle(st.cycle)
	}

	res, err := sc.Run(ctx, exp)
	if err != nil {
		if curated.Has(err, stepQuit) {
			fmt.Fprintf(md.Output, "stopped after %d cycles\n", res.Cycles)
			return nil
		}

		// the most recent log entries show the cycles leading up to the error
		if cfg.Verbose && !*f.log {
			logger.Tail(md.Output, tailOnError)
		}

		return err
	}

	color := false
	if out, ok := md.Output.(*os.File); ok {
		color = terminal.IsTerminal(out)
	}

	if err := report.Write(md.Output, res, exp, color); err != nil {
		return err
	}

	if *f.graph != "" {
		gf, err := os.Create(*f.graph)
		if err != nil {
			return err
		}
		report.WriteGraph(gf, &res)
		if err := gf.Close(); err != nil {
			return err
		}
	}

	return res.Verdict()
}

// the trace filename that is replaced by a unique filename in the resource
// directory
const autoTrace = "auto"

// number of log entries shown when a verbose run fails
const tailOnError = 20

// stepQuit is returned by the stepper when the user ends the session.
const stepQuit = "step: quit at cycle %d"

// stepper waits for a key press after every cycle.
type stepper struct {
	term  *terminal.Terminal
	watch []int

	// stop waiting for key presses
	cont bool
}

func newStepper(output io.Writer, watch []int) (*stepper, error) {
	term, err := terminal.Open(terminal.Device, output)
	if err != nil {
		return nil, err
	}
	if err := term.CBreakMode(); err != nil {
		term.Close()
		return nil, err
	}

	term.Print("%sspace%s to step, %sc%s to continue, %sq%s to quit\n",
		ansi.Bold, ansi.NormalPen, ansi.Bold, ansi.NormalPen, ansi.Bold, ansi.NormalPen)

	return &stepper{term: term, watch: watch}, nil
}

func (st *stepper) close() {
	st.term.Close()
}

func (st *stepper) cycle(cycle int, core snapshot.Core) error {
	st.term.Print("%s\rcycle %4d %s", ansi.ClearLine, cycle, core.String(st.watch...))

	if st.cont {
		st.term.Print("\n")
		return nil
	}

	key, err := st.term.ReadKey()
	st.term.Print("\n")
	if err != nil {
		return err
	}

	switch {
	case terminal.Quit(key):
		return curated.Errorf(stepQuit, cycle)
	case key == 'c' || key == 'C':
		st.cont = true
	}

	return nil
}

// makeReference runs the software on the instruction level model and writes
// the final state as a reference file.
func makeReference(md *modalflag.Modes) error {
	md.NewMode()

	instructions := md.AddInt("instructions", 0, "number of instructions to execute")
	memorySize := md.AddInt("memory", scenario.DefaultMemorySize, "size of memory in bytes")
	out := md.AddString("o", "", "reference file to write (default is the software filename with .ref extension)")
	verbose := md.AddBool("verbose", false, "log every instruction")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *verbose {
		logger.SetEcho(md.Output)
		defer logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("software image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *instructions <= 0 {
		return fmt.Errorf("number of instructions must be greater than zero")
	}

	sw, err := scenario.LoadSoftware(md.GetArg(0))
	if err != nil {
		return err
	}
	if len(sw) > *memorySize {
		return fmt.Errorf("software (%d bytes) does not fit in memory (%d bytes)", len(sw), *memorySize)
	}

	mem := make([]uint8, *memorySize)
	copy(mem, sw)

	core := model.NewCore()
	core.Verbose = *verbose
	if err := core.Run(mem, *instructions); err != nil {
		return err
	}

	fn := *out
	if fn == "" {
		fn = strings.TrimSuffix(md.GetArg(0), filepath.Ext(md.GetArg(0))) + ".ref"
	}

	if err := reference.WriteFile(fn, core.Snapshot()); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s\nwritten to %s\n", core, fn)

	return nil
}

// assemble writes the software image for the assembly source.
func assemble(md *modalflag.Modes) error {
	md.NewMode()

	out := md.AddString("o", "", "image file to write (default is the source filename with .bin extension)")
	list := md.AddBool("list", false, "list the assembled instructions")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("assembly source required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	src, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	img, err := isa.Assemble(string(src))
	if err != nil {
		return err
	}

	fn := *out
	if fn == "" {
		fn = strings.TrimSuffix(md.GetArg(0), filepath.Ext(md.GetArg(0))) + ".bin"
	}

	if err := os.WriteFile(fn, img, 0644); err != nil {
		return err
	}

	if *list {
		w := bufio.NewWriter(md.Output)
		for a := 0; a+1 < len(img); a += isa.InstructionSize {
			ins := isa.Instruction(uint16(img[a])<<8 | uint16(img[a+1]))
			fmt.Fprintf(w, "%04X  %04X  %s\n", a, uint16(ins), ins)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(md.Output, "assembled %d bytes to %s\n", len(img), fn)

	return nil
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regress(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")
	db := md.AddString("db", "", "regression database (default is in the corebench resource directory)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbPath := *db
	if dbPath == "" {
		dbPath, err = regression.DatabasePath()
		if err != nil {
			return err
		}
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRun(ctx, dbPath, md.Output, *verbose, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		return regression.RegressList(dbPath, md.Output)

	case "DELETE":
		md.NewMode()
		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			var confirmation io.Reader = os.Stdin
			if *answerYes {
				confirmation = &yesReader{}
			}
			return regression.RegressDelete(dbPath, md.Output, confirmation, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at at time")
		}

	case "ADD":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("scenario script required for %s mode", md)
		case 1:
			ent, err := regression.NewScenarioEntry(md.GetArg(0))
			if err != nil {
				return err
			}
			return regression.RegressAdd(ctx, dbPath, md.Output, ent)
		default:
			return fmt.Errorf("only one entry can be added at at time")
		}
	}

	return nil
}
