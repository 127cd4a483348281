// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package profile runs munin programs against sets of probe inputs, and
// reports the memory each run used.
package profile

import (
	"context"
	"log"

	"github.com/ezrec/munin/device"
	"github.com/ezrec/munin/lower"
	"github.com/ezrec/munin/value"
)

// Sample is the result of a single profiled run.
type Sample struct {
	Profile   string           // Profile name.
	Probe     uint32           // Probe value.
	Inputs    []uint32         // Input values derived from the probe.
	Footprint device.Footprint // Memory used by the run.
	Ticks     int              // Instructions executed.
}

// InputLength returns the bit length of the probe value.
func (s *Sample) InputLength() int {
	return value.Len(s.Probe)
}

// MemoryUsed returns the bits of flag and execution memory used.
func (s *Sample) MemoryUsed() int {
	return s.Footprint.Flags + s.Footprint.Execution
}

// Profiler state. Device + loaded program.
type Profiler struct {
	Verbose bool            // If set, logs the device state after each run.
	Device  *device.Device  // Reference to the device simulation.
	Program *device.Program // Reference to the currently loaded program.
}

// NewProfiler creates a new profiler.
func NewProfiler() (pr *Profiler) {
	pr = &Profiler{
		Device:  device.NewDevice(),
		Program: &device.Program{},
	}

	return
}

// Load lowers a source program, resets the device, and loads the program.
func (pr *Profiler) Load(lines []string, defines map[string]string) (err error) {
	lw := &lower.Lowerer{Verbose: pr.Verbose}
	for name, str := range defines {
		lw.Predefine(name, str)
	}

	listing, err := lw.Lower(lines)
	if err != nil {
		return
	}

	pr.Program = device.NewProgram(listing.Lines)
	pr.Device.Reset()
	pr.Device.LoadProgram(pr.Program)

	return
}

// Sample runs the loaded program once with the inputs, and returns the
// memory used by the run. Execution memory is cleared before the run.
func (pr *Profiler) Sample(inputs []uint32) (fp device.Footprint, err error) {
	dev := pr.Device

	dev.ResetExecution()
	for n, u := range inputs {
		err = dev.SetInput(n, u)
		if err != nil {
			return
		}
	}

	err = dev.Run()
	if err != nil {
		return
	}

	fp = dev.Footprint()

	if pr.Verbose {
		log.Printf("profile: inputs %v, %d ticks\n%v", inputs, dev.Ticks(), dev)
	}

	return
}

// Run runs every profile of the configuration for every probe value.
// The context is checked between runs.
func (pr *Profiler) Run(ctx context.Context, cfg *Config) (samples []Sample, err error) {
	pr.Device.MaxTicks = cfg.MaxTicks
	pr.Device.LaxPhase = cfg.Lax

	for _, prof := range cfg.Profiles {
		var lines []string
		lines, err = cfg.Source(&prof)
		if err != nil {
			err = &ErrProfile{Profile: prof.Name, Err: err}
			return
		}

		err = pr.Load(lines, cfg.Defines)
		if err != nil {
			err = &ErrProfile{Profile: prof.Name, Err: err}
			return
		}

		for _, probe := range cfg.Probes {
			err = ctx.Err()
			if err != nil {
				return
			}

			var inputs []uint32
			inputs, err = prof.Evaluate(probe)
			if err != nil {
				return
			}

			if pr.Verbose {
				log.Printf("profile: %v probe %#x", prof.Name, probe)
			}

			var fp device.Footprint
			fp, err = pr.Sample(inputs)
			if err != nil {
				err = &ErrProfile{Profile: prof.Name, Probe: probe, Err: err}
				return
			}

			samples = append(samples, Sample{
				Profile:   prof.Name,
				Probe:     probe,
				Inputs:    inputs,
				Footprint: fp,
				Ticks:     pr.Device.Ticks(),
			})
		}
	}

	return
}
