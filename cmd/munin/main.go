// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/munin/device"
	munio "github.com/ezrec/munin/io"
	"github.com/ezrec/munin/lower"
	"github.com/ezrec/munin/profile"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Fatalf("munin: %v", err)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:   "munin",
		Short: "munin lowering pass, execution engine, and profiler",
		Long: `munin lowers human readable pseudo-op source into final device mnemonics,
and runs them on a bit-precise execution engine that accounts for every
bit of memory a program touches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newLowerCmd(),
		newRunCmd(),
		newProfileCmd(),
		newMonitorCmd(),
	)

	return
}

func newLowerCmd() *cobra.Command {
	var (
		file    string
		output  string
		dialect string
		defines []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "lower",
		Short: "Lower a source file to device mnemonics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			lines, err := munio.ReadFile(file)
			if err != nil {
				return
			}

			lw := &lower.Lowerer{Verbose: verbose}
			lw.Dialect, err = lower.DialectByName(dialect)
			if err != nil {
				return
			}
			parseDefines(lw, defines)

			listing, err := lw.Lower(lines)
			if err != nil {
				err = fmt.Errorf("%v: %w", file, err)
				return
			}

			if output == "-" {
				err = munio.WriteLines(cmd.OutOrStdout(), listing.Lines)
			} else {
				err = munio.WriteFile(output, listing.Lines)
			}
			return
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "source file to lower")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&dialect, "dialect", lower.Assembly.Name,
		"output dialect: "+strings.Join(lower.DialectNames(), ", "))
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "predefine NAME=VALUE")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		file     string
		source   bool
		inputs   []string
		defines  []string
		start    int
		lax      bool
		maxTicks int
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a program, and print the final device state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ins, err := parseInputs(inputs)
			if err != nil {
				return
			}

			lines, err := readProgram(file, source, defines, verbose)
			if err != nil {
				err = fmt.Errorf("%v: %w", file, err)
				return
			}

			dev := device.NewDevice()
			dev.Verbose = verbose
			dev.LaxPhase = lax
			dev.MaxTicks = maxTicks
			dev.LoadLines(lines)

			err = loadInputs(dev, ins)
			if err != nil {
				return
			}

			err = dev.RunFrom(start)

			out := cmd.OutOrStdout()
			fmt.Fprint(out, dev)
			fmt.Fprintf(out, "ticks: %d\nfootprint: %+v\n", dev.Ticks(), dev.Footprint())

			return
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "program file")
	cmd.Flags().BoolVarP(&source, "source", "s", false, "program file is source text, lower it first")
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "input iN=VALUE")
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "predefine NAME=VALUE, with --source")
	cmd.Flags().IntVar(&start, "start", 0, "start instruction")
	cmd.Flags().BoolVar(&lax, "lax", false, "only warn on memory writes outside execution")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "instruction budget, 0 for unlimited")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newProfileCmd() *cobra.Command {
	var (
		config  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile the memory use of programs over probe inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := profile.LoadConfig(config)
			if err != nil {
				err = fmt.Errorf("%v: %w", config, err)
				return
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			pr := profile.NewProfiler()
			pr.Verbose = verbose

			samples, err := pr.Run(ctx, cfg)
			profile.Report(cmd.OutOrStdout(), samples)

			return
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "profile.yaml", "profile configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")

	return cmd
}

func newMonitorCmd() *cobra.Command {
	var (
		file    string
		source  bool
		inputs  []string
		defines []string
		start   int
		lax     bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Step through a program interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ins, err := parseInputs(inputs)
			if err != nil {
				return
			}

			lines, err := readProgram(file, source, defines, false)
			if err != nil {
				err = fmt.Errorf("%v: %w", file, err)
				return
			}

			mon := &monitor{
				dev:   device.NewDevice(),
				start: start,
			}
			mon.dev.LaxPhase = lax
			mon.dev.LoadLines(lines)

			err = loadInputs(mon.dev, ins)
			if err != nil {
				return
			}

			err = mon.repl()
			return
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "program file")
	cmd.Flags().BoolVarP(&source, "source", "s", false, "program file is source text, lower it first")
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "input iN=VALUE")
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "predefine NAME=VALUE, with --source")
	cmd.Flags().IntVar(&start, "start", 0, "start instruction")
	cmd.Flags().BoolVar(&lax, "lax", false, "only warn on memory writes outside execution")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
