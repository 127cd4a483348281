package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/ezrec/munin/device"
)

const historyFile = ".munin_history"

const monitorHelp = `step [N]        execute N instructions (default 1)
run             execute until end
state           print the device state
list            print the program
input iN VALUE  write an input (not while running)
reset           stop, and clear execution memory and flags
quit            exit the monitor
`

// monitor is an interactive single stepping session.
type monitor struct {
	dev   *device.Device
	start int
}

// begin starts execution if the device is not running.
func (mon *monitor) begin(w io.Writer) (err error) {
	if mon.dev.Running() {
		return
	}

	err = mon.dev.Start(mon.start)
	if err != nil {
		return
	}

	fmt.Fprintf(w, "started at %d\n", mon.start)
	return
}

// step executes a single instruction, and reports it.
func (mon *monitor) step(w io.Writer) (done bool, err error) {
	err = mon.begin(w)
	if err != nil {
		return
	}

	ip := mon.dev.Ip()
	inst, _ := mon.dev.Program().Fetch(ip)

	done, err = mon.dev.Tick()
	if err != nil {
		return
	}

	fmt.Fprintf(w, "%03d: %-24v flags:%v\n", ip, inst, mon.dev.Flags())
	if done {
		fmt.Fprintf(w, "end after %d ticks, footprint %+v\n", mon.dev.Ticks(), mon.dev.Footprint())
	}

	return
}

// exec runs a single monitor command.
func (mon *monitor) exec(w io.Writer, line string) (quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case "step", "s":
		count := 1
		if len(words) > 2 {
			err = ErrCommandArgs
			return
		}
		if len(words) == 2 {
			count, err = strconv.Atoi(words[1])
			if err != nil {
				return
			}
		}
		for range count {
			var done bool
			done, err = mon.step(w)
			if done || err != nil {
				return
			}
		}
	case "run", "r":
		err = mon.begin(w)
		if err != nil {
			return
		}
		for done := false; !done; {
			done, err = mon.dev.Tick()
			if err != nil {
				return
			}
		}
		fmt.Fprintf(w, "end after %d ticks, footprint %+v\n", mon.dev.Ticks(), mon.dev.Footprint())
	case "state", "p":
		fmt.Fprint(w, mon.dev)
	case "list", "l":
		for n, text := range mon.dev.Program().Lines() {
			marker := " "
			if mon.dev.Running() && n == mon.dev.Ip() {
				marker = ">"
			}
			fmt.Fprintf(w, "%v%03d: %v\n", marker, n, text)
		}
	case "input", "i":
		if len(words) != 3 {
			err = ErrCommandArgs
			return
		}
		var in input
		in, err = parseInput(words[1] + "=" + words[2])
		if err != nil {
			return
		}
		err = mon.dev.SetInput(in.Index, in.Value)
	case "reset":
		if mon.dev.Running() {
			mon.dev.Stop()
		}
		mon.dev.ResetExecution()
	case "help", "?":
		fmt.Fprint(w, monitorHelp)
	case "quit", "q":
		quit = true
	default:
		err = &device.ErrOperand{Operand: words[0], Err: ErrCommandUnknown}
	}

	return
}

// repl drives the monitor from the terminal until quit or end of input.
func (mon *monitor) repl() (err error) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if hf, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(hf)
		_ = hf.Close()
	}
	defer func() {
		if hf, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(hf)
			_ = hf.Close()
		}
	}()

	for {
		var line string
		line, err = ln.Prompt(fmt.Sprintf("munin %03d> ", mon.dev.Ip()))
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			err = nil
			return
		}
		if err != nil {
			return
		}

		if len(strings.TrimSpace(line)) > 0 {
			ln.AppendHistory(line)
		}

		quit, cmdErr := mon.exec(os.Stdout, line)
		if cmdErr != nil {
			fmt.Fprintf(os.Stderr, "%v\n", cmdErr)
		}
		if quit {
			return
		}
	}
}
