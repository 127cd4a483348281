// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"fmt"
	"log"
	"math"

	"github.com/ezrec/munin/internal"
	"github.com/ezrec/munin/translate"
	"github.com/ezrec/munin/value"
)

// Footprint is the memory usage of a device, in bits.
type Footprint struct {
	Inputs    int // High-water width of the input bank.
	Flags     int // Width of the flag register.
	Execution int // High-water width of the variable and bit banks.
}

// Device is the simulation context for the munin execution engine.
type Device struct {
	Verbose  bool // Set to enable verbose logging.
	LaxPhase bool // Set to only warn on variable/bit writes outside execution.
	MaxTicks int  // If non-zero, the most instructions a single run may execute.

	variables Bank
	bits      Bank
	inputs    Bank
	flags     Flags

	program  *Program
	ip       int
	running  bool
	phase    Phase
	hasInput bool
	ticks    int
}

// NewDevice creates a new, idle device with empty memory.
func NewDevice() (dev *Device) {
	dev = &Device{
		variables: Bank{Prefix: PREFIX_VARIABLE},
		bits:      Bank{Prefix: PREFIX_BIT},
		inputs:    Bank{Prefix: PREFIX_INPUT},
		program:   &Program{},
	}

	return
}

// LoadProgram replaces the instruction sequence.
// Memory and flags are not changed.
func (dev *Device) LoadProgram(prog *Program) {
	if prog == nil {
		prog = &Program{}
	}
	dev.program = prog
}

// LoadLines decodes and loads final-form program lines.
func (dev *Device) LoadLines(lines []string) {
	dev.LoadProgram(NewProgram(lines))
}

// Program returns the loaded program.
func (dev *Device) Program() *Program {
	return dev.program
}

// Ip returns the current instruction pointer.
func (dev *Device) Ip() int {
	return dev.ip
}

// Running returns true while a program is executing.
func (dev *Device) Running() bool {
	return dev.running
}

// Phase returns the current device phase.
func (dev *Device) Phase() Phase {
	return dev.phase
}

// Flags returns the flag register.
func (dev *Device) Flags() Flags {
	return dev.flags
}

// Ticks returns the number of instructions executed by the current or last run.
func (dev *Device) Ticks() int {
	return dev.ticks
}

// Bank returns the memory bank for an operand prefix, or nil.
func (dev *Device) Bank(prefix byte) *Bank {
	switch prefix {
	case PREFIX_VARIABLE:
		return &dev.variables
	case PREFIX_BIT:
		return &dev.bits
	case PREFIX_INPUT:
		return &dev.inputs
	}
	return nil
}

// Reset the device state.
// - Clears all memory banks, including inputs.
// - Clears the flags and counters.
// - Returns to the idle phase.
func (dev *Device) Reset() {
	if dev.Verbose {
		log.Printf("device: reset")
	}

	dev.ResetExecution()
	dev.inputs.Reset()
	dev.hasInput = false
	dev.ip = 0
	dev.ticks = 0
	dev.running = false
	dev.phase = PHASE_IDLE
}

// ResetExecution clears the variable and bit banks and the flags.
// Inputs are untouched.
func (dev *Device) ResetExecution() {
	dev.variables.Reset()
	dev.bits.Reset()
	dev.flags.Clear()
}

// setPhase moves the device to a new phase.
func (dev *Device) setPhase(phase Phase) {
	if dev.Verbose && dev.phase != phase {
		log.Printf("device: phase %v -> %v", dev.phase, phase)
	}
	dev.phase = phase
}

// SetInput writes an input slot, entering the input phase if idle.
func (dev *Device) SetInput(index int, u uint32) (err error) {
	switch dev.phase {
	case PHASE_IDLE:
		dev.setPhase(PHASE_INPUT)
	case PHASE_INPUT:
		// pass
	default:
		err = PhaseViolation(ErrInputPhase)
		return
	}

	err = dev.inputs.Put(index, u)
	if err != nil {
		return
	}

	dev.hasInput = true

	return
}

// EndInput leaves the input phase.
func (dev *Device) EndInput() {
	if dev.phase == PHASE_INPUT {
		dev.setPhase(PHASE_IDLE)
	}
}

// Load returns the value of an operand.
func (dev *Device) Load(word string) (u uint32, err error) {
	op, err := ParseOperand(word)
	if err != nil {
		return
	}

	if !op.IsBank() {
		u = op.Value
		return
	}

	u, err = dev.Bank(op.Bank).Get(op.Index)
	if err != nil {
		err = &ErrOperand{Operand: word, Err: err}
	}

	return
}

// Store writes a value to a bank operand, enforcing the phase rules.
func (dev *Device) Store(word string, u uint32) (err error) {
	op, err := ParseOperand(word)
	if err != nil {
		return
	}

	if !op.IsBank() {
		err = Syntax(&ErrOperand{Operand: word, Err: ErrDestinationInvalid})
		return
	}

	switch op.Bank {
	case PREFIX_INPUT:
		if dev.phase != PHASE_INPUT {
			err = PhaseViolation(&ErrOperand{Operand: word, Err: ErrInputPhase})
			return
		}
		dev.hasInput = true
	case PREFIX_BIT:
		if u > 1 {
			err = Domain(&ErrOperand{Operand: word, Err: ErrBitValue})
			return
		}
		fallthrough
	case PREFIX_VARIABLE:
		if dev.phase != PHASE_EXECUTION {
			if !dev.LaxPhase {
				err = PhaseViolation(&ErrOperand{Operand: word, Err: ErrExecutionPhase})
				return
			}
			translate.Log("device: warning: %v written in %v phase will be cleared before the next run", word, dev.phase)
		}
	}

	err = dev.Bank(op.Bank).Put(op.Index, u)
	if err != nil {
		err = &ErrOperand{Operand: word, Err: err}
	}

	return
}

// Footprint returns the memory accounting of the device.
func (dev *Device) Footprint() (fp Footprint) {
	fp.Inputs = dev.inputs.Width()
	fp.Flags = dev.flags.Width()
	fp.Execution = internal.IterSum(
		internal.IterSeq2Concat(dev.variables.All(), dev.bits.All()),
		value.Value.HighWater)
	return
}

// Start enters the execution phase at the start instruction.
func (dev *Device) Start(start int) (err error) {
	if dev.phase == PHASE_EXECUTION {
		err = PhaseViolation(ErrExecutionPhase)
		return
	}

	dev.EndInput()

	if !dev.hasInput {
		translate.Log("device: warning: no input loaded")
	}

	dev.setPhase(PHASE_EXECUTION)
	dev.ip = start
	dev.ticks = 0
	dev.running = true

	return
}

// Stop halts execution and returns to the idle phase.
func (dev *Device) Stop() {
	dev.running = false
	dev.setPhase(PHASE_IDLE)
}

// Tick executes a single instruction.
// done is set when the program has reached an end instruction.
func (dev *Device) Tick() (done bool, err error) {
	if !dev.running {
		err = ErrNotRunning
		return
	}

	defer func() {
		if err != nil || done {
			dev.Stop()
		}
	}()

	inst, err := dev.program.Fetch(dev.ip)
	if err != nil {
		err = &ErrExecute{Ip: dev.ip, Err: err}
		return
	}

	err = dev.Execute(inst)
	if err != nil {
		return
	}

	dev.ticks++
	if dev.MaxTicks > 0 && dev.ticks >= dev.MaxTicks && dev.running {
		err = &ErrExecute{Ip: dev.ip, Err: ErrTickLimit}
		return
	}

	done = !dev.running

	return
}

// RunFrom executes the loaded program from the start instruction
// until an end instruction, then returns to the idle phase.
func (dev *Device) RunFrom(start int) (err error) {
	err = dev.Start(start)
	if err != nil {
		return
	}

	for done := false; !done; {
		done, err = dev.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Run executes the loaded program from the first instruction.
func (dev *Device) Run() error {
	return dev.RunFrom(0)
}

// loadBinary loads a pair of single bit operands.
func (dev *Device) loadBinary(dst, src string) (d, s uint32, err error) {
	s, err = dev.Load(src)
	if err != nil {
		return
	}
	if s > 1 {
		err = Domain(&ErrOperand{Operand: src, Err: ErrBitValue})
		return
	}

	d, err = dev.Load(dst)
	if err != nil {
		return
	}
	if d > 1 {
		err = Domain(&ErrOperand{Operand: dst, Err: ErrBitValue})
		return
	}

	return
}

// loadPair loads the destination and source operands.
func (dev *Device) loadPair(dst, src string) (d, s uint32, err error) {
	s, err = dev.Load(src)
	if err != nil {
		return
	}

	d, err = dev.Load(dst)
	return
}

// Execute executes a single decoded instruction.
func (dev *Device) Execute(inst Instruction) (err error) {
	ip := dev.ip
	defer func() {
		if err != nil {
			err = &ErrExecute{Ip: ip, Line: inst.Text, Err: err}
		}
	}()

	if dev.Verbose {
		log.Printf("%03d: %v", ip, inst)
	}

	next_ip := ip + 1
	args := inst.Args

	switch inst.Op {
	case OP_NON:
		// pass
	case OP_SET:
		var s uint32
		s, err = dev.Load(args[1])
		if err != nil {
			return
		}
		err = dev.Store(args[0], s)
	case OP_STL:
		var s uint32
		s, err = dev.Load(args[1])
		if err != nil {
			return
		}
		err = dev.Store(args[0], uint32(value.Len(s)))
	case OP_STNB:
		var s, n uint32
		s, err = dev.Load(args[1])
		if err != nil {
			return
		}
		n, err = dev.Load(args[2])
		if err != nil {
			return
		}
		var bit uint32
		if n < uint32(value.Len(s)) {
			bit = (s >> n) & 1
		}
		err = dev.Store(args[0], bit)
	case OP_IADD:
		var d, s uint32
		d, s, err = dev.loadPair(args[0], args[1])
		if err != nil {
			return
		}
		sum := uint64(d) + uint64(s)
		if sum > math.MaxUint32 {
			err = Domain(ErrOverflow)
			return
		}
		err = dev.Store(args[0], uint32(sum))
	case OP_ISUB:
		var d, s uint32
		d, s, err = dev.loadPair(args[0], args[1])
		if err != nil {
			return
		}
		if s > d {
			err = Domain(ErrUnderflow)
			return
		}
		err = dev.Store(args[0], d-s)
	case OP_BADD, OP_BADC:
		var d, s uint32
		d, s, err = dev.loadBinary(args[0], args[1])
		if err != nil {
			return
		}
		sum := d + s
		if dev.flags.Carry {
			sum++
		}
		dev.flags.Carry = sum >= 2
		if dev.flags.Carry {
			sum -= 2
		}
		err = dev.Store(args[0], sum)
	case OP_BSUB, OP_BSBU:
		var d, s uint32
		d, s, err = dev.loadBinary(args[0], args[1])
		if err != nil {
			return
		}
		diff := int(s) - int(d)
		if dev.flags.Underflow {
			diff--
		}
		dev.flags.Underflow = diff < 0
		if diff < 0 {
			if diff < -2 {
				err = Domain(ErrBorrowRange)
				return
			}
			diff += 2
		}
		err = dev.Store(args[0], uint32(diff))
	case OP_BSL, OP_BSR:
		var d, s uint32
		d, s, err = dev.loadPair(args[0], args[1])
		if err != nil {
			return
		}
		if s >= value.MAX_BITS {
			err = Domain(ErrShiftRange)
			return
		}
		if inst.Op == OP_BSL {
			d <<= s
		} else {
			d >>= s
		}
		err = dev.Store(args[0], d)
	case OP_CLF:
		dev.flags.Clear()
	case OP_CMP:
		var a, b uint32
		a, err = dev.Load(args[0])
		if err != nil {
			return
		}
		b, err = dev.Load(args[1])
		if err != nil {
			return
		}
		dev.flags.Equal = a == b
		dev.flags.Greater = a > b
	case OP_JMP:
		var target uint32
		target, err = dev.Load(args[0])
		if err != nil {
			return
		}
		next_ip = int(target)
	case OP_JON:
		var cond Cond
		cond, err = ParseCond(args[0])
		if err != nil {
			return
		}
		var ok bool
		ok, err = dev.flags.Check(cond)
		if err != nil {
			return
		}
		if ok {
			next_ip = ip + 2
		}
	case OP_END:
		dev.running = false
	default:
		err = Syntax(ErrOpcodeInvalid)
		return
	}

	if err != nil {
		return
	}

	dev.ip = next_ip

	return
}

// String returns the current device state as a string.
func (dev *Device) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "ip", dev.ip)
	text += fmt.Sprintf("% 5s: %v\n", "phase", dev.phase)
	text += fmt.Sprintf("% 5s: %v\n", "flags", dev.flags)
	for _, bank := range []*Bank{&dev.inputs, &dev.variables, &dev.bits} {
		for n, slot := range bank.All() {
			name := fmt.Sprintf("%c%d", bank.Prefix, n)
			text += fmt.Sprintf("% 5s: %v (%d) hw:%d\n", name, slot, slot.Uint32(), slot.HighWater())
		}
	}

	return
}
