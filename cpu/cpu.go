package cpu

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// State of the processor.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_INITIALISING = State(0) // initialising
	STATE_READY        = State(1) // ready
	STATE_EXECUTING    = State(2) // executing
	STATE_HALT         = State(3) // halt
)

// Cpu is the simulation context of the processor.
type Cpu struct {
	Verbose bool           // Set to enable verbose logging.
	Logger  *logrus.Logger // Logger for verbose output; nil for the standard logger.

	reg Registers
	ctl Control
	mem *Memory

	pc  Word // Program counter.
	ir  Word // Instruction register.
	adr Word // Address register.
	dat Word // Data register.

	state State
	ticks int

	haltRequest atomic.Bool
}

// NewCpu creates a processor with zeroed memory, waiting for a program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		mem:   NewMemory(),
		state: STATE_INITIALISING,
	}

	return
}

func (cpu *Cpu) log() *logrus.Logger {
	if cpu.Logger != nil {
		return cpu.Logger
	}
	return logrus.StandardLogger()
}

// Defines returns the architectural constants by name, for use by scripts.
func Defines() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for cc := range ConditionCode(CC_COUNT) {
			if !yield(fmt.Sprintf("CC_%v", strings.ToUpper(cc.String())), int(cc)) {
				return
			}
		}
		for ctl := CTL_STATUS; ctl <= CTL_CAUSE; ctl++ {
			if !yield(fmt.Sprintf("CTL_%v", strings.ToUpper(ctl.String())), int(ctl)) {
				return
			}
		}
		defines := []struct {
			name  string
			value int
		}{
			{"STATUS_SYS", int(STATUS_SYS)},
			{"STATUS_IE", int(STATUS_IE)},
			{"TRAP_CODE_ILLEGAL", int(TRAP_CODE_ILLEGAL)},
			{"TRAP_CODE_DIVIDE", int(TRAP_CODE_DIVIDE)},
			{"TRAP_CODE_PRIVILEGED", int(TRAP_CODE_PRIVILEGED)},
			{"TRAP_CODE_INTERRUPT", int(TRAP_CODE_INTERRUPT)},
			{"MEMORY_SIZE", MEMORY_SIZE},
		}
		for _, def := range defines {
			if !yield(def.name, def.value) {
				return
			}
		}
	}
}

// State returns the processor state.
func (cpu *Cpu) State() State {
	return cpu.state
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() Word {
	return cpu.pc
}

// Ir returns the instruction register.
func (cpu *Cpu) Ir() Word {
	return cpu.ir
}

// Adr returns the address register.
func (cpu *Cpu) Adr() Word {
	return cpu.adr
}

// Dat returns the data register.
func (cpu *Cpu) Dat() Word {
	return cpu.dat
}

// Register returns register n.
func (cpu *Cpu) Register(n uint8) Word {
	return cpu.reg.Get(n)
}

// Registers returns a copy of the register file.
func (cpu *Cpu) Registers() [REG_COUNT]Word {
	return cpu.reg.All()
}

// Flags returns the condition register.
func (cpu *Cpu) Flags() Flags {
	return cpu.reg.Flags()
}

// Control returns a copy of the interrupt control registers.
func (cpu *Cpu) Control() Control {
	return cpu.ctl
}

// Peek returns the memory word at addr.
func (cpu *Cpu) Peek(addr Word) Word {
	return cpu.mem.Read(addr)
}

// Ticks returns the number of cycles executed.
func (cpu *Cpu) Ticks() int {
	return cpu.ticks
}

func (cpu *Cpu) settable() error {
	switch cpu.state {
	case STATE_INITIALISING, STATE_READY:
		return nil
	}
	return ErrState(cpu.state)
}

// SetPc sets the program counter before a run.
func (cpu *Cpu) SetPc(pc Word) (err error) {
	if err = cpu.settable(); err != nil {
		return
	}
	cpu.pc = pc
	return
}

// SetRegister sets a register before a run. Writes to r15 keep the condition codes.
func (cpu *Cpu) SetRegister(n uint8, value Word) (err error) {
	if err = cpu.settable(); err != nil {
		return
	}
	cpu.reg.Set(n, value)
	return
}

// SetFlags sets the condition register before a run.
func (cpu *Cpu) SetFlags(fl Flags) (err error) {
	if err = cpu.settable(); err != nil {
		return
	}
	cpu.reg.SetFlags(fl)
	return
}

// SetControl sets a control register before a run.
func (cpu *Cpu) SetControl(reg ControlReg, value Word) (err error) {
	if err = cpu.settable(); err != nil {
		return
	}
	cpu.ctl.Set(reg, value)
	return
}

// Interrupt latches a request on an interrupt line. It is taken at the start
// of a later cycle, once the line is unmasked and interrupts are enabled.
//
// Interrupt must not be called concurrently with Step or Run.
func (cpu *Cpu) Interrupt(line uint) {
	cpu.ctl.Raise(line)
}

// RequestHalt asks the processor to halt at the next cycle boundary.
// It is safe to call from any goroutine.
func (cpu *Cpu) RequestHalt() {
	cpu.haltRequest.Store(true)
}

// fetch the word at pc, and advance pc.
func (cpu *Cpu) fetch() (word Word) {
	word = cpu.mem.Read(cpu.pc)
	cpu.pc++
	return
}

// enter the trap controller, or halt if the trap cannot be taken.
func (cpu *Cpu) enter(code Word) {
	if IsFault(code) && cpu.ctl.Sys {
		if cpu.Verbose {
			cpu.log().WithFields(logrus.Fields{
				"pc":    fmt.Sprintf("%04x", cpu.pc),
				"cause": fmt.Sprintf("%04x", code),
			}).Debug(f("cpu: fault in system mode"))
		}
		cpu.state = STATE_HALT
		return
	}

	if cpu.Verbose {
		cpu.log().WithFields(logrus.Fields{
			"pc":    fmt.Sprintf("%04x", cpu.pc),
			"cause": fmt.Sprintf("%04x", code),
			"vect":  fmt.Sprintf("%04x", cpu.ctl.Vect),
		}).Debug(f("cpu: trap"))
	}

	cpu.pc = cpu.ctl.Enter(cpu.pc, code)
}

// apply the effect of an executed instruction.
func (cpu *Cpu) apply(effect Effect) {
	switch effect.Kind {
	case EFFECT_CONTINUE:
	case EFFECT_JUMP:
		cpu.pc = effect.Value
	case EFFECT_TRAP:
		cpu.enter(effect.Value)
	case EFFECT_HALT:
		cpu.state = STATE_HALT
	}
}

// cycle runs one fetch, decode and execute cycle. The cpu is executing.
func (cpu *Cpu) cycle() {
	if line, ok := cpu.ctl.Pending(); ok {
		cpu.ctl.Acknowledge(line)
		cpu.enter(TRAP_CODE_INTERRUPT | Word(line))
	}

	at := cpu.pc
	cpu.ir = cpu.fetch()
	inst := Decode(cpu.ir, cpu.fetch)

	if cpu.Verbose {
		cpu.log().WithFields(logrus.Fields{
			"pc": fmt.Sprintf("%04x", at),
			"ir": fmt.Sprintf("%04x", cpu.ir),
		}).Debug(inst.String())
	}

	cpu.apply(cpu.execute(inst))
	cpu.ticks++
}

// begin moves a ready processor to executing.
func (cpu *Cpu) begin() (err error) {
	if cpu.state != STATE_READY {
		return ErrState(cpu.state)
	}
	cpu.state = STATE_EXECUTING
	return
}

// boundary handles the work between two cycles. Returns false once halted.
func (cpu *Cpu) boundary() bool {
	if cpu.haltRequest.Load() {
		cpu.state = STATE_HALT
		if cpu.Verbose {
			cpu.log().Debug(f("cpu: halt requested"))
		}
	}
	return cpu.state != STATE_HALT
}

// Step runs a single cycle of a ready processor. The processor is ready
// again afterwards, unless it halted.
func (cpu *Cpu) Step() (err error) {
	if err = cpu.begin(); err != nil {
		return
	}

	if cpu.boundary() {
		cpu.cycle()
	}

	if cpu.state == STATE_EXECUTING {
		cpu.state = STATE_READY
	}

	return
}

// Run cycles a ready processor until it halts, or until ctx is done.
//
// Cancellation takes effect between cycles and leaves the processor ready, so
// it can be resumed with another Run or Step.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	if err = cpu.begin(); err != nil {
		return
	}

	for cpu.boundary() {
		if err = ctx.Err(); err != nil {
			cpu.state = STATE_READY
			return
		}
		cpu.cycle()
	}

	if cpu.Verbose {
		cpu.log().WithField("ticks", cpu.ticks).Debug(f("cpu: halted"))
	}

	return
}
