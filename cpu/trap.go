package cpu

import (
	"math/bits"
)

// ControlReg indexes the interrupt control registers for getctl and putctl.
type ControlReg int

//go:generate go tool stringer -linecomment -type=ControlReg
const (
	CTL_STATUS = ControlReg(0) // status
	CTL_MASK   = ControlReg(1) // mask
	CTL_REQ    = ControlReg(2) // req
	CTL_RSTAT  = ControlReg(3) // rstat
	CTL_RPC    = ControlReg(4) // rpc
	CTL_VECT   = ControlReg(5) // vect
	CTL_CAUSE  = ControlReg(6) // cause
)

// Status word bits.
const (
	STATUS_SYS = Word(1 << 0) // System (supervisor) mode.
	STATUS_IE  = Word(1 << 1) // Interrupts enabled.
)

// Trap codes, as recorded in the cause register.
//
// Software traps use the 12 bit operand field of the trap instruction, so the
// faults and interrupts are placed above that range.
const (
	TRAP_CODE_ILLEGAL    = Word(0x0000) // Illegal instruction, or trap r0,r0,r0.
	TRAP_CODE_SOFTWARE   = Word(0x0fff) // Mask of software trap codes.
	TRAP_CODE_DIVIDE     = Word(0x1000) // Division by zero.
	TRAP_CODE_PRIVILEGED = Word(0x1001) // System instruction in user mode.
	TRAP_CODE_INTERRUPT  = Word(0x2000) // Base of interrupt codes; the low nibble is the line.
)

const (
	INTERRUPT_LINES = 16 // One line per bit of req and mask.
)

// IsFault returns true for the trap codes raised by the processor itself.
func IsFault(code Word) bool {
	return code == TRAP_CODE_ILLEGAL || code&0xf000 == TRAP_CODE_DIVIDE&0xf000
}

// Control is the interrupt and trap controller.
type Control struct {
	Mask  Word // Enabled interrupt lines.
	Req   Word // Latched interrupt requests.
	Rstat Word // Status saved on entry.
	Rpc   Word // Return address saved on entry.
	Vect  Word // Handler address.
	Cause Word // Code of the last entry.
	Sys   bool // System mode.
	Ie    bool // Interrupts enabled.
}

// Status returns the mode bits as a status word.
func (ctl *Control) Status() (status Word) {
	if ctl.Sys {
		status |= STATUS_SYS
	}
	if ctl.Ie {
		status |= STATUS_IE
	}
	return
}

// SetStatus sets the mode bits from a status word.
func (ctl *Control) SetStatus(status Word) {
	ctl.Sys = status&STATUS_SYS != 0
	ctl.Ie = status&STATUS_IE != 0
}

// Get a control register.
func (ctl *Control) Get(reg ControlReg) Word {
	switch reg {
	case CTL_STATUS:
		return ctl.Status()
	case CTL_MASK:
		return ctl.Mask
	case CTL_REQ:
		return ctl.Req
	case CTL_RSTAT:
		return ctl.Rstat
	case CTL_RPC:
		return ctl.Rpc
	case CTL_VECT:
		return ctl.Vect
	case CTL_CAUSE:
		return ctl.Cause
	}
	panic("unknown control register")
}

// Set a control register.
func (ctl *Control) Set(reg ControlReg, value Word) {
	switch reg {
	case CTL_STATUS:
		ctl.SetStatus(value)
	case CTL_MASK:
		ctl.Mask = value
	case CTL_REQ:
		ctl.Req = value
	case CTL_RSTAT:
		ctl.Rstat = value
	case CTL_RPC:
		ctl.Rpc = value
	case CTL_VECT:
		ctl.Vect = value
	case CTL_CAUSE:
		ctl.Cause = value
	default:
		panic("unknown control register")
	}
}

// Raise latches an interrupt request on a line.
func (ctl *Control) Raise(line uint) {
	ctl.Req |= Word(1) << (line % INTERRUPT_LINES)
}

// Pending returns the lowest interrupt line that may be taken now.
// Masked requests stay latched and are not reported.
func (ctl *Control) Pending() (line uint, ok bool) {
	if !ctl.Ie {
		return
	}
	ready := ctl.Req & ctl.Mask
	if ready == 0 {
		return
	}
	return uint(bits.TrailingZeros16(uint16(ready))), true
}

// Acknowledge clears the request of an interrupt line that is being taken.
func (ctl *Control) Acknowledge(line uint) {
	ctl.Req &^= Word(1) << (line % INTERRUPT_LINES)
}

// Enter the handler: save the return address and status, switch to system mode
// with interrupts disabled. Returns the handler address.
func (ctl *Control) Enter(pc Word, cause Word) (handler Word) {
	ctl.Rpc = pc
	ctl.Rstat = ctl.Status()
	ctl.Cause = cause
	ctl.Sys = true
	ctl.Ie = false
	return ctl.Vect
}

// Return from the handler: restore the saved status. Returns the address to
// resume at. sys comes from rstat rather than being cleared, so a trap taken in
// system mode returns to system mode.
func (ctl *Control) Return() (pc Word) {
	ctl.SetStatus(ctl.Rstat)
	return ctl.Rpc
}
