package cpu

import (
	"strings"
)

// ConditionCode names a flag bit of the condition register.
type ConditionCode int

//go:generate go tool stringer -linecomment -type=ConditionCode
const (
	CC_INTEGER_GT       = ConditionCode(0)  // igt
	CC_NATURAL_GT       = ConditionCode(1)  // ngt
	CC_EQUAL            = ConditionCode(2)  // eq
	CC_NATURAL_LT       = ConditionCode(3)  // nlt
	CC_INTEGER_LT       = ConditionCode(4)  // ilt
	CC_INTEGER_OVERFLOW = ConditionCode(5)  // iovfl
	CC_NATURAL_OVERFLOW = ConditionCode(6)  // novfl
	CC_CARRY            = ConditionCode(7)  // carry
	CC_STACK_OVERFLOW   = ConditionCode(8)  // sovfl
	CC_STACK_UNDERFLOW  = ConditionCode(9)  // sunfl
	CC_LOGIC            = ConditionCode(10) // logic
)

const (
	CC_COUNT   = 11                    // Number of condition codes.
	FLAGS_MASK = Word(1<<CC_COUNT - 1) // Bits of r15 owned by the condition codes.
	REG_FLAGS  = 15                    // Register aliased to the condition register.
	REG_COUNT  = 16                    // Size of the register file.
)

// Flags is the condition register, the raw view of r15.
type Flags Word

// Get returns the state of a condition code.
func (fl Flags) Get(cc ConditionCode) bool {
	return fl.Bit(uint8(cc))
}

// Bit returns bit n of the register, condition code or not.
func (fl Flags) Bit(n uint8) bool {
	return (fl>>(n&0xf))&1 == 1
}

// Set or clear a single condition code. No other bit is touched.
func (fl *Flags) Set(cc ConditionCode, on bool) {
	bit := Flags(1) << uint(cc)
	if on {
		*fl |= bit
	} else {
		*fl &^= bit
	}
}

// String lists the set condition codes.
func (fl Flags) String() string {
	var set []string
	for cc := range ConditionCode(CC_COUNT) {
		if fl.Get(cc) {
			set = append(set, cc.String())
		}
	}
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, "|")
}

// Registers is the register file. Register 15 is the condition register.
type Registers struct {
	general [REG_COUNT - 1]Word
	flags   Flags
}

// Get returns register n.
func (reg *Registers) Get(n uint8) Word {
	n &= 0xf
	if n == REG_FLAGS {
		return Word(reg.flags)
	}
	return reg.general[n]
}

// Set register n. A write to r15 keeps the condition code bits intact.
func (reg *Registers) Set(n uint8, value Word) {
	n &= 0xf
	if n == REG_FLAGS {
		reg.flags = reg.flags&Flags(FLAGS_MASK) | Flags(value&^FLAGS_MASK)
		return
	}
	reg.general[n] = value
}

// Flags returns the condition register.
func (reg *Registers) Flags() Flags {
	return reg.flags
}

// SetFlag sets or clears a single condition code.
func (reg *Registers) SetFlag(cc ConditionCode, on bool) {
	reg.flags.Set(cc, on)
}

// SetFlags replaces the whole condition register.
func (reg *Registers) SetFlags(fl Flags) {
	reg.flags = fl
}

// All returns a copy of the register file, r15 included.
func (reg *Registers) All() (all [REG_COUNT]Word) {
	copy(all[:], reg.general[:])
	all[REG_FLAGS] = Word(reg.flags)
	return
}
