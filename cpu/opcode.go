package cpu

import (
	"fmt"
)

// Format is an instruction word format.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_RRR = Format(0) // rrr
	FORMAT_EXP = Format(1) // exp
	FORMAT_RX  = Format(2) // rx
)

// Op is a decoded operation.
//
// The RRR operations share their value with their opcode nibble.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD    = Op(0)  // add
	OP_SUB    = Op(1)  // sub
	OP_MUL    = Op(2)  // mul
	OP_DIV    = Op(3)  // div
	OP_CMP    = Op(4)  // cmp
	OP_TRAP   = Op(5)  // trap
	OP_AND    = Op(6)  // and
	OP_OR     = Op(7)  // or
	OP_XOR    = Op(8)  // xor
	OP_INV    = Op(9)  // inv
	OP_PUSH   = Op(10) // push
	OP_POP    = Op(11) // pop
	OP_LEA    = Op(12) // lea
	OP_LOAD   = Op(13) // load
	OP_STORE  = Op(14) // store
	OP_JUMP   = Op(15) // jump
	OP_JUMPC0 = Op(16) // jumpc0
	OP_JUMPC1 = Op(17) // jumpc1
	OP_JAL    = Op(18) // jal
	OP_RFI    = Op(19) // rfi
	OP_HALT   = Op(20) // halt
	OP_GETCTL = Op(21) // getctl
	OP_PUTCTL = Op(22) // putctl
)

const (
	NIBBLE_EXP = 0xe // Opcode nibble of the EXP format.
	NIBBLE_RX  = 0xf // Opcode nibble of the RX format.
)

// Secondary opcodes of the EXP format, in the b field.
var expOps = [...]Op{
	0: OP_JUMP,
	1: OP_JUMPC0,
	2: OP_JUMPC1,
	3: OP_JAL,
	4: OP_RFI,
	5: OP_HALT,
	6: OP_GETCTL,
	7: OP_PUTCTL,
}

// Secondary opcodes of the RX format, in the b field.
var rxOps = [...]Op{
	0: OP_LEA,
	1: OP_LOAD,
	2: OP_STORE,
}

// Format returns the word format an operation is encoded with.
func (op Op) Format() Format {
	switch {
	case op <= OP_POP:
		return FORMAT_RRR
	case op >= OP_LEA && op <= OP_STORE:
		return FORMAT_RX
	default:
		return FORMAT_EXP
	}
}

// secondary returns the b field of an EXP or RX operation.
func (op Op) secondary() uint8 {
	table := expOps[:]
	if op.Format() == FORMAT_RX {
		table = rxOps[:]
	}
	for n, entry := range table {
		if entry == op {
			return uint8(n)
		}
	}
	panic(fmt.Sprintf("no secondary opcode for %v", op))
}

// FormatOf returns the format of an instruction word.
func FormatOf(word Word) Format {
	switch word >> 12 {
	case NIBBLE_EXP:
		return FORMAT_EXP
	case NIBBLE_RX:
		return FORMAT_RX
	default:
		return FORMAT_RRR
	}
}

// Fields splits an instruction word into its four nibbles.
func Fields(word Word) (op, d, a, b uint8) {
	op = uint8((word >> 12) & 0xf)
	d = uint8((word >> 8) & 0xf)
	a = uint8((word >> 4) & 0xf)
	b = uint8((word >> 0) & 0xf)
	return
}

// Instruction is a decoded instruction.
//
// D, A and B are the register (or field) indices from the first word. Disp is the
// second word of two word instructions.
type Instruction struct {
	Op   Op
	D    uint8
	A    uint8
	B    uint8
	Disp Word
}

// Illegal is the instruction every undefined encoding decodes to.
var Illegal = Instruction{Op: OP_TRAP}

// Words returns how many memory words the instruction occupies.
func (inst Instruction) Words() int {
	switch inst.Op {
	case OP_LEA, OP_LOAD, OP_STORE, OP_JUMP, OP_JUMPC0, OP_JUMPC1, OP_JAL:
		return 2
	default:
		return 1
	}
}

// Decode an instruction word.
//
// For two word instructions next is called exactly once to fetch the second word;
// it is never called for single word instructions. Decoding never fails: an
// undefined encoding is returned as Illegal.
func Decode(word Word, next func() Word) (inst Instruction) {
	op, d, a, b := Fields(word)

	switch FormatOf(word) {
	case FORMAT_RRR:
		if Op(op) > OP_POP {
			return Illegal
		}
		inst = Instruction{Op: Op(op), D: d, A: a, B: b}
	case FORMAT_EXP:
		if int(b) >= len(expOps) {
			return Illegal
		}
		inst = Instruction{Op: expOps[b], D: d, A: a}
		if (inst.Op == OP_GETCTL || inst.Op == OP_PUTCTL) && ControlReg(a) > CTL_CAUSE {
			return Illegal
		}
	case FORMAT_RX:
		if int(b) >= len(rxOps) {
			return Illegal
		}
		inst = Instruction{Op: rxOps[b], D: d, A: a}
	}

	if inst.Words() == 2 {
		inst.Disp = next()
	}

	return
}

// Encode an instruction into its memory words.
func Encode(inst Instruction) (words []Word) {
	var op, b uint8
	switch inst.Op.Format() {
	case FORMAT_RRR:
		op, b = uint8(inst.Op), inst.B
	case FORMAT_EXP:
		op, b = NIBBLE_EXP, inst.Op.secondary()
	case FORMAT_RX:
		op, b = NIBBLE_RX, inst.Op.secondary()
	}

	word := Word(op&0xf)<<12 | Word(inst.D&0xf)<<8 | Word(inst.A&0xf)<<4 | Word(b&0xf)
	words = []Word{word}
	if inst.Words() == 2 {
		words = append(words, inst.Disp)
	}

	return
}

// String returns the assembly language form of the instruction.
func (inst Instruction) String() string {
	switch inst.Op {
	case OP_CMP:
		return fmt.Sprintf("%v r%d,r%d", inst.Op, inst.A, inst.B)
	case OP_INV:
		return fmt.Sprintf("%v r%d,r%d", inst.Op, inst.D, inst.A)
	case OP_LEA, OP_LOAD, OP_STORE:
		return fmt.Sprintf("%v r%d,0x%04x[r%d]", inst.Op, inst.D, inst.Disp, inst.A)
	case OP_JUMP:
		return fmt.Sprintf("%v 0x%04x", inst.Op, inst.Disp)
	case OP_JUMPC0, OP_JUMPC1:
		return fmt.Sprintf("%v %d,0x%04x", inst.Op, inst.D, inst.Disp)
	case OP_JAL:
		return fmt.Sprintf("%v r%d,0x%04x", inst.Op, inst.D, inst.Disp)
	case OP_RFI, OP_HALT:
		return inst.Op.String()
	case OP_GETCTL, OP_PUTCTL:
		return fmt.Sprintf("%v r%d,%v", inst.Op, inst.D, ControlReg(inst.A))
	default:
		return fmt.Sprintf("%v r%d,r%d,r%d", inst.Op, inst.D, inst.A, inst.B)
	}
}
