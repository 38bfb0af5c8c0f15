package cpu

// EffectKind is the control flow outcome of an instruction.
type EffectKind int

//go:generate go tool stringer -linecomment -type=EffectKind
const (
	EFFECT_CONTINUE = EffectKind(0) // continue
	EFFECT_JUMP     = EffectKind(1) // jump
	EFFECT_TRAP     = EffectKind(2) // trap
	EFFECT_HALT     = EffectKind(3) // halt
)

// Effect is reported by execute and applied by the cycle.
// Value is the jump target or the trap code.
type Effect struct {
	Kind  EffectKind
	Value Word
}

var effectContinue = Effect{Kind: EFFECT_CONTINUE}

func effectJump(addr Word) Effect {
	return Effect{Kind: EFFECT_JUMP, Value: addr}
}

func effectTrap(code Word) Effect {
	return Effect{Kind: EFFECT_TRAP, Value: code}
}

// execute a decoded instruction against the registers and memory.
//
// The program counter must already point past the instruction. execute never
// changes the program counter or the control mode itself (rfi aside, which
// restores the saved status); transfers are reported in the returned Effect.
func (cpu *Cpu) execute(inst Instruction) (effect Effect) {
	reg := &cpu.reg
	effect = effectContinue

	a := reg.Get(inst.A)
	b := reg.Get(inst.B)

	setArith := func(res arith) {
		reg.Set(inst.D, res.value)
		reg.SetFlag(CC_INTEGER_OVERFLOW, res.iovfl)
		reg.SetFlag(CC_NATURAL_OVERFLOW, res.novfl)
		reg.SetFlag(CC_CARRY, res.carry)
	}

	setLogic := func(value Word) {
		reg.Set(inst.D, value)
		reg.SetFlag(CC_LOGIC, value != 0)
	}

	switch inst.Op {
	case OP_ADD:
		setArith(doAdd(a, b))
	case OP_SUB:
		setArith(doSub(a, b))
	case OP_MUL:
		setArith(doMul(a, b))
	case OP_DIV:
		if b == 0 {
			return effectTrap(TRAP_CODE_DIVIDE)
		}
		setArith(doDiv(a, b))
	case OP_CMP:
		cmp := doCmp(a, b)
		reg.SetFlag(CC_INTEGER_GT, cmp.igt)
		reg.SetFlag(CC_INTEGER_LT, cmp.ilt)
		reg.SetFlag(CC_NATURAL_GT, cmp.ngt)
		reg.SetFlag(CC_NATURAL_LT, cmp.nlt)
		reg.SetFlag(CC_EQUAL, cmp.eq)
	case OP_TRAP:
		code := Word(inst.D&0xf)<<8 | Word(inst.A&0xf)<<4 | Word(inst.B&0xf)
		return effectTrap(code)
	case OP_AND:
		setLogic(a & b)
	case OP_OR:
		setLogic(a | b)
	case OP_XOR:
		setLogic(a ^ b)
	case OP_INV:
		setLogic(^a)
	case OP_PUSH:
		// a is the stack top, b the limit.
		full := a >= b
		reg.SetFlag(CC_STACK_OVERFLOW, full)
		if !full {
			a++
			cpu.adr = a
			cpu.dat = reg.Get(inst.D)
			reg.Set(inst.A, a)
			cpu.mem.Write(a, cpu.dat)
		}
	case OP_POP:
		// a is the stack top, b the base.
		empty := a <= b
		reg.SetFlag(CC_STACK_UNDERFLOW, empty)
		if !empty {
			cpu.adr = a
			cpu.dat = cpu.mem.Read(a)
			reg.Set(inst.A, a-1)
			reg.Set(inst.D, cpu.dat)
		}
	case OP_LEA:
		cpu.adr = a + inst.Disp
		reg.Set(inst.D, cpu.adr)
	case OP_LOAD:
		cpu.adr = a + inst.Disp
		cpu.dat = cpu.mem.Read(cpu.adr)
		reg.Set(inst.D, cpu.dat)
	case OP_STORE:
		cpu.adr = a + inst.Disp
		cpu.dat = reg.Get(inst.D)
		cpu.mem.Write(cpu.adr, cpu.dat)
	case OP_JUMP:
		cpu.adr = inst.Disp
		effect = effectJump(inst.Disp)
	case OP_JUMPC0:
		cpu.adr = inst.Disp
		if !reg.Flags().Bit(inst.D) {
			effect = effectJump(inst.Disp)
		}
	case OP_JUMPC1:
		cpu.adr = inst.Disp
		if reg.Flags().Bit(inst.D) {
			effect = effectJump(inst.Disp)
		}
	case OP_JAL:
		cpu.adr = inst.Disp
		reg.Set(inst.D, cpu.pc)
		effect = effectJump(inst.Disp)
	case OP_RFI:
		if !cpu.ctl.Sys {
			return effectTrap(TRAP_CODE_PRIVILEGED)
		}
		effect = effectJump(cpu.ctl.Return())
	case OP_HALT:
		effect = Effect{Kind: EFFECT_HALT}
	case OP_GETCTL:
		reg.Set(inst.D, cpu.ctl.Get(ControlReg(inst.A)))
	case OP_PUTCTL:
		cpu.ctl.Set(ControlReg(inst.A), reg.Get(inst.D))
	}

	return
}
