package cpu

import (
	"math"
)

// Result of an arithmetic operation, with the conditions it raised.
type arith struct {
	value Word
	iovfl bool // Does not fit as a two's complement integer.
	novfl bool // Does not fit as a natural number.
	carry bool // Carry out of the adder.
}

func doAdd(a, b Word) (res arith) {
	sum := uint32(a) + uint32(b)
	res.value = Word(sum)
	res.carry = sum > 0xffff
	res.novfl = res.carry
	// Both operands share a sign the result does not have.
	res.iovfl = (a^res.value)&(b^res.value)&0x8000 != 0
	return
}

// doSub computes a + ^b + 1, so the carry is set when no borrow occurs.
func doSub(a, b Word) (res arith) {
	res.value = a - b
	res.carry = a >= b
	res.novfl = a < b
	res.iovfl = (a^b)&(a^res.value)&0x8000 != 0
	return
}

func doMul(a, b Word) (res arith) {
	natural := uint32(a) * uint32(b)
	integer := int32(int16(a)) * int32(int16(b))
	res.value = Word(natural)
	res.novfl = natural > 0xffff
	res.carry = res.novfl
	res.iovfl = integer < math.MinInt16 || integer > math.MaxInt16
	return
}

// doDiv is the truncating two's complement quotient. b must not be zero.
func doDiv(a, b Word) (res arith) {
	if int16(a) == math.MinInt16 && int16(b) == -1 {
		res.value = a
		res.iovfl = true
		return
	}
	res.value = Word(int16(a) / int16(b))
	return
}

// Comparison of two words, both as integers and as naturals.
type compare struct {
	igt, ilt bool
	ngt, nlt bool
	eq       bool
}

func doCmp(a, b Word) compare {
	return compare{
		igt: int16(a) > int16(b),
		ilt: int16(a) < int16(b),
		ngt: a > b,
		nlt: a < b,
		eq:  a == b,
	}
}
