package script

import (
	"context"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/sigma16/cpu"
)

func TestParse_Encoders(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		expr  string
		words []cpu.Word
	}{
		{"ADD(1, 2, 3)", []cpu.Word{0x0123}},
		{"SUB(d=4, a=5, b=6)", []cpu.Word{0x1456}},
		{"MUL(1, 1, 1)", []cpu.Word{0x2111}},
		{"DIV(15, 14, 13)", []cpu.Word{0x3fed}},
		{"CMP(1, 2)", []cpu.Word{0x4012}},
		{"TRAP(0, 0, 7)", []cpu.Word{0x5007}},
		{"AND(1, 2, 3)", []cpu.Word{0x6123}},
		{"OR(1, 2, 3)", []cpu.Word{0x7123}},
		{"XOR(1, 2, 3)", []cpu.Word{0x8123}},
		{"INV(1, 2)", []cpu.Word{0x9120}},
		{"PUSH(1, 14, 13)", []cpu.Word{0xa1ed}},
		{"POP(1, 14, 13)", []cpu.Word{0xb1ed}},
		{"JUMP(0x1234)", []cpu.Word{0xe000, 0x1234}},
		{"JUMPC0(CC_EQ, 4)", []cpu.Word{0xe201, 0x0004}},
		{"JUMPC1(CC_CARRY, 4)", []cpu.Word{0xe702, 0x0004}},
		{"JAL(13, 0x0100)", []cpu.Word{0xed03, 0x0100}},
		{"RFI()", []cpu.Word{0xe004}},
		{"HALT()", []cpu.Word{0xe005}},
		{"GETCTL(1, CTL_CAUSE)", []cpu.Word{0xe166}},
		{"PUTCTL(2, CTL_VECT)", []cpu.Word{0xe257}},
		{"LEA(1, 10)", []cpu.Word{0xf100, 0x000a}},
		{"LOAD(1, 0x10, 2)", []cpu.Word{0xf121, 0x0010}},
		{"STORE(1, -1, a=3)", []cpu.Word{0xf132, 0xffff}},
		{"DATA(1, [2, 3], ())", []cpu.Word{1, 2, 3}},
	}

	for _, entry := range table {
		setup, err := Parse("test.star", "image = "+entry.expr+"\n")
		if !assert.NoError(err, entry.expr) {
			continue
		}
		assert.Equal(entry.words, setup.Image, entry.expr)
	}
}

func TestParse_EncoderErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		expr string
		text string
	}{
		{"ADD(1, 2, 16)", "field b=16 out of range"},
		{"ADD(-1, 2, 3)", "field d=-1 out of range"},
		{"ADD(1, 2)", "ADD: missing argument for b"},
		{"JUMPC0(16, 0)", "field cc=16 out of range"},
		{"LEA(1, 0x10000)", "does not fit in a word"},
		{"LEA(1, -0x8001)", "does not fit in a word"},
		{"HALT(1)", "HALT: got 1 arguments, want at most 0"},
		{"DATA('a')", "unexpected string"},
		{"DATA(b'ab')", "unexpected bytes"},
	}

	for _, entry := range table {
		_, err := Parse("test.star", "image = "+entry.expr+"\n")
		assert.ErrorContains(err, entry.text, entry.expr)
		assert.ErrorContains(err, "test.star", entry.expr)
	}
}

func TestParse_Setup(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		`loop = SIZE(LEA(1, 0), LEA(2, 0))`,
		`image = [`,
		`    LEA(1, 10),`,
		`    LEA(2, 1),`,
		`    ADD(3, 3, 1),`,
		`    SUB(1, 1, 2),`,
		`    CMP(1, 0),`,
		`    JUMPC0(CC_EQ, loop),`,
		`    HALT(),`,
		`]`,
		`registers = {3: 100, 4: -1}`,
		`control = {CTL_VECT: 0x0100, CTL_STATUS: STATUS_IE}`,
		`flags = 1 << CC_CARRY`,
		`pc = 0`,
	}, "\n")

	setup, err := Parse("sum.star", src)
	require.NoError(t, err)

	assert.Len(setup.Image, 10)
	assert.Equal(cpu.Word(0xe201), setup.Image[7])
	assert.Equal(cpu.Word(0x0004), setup.Image[8])
	assert.Equal(map[uint8]cpu.Word{3: 100, 4: 0xffff}, setup.Registers)
	assert.Equal(map[cpu.ControlReg]cpu.Word{
		cpu.CTL_VECT:   0x0100,
		cpu.CTL_STATUS: cpu.STATUS_IE,
	}, setup.Control)
	require.NotNil(t, setup.Flags)
	assert.True(setup.Flags.Get(cpu.CC_CARRY))
	assert.Equal(cpu.Word(0), setup.Pc)

	proc := cpu.NewCpu()
	require.NoError(t, setup.Apply(proc))
	assert.Equal(cpu.STATE_READY, proc.State())
	assert.Equal(cpu.Word(100), proc.Register(3))
	assert.Equal(cpu.Word(0x0100), proc.Control().Vect)
	assert.True(proc.Control().Ie)
	assert.True(proc.Flags().Get(cpu.CC_CARRY))

	require.NoError(t, proc.Run(context.Background()))
	assert.Equal(cpu.Word(155), proc.Register(3))
}

func TestParse_TopLevelControl(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		`image = []`,
		`for n in range(4):`,
		`    image.append(LEA(n, n * 2))`,
		`image.append(HALT())`,
	}, "\n")

	setup, err := Parse("loop.star", src)
	assert.NoError(err)
	assert.Len(setup.Image, 9)
	assert.Equal(cpu.Word(0xf300), setup.Image[6])
	assert.Equal(cpu.Word(0x0006), setup.Image[7])
}

func TestParse_Globals(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		src  string
		err  error
	}{
		{"image_type", `image = "text"`, ErrImage},
		{"image_nested", `image = [[1, None]]`, ErrImage},
		{"image_bytes", `image = [b"ab"]`, ErrImage},
		{"image_bytes_top", `image = b"ab"`, ErrImage},
		{"image_size", `image = [0] * (MEMORY_SIZE + 1)`, ErrImageSize},
		{"registers_type", `registers = [1]`, ErrRegisters},
		{"registers_index", `registers = {16: 0}`, ErrRegisters},
		{"registers_value", `registers = {1: 0x10000}`, ErrRegisters},
		{"control_index", `control = {7: 0}`, ErrControl},
		{"flags_value", `flags = "eq"`, ErrFlags},
		{"pc_value", `pc = -0x8001`, ErrPc},
	}

	for _, entry := range table {
		setup, err := Parse(entry.name, entry.src)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Nil(setup, entry.name)

		var es *ErrScript
		if assert.ErrorAs(err, &es, entry.name) {
			assert.Equal(entry.name, es.Name)
		}
	}
}

func TestParse_ImageBytes(t *testing.T) {
	assert := assert.New(t)

	setup, err := Parse("bytes.star", `image = [1, (2, b"ab")]`)
	assert.Nil(setup)
	assert.ErrorIs(err, ErrImage)

	var et ErrType
	if assert.ErrorAs(err, &et) {
		assert.Equal(ErrType("bytes"), et)
	}
}

func TestParse_Empty(t *testing.T) {
	assert := assert.New(t)

	setup, err := Parse("empty.star", "")
	assert.NoError(err)
	assert.Empty(setup.Image)
	assert.Empty(setup.Registers)
	assert.Empty(setup.Control)
	assert.Nil(setup.Flags)
	assert.Empty(setup.Binary())

	proc := cpu.NewCpu()
	assert.NoError(setup.Apply(proc))
	assert.Equal(cpu.STATE_READY, proc.State())
}

func TestParse_SyntaxError(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("bad.star", "image = [\n")
	var es *ErrScript
	assert.ErrorAs(err, &es)
}

func TestSetup_Binary(t *testing.T) {
	assert := assert.New(t)

	setup := &Setup{Image: []cpu.Word{0x0123, 0xe005}}
	assert.Equal([]byte{0x01, 0x23, 0xe0, 0x05}, setup.Binary())
}

func TestSetup_ApplyHalted(t *testing.T) {
	assert := assert.New(t)

	setup := &Setup{Image: []cpu.Word{0xe005}}
	proc := cpu.NewCpu()
	assert.NoError(setup.Apply(proc))
	assert.NoError(proc.Step())

	assert.Equal(cpu.ErrState(cpu.STATE_HALT), setup.Apply(proc))
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal(int(cpu.CC_EQUAL), defines["CC_EQ"])
	assert.Equal(cpu.REG_FLAGS, defines["REG_FLAGS"])
	assert.Equal(cpu.INTERRUPT_LINES, defines["INTERRUPT_LINES"])
	assert.Equal(cpu.MEMORY_SIZE, defines["MEMORY_SIZE"])
}
