package cpu

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(STATE_INITIALISING, cpu.State())

	err := cpu.Load([]byte{0x00, 0x01, 0x00, 0x02})
	assert.NoError(err)
	assert.Equal(STATE_READY, cpu.State())
	assert.Equal(Word(0x0001), cpu.Peek(0))
	assert.Equal(Word(0x0002), cpu.Peek(1))
	assert.Equal(Word(0x0000), cpu.Peek(2))
}

func TestLoad_OddByte(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Load([]byte{0x12, 0x34, 0x56})
	assert.NoError(err)
	assert.Equal(Word(0x1234), cpu.Peek(0))
	assert.Equal(Word(0x0000), cpu.Peek(1))
}

func TestLoad_Full(t *testing.T) {
	assert := assert.New(t)

	data := bytes.Repeat([]byte{0xab, 0xcd}, MEMORY_SIZE)
	data = append(data, 0xff) // odd byte does not count

	cpu := NewCpu()
	assert.NoError(cpu.Load(data))
	assert.Equal(Word(0xabcd), cpu.Peek(0))
	assert.Equal(Word(0xabcd), cpu.Peek(MEMORY_SIZE-1))
}

func TestLoad_SizeExceeded(t *testing.T) {
	assert := assert.New(t)

	data := bytes.Repeat([]byte{0xab, 0xcd}, MEMORY_SIZE+1)

	cpu := NewCpu()
	err := cpu.Load(data)
	assert.ErrorIs(err, ErrLoadSizeExceeded)
	assert.Equal(STATE_INITIALISING, cpu.State())

	for addr := range MEMORY_SIZE {
		if cpu.Peek(Word(addr)) != 0 {
			t.Fatalf("memory modified at 0x%04x", addr)
		}
	}
}

func TestLoad_SizeExceededKeepsProgram(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]byte{0x11, 0x22}))

	err := cpu.Load(bytes.Repeat([]byte{0xab}, 2*MEMORY_SIZE+2))
	assert.ErrorIs(err, ErrLoadSizeExceeded)
	assert.Equal(STATE_READY, cpu.State())
	assert.Equal(Word(0x1122), cpu.Peek(0))
}

func TestLoad_Halted(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load(Unpack(Encode(Instruction{Op: OP_HALT}))))
	assert.NoError(cpu.Step())
	assert.Equal(STATE_HALT, cpu.State())

	err := cpu.Load([]byte{0x00, 0x01})
	assert.ErrorIs(err, ErrState(STATE_HALT))
}

func TestLoadFrom(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.LoadFrom(bytes.NewReader([]byte{0xe0, 0x05}))
	assert.NoError(err)
	assert.Equal(Word(0xe005), cpu.Peek(0))
	assert.Equal(STATE_READY, cpu.State())
}

func TestLoadFrom_Oversized(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.LoadFrom(bytes.NewReader(make([]byte, 4*MEMORY_SIZE)))
	assert.ErrorIs(err, ErrLoadSizeExceeded)
	assert.Equal(STATE_INITIALISING, cpu.State())
}

func TestLoadFrom_ReadError(t *testing.T) {
	assert := assert.New(t)

	failure := errors.New("media failure")

	cpu := NewCpu()
	err := cpu.LoadFrom(iotest.ErrReader(failure))
	assert.ErrorIs(err, ErrLoadIo)
	assert.ErrorIs(err, failure)
	assert.Equal(STATE_INITIALISING, cpu.State())
}

func TestPackUnpack(t *testing.T) {
	assert := assert.New(t)

	words := []Word{0x0123, 0xfedc, 0x8000}
	data := Unpack(words)
	assert.Equal([]byte{0x01, 0x23, 0xfe, 0xdc, 0x80, 0x00}, data)
	assert.Equal(words, Pack(data))
}
