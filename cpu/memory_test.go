package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.Equal(MEMORY_SIZE, mem.Size())

	mem.Write(0xffff, 0x1234)
	assert.Equal(Word(0x1234), mem.Read(0xffff))
	assert.Equal(Word(0), mem.Read(0))
}

func TestMemory_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.PanicsWithValue(ErrAddress(0x10), func() { mem.Read(0x10) })
	assert.PanicsWithValue(ErrAddress(0x20), func() { mem.Write(0x20, 1) })
}
