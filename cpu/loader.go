package cpu

import (
	"errors"
	"io"
)

// Pack a big-endian byte stream into words. A trailing odd byte is dropped.
func Pack(data []byte) (words []Word) {
	words = make([]Word, len(data)/2)
	for n := range words {
		words[n] = Word(data[2*n])<<8 | Word(data[2*n+1])
	}
	return
}

// Unpack words into a big-endian byte stream.
func Unpack(words []Word) (data []byte) {
	data = make([]byte, 0, 2*len(words))
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	return
}

// Load a program image into memory, starting at address 0.
//
// Loading is permitted while initialising or ready, and moves the cpu to ready.
// An image larger than memory is refused and memory is left untouched.
func (cpu *Cpu) Load(data []byte) (err error) {
	switch cpu.state {
	case STATE_INITIALISING, STATE_READY:
	default:
		return ErrState(cpu.state)
	}

	if len(data)/2 > cpu.mem.Size() {
		return ErrLoadSizeExceeded
	}

	cpu.mem.load(Pack(data))
	cpu.state = STATE_READY

	if cpu.Verbose {
		cpu.log().WithField("words", len(data)/2).Debug(f("cpu: program loaded"))
	}

	return
}

// LoadFrom reads a program image from in and loads it.
//
// At most one word more than memory can hold is read, so an oversized source is
// refused without reading it to the end.
func (cpu *Cpu) LoadFrom(in io.Reader) (err error) {
	limit := int64(2*cpu.mem.Size() + 2)
	data, err := io.ReadAll(io.LimitReader(in, limit))
	if err != nil {
		return errors.Join(ErrLoadIo, err)
	}

	return cpu.Load(data)
}
