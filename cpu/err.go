package cpu

import (
	"errors"

	"github.com/ezrec/sigma16/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrLoadSizeExceeded = errors.New(f("program exceeds memory"))
	ErrLoadIo           = errors.New(f("program read failed"))
)

// ErrState is returned when an operation is not permitted in the current state.
type ErrState State

func (es ErrState) Error() string {
	return f("cpu %v", State(es).String())
}

// ErrAddress is the panic value for a memory access outside of the memory array.
// It is an emulator defect, never a guest fault.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%x out of range", int(ea))
}
