package emulator

import (
	"errors"

	"github.com/ezrec/sigma16/translate"
)

var f = translate.From

var (
	ErrCycleLimit = errors.New(f("cycle limit reached"))
)

// ErrRuntime indicates the program counter of a runtime error.
type ErrRuntime struct {
	Pc  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrFile indicates the file that failed to load.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
