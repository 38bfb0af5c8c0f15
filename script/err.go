package script

import (
	"errors"

	"github.com/ezrec/sigma16/translate"
)

var f = translate.From

var (
	ErrImage     = errors.New(f("image invalid"))
	ErrImageSize = errors.New(f("image exceeds memory"))
	ErrRegisters = errors.New(f("registers invalid"))
	ErrControl   = errors.New(f("control invalid"))
	ErrFlags     = errors.New(f("flags invalid"))
	ErrPc        = errors.New(f("pc invalid"))
)

// ErrWord is returned for a value that does not fit in a word.
type ErrWord int

func (ew ErrWord) Error() string {
	return f("%d does not fit in a word", int(ew))
}

// ErrField is returned for an instruction field outside of its nibble.
type ErrField struct {
	Name  string
	Value int
}

func (ef ErrField) Error() string {
	return f("field %v=%d out of range", ef.Name, ef.Value)
}

// ErrScript indicates the script that failed.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrType is returned for a script value of an unexpected type.
type ErrType string

func (et ErrType) Error() string {
	return f("unexpected %v", string(et))
}
