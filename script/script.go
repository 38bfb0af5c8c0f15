// Package script describes the initial state of a machine with a Starlark
// script.
//
// Each mnemonic is a builtin, in upper case, that returns the words of the
// encoded instruction. The architectural constants (CC_EQ, CTL_VECT,
// STATUS_IE, ...) are predeclared.
//
//	image = [
//	    LEA(1, 10),        # lea r1,0x000a[r0]
//	    LEA(2, 1),
//	    ADD(3, 3, 1),      # loop
//	    SUB(1, 1, 2),
//	    CMP(1, 0),
//	    JUMPC0(CC_EQ, 4),
//	    HALT(),
//	]
//	registers = {3: 0}
//	control = {CTL_VECT: 0x0100}
//	pc = 0
//
// The image may nest lists and tuples freely, and is flattened in order. DATA(...)
// emits raw words, and SIZE(...) counts the words of its arguments.
package script

import (
	"errors"
	"iter"
	"maps"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/sigma16/cpu"
	"github.com/ezrec/sigma16/internal"
)

// Setup is the initial machine state described by a script.
type Setup struct {
	Image     []cpu.Word                  // Program image, loaded at address 0.
	Registers map[uint8]cpu.Word          // Initial register values.
	Control   map[cpu.ControlReg]cpu.Word // Initial control register values.
	Flags     *cpu.Flags                  // Initial condition register, if given.
	Pc        cpu.Word                    // Initial program counter.
}

var _script_defines = map[string]int{
	"REG_FLAGS":       cpu.REG_FLAGS,
	"REG_COUNT":       cpu.REG_COUNT,
	"INTERRUPT_LINES": cpu.INTERRUPT_LINES,
}

// Defines returns the constants predeclared for scripts.
func Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(cpu.Defines(), maps.All(_script_defines))
}

// encoder is the builtin of a mnemonic. The params name the instruction
// fields in call order; a trailing '?' marks an optional one.
type encoder struct {
	op     cpu.Op
	params []string
}

var encoders = []encoder{
	{cpu.OP_ADD, []string{"d", "a", "b"}},
	{cpu.OP_SUB, []string{"d", "a", "b"}},
	{cpu.OP_MUL, []string{"d", "a", "b"}},
	{cpu.OP_DIV, []string{"d", "a", "b"}},
	{cpu.OP_CMP, []string{"a", "b"}},
	{cpu.OP_TRAP, []string{"d", "a", "b"}},
	{cpu.OP_AND, []string{"d", "a", "b"}},
	{cpu.OP_OR, []string{"d", "a", "b"}},
	{cpu.OP_XOR, []string{"d", "a", "b"}},
	{cpu.OP_INV, []string{"d", "a"}},
	{cpu.OP_PUSH, []string{"d", "a", "b"}},
	{cpu.OP_POP, []string{"d", "a", "b"}},
	{cpu.OP_LEA, []string{"d", "disp", "a?"}},
	{cpu.OP_LOAD, []string{"d", "disp", "a?"}},
	{cpu.OP_STORE, []string{"d", "disp", "a?"}},
	{cpu.OP_JUMP, []string{"disp"}},
	{cpu.OP_JUMPC0, []string{"cc", "disp"}},
	{cpu.OP_JUMPC1, []string{"cc", "disp"}},
	{cpu.OP_JAL, []string{"d", "disp"}},
	{cpu.OP_RFI, nil},
	{cpu.OP_HALT, nil},
	{cpu.OP_GETCTL, []string{"d", "ctl"}},
	{cpu.OP_PUTCTL, []string{"d", "ctl"}},
}

// Name of the builtin.
func (enc encoder) Name() string {
	return strings.ToUpper(enc.op.String())
}

func (enc encoder) call(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var d, a, b, disp int
	fields := map[string]*int{
		"d":    &d,
		"cc":   &d,
		"a":    &a,
		"ctl":  &a,
		"b":    &b,
		"disp": &disp,
	}

	var pairs []any
	for _, param := range enc.params {
		pairs = append(pairs, param, fields[strings.TrimSuffix(param, "?")])
	}

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, pairs...)
	if err != nil {
		return
	}

	for _, param := range enc.params {
		name := strings.TrimSuffix(param, "?")
		if name == "disp" {
			continue
		}
		if v := *fields[name]; v < 0 || v > 0xf {
			err = ErrField{Name: name, Value: v}
			return
		}
	}

	word, err := toWord(disp)
	if err != nil {
		return
	}

	inst := cpu.Instruction{Op: enc.op, D: uint8(d), A: uint8(a), B: uint8(b), Disp: word}
	value = wordList(cpu.Encode(inst))

	return
}

// toWord accepts both the integer and the natural range of a word.
func toWord(v int) (word cpu.Word, err error) {
	if v < -0x8000 || v > 0xffff {
		err = ErrWord(v)
		return
	}
	word = cpu.Word(v)
	return
}

func wordOf(value starlark.Value) (word cpu.Word, err error) {
	v, err := starlark.AsInt32(value)
	if err != nil {
		return
	}
	return toWord(v)
}

func wordList(words []cpu.Word) *starlark.List {
	values := make([]starlark.Value, len(words))
	for n, word := range words {
		values[n] = starlark.MakeInt(int(word))
	}
	return starlark.NewList(values)
}

// flatten appends the words of a (possibly nested) value.
func flatten(value starlark.Value, words []cpu.Word) ([]cpu.Word, error) {
	switch value := value.(type) {
	case starlark.Int:
		word, err := wordOf(value)
		if err != nil {
			return words, err
		}
		return append(words, word), nil
	case *starlark.List:
		return flattenIndexable(value, words)
	case starlark.Tuple:
		return flattenIndexable(value, words)
	}

	return words, ErrType(value.Type())
}

func flattenIndexable(value starlark.Indexable, words []cpu.Word) ([]cpu.Word, error) {
	var err error
	for n := range value.Len() {
		words, err = flatten(value.Index(n), words)
		if err != nil {
			return words, err
		}
	}
	return words, nil
}

func builtinData(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if len(kwargs) != 0 {
		err = ErrType("keyword argument")
		return
	}
	words, err := flatten(args, nil)
	if err != nil {
		return
	}
	value = wordList(words)
	return
}

func builtinSize(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if len(kwargs) != 0 {
		err = ErrType("keyword argument")
		return
	}
	words, err := flatten(args, nil)
	if err != nil {
		return
	}
	value = starlark.MakeInt(len(words))
	return
}

// predeclared returns the constants and builtins visible to a script.
func predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for name, value := range Defines() {
		pred[name] = starlark.MakeInt(value)
	}

	for _, enc := range encoders {
		pred[enc.Name()] = starlark.NewBuiltin(enc.Name(), enc.call)
	}

	pred["DATA"] = starlark.NewBuiltin("DATA", builtinData)
	pred["SIZE"] = starlark.NewBuiltin("SIZE", builtinSize)

	return
}

// readDict reads a dict of index to word, with indexes below limit.
func readDict(value starlark.Value, limit int) (entries map[int]cpu.Word, err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = ErrType(value.Type())
		return
	}

	entries = map[int]cpu.Word{}
	for _, item := range dict.Items() {
		var index int
		index, err = starlark.AsInt32(item[0])
		if err != nil {
			return
		}
		if index < 0 || index >= limit {
			err = ErrField{Name: "index", Value: index}
			return
		}
		entries[index], err = wordOf(item[1])
		if err != nil {
			return
		}
	}

	return
}

// Parse runs a setup script. src is a string, []byte or io.Reader holding the
// script, or nil to read the file called name.
func Parse(name string, src any) (setup *Setup, err error) {
	defer func() {
		if err != nil {
			setup = nil
			err = &ErrScript{Name: name, Err: err}
		}
	}()

	thread := starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logrus.WithField("script", name).Info(msg)
		},
	}
	opts := syntax.FileOptions{
		TopLevelControl: true,
		While:           true,
		GlobalReassign:  true,
	}

	globals, err := starlark.ExecFileOptions(&opts, &thread, name, src, predeclared())
	if err != nil {
		return
	}

	setup = &Setup{
		Registers: map[uint8]cpu.Word{},
		Control:   map[cpu.ControlReg]cpu.Word{},
	}

	if value, ok := globals["image"]; ok {
		setup.Image, err = flatten(value, nil)
		if err != nil {
			err = errors.Join(ErrImage, err)
			return
		}
		if len(setup.Image) > cpu.MEMORY_SIZE {
			err = ErrImageSize
			return
		}
	}

	if value, ok := globals["registers"]; ok {
		var entries map[int]cpu.Word
		entries, err = readDict(value, cpu.REG_COUNT)
		if err != nil {
			err = errors.Join(ErrRegisters, err)
			return
		}
		for n, word := range entries {
			setup.Registers[uint8(n)] = word
		}
	}

	if value, ok := globals["control"]; ok {
		var entries map[int]cpu.Word
		entries, err = readDict(value, int(cpu.CTL_CAUSE)+1)
		if err != nil {
			err = errors.Join(ErrControl, err)
			return
		}
		for n, word := range entries {
			setup.Control[cpu.ControlReg(n)] = word
		}
	}

	if value, ok := globals["flags"]; ok {
		var word cpu.Word
		word, err = wordOf(value)
		if err != nil {
			err = errors.Join(ErrFlags, err)
			return
		}
		flags := cpu.Flags(word)
		setup.Flags = &flags
	}

	if value, ok := globals["pc"]; ok {
		setup.Pc, err = wordOf(value)
		if err != nil {
			err = errors.Join(ErrPc, err)
			return
		}
	}

	return
}

// Binary returns the image as a big-endian program binary.
func (setup *Setup) Binary() []byte {
	return cpu.Unpack(setup.Image)
}

// Apply loads the image into the processor, and sets its initial state.
func (setup *Setup) Apply(proc *cpu.Cpu) (err error) {
	err = proc.Load(setup.Binary())
	if err != nil {
		return
	}

	for n, value := range setup.Registers {
		err = proc.SetRegister(n, value)
		if err != nil {
			return
		}
	}

	if setup.Flags != nil {
		err = proc.SetFlags(*setup.Flags)
		if err != nil {
			return
		}
	}

	for reg, value := range setup.Control {
		err = proc.SetControl(reg, value)
		if err != nil {
			return
		}
	}

	err = proc.SetPc(setup.Pc)

	return
}
