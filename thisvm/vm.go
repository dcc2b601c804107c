package thisvm

import (
	"encoding/gob"
	"io"
	"maps"
	"os"
)

type Options struct {
	Stdout        io.Writer // if nil, default to os.Stdout
	StackCapacity int       // initial operand stack capacity
}

type VM struct {
	Code         []Instruction
	IP           int
	OperandStack []int64
	CallStack    []Frame
	Globals      map[string]int64
	Functions    map[string]int
	MaxDepth     int

	stdout io.Writer
}

func NewVM(code []Instruction, options *Options) *VM {
	var opts Options
	if options != nil {
		opts = *options
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.StackCapacity <= 0 {
		opts.StackCapacity = 64
	}
	return &VM{
		Code:         code,
		OperandStack: make([]int64, 0, opts.StackCapacity),
		CallStack:    make([]Frame, 0, 16),
		Globals:      make(map[string]int64),
		Functions:    make(map[string]int),
		stdout:       opts.Stdout,
	}
}

func (v *VM) SetStdout(w io.Writer) {
	v.stdout = w
}

// Get reads a global.
func (v *VM) Get(name string) (int64, bool) {
	val, ok := v.Globals[name]
	return val, ok
}

func (v *VM) Depth() int {
	return len(v.CallStack)
}

func (v *VM) GlobalsCopy() map[string]int64 {
	return maps.Clone(v.Globals)
}

func (v *VM) push(val int64) {
	v.OperandStack = append(v.OperandStack, val)
}

func (v *VM) pop() (int64, bool) {
	n := len(v.OperandStack)
	if n == 0 {
		return 0, false
	}
	val := v.OperandStack[n-1]
	v.OperandStack = v.OperandStack[:n-1]
	return val, true
}

func (v *VM) frame() *Frame {
	if len(v.CallStack) == 0 {
		return nil
	}
	return &v.CallStack[len(v.CallStack)-1]
}

// store writes the innermost frame when one is active, globals otherwise.
func (v *VM) store(name string, val int64) {
	if frame := v.frame(); frame != nil {
		if frame.Locals == nil {
			frame.Locals = make(map[string]int64)
		}
		frame.Locals[name] = val
		return
	}
	if v.Globals == nil {
		v.Globals = make(map[string]int64)
	}
	v.Globals[name] = val
}

// load reads globals first and falls back to the innermost frame, so a
// global shadows a local of the same name.
func (v *VM) load(name string) (int64, bool) {
	if val, ok := v.Globals[name]; ok {
		return val, true
	}
	if frame := v.frame(); frame != nil {
		val, ok := frame.Locals[name]
		return val, ok
	}
	return 0, false
}

func (v *VM) Snapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return nil
}

func (v *VM) Restore(r io.Reader) error {
	dec := gob.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if v.Globals == nil {
		v.Globals = make(map[string]int64)
	}
	if v.Functions == nil {
		v.Functions = make(map[string]int)
	}
	if v.stdout == nil {
		v.stdout = os.Stdout
	}
	return nil
}
