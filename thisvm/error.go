package thisvm

import (
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrNoFrame           = errors.New("no active frame")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrOutput            = errors.New("output failed")
)

// RuntimeError is fatal: the VM stops at the instruction that raised it.
type RuntimeError struct {
	Err         error
	IP          int
	Instruction Instruction
	Detail      string
}

func (r *RuntimeError) Error() string {
	if r.Detail != "" {
		return fmt.Sprintf("runtime error at %d (%s): %s: %s", r.IP, r.Instruction, r.Err, r.Detail)
	}
	return fmt.Sprintf("runtime error at %d (%s): %s", r.IP, r.Instruction, r.Err)
}

func (r *RuntimeError) Unwrap() error {
	return r.Err
}
