package thisvm

import (
	"fmt"
	"strconv"
)

type OpCode uint8

const (
	OpPush OpCode = iota + 1
	OpPrint

	OpAdd
	OpSub
	OpMul
	OpDiv

	OpStore
	OpLoad

	OpDeclare
	OpCall
	OpTailCall
	OpReturn
	OpEnter
	OpExit

	OpJump
	OpJumpFalse

	OpEqual
	OpNotEqual
)

var opNames = [...]string{
	OpPush:      "PUSH",
	OpPrint:     "PRINT",
	OpAdd:       "ADD",
	OpSub:       "SUB",
	OpMul:       "MUL",
	OpDiv:       "DIV",
	OpStore:     "STORE",
	OpLoad:      "LOAD",
	OpDeclare:   "DECLARE",
	OpCall:      "CALL",
	OpTailCall:  "TAIL_CALL",
	OpReturn:    "RET",
	OpEnter:     "ENTER",
	OpExit:      "EXIT",
	OpJump:      "JUMP",
	OpJumpFalse: "JMP_IF_FALSE",
	OpEqual:     "EQUAL",
	OpNotEqual:  "NOT_EQUAL",
}

func (o OpCode) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return "OpCode(" + strconv.Itoa(int(o)) + ")"
}

// Instruction is one bytecode unit. Only the operand matching Op is used:
// Int for Push, Name for variable and function ops, Addr for jumps and
// Declare (the index just past the matching Exit).
type Instruction struct {
	Op   OpCode
	Int  int64
	Name string
	Addr int
}

func Push(v int64) Instruction {
	return Instruction{Op: OpPush, Int: v}
}

func Store(name string) Instruction {
	return Instruction{Op: OpStore, Name: name}
}

func Load(name string) Instruction {
	return Instruction{Op: OpLoad, Name: name}
}

func Declare(name string, end int) Instruction {
	return Instruction{Op: OpDeclare, Name: name, Addr: end}
}

func Call(name string) Instruction {
	return Instruction{Op: OpCall, Name: name}
}

func TailCall(name string) Instruction {
	return Instruction{Op: OpTailCall, Name: name}
}

func Jump(addr int) Instruction {
	return Instruction{Op: OpJump, Addr: addr}
}

func JumpFalse(addr int) Instruction {
	return Instruction{Op: OpJumpFalse, Addr: addr}
}

func Simple(op OpCode) Instruction {
	return Instruction{Op: op}
}

func (i Instruction) String() string {
	switch i.Op {
	case OpPush:
		return fmt.Sprintf("%s %d", i.Op, i.Int)
	case OpStore, OpLoad, OpCall, OpTailCall:
		return fmt.Sprintf("%s %s", i.Op, i.Name)
	case OpDeclare:
		return fmt.Sprintf("%s %s (end %d)", i.Op, i.Name, i.Addr)
	case OpJump, OpJumpFalse:
		return fmt.Sprintf("%s %d", i.Op, i.Addr)
	}
	return i.Op.String()
}
