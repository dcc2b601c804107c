package thisvm

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func run(t *testing.T, code []Instruction) (*VM, string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	vm := NewVM(code, &Options{
		Stdout: buf,
	})
	var runErr error
	for _, err := range vm.Run {
		if err != nil {
			runErr = err
		}
	}
	return vm, buf.String(), runErr
}

func mustRun(t *testing.T, code []Instruction) (*VM, string) {
	t.Helper()
	vm, out, err := run(t, code)
	if err != nil {
		t.Fatal(err)
	}
	return vm, out
}

func TestVM_Arithmetic(t *testing.T) {
	_, out := mustRun(t, []Instruction{
		Push(10),
		Push(3),
		Simple(OpSub),
		Simple(OpPrint),
		Push(7),
		Push(2),
		Simple(OpDiv),
		Simple(OpPrint),
		Push(0),
		Push(7),
		Simple(OpSub),
		Push(2),
		Simple(OpDiv),
		Simple(OpPrint),
		Push(6),
		Push(7),
		Simple(OpMul),
		Push(1),
		Simple(OpAdd),
		Simple(OpPrint),
	})
	if out != "7\n3\n-3\n43\n" {
		t.Fatalf("got %q", out)
	}
}

func TestVM_Comparison(t *testing.T) {
	_, out := mustRun(t, []Instruction{
		Push(1),
		Push(1),
		Simple(OpEqual),
		Simple(OpPrint),
		Push(1),
		Push(2),
		Simple(OpEqual),
		Simple(OpPrint),
		Push(1),
		Push(2),
		Simple(OpNotEqual),
		Simple(OpPrint),
		Push(2),
		Push(2),
		Simple(OpNotEqual),
		Simple(OpPrint),
	})
	if out != "1\n0\n1\n0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestVM_Globals(t *testing.T) {
	vm, out := mustRun(t, []Instruction{
		Push(1),
		Store("x"),
		Load("x"),
		Push(2),
		Simple(OpAdd),
		Store("x"),
		Load("x"),
		Simple(OpPrint),
	})
	if out != "3\n" {
		t.Fatalf("got %q", out)
	}
	x, ok := vm.Get("x")
	if !ok || x != 3 {
		t.Fatalf("got %v", x)
	}
	if len(vm.OperandStack) != 0 {
		t.Fatalf("got %v", vm.OperandStack)
	}
}

func TestVM_Jump(t *testing.T) {
	_, out := mustRun(t, []Instruction{
		Push(0),
		JumpFalse(4),
		Push(1),
		Simple(OpPrint),
		Push(1),
		JumpFalse(8),
		Push(2),
		Simple(OpPrint),
		Jump(11),
		Push(3),
		Simple(OpPrint),
	})
	if out != "2\n" {
		t.Fatalf("got %q", out)
	}
}

func incrementFunc(end int) []Instruction {
	return []Instruction{
		Declare("inc", end),
		Simple(OpEnter),
		Store("a"),
		Load("a"),
		Push(1),
		Simple(OpAdd),
		Simple(OpReturn),
		Simple(OpExit),
		Push(41),
		Call("inc"),
		Simple(OpPrint),
	}
}

func TestVM_Call(t *testing.T) {
	vm, out := mustRun(t, incrementFunc(8))
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
	if vm.Functions["inc"] != 1 {
		t.Fatalf("got %v", vm.Functions)
	}
	if vm.Depth() != 0 || vm.MaxDepth != 1 {
		t.Fatalf("got %d %d", vm.Depth(), vm.MaxDepth)
	}
	// parameters are locals, never globals
	if _, ok := vm.Get("a"); ok {
		t.Fatal("should not be global")
	}
}

func TestVM_DeclareScan(t *testing.T) {
	// without a resolved end the body is skipped by scanning for Exit
	_, out := mustRun(t, incrementFunc(0))
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestVM_CallBeforeDeclare(t *testing.T) {
	code := append([]Instruction{
		Push(1),
		Call("inc"),
	}, incrementFunc(10)...)
	_, _, err := run(t, code)
	if !errors.Is(err, ErrUndefinedFunction) {
		t.Fatalf("got %v", err)
	}
}

func TestVM_GlobalShadowsLocal(t *testing.T) {
	vm, out := mustRun(t, []Instruction{
		Push(1),
		Store("x"),
		Declare("g", 9),
		Simple(OpEnter),
		Push(99),
		Store("x"),
		Load("x"),
		Simple(OpReturn),
		Simple(OpExit),
		Call("g"),
		Simple(OpPrint),
	})
	if out != "1\n" {
		t.Fatalf("got %q", out)
	}
	if x, _ := vm.Get("x"); x != 1 {
		t.Fatalf("got %v", x)
	}
}

// count(n) { if n == 0 { return 0; }; return count(n - 1); }
func countdown(n int64) []Instruction {
	return []Instruction{
		Declare("count", 16),
		Simple(OpEnter),
		Store("n"),
		Load("n"),
		Push(0),
		Simple(OpEqual),
		JumpFalse(10),
		Push(0),
		Simple(OpReturn),
		Jump(10),
		Load("n"),
		Push(1),
		Simple(OpSub),
		TailCall("count"),
		Simple(OpReturn),
		Simple(OpExit),
		Push(n),
		Call("count"),
		Simple(OpPrint),
	}
}

func TestVM_TailCall(t *testing.T) {
	buf := new(bytes.Buffer)
	vm := NewVM(countdown(100000), &Options{
		Stdout: buf,
	})
	tailCalls := 0
	for event, err := range vm.Run {
		if err != nil {
			t.Fatal(err)
		}
		if event.Kind == EventTailCall {
			tailCalls++
			if event.Depth != 1 {
				t.Fatalf("got depth %d", event.Depth)
			}
		}
	}
	if buf.String() != "0\n" {
		t.Fatalf("got %q", buf.String())
	}
	if tailCalls != 100000 {
		t.Fatalf("got %d", tailCalls)
	}
	if vm.MaxDepth != 1 {
		t.Fatalf("got %d", vm.MaxDepth)
	}
	if vm.Depth() != 0 {
		t.Fatalf("got %d", vm.Depth())
	}
}

func TestVM_TailCallClearsLocals(t *testing.T) {
	// a local set before the tail call is gone after it
	_, _, err := run(t, []Instruction{
		Declare("f", 11),
		Simple(OpEnter),
		Load("flag"),
		JumpFalse(7),
		Load("y"),
		Simple(OpReturn),
		Jump(7),
		Push(5),
		Store("y"),
		TailCall("h"),
		Simple(OpExit),
		Declare("h", 16),
		Simple(OpEnter),
		Load("y"),
		Simple(OpReturn),
		Simple(OpExit),
		Push(0),
		Store("flag"),
		Call("f"),
	})
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("got %v", err)
	}
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("got %T", err)
	}
	if runtimeErr.IP != 13 || runtimeErr.Detail != "y" {
		t.Fatalf("got %v", runtimeErr)
	}
}

func TestVM_Events(t *testing.T) {
	vm := NewVM(incrementFunc(8), &Options{
		Stdout: new(bytes.Buffer),
	})
	var kinds []string
	for event, err := range vm.Run {
		if err != nil {
			t.Fatal(err)
		}
		kinds = append(kinds, event.Kind.String())
	}
	if str := strings.Join(kinds, ","); str != "call,return,print" {
		t.Fatalf("got %s", str)
	}
}

func TestVM_Errors(t *testing.T) {
	tests := []struct {
		name string
		code []Instruction
		err  error
		ip   int
	}{
		{"add underflow", []Instruction{Push(1), Simple(OpAdd)}, ErrStackUnderflow, 1},
		{"print underflow", []Instruction{Simple(OpPrint)}, ErrStackUnderflow, 0},
		{"store underflow", []Instruction{Store("x")}, ErrStackUnderflow, 0},
		{"jump underflow", []Instruction{JumpFalse(0)}, ErrStackUnderflow, 0},
		{"undefined variable", []Instruction{Load("nope")}, ErrUndefinedVariable, 0},
		{"undefined function", []Instruction{Call("nope")}, ErrUndefinedFunction, 0},
		{"return without frame", []Instruction{Simple(OpReturn)}, ErrNoFrame, 0},
		{"tail call without frame", []Instruction{Push(1), TailCall("f")}, ErrNoFrame, 1},
		{"enter without frame", []Instruction{Simple(OpEnter)}, ErrNoFrame, 0},
		{"division by zero", []Instruction{Push(5), Push(0), Simple(OpDiv)}, ErrDivisionByZero, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := run(t, test.code)
			if !errors.Is(err, test.err) {
				t.Fatalf("got %v", err)
			}
			var runtimeErr *RuntimeError
			if !errors.As(err, &runtimeErr) {
				t.Fatalf("got %T", err)
			}
			if runtimeErr.IP != test.ip {
				t.Fatalf("got %d", runtimeErr.IP)
			}
		})
	}
}

func TestVM_ErrorHalts(t *testing.T) {
	vm, out, err := run(t, []Instruction{
		Push(1),
		Simple(OpPrint),
		Push(5),
		Push(0),
		Simple(OpDiv),
		Push(2),
		Simple(OpPrint),
	})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("got %v", err)
	}
	if out != "1\n" {
		t.Fatalf("got %q", out)
	}
	if vm.IP != 4 {
		t.Fatalf("got %d", vm.IP)
	}
	if msg := err.Error(); msg != "runtime error at 4 (DIV): division by zero: 5 / 0" {
		t.Fatalf("got %q", msg)
	}
}

func TestVM_SnapshotRestore(t *testing.T) {
	code := []Instruction{
		Push(1),
		Store("x"),
		Declare("f", 9),
		Simple(OpEnter),
		Store("a"),
		Load("a"),
		Simple(OpPrint),
		Simple(OpReturn),
		Simple(OpExit),
		Push(10),
		Call("f"),
		Push(20),
		Call("f"),
		Load("x"),
		Simple(OpPrint),
	}

	buf := new(bytes.Buffer)
	vm := NewVM(code, &Options{
		Stdout: buf,
	})
	// stop after the first print, inside the first call
	for event, err := range vm.Run {
		if err != nil {
			t.Fatal(err)
		}
		if event.Kind == EventPrint {
			break
		}
	}
	if buf.String() != "10\n" {
		t.Fatalf("got %q", buf.String())
	}

	snapshot := new(bytes.Buffer)
	if err := vm.Snapshot(snapshot); err != nil {
		t.Fatal(err)
	}

	buf2 := new(bytes.Buffer)
	restored := NewVM(nil, &Options{
		Stdout: buf2,
	})
	if err := restored.Restore(snapshot); err != nil {
		t.Fatal(err)
	}
	if restored.Depth() != 1 {
		t.Fatalf("got %d", restored.Depth())
	}
	for _, err := range restored.Run {
		if err != nil {
			t.Fatal(err)
		}
	}
	if buf2.String() != "20\n1\n" {
		t.Fatalf("got %q", buf2.String())
	}
}

func TestDisassemble(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := Disassemble(buf, incrementFunc(8)); err != nil {
		t.Fatal(err)
	}
	want := ` 0 DECLARE inc (end 8)
 1 ENTER
 2 STORE a
 3 LOAD a
 4 PUSH 1
 5 ADD
 6 RET
 7 EXIT
 8 PUSH 41
 9 CALL inc
10 PRINT
`
	if buf.String() != want {
		t.Fatalf("got\n%s", buf.String())
	}
}
