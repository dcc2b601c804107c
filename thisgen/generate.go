// Package thisgen lowers a program to one flat instruction sequence.
//
// Function bodies are emitted inline where they are declared. Jump and
// Declare addresses are emitted as zero placeholders and back-patched
// once the whole program has been generated.
package thisgen

import (
	"fmt"

	"github.com/reusee/thislang/thislang"
	"github.com/reusee/thislang/thisvm"
)

type generator struct {
	code   []thisvm.Instruction
	labels labels
}

func Generate(program *thislang.Program) ([]thisvm.Instruction, error) {
	g := new(generator)
	for _, stmt := range program.Stmts {
		if err := g.stmt(stmt); err != nil {
			return nil, err
		}
	}
	if err := g.resolve(); err != nil {
		return nil, err
	}
	return g.code, nil
}

func (g *generator) emit(inst thisvm.Instruction) {
	g.code = append(g.code, inst)
}

func (g *generator) currentIP() int {
	return len(g.code)
}

// emitJump appends inst with a placeholder address to be patched to lbl.
func (g *generator) emitJump(inst thisvm.Instruction, lbl label) {
	inst.Addr = 0
	g.labels.refer(lbl, g.currentIP())
	g.emit(inst)
}

func (g *generator) place(lbl label) {
	g.labels.place(lbl, g.currentIP())
}

func (g *generator) resolve() error {
	return g.labels.resolve(func(index int, position int) {
		g.code[index].Addr = position
	})
}

func (g *generator) stmt(stmt thislang.Stmt) error {
	switch s := stmt.(type) {

	case *thislang.VarDecl:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		g.emit(thisvm.Store(s.Name))

	case *thislang.Assign:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		g.emit(thisvm.Store(s.Name))

	case *thislang.FuncDecl:
		return g.funcDecl(s)

	case *thislang.CallStmt:
		// the returned value, if any, stays on the stack
		return g.expr(s.Call)

	case *thislang.Print:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		g.emit(thisvm.Simple(thisvm.OpPrint))

	case *thislang.If:
		return g.ifStmt(s)

	default:
		return fmt.Errorf("unsupported statement type: %T", stmt)
	}
	return nil
}

func (g *generator) funcDecl(s *thislang.FuncDecl) error {
	end := g.labels.newLabel()
	g.emitJump(thisvm.Declare(s.Name, 0), end)
	g.emit(thisvm.Simple(thisvm.OpEnter))

	// arguments were pushed left to right, so the last one is on top
	for i := len(s.Params) - 1; i >= 0; i-- {
		g.emit(thisvm.Store(s.Params[i].Name))
	}

	if err := g.block(s.Body); err != nil {
		return err
	}
	if s.Body.Return == nil {
		g.emit(thisvm.Simple(thisvm.OpReturn))
	}
	g.emit(thisvm.Simple(thisvm.OpExit))
	g.place(end)
	return nil
}

func (g *generator) ifStmt(s *thislang.If) error {
	if err := g.condition(s.Cond); err != nil {
		return err
	}
	elseLabel := g.labels.newLabel()
	endLabel := g.labels.newLabel()

	g.emitJump(thisvm.JumpFalse(0), elseLabel)
	if err := g.block(s.Then); err != nil {
		return err
	}
	g.emitJump(thisvm.Jump(0), endLabel)

	g.place(elseLabel)
	if s.Else != nil {
		if err := g.block(s.Else); err != nil {
			return err
		}
	}
	g.place(endLabel)
	return nil
}

func (g *generator) block(block *thislang.Block) error {
	for _, stmt := range block.Stmts {
		if err := g.stmt(stmt); err != nil {
			return err
		}
	}
	if block.Return == nil {
		return nil
	}

	if call, ok := block.Return.(*thislang.Call); ok {
		// a call in return position reuses the current frame
		if err := g.args(call.Args); err != nil {
			return err
		}
		g.emit(thisvm.TailCall(call.Name))
	} else if err := g.expr(block.Return); err != nil {
		return err
	}
	g.emit(thisvm.Simple(thisvm.OpReturn))
	return nil
}

func (g *generator) condition(cond *thislang.Condition) error {
	if err := g.expr(cond.Left); err != nil {
		return err
	}
	if err := g.expr(cond.Right); err != nil {
		return err
	}
	switch cond.Op {
	case thislang.Equal:
		g.emit(thisvm.Simple(thisvm.OpEqual))
	case thislang.NotEqual:
		g.emit(thisvm.Simple(thisvm.OpNotEqual))
	default:
		return fmt.Errorf("unsupported comparator: %v", cond.Op)
	}
	return nil
}

func (g *generator) args(args []thislang.Expr) error {
	for _, arg := range args {
		if err := g.expr(arg); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) expr(expr thislang.Expr) error {
	switch e := expr.(type) {

	case *thislang.Int:
		g.emit(thisvm.Push(e.Value))

	case *thislang.Ident:
		g.emit(thisvm.Load(e.Name))

	case *thislang.Binary:
		if err := g.expr(e.Left); err != nil {
			return err
		}
		if err := g.expr(e.Right); err != nil {
			return err
		}
		switch e.Op {
		case thislang.Add:
			g.emit(thisvm.Simple(thisvm.OpAdd))
		case thislang.Subtract:
			g.emit(thisvm.Simple(thisvm.OpSub))
		case thislang.Multiply:
			g.emit(thisvm.Simple(thisvm.OpMul))
		case thislang.Divide:
			g.emit(thisvm.Simple(thisvm.OpDiv))
		default:
			return fmt.Errorf("unsupported operator: %v", e.Op)
		}

	case *thislang.Call:
		if err := g.args(e.Args); err != nil {
			return err
		}
		g.emit(thisvm.Call(e.Name))

	default:
		return fmt.Errorf("unsupported expression type: %T", expr)
	}
	return nil
}
