// Package thisopt folds constant arithmetic in a parsed program.
package thisopt

import (
	"github.com/reusee/thislang/thislang"
)

type Stats struct {
	// Folded counts arithmetic nodes replaced by a literal or an operand.
	Folded int
}

// Optimize returns a new program; the input tree is left untouched and
// shares no nodes with the result.
func Optimize(program *thislang.Program) *thislang.Program {
	ret, _ := OptimizeWithStats(program)
	return ret
}

func OptimizeWithStats(program *thislang.Program) (*thislang.Program, Stats) {
	o := new(optimizer)
	ret := &thislang.Program{
		Stmts: o.stmts(program.Stmts),
	}
	return ret, o.stats
}

// Fold folds a single expression.
func Fold(expr thislang.Expr) thislang.Expr {
	return new(optimizer).fold(expr)
}

type optimizer struct {
	stats Stats
}

func (o *optimizer) stmts(stmts []thislang.Stmt) []thislang.Stmt {
	if stmts == nil {
		return nil
	}
	ret := make([]thislang.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		ret = append(ret, o.stmt(stmt))
	}
	return ret
}

func (o *optimizer) stmt(stmt thislang.Stmt) thislang.Stmt {
	switch s := stmt.(type) {

	case *thislang.VarDecl:
		return &thislang.VarDecl{
			Name:     s.Name,
			Value:    o.fold(s.Value),
			Position: s.Position,
		}

	case *thislang.Assign:
		return &thislang.Assign{
			Name:     s.Name,
			Value:    o.fold(s.Value),
			Position: s.Position,
		}

	case *thislang.FuncDecl:
		var returnType *thislang.TypeAnnotation
		if s.ReturnType != nil {
			t := *s.ReturnType
			returnType = &t
		}
		return &thislang.FuncDecl{
			Name:       s.Name,
			Params:     append([]thislang.Param(nil), s.Params...),
			ReturnType: returnType,
			Body:       o.block(s.Body),
			Position:   s.Position,
		}

	case *thislang.CallStmt:
		return &thislang.CallStmt{
			Call:     o.fold(s.Call).(*thislang.Call),
			Position: s.Position,
		}

	case *thislang.Print:
		return &thislang.Print{
			Value:    o.fold(s.Value),
			Position: s.Position,
		}

	case *thislang.If:
		ret := &thislang.If{
			Cond: &thislang.Condition{
				Left:     o.fold(s.Cond.Left),
				Op:       s.Cond.Op,
				Right:    o.fold(s.Cond.Right),
				Position: s.Cond.Position,
			},
			Then:     o.block(s.Then),
			Position: s.Position,
		}
		if s.Else != nil {
			ret.Else = o.block(s.Else)
		}
		return ret

	}

	panic("unknown statement type")
}

func (o *optimizer) block(block *thislang.Block) *thislang.Block {
	ret := &thislang.Block{
		Stmts:    o.stmts(block.Stmts),
		Position: block.Position,
	}
	if block.Return != nil {
		ret.Return = o.fold(block.Return)
	}
	return ret
}

// fold rewrites arithmetic bottom up. Other expressions are cloned as is;
// call arguments are not folded.
func (o *optimizer) fold(expr thislang.Expr) thislang.Expr {
	binary, ok := expr.(*thislang.Binary)
	if !ok {
		return clone(expr)
	}

	left := o.fold(binary.Left)
	right := o.fold(binary.Right)
	l, leftIsInt := left.(*thislang.Int)
	r, rightIsInt := right.(*thislang.Int)

	if leftIsInt && rightIsInt {
		if value, ok := evaluate(l.Value, binary.Op, r.Value); ok {
			o.stats.Folded++
			return &thislang.Int{
				Value:    value,
				Position: binary.Position,
			}
		}
	}

	switch binary.Op {
	case thislang.Multiply:
		switch {
		case leftIsInt && l.Value == 1:
			o.stats.Folded++
			return right
		case rightIsInt && r.Value == 1:
			o.stats.Folded++
			return left
		case leftIsInt && l.Value == 0:
			o.stats.Folded++
			return &thislang.Int{Value: 0, Position: binary.Position}
		case rightIsInt && r.Value == 0:
			o.stats.Folded++
			return &thislang.Int{Value: 0, Position: binary.Position}
		}
	case thislang.Add:
		switch {
		case leftIsInt && l.Value == 0:
			o.stats.Folded++
			return right
		case rightIsInt && r.Value == 0:
			o.stats.Folded++
			return left
		}
	}

	return &thislang.Binary{
		Left:     left,
		Op:       binary.Op,
		Right:    right,
		Position: binary.Position,
	}
}

// evaluate reports false for division by zero, leaving it to run time.
func evaluate(l int64, op thislang.Operator, r int64) (int64, bool) {
	switch op {
	case thislang.Add:
		return l + r, true
	case thislang.Subtract:
		return l - r, true
	case thislang.Multiply:
		return l * r, true
	case thislang.Divide:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	}
	return 0, false
}

func clone(expr thislang.Expr) thislang.Expr {
	switch e := expr.(type) {
	case *thislang.Int:
		c := *e
		return &c
	case *thislang.Ident:
		c := *e
		return &c
	case *thislang.Call:
		args := make([]thislang.Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = clone(arg)
		}
		if e.Args == nil {
			args = nil
		}
		return &thislang.Call{
			Name:     e.Name,
			Args:     args,
			Position: e.Position,
		}
	case *thislang.Binary:
		return &thislang.Binary{
			Left:     clone(e.Left),
			Op:       e.Op,
			Right:    clone(e.Right),
			Position: e.Position,
		}
	}
	panic("unknown expression type")
}
