package thislang

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented rendering of the program, one node per line.
func Dump(w io.Writer, program *Program) error {
	d := &dumper{w: w}
	d.line(0, "Program")
	for _, stmt := range program.Stmts {
		d.stmt(1, stmt)
	}
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) stmt(depth int, stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		d.line(depth, "VariableDeclaration %s", s.Name)
		d.expr(depth+1, s.Value)
	case *Assign:
		d.line(depth, "Assignment %s", s.Name)
		d.expr(depth+1, s.Value)
	case *FuncDecl:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Name + ": " + p.Type.String()
		}
		ret := ""
		if s.ReturnType != nil {
			ret = " -> " + s.ReturnType.String()
		}
		d.line(depth, "FunctionDeclaration %s(%s)%s", s.Name, strings.Join(params, ", "), ret)
		d.block(depth+1, s.Body)
	case *CallStmt:
		d.line(depth, "FunctionCall")
		d.expr(depth+1, s.Call)
	case *Print:
		d.line(depth, "Print")
		d.expr(depth+1, s.Value)
	case *If:
		d.line(depth, "IfStatement %s", s.Cond)
		d.block(depth+1, s.Then)
		if s.Else != nil {
			d.line(depth, "Else")
			d.block(depth+1, s.Else)
		}
	default:
		d.line(depth, "%T", stmt)
	}
}

func (d *dumper) block(depth int, block *Block) {
	d.line(depth, "Block")
	for _, stmt := range block.Stmts {
		d.stmt(depth+1, stmt)
	}
	if block.Return != nil {
		d.line(depth+1, "Return")
		d.expr(depth+2, block.Return)
	}
}

func (d *dumper) expr(depth int, expr Expr) {
	switch e := expr.(type) {
	case *Binary:
		d.line(depth, "Arithmetic %s", e.Op)
		d.expr(depth+1, e.Left)
		d.expr(depth+1, e.Right)
	case *Call:
		d.line(depth, "Call %s", e.Name)
		for _, arg := range e.Args {
			d.expr(depth+1, arg)
		}
	case *Int:
		d.line(depth, "Integer %d", e.Value)
	case *Ident:
		d.line(depth, "Identifier %s", e.Name)
	default:
		d.line(depth, "%T", expr)
	}
}
