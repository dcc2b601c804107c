package thislang

import (
	"fmt"
	"strconv"
	"strings"
)

type Node interface {
	Pos() Pos
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	fmt.Stringer
	exprNode()
}

type Program struct {
	Stmts []Stmt
}

type Block struct {
	Stmts []Stmt
	// Return is nil for blocks that fall through.
	Return   Expr
	Position Pos
}

func (b *Block) Pos() Pos { return b.Position }

type TypeAnnotation uint8

const (
	TypeInt TypeAnnotation = iota + 1
)

func (t TypeAnnotation) String() string {
	if t == TypeInt {
		return "int"
	}
	return "TypeAnnotation(" + strconv.Itoa(int(t)) + ")"
}

type Param struct {
	Name string
	Type TypeAnnotation
}

type VarDecl struct {
	Name     string
	Value    Expr
	Position Pos
}

type Assign struct {
	Name     string
	Value    Expr
	Position Pos
}

type FuncDecl struct {
	Name       string
	Params     []Param
	ReturnType *TypeAnnotation
	Body       *Block
	Position   Pos
}

type CallStmt struct {
	Call     *Call
	Position Pos
}

type Print struct {
	Value    Expr
	Position Pos
}

type If struct {
	Cond *Condition
	Then *Block
	// Else is nil when absent.
	Else     *Block
	Position Pos
}

func (s *VarDecl) Pos() Pos  { return s.Position }
func (s *Assign) Pos() Pos   { return s.Position }
func (s *FuncDecl) Pos() Pos { return s.Position }
func (s *CallStmt) Pos() Pos { return s.Position }
func (s *Print) Pos() Pos    { return s.Position }
func (s *If) Pos() Pos       { return s.Position }

func (*VarDecl) stmtNode()  {}
func (*Assign) stmtNode()   {}
func (*FuncDecl) stmtNode() {}
func (*CallStmt) stmtNode() {}
func (*Print) stmtNode()    {}
func (*If) stmtNode()       {}

type Comparator uint8

const (
	Equal Comparator = iota + 1
	NotEqual
)

func (c Comparator) String() string {
	switch c {
	case Equal:
		return "=="
	case NotEqual:
		return "=!"
	}
	return "Comparator(" + strconv.Itoa(int(c)) + ")"
}

type Condition struct {
	Left     Expr
	Op       Comparator
	Right    Expr
	Position Pos
}

func (c *Condition) Pos() Pos { return c.Position }

func (c *Condition) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}

type Operator uint8

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	}
	return "Operator(" + strconv.Itoa(int(o)) + ")"
}

func (o Operator) Precedence() int {
	switch o {
	case Multiply, Divide:
		return 2
	case Add, Subtract:
		return 1
	}
	return 0
}

type Int struct {
	Value    int64
	Position Pos
}

type Ident struct {
	Name     string
	Position Pos
}

type Call struct {
	Name     string
	Args     []Expr
	Position Pos
}

type Binary struct {
	Left     Expr
	Op       Operator
	Right    Expr
	Position Pos
}

func (e *Int) Pos() Pos    { return e.Position }
func (e *Ident) Pos() Pos  { return e.Position }
func (e *Call) Pos() Pos   { return e.Position }
func (e *Binary) Pos() Pos { return e.Position }

func (*Int) exprNode()    {}
func (*Ident) exprNode()  {}
func (*Call) exprNode()   {}
func (*Binary) exprNode() {}

func (e *Int) String() string {
	return strconv.FormatInt(e.Value, 10)
}

func (e *Ident) String() string {
	return e.Name
}

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
