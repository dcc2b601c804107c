package thislang

// Parser is a recursive descent parser with a two token window: curr is
// peek, next is lookahead.
type Parser struct {
	stream TokenStream
	curr   *Token
	next   *Token
}

func Parse(stream TokenStream) (*Program, error) {
	p := &Parser{
		stream: stream,
	}
	if err := p.init(); err != nil {
		return nil, err
	}

	program := new(Program)
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Stmts = append(program.Stmts, stmt)
	}
	return program, nil
}

func ParseSource(src *Source) (*Program, error) {
	return Parse(NewTokenizer(src))
}

func (p *Parser) init() error {
	tok, err := p.stream.Current()
	if err != nil {
		return err
	}
	p.next = tok
	p.stream.Consume()
	return p.advance()
}

func (p *Parser) advance() error {
	p.curr = p.next
	tok, err := p.stream.Current()
	if err != nil {
		return err
	}
	p.next = tok
	p.stream.Consume()
	return nil
}

func (p *Parser) isAtEnd() bool {
	return p.curr.Kind == TokenEOF
}

func (p *Parser) errorf(expected string) error {
	return WithPos(&ParseError{
		Expected: expected,
		Found:    p.curr,
		Pos:      p.curr.Pos,
	}, p.curr.Pos)
}

func (p *Parser) expect(kind TokenKind) (*Token, error) {
	if p.curr.Kind != kind {
		return nil, p.errorf(kind.String())
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return nil, err
	}
	return tok, nil
}

func (p *Parser) expectIdentifier() (*Token, error) {
	return p.expect(TokenIdentifier)
}

// expectIntType matches the "int" type annotation, which lexes as an identifier.
func (p *Parser) expectIntType() error {
	if p.curr.Kind != TokenIdentifier || p.curr.Text != "int" {
		return p.errorf("type int")
	}
	return p.advance()
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch p.curr.Kind {

	case TokenThis:
		return terminated(p, p.parseVarDecl)

	case TokenIdentifier:
		switch p.next.Kind {
		case TokenAssign:
			return terminated(p, p.parseAssign)
		case TokenLeftParen:
			return terminated(p, p.parseCallStmt)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return nil, p.errorf("'=' or '(' after identifier")

	case TokenFunc:
		return terminated(p, p.parseFuncDecl)

	case TokenPrint:
		return terminated(p, p.parsePrint)

	case TokenIf:
		return terminated(p, p.parseIf)

	}

	return nil, p.errorf("statement")
}

func terminated[T Stmt](p *Parser, parse func() (T, error)) (Stmt, error) {
	stmt, err := parse()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemiColon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseVarDecl() (*VarDecl, error) {
	this, err := p.expect(TokenThis)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &VarDecl{
		Name:     name.Text,
		Value:    value,
		Position: this.Pos,
	}, nil
}

func (p *Parser) parseAssign() (*Assign, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Assign{
		Name:     name.Text,
		Value:    value,
		Position: name.Pos,
	}, nil
}

func (p *Parser) parseCallStmt() (*CallStmt, error) {
	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	return &CallStmt{
		Call:     call,
		Position: call.Position,
	}, nil
}

func (p *Parser) parseFuncDecl() (*FuncDecl, error) {
	fn, err := p.expect(TokenFunc)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	var returnType *TypeAnnotation
	if p.curr.Kind == TokenArrow {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectIntType(); err != nil {
			return nil, err
		}
		t := TypeInt
		returnType = &t
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		Name:       name.Text,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Position:   fn.Pos,
	}, nil
}

func (p *Parser) parseParams() ([]Param, error) {
	var params []Param
	if p.curr.Kind != TokenIdentifier {
		return params, nil
	}
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		if err := p.expectIntType(); err != nil {
			return nil, err
		}
		params = append(params, Param{
			Name: name.Text,
			Type: TypeInt,
		})
		if p.curr.Kind != TokenComma {
			return params, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parsePrint() (*Print, error) {
	tok, err := p.expect(TokenPrint)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return &Print{
		Value:    value,
		Position: tok.Pos,
	}, nil
}

func (p *Parser) parseIf() (*If, error) {
	ifTok, err := p.expect(TokenIf)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *Block
	if p.curr.Kind == TokenElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &If{
		Cond:     cond,
		Then:     then,
		Else:     elseBlock,
		Position: ifTok.Pos,
	}, nil
}

// parseBlock stops at the first return: the return expression is always
// the last thing in a block.
func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.expect(TokenLeftBracket)
	if err != nil {
		return nil, err
	}
	block := &Block{
		Position: open.Pos,
	}

	for p.curr.Kind != TokenRightBracket {
		if p.curr.Kind == TokenReturn {
			if err := p.advance(); err != nil {
				return nil, err
			}
			block.Return, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenSemiColon); err != nil {
				return nil, err
			}
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	if _, err := p.expect(TokenRightBracket); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseCondition() (*Condition, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var op Comparator
	switch p.curr.Kind {
	case TokenCompareEqual:
		op = Equal
	case TokenCompareNotEqual:
		op = NotEqual
	default:
		return nil, p.errorf("comparison operator (== or =!)")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Condition{
		Left:     left,
		Op:       op,
		Right:    right,
		Position: left.Pos(),
	}, nil
}

func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return p.parseBinary(left, 0)
}

// parseBinary is precedence climbing: operators binding at least as tight
// as minPrecedence fold into left, right operands climb one level higher.
func (p *Parser) parseBinary(left Expr, minPrecedence int) (Expr, error) {
	for {
		op, ok := p.peekOperator()
		if !ok {
			return left, nil
		}
		precedence := op.Precedence()
		if precedence < minPrecedence {
			return left, nil
		}
		pos := p.curr.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		right, err := p.parseBinary(term, precedence+1)
		if err != nil {
			return nil, err
		}
		left = &Binary{
			Left:     left,
			Op:       op,
			Right:    right,
			Position: pos,
		}
	}
}

func (p *Parser) peekOperator() (Operator, bool) {
	switch p.curr.Kind {
	case TokenPlus:
		return Add, true
	case TokenMinus:
		return Subtract, true
	case TokenMultiply:
		return Multiply, true
	case TokenDivide:
		return Divide, true
	}
	return 0, false
}

func (p *Parser) parseTerm() (Expr, error) {
	tok := p.curr
	switch tok.Kind {

	case TokenInteger:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Int{
			Value:    tok.Value,
			Position: tok.Pos,
		}, nil

	case TokenIdentifier:
		if p.next.Kind == TokenLeftParen {
			return p.parseCall()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Ident{
			Name:     tok.Text,
			Position: tok.Pos,
		}, nil

	case TokenLeftParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil

	}

	return nil, p.errorf("term")
}

func (p *Parser) parseCall() (*Call, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	var args []Expr
	if p.curr.Kind != TokenRightParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curr.Kind != TokenComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return &Call{
		Name:     name.Text,
		Args:     args,
		Position: name.Pos,
	}, nil
}
