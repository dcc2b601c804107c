package thislang

import (
	"errors"
	"fmt"
	"strings"
)

type LexError struct {
	Char   rune
	Pos    Pos
	Detail string
}

func (l *LexError) Error() string {
	if l.Detail != "" {
		return fmt.Sprintf("lexical error at %s: %s", l.Pos, l.Detail)
	}
	return fmt.Sprintf("unexpected character %q at %s", l.Char, l.Pos)
}

type ParseError struct {
	Expected string
	Found    *Token
	Pos      Pos
}

func (p *ParseError) Error() string {
	if p.Found == nil || p.Found.Kind == TokenEOF {
		return fmt.Sprintf("expected %s at %s, but found EOF", p.Expected, p.Pos)
	}
	return fmt.Sprintf("expected %s at %s, found %s", p.Expected, p.Pos, p.Found)
}

type PosError struct {
	Err error
	Pos Pos
}

func (p PosError) Error() string {
	if p.Pos.Source == nil {
		return p.Err.Error()
	}

	var sb strings.Builder
	sb.WriteString(p.Err.Error())
	sb.WriteString("\n")

	lines := p.Pos.Source.Lines
	idx := p.Pos.Line - 1
	if idx >= 0 && idx < len(lines) {
		line := lines[idx]
		sb.WriteString(line)
		sb.WriteString("\n")

		// caret
		col := p.Pos.Column - 1
		for i, r := range []rune(line) {
			if i >= col {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

func WithPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	var posErr PosError
	if errors.As(err, &posErr) {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}
