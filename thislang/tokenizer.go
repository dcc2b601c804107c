package thislang

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type Tokenizer struct {
	source  *bufio.Reader
	src     *Source
	current *Token

	currPos Pos
	prevPos Pos
}

var _ TokenStream = new(Tokenizer)

func NewTokenizer(src *Source) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(strings.NewReader(src.Content)),
		src:    src,
		currPos: Pos{
			Source: src,
			Line:   1,
			Column: 1,
		},
	}
}

// Tokenize reads the whole source. Lexical errors are fatal and returned as is.
func Tokenize(src *Source) ([]*Token, error) {
	t := NewTokenizer(src)
	var ret []*Token
	for {
		tok, err := t.Current()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return ret, nil
		}
		ret = append(ret, tok)
		t.Consume()
	}
}

func (t *Tokenizer) readRune() (rune, error) {
	r, _, err := t.source.ReadRune()
	if err != nil {
		return 0, err
	}

	t.prevPos = t.currPos
	t.currPos.Offset++
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return r, nil
}

func (t *Tokenizer) unreadRune() {
	t.source.UnreadRune()
	t.currPos = t.prevPos
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.current == nil {
		var err error
		t.current, err = t.parseNext()
		if err != nil {
			return nil, err
		}
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	if t.current != nil && t.current.Kind == TokenEOF {
		return
	}
	t.current = nil
}

func (t *Tokenizer) parseNext() (*Token, error) {
	t.skipWhitespace()
	startPos := t.currPos

	r, err := t.readRune()
	if err == io.EOF {
		return &Token{Kind: TokenEOF, Pos: startPos}, nil
	}
	if err != nil {
		return nil, err
	}

	if kind, ok := punctuations[r]; ok {
		return &Token{
			Kind: kind,
			Text: string(r),
			Pos:  startPos,
		}, nil
	}

	switch {
	case r == '-':
		// "->" wins over a bare minus
		if t.follows('>') {
			return &Token{Kind: TokenArrow, Text: "->", Pos: startPos}, nil
		}
		return &Token{Kind: TokenMinus, Text: "-", Pos: startPos}, nil

	case r == '=':
		if t.follows('=') {
			return &Token{Kind: TokenCompareEqual, Text: "==", Pos: startPos}, nil
		}
		// not-equal is spelled "=!"
		if t.follows('!') {
			return &Token{Kind: TokenCompareNotEqual, Text: "=!", Pos: startPos}, nil
		}
		return &Token{Kind: TokenAssign, Text: "=", Pos: startPos}, nil

	case isDigit(r):
		t.unreadRune()
		return t.parseInteger()

	case unicode.IsLetter(r):
		t.unreadRune()
		return t.parseWord()
	}

	return nil, WithPos(&LexError{
		Char: r,
		Pos:  startPos,
	}, startPos)
}

func (t *Tokenizer) follows(want rune) bool {
	r, err := t.readRune()
	if err != nil {
		return false
	}
	if r != want {
		t.unreadRune()
		return false
	}
	return true
}

func (t *Tokenizer) skipWhitespace() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
			t.unreadRune()
			return
		}
	}
}

func (t *Tokenizer) parseInteger() (*Token, error) {
	startPos := t.currPos
	var sb strings.Builder
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isDigit(r) {
			t.unreadRune()
			break
		}
		sb.WriteRune(r)
	}
	text := sb.String()
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, WithPos(&LexError{
			Char:   rune(text[0]),
			Pos:    startPos,
			Detail: "integer literal " + text + " out of range",
		}, startPos)
	}
	return &Token{
		Kind:  TokenInteger,
		Text:  text,
		Value: value,
		Pos:   startPos,
	}, nil
}

func (t *Tokenizer) parseWord() (*Token, error) {
	startPos := t.currPos
	var sb strings.Builder
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !unicode.IsLetter(r) {
			t.unreadRune()
			break
		}
		sb.WriteRune(r)
	}
	text := sb.String()
	kind, ok := keywords[text]
	if !ok {
		kind = TokenIdentifier
	}
	return &Token{
		Kind: kind,
		Text: text,
		Pos:  startPos,
	}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
