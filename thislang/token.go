package thislang

import "fmt"

type Token struct {
	Kind  TokenKind
	Text  string
	Value int64
	Pos   Pos
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return fmt.Sprintf("Identifier(%s)", t.Text)
	case TokenInteger:
		return fmt.Sprintf("Integer(%d)", t.Value)
	}
	return t.Kind.String()
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenEOF
	TokenIdentifier
	TokenInteger

	// keywords
	TokenThis
	TokenFunc
	TokenPrint
	TokenIf
	TokenElse
	TokenReturn

	// operators
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenAssign
	TokenCompareEqual
	TokenCompareNotEqual
	TokenArrow

	// delimiters
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenColon
	TokenSemiColon
)

var tokenKindNames = [...]string{
	TokenInvalid:         "Invalid",
	TokenEOF:             "EOF",
	TokenIdentifier:      "Identifier",
	TokenInteger:         "Integer",
	TokenThis:            "This",
	TokenFunc:            "Func",
	TokenPrint:           "Print",
	TokenIf:              "If",
	TokenElse:            "Else",
	TokenReturn:          "Return",
	TokenPlus:            "Plus",
	TokenMinus:           "Minus",
	TokenMultiply:        "Multiply",
	TokenDivide:          "Divide",
	TokenAssign:          "Equal",
	TokenCompareEqual:    "CompareEqual",
	TokenCompareNotEqual: "CompareNotEqual",
	TokenArrow:           "Arrow",
	TokenLeftParen:       "LeftParen",
	TokenRightParen:      "RightParen",
	TokenLeftBracket:     "LeftBracket",
	TokenRightBracket:    "RightBracket",
	TokenComma:           "Comma",
	TokenColon:           "Colon",
	TokenSemiColon:       "SemiColon",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

var keywords = map[string]TokenKind{
	"if":     TokenIf,
	"else":   TokenElse,
	"fn":     TokenFunc,
	"print":  TokenPrint,
	"return": TokenReturn,
	"this":   TokenThis,
}

var punctuations = map[rune]TokenKind{
	'+': TokenPlus,
	'*': TokenMultiply,
	'/': TokenDivide,
	'(': TokenLeftParen,
	')': TokenRightParen,
	'{': TokenLeftBracket,
	'}': TokenRightBracket,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemiColon,
}
