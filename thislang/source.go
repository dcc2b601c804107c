package thislang

import (
	"fmt"
	"strings"
)

type Source struct {
	Name    string
	Content string
	Lines   []string
}

func NewSource(name string, content string) *Source {
	return &Source{
		Name:    name,
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}
}

// Pos is a rune offset plus 1-based line and column.
type Pos struct {
	Source *Source
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.Source != nil && p.Source.Name != "" {
		return fmt.Sprintf("%s:%d:%d", p.Source.Name, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
