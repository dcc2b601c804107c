package thisvm

import (
	"fmt"
	"io"
)

// Disassemble writes one "index instruction" line per instruction.
func Disassemble(w io.Writer, code []Instruction) error {
	width := len(fmt.Sprint(max(len(code)-1, 0)))
	for i, inst := range code {
		if _, err := fmt.Fprintf(w, "%*d %s\n", width, i, inst); err != nil {
			return err
		}
	}
	return nil
}
