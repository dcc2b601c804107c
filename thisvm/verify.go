package thisvm

import (
	"errors"
	"fmt"
)

var ErrInvalidCode = errors.New("invalid code")

// Verify checks that every address in code is in range and that every
// function declaration is followed by its Enter marker and ends right
// after an Exit marker.
func Verify(code []Instruction) error {
	for ip, inst := range code {
		switch inst.Op {

		case OpJump, OpJumpFalse:
			if inst.Addr < 0 || inst.Addr > len(code) {
				return fmt.Errorf("%w: %d %s: jump target out of range", ErrInvalidCode, ip, inst)
			}

		case OpDeclare:
			if ip+1 >= len(code) || code[ip+1].Op != OpEnter {
				return fmt.Errorf("%w: %d %s: missing %s", ErrInvalidCode, ip, inst, OpEnter)
			}
			if inst.Addr <= ip+1 || inst.Addr > len(code) {
				return fmt.Errorf("%w: %d %s: end out of range", ErrInvalidCode, ip, inst)
			}
			if code[inst.Addr-1].Op != OpExit {
				return fmt.Errorf("%w: %d %s: end does not follow %s", ErrInvalidCode, ip, inst, OpExit)
			}

		}
	}
	return nil
}
