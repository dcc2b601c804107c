package thisgen

import (
	"errors"
	"fmt"
)

// ErrUnresolvedLabel means a jump refers to a label that was never placed.
// It is an internal invariant violation, not a user error.
var ErrUnresolvedLabel = errors.New("unresolved label")

type label int

type pendingJump struct {
	label label
	index int
}

type labels struct {
	counter   int
	positions map[label]int
	pending   []pendingJump
}

func (l *labels) newLabel() label {
	ret := label(l.counter)
	l.counter++
	return ret
}

func (l *labels) place(lbl label, position int) {
	if l.positions == nil {
		l.positions = make(map[label]int)
	}
	l.positions[lbl] = position
}

func (l *labels) refer(lbl label, index int) {
	l.pending = append(l.pending, pendingJump{
		label: lbl,
		index: index,
	})
}

// resolve calls patch for every pending site with the label position.
func (l *labels) resolve(patch func(index int, position int)) error {
	for _, jump := range l.pending {
		position, ok := l.positions[jump.label]
		if !ok {
			return fmt.Errorf("%w: label %d at instruction %d", ErrUnresolvedLabel, jump.label, jump.index)
		}
		patch(jump.index, position)
	}
	l.pending = l.pending[:0]
	return nil
}
