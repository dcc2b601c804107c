package thisvm

type EventKind uint8

const (
	EventPrint EventKind = iota + 1
	EventCall
	EventTailCall
	EventReturn
)

func (e EventKind) String() string {
	switch e {
	case EventPrint:
		return "print"
	case EventCall:
		return "call"
	case EventTailCall:
		return "tail call"
	case EventReturn:
		return "return"
	}
	return "unknown"
}

// Event reports an observable step. Depth is the frame stack depth after
// the step.
type Event struct {
	Kind  EventKind
	IP    int
	Name  string
	Value int64
	Depth int
}
