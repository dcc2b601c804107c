package procs

// Proc is one step of a staged computation. Run returns the step replacing
// it, or nil when it is done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

type Func[C any] func(ctx C) (Proc[C], error)

var _ Proc[any] = Func[any](nil)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Drain runs p and its successors until none is left or one fails.
func Drain[C any](ctx C, p Proc[C]) error {
	for p != nil {
		next, err := p.Run(ctx)
		if err != nil {
			return err
		}
		p = next
	}
	return nil
}
