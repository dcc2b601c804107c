package thisvm

import (
	"fmt"
	"strconv"
)

// Run executes until the instruction pointer leaves the code. Events are
// yielded as they happen; a runtime error is yielded once and ends the run.
func (v *VM) Run(yield func(*Event, error) bool) {
	for {
		if v.IP < 0 || v.IP >= len(v.Code) {
			return
		}

		inst := v.Code[v.IP]

		switch inst.Op {

		case OpPush:
			v.push(inst.Int)

		case OpPrint:
			val, ok := v.pop()
			if !ok {
				yield(nil, v.fault(ErrStackUnderflow, ""))
				return
			}
			if _, err := v.stdout.Write(strconv.AppendInt(nil, val, 10)); err != nil {
				yield(nil, v.fault(ErrOutput, err.Error()))
				return
			}
			if _, err := v.stdout.Write([]byte{'\n'}); err != nil {
				yield(nil, v.fault(ErrOutput, err.Error()))
				return
			}
			if !yield(&Event{
				Kind:  EventPrint,
				IP:    v.IP,
				Value: val,
				Depth: len(v.CallStack),
			}, nil) {
				v.IP++
				return
			}

		case OpAdd, OpSub, OpMul, OpDiv, OpEqual, OpNotEqual:
			right, ok := v.pop()
			if !ok {
				yield(nil, v.fault(ErrStackUnderflow, ""))
				return
			}
			left, ok := v.pop()
			if !ok {
				yield(nil, v.fault(ErrStackUnderflow, ""))
				return
			}
			var res int64
			switch inst.Op {
			case OpAdd:
				res = left + right
			case OpSub:
				res = left - right
			case OpMul:
				res = left * right
			case OpDiv:
				if right == 0 {
					yield(nil, v.fault(ErrDivisionByZero, fmt.Sprintf("%d / 0", left)))
					return
				}
				res = left / right
			case OpEqual:
				if left == right {
					res = 1
				}
			case OpNotEqual:
				if left != right {
					res = 1
				}
			}
			v.push(res)

		case OpStore:
			val, ok := v.pop()
			if !ok {
				yield(nil, v.fault(ErrStackUnderflow, ""))
				return
			}
			v.store(inst.Name, val)

		case OpLoad:
			val, ok := v.load(inst.Name)
			if !ok {
				yield(nil, v.fault(ErrUndefinedVariable, inst.Name))
				return
			}
			v.push(val)

		case OpDeclare:
			// the entry point is the Enter marker right after
			v.Functions[inst.Name] = v.IP + 1
			if inst.Addr > v.IP {
				v.IP = inst.Addr
				continue
			}
			// no resolved end, scan forward to the Exit marker
			for v.IP < len(v.Code) && v.Code[v.IP].Op != OpExit {
				v.IP++
			}

		case OpCall:
			entry, ok := v.Functions[inst.Name]
			if !ok {
				yield(nil, v.fault(ErrUndefinedFunction, inst.Name))
				return
			}
			v.CallStack = append(v.CallStack, Frame{
				Locals:   make(map[string]int64),
				ReturnIP: v.IP + 1,
			})
			if depth := len(v.CallStack); depth > v.MaxDepth {
				v.MaxDepth = depth
			}
			if !yield(&Event{
				Kind:  EventCall,
				IP:    v.IP,
				Name:  inst.Name,
				Depth: len(v.CallStack),
			}, nil) {
				v.IP = entry
				return
			}
			v.IP = entry
			continue

		case OpTailCall:
			frame := v.frame()
			if frame == nil {
				yield(nil, v.fault(ErrNoFrame, "tail call to "+inst.Name))
				return
			}
			entry, ok := v.Functions[inst.Name]
			if !ok {
				yield(nil, v.fault(ErrUndefinedFunction, inst.Name))
				return
			}
			clear(frame.Locals)
			if !yield(&Event{
				Kind:  EventTailCall,
				IP:    v.IP,
				Name:  inst.Name,
				Depth: len(v.CallStack),
			}, nil) {
				v.IP = entry
				return
			}
			v.IP = entry
			continue

		case OpReturn:
			n := len(v.CallStack)
			if n == 0 {
				yield(nil, v.fault(ErrNoFrame, "return"))
				return
			}
			frame := v.CallStack[n-1]
			v.CallStack = v.CallStack[:n-1]
			v.IP = frame.ReturnIP
			if !yield(&Event{
				Kind:  EventReturn,
				IP:    frame.ReturnIP,
				Depth: len(v.CallStack),
			}, nil) {
				return
			}
			continue

		case OpEnter:
			if v.frame() == nil {
				yield(nil, v.fault(ErrNoFrame, "enter"))
				return
			}

		case OpExit:

		case OpJump:
			v.IP = inst.Addr
			continue

		case OpJumpFalse:
			cond, ok := v.pop()
			if !ok {
				yield(nil, v.fault(ErrStackUnderflow, ""))
				return
			}
			if cond == 0 {
				v.IP = inst.Addr
				continue
			}

		default:
			yield(nil, v.fault(fmt.Errorf("bad opcode: %s", inst.Op), ""))
			return
		}

		v.IP++
	}
}

func (v *VM) fault(err error, detail string) error {
	ret := &RuntimeError{
		Err:    err,
		IP:     v.IP,
		Detail: detail,
	}
	if v.IP >= 0 && v.IP < len(v.Code) {
		ret.Instruction = v.Code[v.IP]
	}
	return ret
}
