package vm

import "fmt"

// Kind identifies the class of a fault. Values match the codes latched
// into the ir register so a guest's interrupt handler can branch on them.
type Kind int8

const (
	// KindOutOfMem is raised by any memory access outside the buffer.
	KindOutOfMem Kind = 1
	// KindRegOverflow is raised when pc/sp/cs/ih arithmetic overflows uint64.
	KindRegOverflow Kind = 2
	// KindInvalidInst is raised by reserved opcodes and by divide/remainder by zero.
	KindInvalidInst Kind = 3
	// KindIoError is raised by a failed stdin/stdout transfer.
	KindIoError Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindOutOfMem:
		return "out of memory"
	case KindRegOverflow:
		return "register overflow"
	case KindInvalidInst:
		return "invalid instruction"
	case KindIoError:
		return "io error"
	default:
		return fmt.Sprintf("fault(%d)", int8(k))
	}
}

// Fault is the error type produced by an opcode handler or the decoder.
// It carries the Kind latched into ir when the interrupt loop recovers it.
type Fault struct {
	Kind Kind
	Msg  string
}

func (f *Fault) Error() string {
	if f.Msg == "" {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func faultf(k Kind, format string, args ...any) *Fault {
	return &Fault{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

var (
	errOutOfMem    = &Fault{Kind: KindOutOfMem}
	errRegOverflow = &Fault{Kind: KindRegOverflow}
	errInvalidInst = &Fault{Kind: KindInvalidInst}
	errIoError     = &Fault{Kind: KindIoError}
)
