/*
Package vm implements a byte-code stack virtual machine over a single
flat, untyped memory image.

The VM has five registers:

	pc  program counter, index of the next opcode byte
	sp  operand stack pointer, grows downward
	cs  call stack pointer, grows downward, independent of sp
	ih  interrupt handler vector
	ir  signed 8-bit fault latch

A fetch-decode-execute loop reads one opcode byte at pc, dispatches it
through a 256-entry table, and either advances pc past the instruction's
encoding or sets pc explicitly (jumps, call, ret). Any fault — out of
bounds memory access, register overflow, a reserved opcode, or a failed
stdio transfer — latches its code into ir, sets pc to ih, and re-enters
the decode loop. The only clean exit is the halt opcode.
*/
package vm

import (
	"bufio"
	"os"
)

// stackHeadroom is the number of image bytes reserved below sp at startup.
const stackHeadroom = 16

// defaultMemCeiling bounds alloc growth when FLATVM_MAX_MEMORY is unset.
const defaultMemCeiling = 256 * 1024 * 1024

// opFunc is one dispatch-table entry: execute the opcode at the current
// pc and report a fault, or nil on success. Each handler either sets pc
// itself or advances it past its own encoding via advancePC.
type opFunc func(vm *VM) *Fault

// VM holds the full machine state: registers, the flat memory image, and
// the host I/O surface the opcode handlers read and write through.
type VM struct {
	mem *Memory

	pc, sp, cs, ih Reg
	ir             int8

	memCeiling uint64

	stdin  *bufio.Reader
	stdout *bufio.Writer

	debug    bool
	debugger *debugger
}

// New constructs a VM from a raw byte image. sp starts at the end of the
// image, so the image's last stackHeadroom bytes take the first pushes;
// cs and ih start at zero, and ir starts clear.
func New(image []byte, opts ...Option) *VM {
	vm := &VM{
		mem:        newMemory(image),
		stdin:      bufio.NewReader(os.Stdin),
		stdout:     bufio.NewWriter(os.Stdout),
		memCeiling: defaultMemCeiling,
	}
	vm.sp = Reg(uint64(len(image)))
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithMemCeiling overrides the default alloc growth ceiling. A ceiling of
// 0 disables the check entirely.
func WithMemCeiling(n uint64) Option {
	return func(vm *VM) { vm.memCeiling = n }
}

// WithDebug enables the single-step interrupt debugger described in
// debug.go, pausing for stdin input on every fault recovery and
// (in stepping mode) before every instruction.
func WithDebug() Option {
	return func(vm *VM) {
		vm.debug = true
		vm.debugger = newDebugger(vm)
	}
}

// MemCeilingFromEnv reads FLATVM_MAX_MEMORY (bytes) for use with
// WithMemCeiling, falling back to defaultMemCeiling when unset or invalid.
func MemCeilingFromEnv() uint64 {
	v, ok := os.LookupEnv("FLATVM_MAX_MEMORY")
	if !ok {
		return defaultMemCeiling
	}
	n, err := parseUintEnv(v)
	if err != nil {
		return defaultMemCeiling
	}
	return n
}

// Run enters the interrupt loop: the inner decode loop runs until it
// halts cleanly or faults. A fault latches ir, resets pc to ih, and the
// outer loop re-enters decoding — forever, if the installed handler
// itself keeps faulting. That is the guest's responsibility, not this
// function's.
func (vm *VM) Run() error {
	defer vm.flush()
	for {
		if vm.debug {
			vm.debugger.onRecover(vm)
		}
		fault := vm.decodeLoop()
		if fault == nil {
			return nil
		}
		vm.ir = int8(fault.Kind)
		vm.pc = vm.ih
	}
}

// decodeLoop runs single opcodes until halt (returns nil) or a fault.
func (vm *VM) decodeLoop() *Fault {
	for {
		if vm.debug {
			vm.debugger.beforeStep(vm)
		}
		op, err := vm.fetchOpcode()
		if err != nil {
			return err
		}
		if op == opHalt {
			return nil
		}
		handler := dispatch[op]
		if fault := handler(vm); fault != nil {
			return fault
		}
	}
}

func (vm *VM) fetchOpcode() (byte, *Fault) {
	b, err := vm.mem.readBytes(uint64(vm.pc), 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (vm *VM) flush() {
	_ = vm.stdout.Flush()
}

// push writes data at sp-len(data) and moves sp there; the stack grows
// toward lower addresses.
func (vm *VM) push(data []byte) *Fault {
	newSP, fault := subReg(vm.sp, uint64(len(data)))
	if fault != nil {
		return fault
	}
	if fault := vm.mem.writeBytes(uint64(newSP), data); fault != nil {
		return fault
	}
	vm.sp = newSP
	return nil
}

// pop reads n bytes at sp and advances sp past them.
func (vm *VM) pop(n uint64) ([]byte, *Fault) {
	data, fault := vm.mem.readBytes(uint64(vm.sp), n)
	if fault != nil {
		return nil, fault
	}
	newSP, fault := addReg(vm.sp, n)
	if fault != nil {
		return nil, fault
	}
	vm.sp = newSP
	return data, nil
}

func (vm *VM) pop1() (byte, *Fault) {
	b, err := vm.pop(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (vm *VM) push1(v byte) *Fault {
	return vm.push([]byte{v})
}

func (vm *VM) pop8() (uint64, *Fault) {
	b, err := vm.pop(8)
	if err != nil {
		return 0, err
	}
	return leUint64(b), nil
}

func (vm *VM) push8(v uint64) *Fault {
	var b [8]byte
	putLeUint64(b[:], v)
	return vm.push(b[:])
}

// pushCS writes an 8-byte call-stack cell; cs grows downward independent
// of sp.
func (vm *VM) pushCS(addr uint64) *Fault {
	newCS, fault := subReg(vm.cs, 8)
	if fault != nil {
		return fault
	}
	var b [8]byte
	putLeUint64(b[:], addr)
	if fault := vm.mem.writeBytes(uint64(newCS), b[:]); fault != nil {
		return fault
	}
	vm.cs = newCS
	return nil
}

func (vm *VM) popCS() (uint64, *Fault) {
	b, fault := vm.mem.readBytes(uint64(vm.cs), 8)
	if fault != nil {
		return 0, fault
	}
	newCS, fault := addReg(vm.cs, 8)
	if fault != nil {
		return 0, fault
	}
	vm.cs = newCS
	return leUint64(b), nil
}

// immediate8 reads the 8-byte little-endian operand at pc+1, used by the
// immediate-operand control/memory opcodes (220-239).
func (vm *VM) immediate8() (uint64, *Fault) {
	b, err := vm.mem.readBytes(uint64(vm.pc)+1, 8)
	if err != nil {
		return 0, err
	}
	return leUint64(b), nil
}

// advancePC moves pc forward by n, the width of the instruction just
// executed. Every opcode handler that does not explicitly set pc itself
// (a jump, call, ret, or iret) must call this before returning.
func (vm *VM) advancePC(n uint64) *Fault {
	return incBy(&vm.pc, n)
}
