package vm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// registerDebugOps wires the debug family: 250 dumps full VM state, and
// 251-255 pop a value of the named width and print it in hex.
func registerDebugOps(d []opFunc) {
	d[opDebugDump] = opDebugDumpHandler

	widthBits := [5]int{8, 16, 32, 64, 128}
	ops := [5]int{opDebug8, opDebug16, opDebug32, opDebug64, opDebug128}
	for i, w := range widthsOf {
		d[ops[i]] = makeDebugPrintOp(w, widthBits[i])
	}
}

func opDebugDumpHandler(vm *VM) *Fault {
	vm.printState()
	dumpHex(vm.mem.Bytes())
	return vm.advancePC(1)
}

func makeDebugPrintOp(w uint64, bits int) opFunc {
	return func(vm *VM) *Fault {
		if w == 16 {
			v, err := vm.popU128()
			if err != nil {
				return err
			}
			fmt.Printf("Debug%d: 0x%s\n", bits, v.hexString())
			return vm.advancePC(1)
		}
		v, err := vm.popRaw(w)
		if err != nil {
			return err
		}
		fmt.Printf("Debug%d: 0x%x\n", bits, v)
		return vm.advancePC(1)
	}
}

func (vm *VM) printState() {
	fmt.Printf("VM { pc: 0x%x, sp: 0x%x, cs: 0x%x, ih: 0x%x, ir: %d }\n",
		vm.pc, vm.sp, vm.cs, vm.ih, vm.ir)
}

// dumpHex renders mem as a compact 16-bytes-per-line hexdump, the Go
// stand-in for the rhexdump crate the source leans on for its own
// Debug impl.
func dumpHex(b []byte) {
	for i := 0; i < len(b); i += 16 {
		end := i + 16
		if end > len(b) {
			end = len(b)
		}
		fmt.Printf("%08x  ", i)
		for j := i; j < end; j++ {
			fmt.Printf("%02x ", b[j])
		}
		fmt.Println()
	}
}

// debugger implements the --debug single-step mode: it pauses for stdin
// input before every instruction while stepping, at breakpoints, and on
// every fault recovery, offering a next/run/break command set.
type debugger struct {
	reader       *bufio.Reader
	waitForInput bool
	breakpoints  map[uint64]struct{}
	lastBreak    int64
}

func newDebugger(vm *VM) *debugger {
	fmt.Println("Commands:\n\tn or next: execute next instruction\n\tr or run: run program\n\tb or break <addr>: break at address (or remove break)")
	return &debugger{
		reader:       bufio.NewReader(os.Stdin),
		waitForInput: true,
		breakpoints:  make(map[uint64]struct{}),
		lastBreak:    -1,
	}
}

// onRecover is called by Run before every decodeLoop entry, including the
// very first one, so the guest can be inspected before anything executes
// and again after every fault is latched. It returns the debugger to
// stepping mode, so the next instruction waits for a command.
func (dbg *debugger) onRecover(vm *VM) {
	vm.printState()
	dbg.waitForInput = true
}

// beforeStep pauses for a command before the next opcode executes.
func (dbg *debugger) beforeStep(vm *VM) {
	pc := uint64(vm.pc)
	if !dbg.waitForInput {
		if _, ok := dbg.breakpoints[pc]; ok && dbg.lastBreak != int64(pc) {
			fmt.Printf("breakpoint at 0x%x\n", pc)
			vm.printState()
			dbg.waitForInput = true
			dbg.lastBreak = int64(pc)
		}
	}

	if !dbg.waitForInput {
		return
	}

	fmt.Print("\n->")
	line, _ := dbg.reader.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))

	switch {
	case line == "n" || line == "next" || line == "":
		dbg.lastBreak = -1
	case line == "r" || line == "run":
		dbg.waitForInput = false
	case strings.HasPrefix(line, "b"):
		arg := strings.TrimSpace(strings.TrimPrefix(line, "b"))
		arg = strings.TrimPrefix(arg, "reak")
		arg = strings.TrimSpace(arg)
		addr, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			fmt.Println("unknown address:", err)
			dbg.beforeStep(vm)
			return
		}
		if _, ok := dbg.breakpoints[addr]; ok {
			delete(dbg.breakpoints, addr)
		} else {
			dbg.breakpoints[addr] = struct{}{}
		}
		dbg.beforeStep(vm)
	default:
		dbg.beforeStep(vm)
	}
}
