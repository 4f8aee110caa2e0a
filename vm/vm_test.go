package vm

import (
	"testing"
)

// assert is a single failure point with a formatted message, rather than
// pulling in a matcher library.
func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func withHeadroom(program []byte) []byte {
	return append(append([]byte{}, program...), make([]byte, stackHeadroom)...)
}

// S1 — halt immediately.
func TestHaltImmediately(t *testing.T) {
	image := withHeadroom([]byte{opHalt})
	vm := New(image)
	err := vm.Run()
	assert(t, err == nil, "expected clean halt, got %v", err)
	assert(t, vm.pc == 0, "expected pc==0 at exit, got %d", vm.pc)
}

// S3 — 2+3 via u8 add, then debug-print the result.
func TestAddU8AndDebugPrint(t *testing.T) {
	image := withHeadroom([]byte{
		opPush1, 2,
		opPush1, 3,
		opAddU8,
		opDebug8,
		opHalt,
	})
	vm := New(image)
	err := vm.Run()
	assert(t, err == nil, "unexpected fault: %v", err)
}

// S4 — conditional forward jump: condition 1 skips the debug print.
// cjmp_fwd pops the condition byte first, then the 8-byte offset, and
// sets pc = pc_at_cjmp + offset (no +1 for its own encoding), so the
// offset must account for its own byte as well as what it skips.
func TestConditionalForwardJumpTaken(t *testing.T) {
	tail := []byte{opPush1, 0xAA, opDebug8, opHalt}
	offset := uint64(len(tail))

	image := []byte{opPush8}
	image = append(image, leBytes8(offset)...)
	image = append(image, opPush1, 1) // condition, pushed last so it pops first
	image = append(image, opCJmpFwd)
	image = append(image, tail...)
	image = withHeadroom(image)

	vm := New(image)
	err := vm.Run()
	assert(t, err == nil, "unexpected fault: %v", err)
}

// S5 — wraparound: 0xFF + 0x02 as u8 wraps to 0x01.
func TestAddU8Wraps(t *testing.T) {
	image := withHeadroom([]byte{
		opPush1, 0xFF,
		opPush1, 0x02,
		opAddU8,
		opDropK(1),
		opHalt,
	})
	vm := New(image)
	err := vm.Run()
	assert(t, err == nil, "unexpected fault: %v", err)
	// drop1 moves sp past the sum without clearing it, so the byte just
	// below sp still holds the wrapped result.
	got := vm.mem.Bytes()[vm.sp-1]
	assert(t, got == 0x01, "expected 0xFF+0x02 to wrap to 0x01, got 0x%x", got)
}

// S6 — fault to handler: opcode 93 is reserved, trapping InvalidInst; the
// installed handler is expected to run once pc is vectored to ih.
func TestFaultVectorsToHandler(t *testing.T) {
	// prologue is exactly 11 bytes: push8(1) + addr(8) + pop_to_ih(1) + reserved93(1).
	const handlerOffset = 11
	prologue := []byte{opPush8}
	prologue = append(prologue, leBytes8(handlerOffset)...)
	prologue = append(prologue, opPopToIH)
	prologue = append(prologue, opReserved93)

	handler := []byte{opPush1, 0x7A, opHalt}
	image := append(append([]byte{}, prologue...), handler...)
	image = withHeadroom(image)

	vm := New(image)
	err := vm.Run()
	assert(t, err == nil, "unexpected fault escaping Run: %v", err)
	assert(t, vm.ir == int8(KindInvalidInst), "expected ir latched to InvalidInst, got %d", vm.ir)
}

func TestPushPopRoundTrip(t *testing.T) {
	image := withHeadroom(nil)
	vm := New(image)
	if err := vm.push8(0x0102030405060708); err != nil {
		t.Fatalf("push8: %v", err)
	}
	v, err := vm.pop8()
	assert(t, err == nil, "pop8: %v", err)
	assert(t, v == 0x0102030405060708, "round trip mismatch: got %x", v)
}

func TestSwapIsInvolution(t *testing.T) {
	image := withHeadroom(nil)
	vm := New(image)
	must := func(f *Fault) {
		t.Helper()
		assert(t, f == nil, "unexpected fault: %v", f)
	}
	must(vm.push1(1))
	must(vm.push1(2))
	swap := makeSwapOp(1)
	assert(t, swap(vm) == nil, "first swap faulted")
	assert(t, swap(vm) == nil, "second swap faulted")
	b, err := vm.pop(2)
	assert(t, err == nil, "pop: %v", err)
	assert(t, b[0] == 2 && b[1] == 1, "swap-swap did not restore original order: %v", b)
}

func TestNegateSaturates(t *testing.T) {
	image := withHeadroom(nil)
	vm := New(image)
	if err := pushValue[int8](vm, -128); err != nil {
		t.Fatalf("pushValue: %v", err)
	}
	if f := opNeg8Handler(vm); f != nil {
		t.Fatalf("opNeg8Handler: %v", f)
	}
	v, err := popValue[int8](vm)
	assert(t, err == nil, "popValue: %v", err)
	assert(t, v == 127, "expected saturation to 127, got %d", v)
}

func TestOutOfMemOnOversizedAccess(t *testing.T) {
	image := withHeadroom(nil)
	vm := New(image)
	_, err := vm.mem.readBytes(vm.mem.Len(), 1)
	assert(t, err != nil && err.Kind == KindOutOfMem, "expected OutOfMem, got %v", err)
}

func TestDivisionByZeroIsInvalidInst(t *testing.T) {
	image := withHeadroom(nil)
	vm := New(image)
	must := func(f *Fault) {
		t.Helper()
		assert(t, f == nil, "unexpected fault: %v", f)
	}
	must(pushValue[uint32](vm, 10))
	must(pushValue[uint32](vm, 0))
	f := divOp[uint32](vm)
	assert(t, f != nil && f.Kind == KindInvalidInst, "expected InvalidInst, got %v", f)
}

func leBytes8(v uint64) []byte {
	var b [8]byte
	putLeUint64(b[:], v)
	return b[:]
}

// opDropK looks up the drop opcode for a given width, used by tests that
// want to name the opcode rather than hardcode its numeric value.
func opDropK(w uint64) byte {
	switch w {
	case 1:
		return opDrop1
	case 2:
		return opDrop2
	case 4:
		return opDrop4
	case 8:
		return opDrop8
	case 16:
		return opDrop16
	default:
		panic("unsupported width")
	}
}
