package vm

import "unsafe"

// numWidth constrains the generic stack helpers to the eight integer kinds
// the opcode families are parameterized over at widths 8/16/32/64. Width
// 128 has no native Go type and is handled separately via u128/popU128.
type numWidth interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// popValue pops sizeof(T) bytes and reinterprets them as T. The
// little-endian decode is written by hand (no encoding/binary call fits a
// generic width), using unsafe.Sizeof to learn T's width the same way the
// teacher's own code leans on the unsafe package for layout queries.
func popValue[T numWidth](vm *VM) (T, *Fault) {
	var zero T
	n := int(unsafe.Sizeof(zero))
	b, err := vm.pop(uint64(n))
	if err != nil {
		return zero, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return T(v), nil
}

// pushValue pushes sizeof(T) little-endian bytes of val. Converting a
// negative signed val to uint64 sign-extends it, but only the low
// sizeof(T) bytes are ever consumed below, so the raw bit pattern survives
// the round trip regardless of T's signedness.
func pushValue[T numWidth](vm *VM, val T) *Fault {
	n := int(unsafe.Sizeof(val))
	b := make([]byte, n)
	v := uint64(val)
	for i := 0; i < n; i++ {
		b[i] = byte(v)
		v >>= 8
	}
	return vm.push(b)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// popU128 pops the 16-byte cell for width-128 opcode variants.
func (vm *VM) popU128() (u128, *Fault) {
	b, err := vm.pop(16)
	if err != nil {
		return u128{}, err
	}
	return u128FromBytes(b), nil
}

func (vm *VM) pushU128(v u128) *Fault {
	b := v.bytes()
	return vm.push(b[:])
}

// popRaw pops a w-byte cell (w <= 8) and returns its raw little-endian
// bit pattern. Used by the bitwise/shift/rotate/equality families, which
// are width-agnostic with respect to signedness.
func (vm *VM) popRaw(w uint64) (uint64, *Fault) {
	b, err := vm.pop(w)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := int(w) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

func (vm *VM) pushRaw(w uint64, v uint64) *Fault {
	b := make([]byte, w)
	for i := uint64(0); i < w; i++ {
		b[i] = byte(v)
		v >>= 8
	}
	return vm.push(b)
}
