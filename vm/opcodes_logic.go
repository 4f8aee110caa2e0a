package vm

// registerLogicOps wires the bitwise AND/OR (50-59), shift/rotate
// (60-79), and XOR (240-244) families. All are unsigned and, apart from
// shift/rotate's sign-agnostic distance operand, width-agnostic bit
// patterns — widths 1/2/4/8 share one raw-uint64 implementation, width
// 16 is handled separately through u128.
func registerLogicOps(d []opFunc) {
	andOps := [5]int{opAnd8, opAnd16, opAnd32, opAnd64, opAnd128}
	orOps := [5]int{opOr8, opOr16, opOr32, opOr64, opOr128}
	shlOps := [5]int{opShl8, opShl16, opShl32, opShl64, opShl128}
	shrOps := [5]int{opShr8, opShr16, opShr32, opShr64, opShr128}
	rotlOps := [5]int{opRotl8, opRotl16, opRotl32, opRotl64, opRotl128}
	rotrOps := [5]int{opRotr8, opRotr16, opRotr32, opRotr64, opRotr128}
	xorOps := [5]int{opXor8, opXor16, opXor32, opXor64, opXor128}

	for i, w := range widthsOf {
		if w == 16 {
			d[andOps[i]] = makeU128BinOp(u128.and)
			d[orOps[i]] = makeU128BinOp(u128.or)
			d[xorOps[i]] = makeU128BinOp(u128.xor)
			d[shlOps[i]] = makeU128ShiftOp(u128.shl)
			d[shrOps[i]] = makeU128ShiftOp(u128.shr)
			d[rotlOps[i]] = makeU128ShiftOp(u128.rotl)
			d[rotrOps[i]] = makeU128ShiftOp(u128.rotr)
			continue
		}
		d[andOps[i]] = makeRawBinOp(w, func(a, b uint64) uint64 { return a & b })
		d[orOps[i]] = makeRawBinOp(w, func(a, b uint64) uint64 { return a | b })
		d[xorOps[i]] = makeRawBinOp(w, func(a, b uint64) uint64 { return a ^ b })
		d[shlOps[i]] = makeRawShiftOp(w, shlWrap)
		d[shrOps[i]] = makeRawShiftOp(w, shrWrap)
		d[rotlOps[i]] = makeRawShiftOp(w, rotlWrap)
		d[rotrOps[i]] = makeRawShiftOp(w, rotrWrap)
	}
}

// makeRawBinOp pops v2 then v1 (both w bytes) and pushes op(v1, v2).
func makeRawBinOp(w uint64, op func(a, b uint64) uint64) opFunc {
	return func(vm *VM) *Fault {
		v2, err := vm.popRaw(w)
		if err != nil {
			return err
		}
		v1, err := vm.popRaw(w)
		if err != nil {
			return err
		}
		if err := vm.pushRaw(w, op(v1, v2)); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeRawShiftOp pops an 8-bit distance first, then a w-byte value, and
// pushes op(value, distance mod width_bits).
func makeRawShiftOp(w uint64, op func(v uint64, n uint, widthBits uint) uint64) opFunc {
	widthBits := uint(w * 8)
	return func(vm *VM) *Fault {
		count, err := vm.pop1()
		if err != nil {
			return err
		}
		v, err := vm.popRaw(w)
		if err != nil {
			return err
		}
		n := uint(count) % widthBits
		if err := vm.pushRaw(w, op(v, n, widthBits)); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

func shlWrap(v uint64, n uint, widthBits uint) uint64 {
	return maskToWidth(v<<n, widthBits)
}

func shrWrap(v uint64, n uint, widthBits uint) uint64 {
	return maskToWidth(v, widthBits) >> n
}

func rotlWrap(v uint64, n uint, widthBits uint) uint64 {
	v = maskToWidth(v, widthBits)
	if n == 0 {
		return v
	}
	return maskToWidth((v<<n)|(v>>(widthBits-n)), widthBits)
}

func rotrWrap(v uint64, n uint, widthBits uint) uint64 {
	v = maskToWidth(v, widthBits)
	if n == 0 {
		return v
	}
	return maskToWidth((v>>n)|(v<<(widthBits-n)), widthBits)
}

func maskToWidth(v uint64, widthBits uint) uint64 {
	if widthBits >= 64 {
		return v
	}
	return v & (1<<widthBits - 1)
}

func makeU128BinOp(op func(a, b u128) u128) opFunc {
	return func(vm *VM) *Fault {
		v2, err := vm.popU128()
		if err != nil {
			return err
		}
		v1, err := vm.popU128()
		if err != nil {
			return err
		}
		if err := vm.pushU128(op(v1, v2)); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

func makeU128ShiftOp(op func(v u128, n uint) u128) opFunc {
	return func(vm *VM) *Fault {
		count, err := vm.pop1()
		if err != nil {
			return err
		}
		v, err := vm.popU128()
		if err != nil {
			return err
		}
		n := uint(count) % 128
		if err := vm.pushU128(op(v, n)); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}
