package vm

import "math"

// widthsOf maps a family's five opcode offsets to their byte widths, in
// the fixed order used throughout the catalogue: 1, 2, 4, 8, 16.
var widthsOf = [5]uint64{1, 2, 4, 8, 16}

func registerStackOps(d []opFunc) {
	pushOps := [5]int{opPush1, opPush2, opPush4, opPush8, opPush16}
	dropOps := [5]int{opDrop1, opDrop2, opDrop4, opDrop8, opDrop16}
	swapOps := [5]int{opSwap1, opSwap2, opSwap4, opSwap8, opSwap16}
	rot3Ops := [5]int{opRot31, opRot32, opRot34, opRot38, opRot316}
	dupOps := [5]int{opDup1, opDup2, opDup4, opDup8, opDup16}
	dupNextOps := [5]int{opDupNext1, opDupNext2, opDupNext4, opDupNext8, opDupNext16}

	for i, w := range widthsOf {
		d[pushOps[i]] = makePushImmOp(w)
		d[dropOps[i]] = makeDropOp(w)
		d[swapOps[i]] = makeSwapOp(w)
		d[rot3Ops[i]] = makeRot3Op(w)
		d[dupOps[i]] = makeDupOp(w)
		d[dupNextOps[i]] = makeDupNextOp(w)
	}

	d[opPopToSP] = opPopToSPHandler
	d[opPopToCS] = opPopToCSHandler
	d[opPopToIH] = opPopToIHHandler
	d[opPopToIR] = opPopToIRHandler
	d[opPushIR] = opPushIRHandler

	d[opNeg8] = opNeg8Handler
	d[opNeg16] = opNeg16Handler
	d[opNeg32] = opNeg32Handler
	d[opNeg64] = opNeg64Handler
	d[opNeg128] = opNeg128Handler
}

// makePushImmOp reads a w-byte immediate at pc+1 and pushes it, advancing
// pc past the opcode and the immediate.
func makePushImmOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		data, err := vm.mem.readBytes(uint64(vm.pc)+1, w)
		if err != nil {
			return err
		}
		if err := vm.push(data); err != nil {
			return err
		}
		return vm.advancePC(1 + w)
	}
}

func makeDropOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		if _, err := vm.pop(w); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeSwapOp pops the top two w-wide cells and pushes them back reversed.
func makeSwapOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		top, err := vm.pop(w)
		if err != nil {
			return err
		}
		next, err := vm.pop(w)
		if err != nil {
			return err
		}
		if err := vm.push(top); err != nil {
			return err
		}
		if err := vm.push(next); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeRot3Op pops v1 (top), v2, v3 in that order and pushes v2, v1, v3 —
// leaving the stack (top to bottom) as v3, v1, v2.
func makeRot3Op(w uint64) opFunc {
	return func(vm *VM) *Fault {
		v1, err := vm.pop(w)
		if err != nil {
			return err
		}
		v2, err := vm.pop(w)
		if err != nil {
			return err
		}
		v3, err := vm.pop(w)
		if err != nil {
			return err
		}
		if err := vm.push(v2); err != nil {
			return err
		}
		if err := vm.push(v1); err != nil {
			return err
		}
		if err := vm.push(v3); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeDupOp reads the top w-wide cell without removing it and pushes a copy.
func makeDupOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		top, err := vm.mem.readBytes(uint64(vm.sp), w)
		if err != nil {
			return err
		}
		if err := vm.push(top); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeDupNextOp reads the cell below the top w-wide cell (at sp+w) and
// pushes a copy, leaving the top cell untouched.
func makeDupNextOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		addr, err := addReg(vm.sp, w)
		if err != nil {
			return err
		}
		below, err := vm.mem.readBytes(uint64(addr), w)
		if err != nil {
			return err
		}
		if err := vm.push(below); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

func opPopToSPHandler(vm *VM) *Fault {
	v, err := vm.pop8()
	if err != nil {
		return err
	}
	vm.sp = Reg(v)
	return vm.advancePC(1)
}

func opPopToCSHandler(vm *VM) *Fault {
	v, err := vm.pop8()
	if err != nil {
		return err
	}
	vm.cs = Reg(v)
	return vm.advancePC(1)
}

func opPopToIHHandler(vm *VM) *Fault {
	v, err := vm.pop8()
	if err != nil {
		return err
	}
	vm.ih = Reg(v)
	return vm.advancePC(1)
}

func opPopToIRHandler(vm *VM) *Fault {
	v, err := vm.pop1()
	if err != nil {
		return err
	}
	vm.ir = int8(v)
	return vm.advancePC(1)
}

func opPushIRHandler(vm *VM) *Fault {
	if err := vm.push1(byte(vm.ir)); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opNeg8Handler(vm *VM) *Fault {
	v, err := popValue[int8](vm)
	if err != nil {
		return err
	}
	out := v
	if v == math.MinInt8 {
		out = math.MaxInt8
	} else {
		out = -v
	}
	if err := pushValue(vm, out); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opNeg16Handler(vm *VM) *Fault {
	v, err := popValue[int16](vm)
	if err != nil {
		return err
	}
	out := v
	if v == math.MinInt16 {
		out = math.MaxInt16
	} else {
		out = -v
	}
	if err := pushValue(vm, out); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opNeg32Handler(vm *VM) *Fault {
	v, err := popValue[int32](vm)
	if err != nil {
		return err
	}
	out := v
	if v == math.MinInt32 {
		out = math.MaxInt32
	} else {
		out = -v
	}
	if err := pushValue(vm, out); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opNeg64Handler(vm *VM) *Fault {
	v, err := popValue[int64](vm)
	if err != nil {
		return err
	}
	out := v
	if v == math.MinInt64 {
		out = math.MaxInt64
	} else {
		out = -v
	}
	if err := pushValue(vm, out); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opNeg128Handler(vm *VM) *Fault {
	v, err := vm.popU128()
	if err != nil {
		return err
	}
	minInt128 := u128{hi: 1 << 63, lo: 0}
	maxInt128 := u128{hi: 1<<63 - 1, lo: ^uint64(0)}
	out := v
	if v == minInt128 {
		out = maxInt128
	} else {
		out = v.neg()
	}
	if err := vm.pushU128(out); err != nil {
		return err
	}
	return vm.advancePC(1)
}
