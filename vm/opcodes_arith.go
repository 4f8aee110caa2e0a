package vm

// registerArithOps wires the five arithmetic families (add/sub/mul/div/rem)
// across five widths and both signs. Go's native +, -, * already wrap on
// overflow for every fixed-width integer type, matching the wrapping
// semantics required here; / and % do not wrap safely on a zero divisor,
// so each division family checks for that explicitly before dividing.
func registerArithOps(d []opFunc) {
	d[opAddU8], d[opAddU16], d[opAddU32], d[opAddU64] = addOp[uint8], addOp[uint16], addOp[uint32], addOp[uint64]
	d[opAddI8], d[opAddI16], d[opAddI32], d[opAddI64] = addOp[int8], addOp[int16], addOp[int32], addOp[int64]
	d[opSubU8], d[opSubU16], d[opSubU32], d[opSubU64] = subOp[uint8], subOp[uint16], subOp[uint32], subOp[uint64]
	d[opSubI8], d[opSubI16], d[opSubI32], d[opSubI64] = subOp[int8], subOp[int16], subOp[int32], subOp[int64]
	d[opMulU8], d[opMulU16], d[opMulU32], d[opMulU64] = mulOp[uint8], mulOp[uint16], mulOp[uint32], mulOp[uint64]
	d[opMulI8], d[opMulI16], d[opMulI32], d[opMulI64] = mulOp[int8], mulOp[int16], mulOp[int32], mulOp[int64]
	d[opDivU8], d[opDivU16], d[opDivU32], d[opDivU64] = divOp[uint8], divOp[uint16], divOp[uint32], divOp[uint64]
	d[opDivI8], d[opDivI16], d[opDivI32], d[opDivI64] = divOp[int8], divOp[int16], divOp[int32], divOp[int64]
	d[opRemU8], d[opRemU16], d[opRemU32], d[opRemU64] = remOp[uint8], remOp[uint16], remOp[uint32], remOp[uint64]
	d[opRemI8], d[opRemI16], d[opRemI32], d[opRemI64] = remOp[int8], remOp[int16], remOp[int32], remOp[int64]

	d[opAddU128] = makeU128BinArith(u128.add)
	d[opAddI128] = makeU128BinArith(u128.add)
	d[opSubU128] = makeU128BinArith(u128.sub)
	d[opSubI128] = makeU128BinArith(u128.sub)
	d[opMulU128] = makeU128BinArith(u128.mul)
	d[opMulI128] = makeU128BinArith(u128.mul)
	d[opDivU128] = makeU128DivRem(false, true)
	d[opDivI128] = makeU128DivRem(true, true)
	d[opRemU128] = makeU128DivRem(false, false)
	d[opRemI128] = makeU128DivRem(true, false)
}

func binArith[T numWidth](vm *VM, op func(a, b T) T) *Fault {
	v2, err := popValue[T](vm)
	if err != nil {
		return err
	}
	v1, err := popValue[T](vm)
	if err != nil {
		return err
	}
	if err := pushValue(vm, op(v1, v2)); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func addOp[T numWidth](vm *VM) *Fault { return binArith(vm, func(a, b T) T { return a + b }) }
func subOp[T numWidth](vm *VM) *Fault { return binArith(vm, func(a, b T) T { return a - b }) }
func mulOp[T numWidth](vm *VM) *Fault { return binArith(vm, func(a, b T) T { return a * b }) }

func divOp[T numWidth](vm *VM) *Fault {
	v2, err := popValue[T](vm)
	if err != nil {
		return err
	}
	v1, err := popValue[T](vm)
	if err != nil {
		return err
	}
	if v2 == 0 {
		return errInvalidInst
	}
	if err := pushValue(vm, v1/v2); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func remOp[T numWidth](vm *VM) *Fault {
	v2, err := popValue[T](vm)
	if err != nil {
		return err
	}
	v1, err := popValue[T](vm)
	if err != nil {
		return err
	}
	if v2 == 0 {
		return errInvalidInst
	}
	if err := pushValue(vm, v1%v2); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func makeU128BinArith(op func(a, b u128) u128) opFunc {
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

// makeU128DivRem builds the four 128-bit division-family opcodes: signed
// or unsigned, quotient or remainder. Division by zero is InvalidInst.
func makeU128DivRem(signed bool, wantQuotient bool) opFunc {
	return func(vm *VM) *Fault {
		v2, err := vm.popU128()
		if err != nil {
			return err
		}
		v1, err := vm.popU128()
		if err != nil {
			return err
		}
		if v2.isZero() {
			return errInvalidInst
		}
		var q, r u128
		if signed {
			q, r = v1.divmodSigned(v2)
		} else {
			q, r = v1.divmodUnsigned(v2)
		}
		out := r
		if wantQuotient {
			out = q
		}
		if err := vm.pushU128(out); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}
