package vm

// registerCompareOps wires equality (80-89, width-agnostic bit patterns)
// and the ordered comparisons (150-189, sign-aware per variant).
func registerCompareOps(d []opFunc) {
	eqOps := [5]int{opEq8, opEq16, opEq32, opEq64, opEq128}
	neqOps := [5]int{opNeq8, opNeq16, opNeq32, opNeq64, opNeq128}
	for i, w := range widthsOf {
		if w == 16 {
			d[eqOps[i]] = makeU128EqOp(func(a, b u128) bool { return a == b })
			d[neqOps[i]] = makeU128EqOp(func(a, b u128) bool { return a != b })
			continue
		}
		d[eqOps[i]] = makeRawEqOp(w, func(a, b uint64) bool { return a == b })
		d[neqOps[i]] = makeRawEqOp(w, func(a, b uint64) bool { return a != b })
	}

	d[opLtU8], d[opLtU16], d[opLtU32], d[opLtU64] = ltOp[uint8], ltOp[uint16], ltOp[uint32], ltOp[uint64]
	d[opLtI8], d[opLtI16], d[opLtI32], d[opLtI64] = ltOp[int8], ltOp[int16], ltOp[int32], ltOp[int64]
	d[opLeU8], d[opLeU16], d[opLeU32], d[opLeU64] = leOp[uint8], leOp[uint16], leOp[uint32], leOp[uint64]
	d[opLeI8], d[opLeI16], d[opLeI32], d[opLeI64] = leOp[int8], leOp[int16], leOp[int32], leOp[int64]
	d[opGtU8], d[opGtU16], d[opGtU32], d[opGtU64] = gtOp[uint8], gtOp[uint16], gtOp[uint32], gtOp[uint64]
	d[opGtI8], d[opGtI16], d[opGtI32], d[opGtI64] = gtOp[int8], gtOp[int16], gtOp[int32], gtOp[int64]
	d[opGeU8], d[opGeU16], d[opGeU32], d[opGeU64] = geOp[uint8], geOp[uint16], geOp[uint32], geOp[uint64]
	d[opGeI8], d[opGeI16], d[opGeI32], d[opGeI64] = geOp[int8], geOp[int16], geOp[int32], geOp[int64]

	d[opLtU128] = makeU128CmpOp(false, func(c int) bool { return c < 0 })
	d[opLeU128] = makeU128CmpOp(false, func(c int) bool { return c <= 0 })
	d[opGtU128] = makeU128CmpOp(false, func(c int) bool { return c > 0 })
	d[opGeU128] = makeU128CmpOp(false, func(c int) bool { return c >= 0 })
	d[opLtI128] = makeU128CmpOp(true, func(c int) bool { return c < 0 })
	d[opLeI128] = makeU128CmpOp(true, func(c int) bool { return c <= 0 })
	d[opGtI128] = makeU128CmpOp(true, func(c int) bool { return c > 0 })
	d[opGeI128] = makeU128CmpOp(true, func(c int) bool { return c >= 0 })
}

func makeRawEqOp(w uint64, cmp func(a, b uint64) bool) opFunc {
	return func(vm *VM) *Fault {
		v2, err := vm.popRaw(w)
		if err != nil {
			return err
		}
		v1, err := vm.popRaw(w)
		if err != nil {
			return err
		}
		if err := vm.push1(boolByte(cmp(v1, v2))); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

func makeU128EqOp(cmp func(a, b u128) bool) opFunc {
	return func(vm *VM) *Fault {
		v2, err := vm.popU128()
		if err != nil {
			return err
		}
		v1, err := vm.popU128()
		if err != nil {
			return err
		}
		if err := vm.push1(boolByte(cmp(v1, v2))); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

func ltOp[T numWidth](vm *VM) *Fault { return compareOp[T](vm, func(a, b T) bool { return a < b }) }
func leOp[T numWidth](vm *VM) *Fault { return compareOp[T](vm, func(a, b T) bool { return a <= b }) }
func gtOp[T numWidth](vm *VM) *Fault { return compareOp[T](vm, func(a, b T) bool { return a > b }) }
func geOp[T numWidth](vm *VM) *Fault { return compareOp[T](vm, func(a, b T) bool { return a >= b }) }

func compareOp[T numWidth](vm *VM, cmp func(a, b T) bool) *Fault {
	v2, err := popValue[T](vm)
	if err != nil {
		return err
	}
	v1, err := popValue[T](vm)
	if err != nil {
		return err
	}
	if err := vm.push1(boolByte(cmp(v1, v2))); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func makeU128CmpOp(signed bool, test func(c int) bool) opFunc {
	return func(vm *VM) *Fault {
		v2, err := vm.popU128()
		if err != nil {
			return err
		}
		v1, err := vm.popU128()
		if err != nil {
			return err
		}
		var c int
		if signed {
			c = v1.signedCmp(v2)
		} else {
			c = v1.cmp(v2)
		}
		if err := vm.push1(boolByte(test(c))); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}
