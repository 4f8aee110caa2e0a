package vm

// registerMemOps wires indirect memory load/store (210-219) and their
// immediate-pointer variants (230-239).
func registerMemOps(d []opFunc) {
	loadOps := [5]int{opLoad1, opLoad2, opLoad4, opLoad8, opLoad16}
	storeOps := [5]int{opStore1, opStore2, opStore4, opStore8, opStore16}
	loadImmOps := [5]int{opLoad1Imm, opLoad2Imm, opLoad4Imm, opLoad8Imm, opLoad16Imm}
	storeImmOps := [5]int{opStore1Imm, opStore2Imm, opStore4Imm, opStore8Imm, opStore16Imm}

	for i, w := range widthsOf {
		d[loadOps[i]] = makeLoadOp(w)
		d[storeOps[i]] = makeStoreOp(w)
		d[loadImmOps[i]] = makeLoadImmOp(w)
		d[storeImmOps[i]] = makeStoreImmOp(w)
	}
}

// makeLoadOp pops an 8-byte pointer and pushes the w bytes found there.
func makeLoadOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		ptr, err := vm.pop8()
		if err != nil {
			return err
		}
		data, err := vm.mem.readBytes(ptr, w)
		if err != nil {
			return err
		}
		if err := vm.push(data); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeStoreOp pops a w-byte value then an 8-byte pointer, and writes the
// value to that address.
func makeStoreOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		val, err := vm.pop(w)
		if err != nil {
			return err
		}
		ptr, err := vm.pop8()
		if err != nil {
			return err
		}
		if err := vm.mem.writeBytes(ptr, val); err != nil {
			return err
		}
		return vm.advancePC(1)
	}
}

// makeLoadImmOp takes its pointer from the 8-byte immediate at pc+1
// instead of the stack.
func makeLoadImmOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		ptr, err := vm.immediate8()
		if err != nil {
			return err
		}
		data, err := vm.mem.readBytes(ptr, w)
		if err != nil {
			return err
		}
		if err := vm.push(data); err != nil {
			return err
		}
		return vm.advancePC(9)
	}
}

func makeStoreImmOp(w uint64) opFunc {
	return func(vm *VM) *Fault {
		val, err := vm.pop(w)
		if err != nil {
			return err
		}
		ptr, err := vm.immediate8()
		if err != nil {
			return err
		}
		if err := vm.mem.writeBytes(ptr, val); err != nil {
			return err
		}
		return vm.advancePC(9)
	}
}
