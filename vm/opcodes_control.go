package vm

// registerControlOps wires opcodes 2-9 (0 nop and 1 halt are wired
// directly in opcodes.go's init, since halt is intercepted by the decode
// loop before dispatch ever sees it).
func registerControlOps(d []opFunc) {
	d[opCall] = opCallHandler
	d[opRet] = opRetHandler
	d[opIret] = opIretHandler
	d[opAlloc] = opAllocHandler
	d[opReadStdin] = opReadStdinHandler
	d[opWriteStdout] = opWriteStdoutHandler
	d[opFileRead] = opFileReadHandler
	d[opFileWrite] = opFileWriteHandler
}

// opCallHandler pops the target address, pushes pc+1 as the return
// address onto the call stack, then jumps.
func opCallHandler(vm *VM) *Fault {
	addr, err := vm.pop8()
	if err != nil {
		return err
	}
	retAddr, err := addReg(vm.pc, 1)
	if err != nil {
		return err
	}
	if err := vm.pushCS(uint64(retAddr)); err != nil {
		return err
	}
	vm.pc = Reg(addr)
	return nil
}

func opRetHandler(vm *VM) *Fault {
	addr, err := vm.popCS()
	if err != nil {
		return err
	}
	vm.pc = Reg(addr)
	return nil
}

func opIretHandler(vm *VM) *Fault {
	vm.pc = vm.ih
	return nil
}

func opAllocHandler(vm *VM) *Fault {
	n, err := vm.pop8()
	if err != nil {
		return err
	}
	addr, err := vm.mem.alloc(n, vm.memCeiling)
	if err != nil {
		return err
	}
	if err := vm.push8(addr); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opReadStdinHandler(vm *VM) *Fault {
	length, err := vm.pop8()
	if err != nil {
		return err
	}
	ptr, err := vm.pop8()
	if err != nil {
		return err
	}
	dst, err := vm.mem.sliceMut(ptr, length)
	if err != nil {
		return err
	}
	n, err := vm.readStdin(dst)
	if err != nil {
		return err
	}
	if err := vm.push8(n); err != nil {
		return err
	}
	return vm.advancePC(1)
}

func opWriteStdoutHandler(vm *VM) *Fault {
	length, err := vm.pop8()
	if err != nil {
		return err
	}
	ptr, err := vm.pop8()
	if err != nil {
		return err
	}
	src, err := vm.mem.readBytes(ptr, length)
	if err != nil {
		return err
	}
	if err := vm.writeStdout(src); err != nil {
		return err
	}
	return vm.advancePC(1)
}

// opFileReadHandler pops dest_len, dest_ptr, path_len, path_ptr in that
// order (each 8 bytes), interprets the path bytes as lossy UTF-8, reads
// the named host file, and copies min(dest_len, file_len) bytes into the
// destination.
func opFileReadHandler(vm *VM) *Fault {
	destLen, err := vm.pop8()
	if err != nil {
		return err
	}
	destPtr, err := vm.pop8()
	if err != nil {
		return err
	}
	pathLen, err := vm.pop8()
	if err != nil {
		return err
	}
	pathPtr, err := vm.pop8()
	if err != nil {
		return err
	}
	pathBytes, err := vm.mem.readBytes(pathPtr, pathLen)
	if err != nil {
		return err
	}
	dst, err := vm.mem.sliceMut(destPtr, destLen)
	if err != nil {
		return err
	}
	n := readHostFile(decodeHostPath(pathBytes), dst)
	return finishWithPush8(vm, n)
}

// opFileWriteHandler pops src_len, src_ptr, path_len, path_ptr in that
// order and writes the named host file.
func opFileWriteHandler(vm *VM) *Fault {
	srcLen, err := vm.pop8()
	if err != nil {
		return err
	}
	srcPtr, err := vm.pop8()
	if err != nil {
		return err
	}
	pathLen, err := vm.pop8()
	if err != nil {
		return err
	}
	pathPtr, err := vm.pop8()
	if err != nil {
		return err
	}
	pathBytes, err := vm.mem.readBytes(pathPtr, pathLen)
	if err != nil {
		return err
	}
	src, err := vm.mem.readBytes(srcPtr, srcLen)
	if err != nil {
		return err
	}
	n := writeHostFile(decodeHostPath(pathBytes), src)
	return finishWithPush8(vm, n)
}

func finishWithPush8(vm *VM, v uint64) *Fault {
	if err := vm.push8(v); err != nil {
		return err
	}
	return vm.advancePC(1)
}
