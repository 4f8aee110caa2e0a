package vm

// convPair names a width conversion's source and destination byte widths.
type convPair struct {
	op       int
	src, dst uint64
}

// registerConvertOps wires opcodes 190-209. Source width increases every
// four opcodes; within each group the target cycles through the other
// four widths in increasing order.
func registerConvertOps(d []opFunc) {
	pairs := []convPair{
		{opU8ToU16, 1, 2}, {opU8ToU32, 1, 4}, {opU8ToU64, 1, 8}, {opU8ToU128, 1, 16},
		{opU16ToU8, 2, 1}, {opU16ToU32, 2, 4}, {opU16ToU64, 2, 8}, {opU16ToU128, 2, 16},
		{opU32ToU8, 4, 1}, {opU32ToU16, 4, 2}, {opU32ToU64, 4, 8}, {opU32ToU128, 4, 16},
		{opU64ToU8, 8, 1}, {opU64ToU16, 8, 2}, {opU64ToU32, 8, 4}, {opU64ToU128, 8, 16},
		{opU128ToU8, 16, 1}, {opU128ToU16, 16, 2}, {opU128ToU32, 16, 4}, {opU128ToU64, 16, 8},
	}
	for _, p := range pairs {
		d[p.op] = makeConvertOp(p.src, p.dst)
	}
}

// makeConvertOp truncates (modulo target width) when dst < src and
// zero-extends when dst > src, among the unsigned widths.
func makeConvertOp(src, dst uint64) opFunc {
	switch {
	case src == 16 && dst != 16:
		return func(vm *VM) *Fault {
			v, err := vm.popU128()
			if err != nil {
				return err
			}
			if err := vm.pushRaw(dst, v.lo); err != nil {
				return err
			}
			return vm.advancePC(1)
		}
	case dst == 16 && src != 16:
		return func(vm *VM) *Fault {
			v, err := vm.popRaw(src)
			if err != nil {
				return err
			}
			if err := vm.pushU128(u128{lo: v}); err != nil {
				return err
			}
			return vm.advancePC(1)
		}
	default:
		return func(vm *VM) *Fault {
			v, err := vm.popRaw(src)
			if err != nil {
				return err
			}
			if err := vm.pushRaw(dst, v); err != nil {
				return err
			}
			return vm.advancePC(1)
		}
	}
}
