package vm

// Memory is the VM's single flat, untyped byte buffer. It holds code,
// operand stack, call stack, and heap interchangeably; nothing in this
// type distinguishes between them, only the opcodes that later touch a
// given address.
type Memory struct {
	buf []byte
}

func newMemory(image []byte) *Memory {
	m := &Memory{buf: make([]byte, len(image))}
	copy(m.buf, image)
	return m
}

// Len reports the current size of the buffer.
func (m *Memory) Len() uint64 {
	return uint64(len(m.buf))
}

// Bytes exposes the live backing buffer for debug dumps; callers must not
// retain the slice across an alloc.
func (m *Memory) Bytes() []byte {
	return m.buf
}

// inBounds reports whether [addr, addr+n) lies entirely within the buffer.
// addr+n is computed with overflow detection since addr is attacker/guest
// controlled and can be arbitrarily large.
func (m *Memory) inBounds(addr uint64, n uint64) bool {
	end := addr + n
	if end < addr {
		return false
	}
	return end <= uint64(len(m.buf))
}

// alloc appends n zero bytes and returns the address of the first one.
func (m *Memory) alloc(n uint64, ceiling uint64) (uint64, *Fault) {
	old := uint64(len(m.buf))
	if ceiling > 0 && (old > ceiling || n > ceiling-old) {
		return 0, errOutOfMem
	}
	m.buf = append(m.buf, make([]byte, n)...)
	return old, nil
}

// readBytes returns a copy of the n bytes starting at addr.
func (m *Memory) readBytes(addr uint64, n uint64) ([]byte, *Fault) {
	if !m.inBounds(addr, n) {
		return nil, errOutOfMem
	}
	out := make([]byte, n)
	copy(out, m.buf[addr:addr+n])
	return out, nil
}

// writeBytes copies data into the buffer starting at addr.
func (m *Memory) writeBytes(addr uint64, data []byte) *Fault {
	if !m.inBounds(addr, uint64(len(data))) {
		return errOutOfMem
	}
	copy(m.buf[addr:addr+uint64(len(data))], data)
	return nil
}

// sliceMut returns a mutable view of [addr, addr+n) for direct host I/O.
func (m *Memory) sliceMut(addr uint64, n uint64) ([]byte, *Fault) {
	if !m.inBounds(addr, n) {
		return nil, errOutOfMem
	}
	return m.buf[addr : addr+n : addr+n], nil
}
