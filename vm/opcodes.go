package vm

// Opcode families. Widths are encoded positionally: within a family, the
// offset from the family's base selects the width or sign variant.
const (
	opNop         = 0
	opHalt        = 1
	opCall        = 2
	opRet         = 3
	opIret        = 4
	opAlloc       = 5
	opReadStdin   = 6
	opWriteStdout = 7
	opFileRead    = 8
	opFileWrite   = 9

	opPush1  = 10
	opPush2  = 11
	opPush4  = 12
	opPush8  = 13
	opPush16 = 14

	opPopToSP = 15
	opPopToCS = 16
	opPopToIH = 17
	opPopToIR = 18
	opPushIR  = 19

	opDrop1  = 20
	opDrop2  = 21
	opDrop4  = 22
	opDrop8  = 23
	opDrop16 = 24

	opNeg8   = 25
	opNeg16  = 26
	opNeg32  = 27
	opNeg64  = 28
	opNeg128 = 29

	opSwap1  = 30
	opSwap2  = 31
	opSwap4  = 32
	opSwap8  = 33
	opSwap16 = 34

	opRot31  = 35
	opRot32  = 36
	opRot34  = 37
	opRot38  = 38
	opRot316 = 39

	opDup1  = 40
	opDup2  = 41
	opDup4  = 42
	opDup8  = 43
	opDup16 = 44

	opDupNext1  = 45
	opDupNext2  = 46
	opDupNext4  = 47
	opDupNext8  = 48
	opDupNext16 = 49

	opAnd8   = 50
	opAnd16  = 51
	opAnd32  = 52
	opAnd64  = 53
	opAnd128 = 54

	opOr8   = 55
	opOr16  = 56
	opOr32  = 57
	opOr64  = 58
	opOr128 = 59

	opShl8   = 60
	opShl16  = 61
	opShl32  = 62
	opShl64  = 63
	opShl128 = 64

	opShr8   = 65
	opShr16  = 66
	opShr32  = 67
	opShr64  = 68
	opShr128 = 69

	opRotl8   = 70
	opRotl16  = 71
	opRotl32  = 72
	opRotl64  = 73
	opRotl128 = 74

	opRotr8   = 75
	opRotr16  = 76
	opRotr32  = 77
	opRotr64  = 78
	opRotr128 = 79

	opEq8   = 80
	opEq16  = 81
	opEq32  = 82
	opEq64  = 83
	opEq128 = 84

	opNeq8   = 85
	opNeq16  = 86
	opNeq32  = 87
	opNeq64  = 88
	opNeq128 = 89

	opJmp     = 90
	opJmpFwd  = 91
	opJmpBwd  = 92
	opReserved93 = 93
	opSleep   = 94
	opCJmp    = 95
	opCJmpFwd = 96
	opCJmpBwd = 97
	opReserved98 = 98
	opReserved99 = 99

	opAddU8  = 100
	opAddU16 = 101
	opAddU32 = 102
	opAddU64 = 103
	opAddU128 = 104
	opAddI8  = 105
	opAddI16 = 106
	opAddI32 = 107
	opAddI64 = 108
	opAddI128 = 109

	opSubU8  = 110
	opSubU16 = 111
	opSubU32 = 112
	opSubU64 = 113
	opSubU128 = 114
	opSubI8  = 115
	opSubI16 = 116
	opSubI32 = 117
	opSubI64 = 118
	opSubI128 = 119

	opMulU8  = 120
	opMulU16 = 121
	opMulU32 = 122
	opMulU64 = 123
	opMulU128 = 124
	opMulI8  = 125
	opMulI16 = 126
	opMulI32 = 127
	opMulI64 = 128
	opMulI128 = 129

	opDivU8  = 130
	opDivU16 = 131
	opDivU32 = 132
	opDivU64 = 133
	opDivU128 = 134
	opDivI8  = 135
	opDivI16 = 136
	opDivI32 = 137
	opDivI64 = 138
	opDivI128 = 139

	opRemU8  = 140
	opRemU16 = 141
	opRemU32 = 142
	opRemU64 = 143
	opRemU128 = 144
	opRemI8  = 145
	opRemI16 = 146
	opRemI32 = 147
	opRemI64 = 148
	opRemI128 = 149

	opLtU8  = 150
	opLtU16 = 151
	opLtU32 = 152
	opLtU64 = 153
	opLtU128 = 154
	opLtI8  = 155
	opLtI16 = 156
	opLtI32 = 157
	opLtI64 = 158
	opLtI128 = 159

	opLeU8  = 160
	opLeU16 = 161
	opLeU32 = 162
	opLeU64 = 163
	opLeU128 = 164
	opLeI8  = 165
	opLeI16 = 166
	opLeI32 = 167
	opLeI64 = 168
	opLeI128 = 169

	opGtU8  = 170
	opGtU16 = 171
	opGtU32 = 172
	opGtU64 = 173
	opGtU128 = 174
	opGtI8  = 175
	opGtI16 = 176
	opGtI32 = 177
	opGtI64 = 178
	opGtI128 = 179

	opGeU8  = 180
	opGeU16 = 181
	opGeU32 = 182
	opGeU64 = 183
	opGeU128 = 184
	opGeI8  = 185
	opGeI16 = 186
	opGeI32 = 187
	opGeI64 = 188
	opGeI128 = 189

	// Width conversions: source width increases every 4 opcodes, target
	// cycles small->large skipping self.
	opU8ToU16   = 190
	opU8ToU32   = 191
	opU8ToU64   = 192
	opU8ToU128  = 193
	opU16ToU8   = 194
	opU16ToU32  = 195
	opU16ToU64  = 196
	opU16ToU128 = 197
	opU32ToU8   = 198
	opU32ToU16  = 199
	opU32ToU64  = 200
	opU32ToU128 = 201
	opU64ToU8   = 202
	opU64ToU16  = 203
	opU64ToU32  = 204
	opU64ToU128 = 205
	opU128ToU8  = 206
	opU128ToU16 = 207
	opU128ToU32 = 208
	opU128ToU64 = 209

	opLoad1  = 210
	opLoad2  = 211
	opLoad4  = 212
	opLoad8  = 213
	opLoad16 = 214

	opStore1  = 215
	opStore2  = 216
	opStore4  = 217
	opStore8  = 218
	opStore16 = 219

	opJmpImm     = 220
	opJmpFwdImm  = 221
	opJmpBwdImm  = 222
	opReserved223 = 223
	opSleepImm   = 224
	opCJmpImm    = 225
	opCJmpFwdImm = 226
	opCJmpBwdImm = 227
	opReserved228 = 228
	opCallImm    = 229

	opLoad1Imm  = 230
	opLoad2Imm  = 231
	opLoad4Imm  = 232
	opLoad8Imm  = 233
	opLoad16Imm = 234

	opStore1Imm  = 235
	opStore2Imm  = 236
	opStore4Imm  = 237
	opStore8Imm  = 238
	opStore16Imm = 239

	opXor8   = 240
	opXor16  = 241
	opXor32  = 242
	opXor64  = 243
	opXor128 = 244

	opReserved245 = 245
	opReserved246 = 246
	opReserved247 = 247
	opReserved248 = 248
	opReserved249 = 249

	opDebugDump = 250
	opDebug8    = 251
	opDebug16   = 252
	opDebug32   = 253
	opDebug64   = 254
	opDebug128  = 255
)

// dispatch is the dense [256]opFunc table the decode loop indexes by
// opcode byte. It is built once in init rather than looked up through a
// giant switch, since most families are shaped identically across their
// width/sign variants and register cleanly in a loop.
var dispatch [256]opFunc

func reservedOp(vm *VM) *Fault {
	return errInvalidInst
}

func init() {
	for i := range dispatch {
		dispatch[i] = reservedOp
	}

	registerControlOps(dispatch[:])
	registerStackOps(dispatch[:])
	registerLogicOps(dispatch[:])
	registerCompareOps(dispatch[:])
	registerFlowOps(dispatch[:])
	registerArithOps(dispatch[:])
	registerConvertOps(dispatch[:])
	registerMemOps(dispatch[:])
	registerDebugOps(dispatch[:])

	// opHalt is special-cased in decodeLoop and never dispatched, but a
	// slot is kept reserved so an accidental call through the table is
	// at least well-defined.
	dispatch[opHalt] = func(vm *VM) *Fault { return nil }
	// opNop advances past its single byte and does nothing else.
	dispatch[opNop] = func(vm *VM) *Fault { return vm.advancePC(1) }
}
