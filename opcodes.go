// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// OperandShape describes the immediate operand(s) following an opcode
// byte in the bytecode stream.
type OperandShape int

// The recognized immediate-operand shapes.
const (
	OperandNone OperandShape = iota
	OperandU30
	OperandU30Pair
	OperandS24
	OperandByte
	OperandDebugTriplet // ubyte, u30, ubyte, u30
	OperandLookupSwitch // s24 default, u30 case_count, case_count+1 s24 offsets
)

// ControlFlow describes an instruction's effect on the instruction
// pointer.
type ControlFlow int

// The recognized control-flow effects.
const (
	CFNone ControlFlow = iota
	CFJump
	CFBranch
	CFSwitch
	CFReturn
	CFThrow
)

// varArgs marks an opcode whose pop count depends on a runtime argument
// count rather than a fixed table value; PopCount computes it directly.
const varArgs = -1

// OpcodeInfo is one entry of the 256-slot opcode table: everything about
// an opcode's shape that can be known statically, without executing it.
type OpcodeInfo struct {
	Name    string
	Operand OperandShape
	Flow    ControlFlow
	Pop     int // varArgs when the count is opcode/argument dependent
	Push    int

	PushScope bool
	PopScope  bool

	ReadsLocal  bool
	WritesLocal bool

	Debug bool
	Valid bool
}

// Opcodes is the 256-entry static metadata table, indexed by opcode byte.
// Bytes with no AVM2 instruction assigned are left at the zero value,
// Valid false.
var Opcodes [256]OpcodeInfo

func op(b byte, info OpcodeInfo) {
	info.Valid = true
	Opcodes[b] = info
}

func init() {
	op(0x02, OpcodeInfo{Name: "nop"})
	op(0x03, OpcodeInfo{Name: "throw", Flow: CFThrow, Pop: 1})
	op(0x04, OpcodeInfo{Name: "getsuper", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x05, OpcodeInfo{Name: "setsuper", Operand: OperandU30, Pop: varArgs})
	op(0x06, OpcodeInfo{Name: "dxns", Operand: OperandU30})
	op(0x07, OpcodeInfo{Name: "dxnslate", Pop: 1})
	op(0x08, OpcodeInfo{Name: "kill", Operand: OperandU30, WritesLocal: true})
	op(0x09, OpcodeInfo{Name: "label"})
	op(0x0c, OpcodeInfo{Name: "ifnlt", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x0d, OpcodeInfo{Name: "ifnle", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x0e, OpcodeInfo{Name: "ifngt", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x0f, OpcodeInfo{Name: "ifnge", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x10, OpcodeInfo{Name: "jump", Operand: OperandS24, Flow: CFJump})
	op(0x11, OpcodeInfo{Name: "iftrue", Operand: OperandS24, Flow: CFBranch, Pop: 1})
	op(0x12, OpcodeInfo{Name: "iffalse", Operand: OperandS24, Flow: CFBranch, Pop: 1})
	op(0x13, OpcodeInfo{Name: "ifeq", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x14, OpcodeInfo{Name: "ifne", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x15, OpcodeInfo{Name: "iflt", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x16, OpcodeInfo{Name: "ifle", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x17, OpcodeInfo{Name: "ifgt", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x18, OpcodeInfo{Name: "ifge", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x19, OpcodeInfo{Name: "ifstricteq", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x1a, OpcodeInfo{Name: "ifstrictne", Operand: OperandS24, Flow: CFBranch, Pop: 2})
	op(0x1b, OpcodeInfo{Name: "lookupswitch", Operand: OperandLookupSwitch, Flow: CFSwitch, Pop: 1})
	op(0x1c, OpcodeInfo{Name: "pushwith", Pop: 1, PushScope: true})
	op(0x1d, OpcodeInfo{Name: "popscope", PopScope: true})
	op(0x1e, OpcodeInfo{Name: "nextname", Pop: 2, Push: 1})
	op(0x1f, OpcodeInfo{Name: "hasnext", Pop: 2, Push: 1})
	op(0x20, OpcodeInfo{Name: "pushnull", Push: 1})
	op(0x21, OpcodeInfo{Name: "pushundefined", Push: 1})
	op(0x23, OpcodeInfo{Name: "nextvalue", Pop: 2, Push: 1})
	op(0x24, OpcodeInfo{Name: "pushbyte", Operand: OperandByte, Push: 1})
	op(0x25, OpcodeInfo{Name: "pushshort", Operand: OperandU30, Push: 1})
	op(0x26, OpcodeInfo{Name: "pushtrue", Push: 1})
	op(0x27, OpcodeInfo{Name: "pushfalse", Push: 1})
	op(0x28, OpcodeInfo{Name: "pushnan", Push: 1})
	op(0x29, OpcodeInfo{Name: "pop", Pop: 1})
	op(0x2a, OpcodeInfo{Name: "dup", Push: 1})
	op(0x2b, OpcodeInfo{Name: "swap", Pop: 2, Push: 2})
	op(0x2c, OpcodeInfo{Name: "pushstring", Operand: OperandU30, Push: 1})
	op(0x2d, OpcodeInfo{Name: "pushint", Operand: OperandU30, Push: 1})
	op(0x2e, OpcodeInfo{Name: "pushuint", Operand: OperandU30, Push: 1})
	op(0x2f, OpcodeInfo{Name: "pushdouble", Operand: OperandU30, Push: 1})
	op(0x30, OpcodeInfo{Name: "pushscope", Pop: 1, PushScope: true})
	op(0x31, OpcodeInfo{Name: "pushnamespace", Operand: OperandU30, Push: 1})
	op(0x32, OpcodeInfo{Name: "hasnext2", Operand: OperandU30Pair, Push: 1, ReadsLocal: true, WritesLocal: true})
	op(0x40, OpcodeInfo{Name: "newfunction", Operand: OperandU30, Push: 1})
	op(0x41, OpcodeInfo{Name: "call", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x42, OpcodeInfo{Name: "construct", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x43, OpcodeInfo{Name: "callmethod", Operand: OperandU30Pair, Pop: varArgs, Push: 1})
	op(0x44, OpcodeInfo{Name: "callstatic", Operand: OperandU30Pair, Pop: varArgs, Push: 1})
	op(0x45, OpcodeInfo{Name: "callsuper", Operand: OperandU30Pair, Pop: varArgs, Push: 1})
	op(0x46, OpcodeInfo{Name: "callproperty", Operand: OperandU30Pair, Pop: varArgs, Push: 1})
	op(0x47, OpcodeInfo{Name: "returnvoid", Flow: CFReturn})
	op(0x48, OpcodeInfo{Name: "returnvalue", Flow: CFReturn, Pop: 1})
	op(0x49, OpcodeInfo{Name: "constructsuper", Operand: OperandU30, Pop: varArgs})
	op(0x4a, OpcodeInfo{Name: "constructprop", Operand: OperandU30Pair, Pop: varArgs, Push: 1})
	op(0x4c, OpcodeInfo{Name: "callproplex", Operand: OperandU30Pair, Pop: varArgs, Push: 1})
	op(0x4e, OpcodeInfo{Name: "callsupervoid", Operand: OperandU30Pair, Pop: varArgs})
	op(0x4f, OpcodeInfo{Name: "callpropvoid", Operand: OperandU30Pair, Pop: varArgs})
	op(0x53, OpcodeInfo{Name: "applytype", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x55, OpcodeInfo{Name: "newobject", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x56, OpcodeInfo{Name: "newarray", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x57, OpcodeInfo{Name: "newactivation", Push: 1})
	op(0x58, OpcodeInfo{Name: "newclass", Operand: OperandU30, Pop: 1, Push: 1})
	op(0x59, OpcodeInfo{Name: "getdescendants", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x5a, OpcodeInfo{Name: "newcatch", Operand: OperandU30, Push: 1})
	op(0x5d, OpcodeInfo{Name: "findpropstrict", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x5e, OpcodeInfo{Name: "findproperty", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x5f, OpcodeInfo{Name: "finddef", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x60, OpcodeInfo{Name: "getlex", Operand: OperandU30, Push: 1})
	op(0x61, OpcodeInfo{Name: "setproperty", Operand: OperandU30, Pop: varArgs})
	op(0x62, OpcodeInfo{Name: "getlocal", Operand: OperandU30, Push: 1, ReadsLocal: true})
	op(0x63, OpcodeInfo{Name: "setlocal", Operand: OperandU30, Pop: 1, WritesLocal: true})
	op(0x64, OpcodeInfo{Name: "getglobalscope", Push: 1})
	op(0x65, OpcodeInfo{Name: "getscopeobject", Operand: OperandByte, Push: 1})
	op(0x66, OpcodeInfo{Name: "getproperty", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x68, OpcodeInfo{Name: "initproperty", Operand: OperandU30, Pop: varArgs})
	op(0x6a, OpcodeInfo{Name: "deleteproperty", Operand: OperandU30, Pop: varArgs, Push: 1})
	op(0x6c, OpcodeInfo{Name: "getslot", Operand: OperandU30, Pop: 1, Push: 1})
	op(0x6d, OpcodeInfo{Name: "setslot", Operand: OperandU30, Pop: 2})
	op(0x6e, OpcodeInfo{Name: "getglobalslot", Operand: OperandU30, Push: 1})
	op(0x6f, OpcodeInfo{Name: "setglobalslot", Operand: OperandU30, Pop: 1})
	op(0x70, OpcodeInfo{Name: "convert_s", Pop: 1, Push: 1})
	op(0x71, OpcodeInfo{Name: "esc_xelem", Pop: 1, Push: 1})
	op(0x72, OpcodeInfo{Name: "esc_xattr", Pop: 1, Push: 1})
	op(0x73, OpcodeInfo{Name: "convert_i", Pop: 1, Push: 1})
	op(0x74, OpcodeInfo{Name: "convert_u", Pop: 1, Push: 1})
	op(0x75, OpcodeInfo{Name: "convert_d", Pop: 1, Push: 1})
	op(0x76, OpcodeInfo{Name: "convert_b", Pop: 1, Push: 1})
	op(0x77, OpcodeInfo{Name: "convert_o", Pop: 1, Push: 1})
	op(0x78, OpcodeInfo{Name: "checkfilter", Pop: 1, Push: 1})
	op(0x80, OpcodeInfo{Name: "coerce", Operand: OperandU30, Pop: 1, Push: 1})
	op(0x82, OpcodeInfo{Name: "coerce_a", Pop: 1, Push: 1})
	op(0x85, OpcodeInfo{Name: "coerce_s", Pop: 1, Push: 1})
	op(0x86, OpcodeInfo{Name: "astype", Operand: OperandU30, Pop: 1, Push: 1})
	op(0x87, OpcodeInfo{Name: "astypelate", Pop: 2, Push: 1})
	op(0x90, OpcodeInfo{Name: "negate", Pop: 1, Push: 1})
	op(0x91, OpcodeInfo{Name: "increment", Pop: 1, Push: 1})
	op(0x92, OpcodeInfo{Name: "inclocal", Operand: OperandU30, ReadsLocal: true, WritesLocal: true})
	op(0x93, OpcodeInfo{Name: "decrement", Pop: 1, Push: 1})
	op(0x94, OpcodeInfo{Name: "declocal", Operand: OperandU30, ReadsLocal: true, WritesLocal: true})
	op(0x95, OpcodeInfo{Name: "typeof", Pop: 1, Push: 1})
	op(0x96, OpcodeInfo{Name: "not", Pop: 1, Push: 1})
	op(0x97, OpcodeInfo{Name: "bitnot", Pop: 1, Push: 1})
	op(0xa0, OpcodeInfo{Name: "add", Pop: 2, Push: 1})
	op(0xa1, OpcodeInfo{Name: "subtract", Pop: 2, Push: 1})
	op(0xa2, OpcodeInfo{Name: "multiply", Pop: 2, Push: 1})
	op(0xa3, OpcodeInfo{Name: "divide", Pop: 2, Push: 1})
	op(0xa4, OpcodeInfo{Name: "modulo", Pop: 2, Push: 1})
	op(0xa5, OpcodeInfo{Name: "lshift", Pop: 2, Push: 1})
	op(0xa6, OpcodeInfo{Name: "rshift", Pop: 2, Push: 1})
	op(0xa7, OpcodeInfo{Name: "urshift", Pop: 2, Push: 1})
	op(0xa8, OpcodeInfo{Name: "bitand", Pop: 2, Push: 1})
	op(0xa9, OpcodeInfo{Name: "bitor", Pop: 2, Push: 1})
	op(0xaa, OpcodeInfo{Name: "bitxor", Pop: 2, Push: 1})
	op(0xab, OpcodeInfo{Name: "equals", Pop: 2, Push: 1})
	op(0xac, OpcodeInfo{Name: "strictequals", Pop: 2, Push: 1})
	op(0xad, OpcodeInfo{Name: "lessthan", Pop: 2, Push: 1})
	op(0xae, OpcodeInfo{Name: "lessequals", Pop: 2, Push: 1})
	op(0xaf, OpcodeInfo{Name: "greaterthan", Pop: 2, Push: 1})
	op(0xb0, OpcodeInfo{Name: "greaterequals", Pop: 2, Push: 1})
	op(0xb1, OpcodeInfo{Name: "instanceof", Pop: 2, Push: 1})
	op(0xb2, OpcodeInfo{Name: "istype", Operand: OperandU30, Pop: 1, Push: 1})
	op(0xb3, OpcodeInfo{Name: "istypelate", Pop: 2, Push: 1})
	op(0xb4, OpcodeInfo{Name: "in", Pop: varArgs, Push: 1})
	op(0xc0, OpcodeInfo{Name: "increment_i", Pop: 1, Push: 1})
	op(0xc1, OpcodeInfo{Name: "decrement_i", Pop: 1, Push: 1})
	op(0xc2, OpcodeInfo{Name: "inclocal_i", Operand: OperandU30, ReadsLocal: true, WritesLocal: true})
	op(0xc3, OpcodeInfo{Name: "declocal_i", Operand: OperandU30, ReadsLocal: true, WritesLocal: true})
	op(0xc4, OpcodeInfo{Name: "negate_i", Pop: 1, Push: 1})
	op(0xc5, OpcodeInfo{Name: "add_i", Pop: 2, Push: 1})
	op(0xc6, OpcodeInfo{Name: "subtract_i", Pop: 2, Push: 1})
	op(0xc7, OpcodeInfo{Name: "multiply_i", Pop: 2, Push: 1})
	op(0xd0, OpcodeInfo{Name: "getlocal0", Push: 1, ReadsLocal: true})
	op(0xd1, OpcodeInfo{Name: "getlocal1", Push: 1, ReadsLocal: true})
	op(0xd2, OpcodeInfo{Name: "getlocal2", Push: 1, ReadsLocal: true})
	op(0xd3, OpcodeInfo{Name: "getlocal3", Push: 1, ReadsLocal: true})
	op(0xd4, OpcodeInfo{Name: "setlocal0", Pop: 1, WritesLocal: true})
	op(0xd5, OpcodeInfo{Name: "setlocal1", Pop: 1, WritesLocal: true})
	op(0xd6, OpcodeInfo{Name: "setlocal2", Pop: 1, WritesLocal: true})
	op(0xd7, OpcodeInfo{Name: "setlocal3", Pop: 1, WritesLocal: true})
	op(0xef, OpcodeInfo{Name: "debug", Operand: OperandDebugTriplet, Debug: true})
	op(0xf0, OpcodeInfo{Name: "debugline", Operand: OperandU30, Debug: true})
	op(0xf1, OpcodeInfo{Name: "debugfile", Operand: OperandU30, Debug: true})
	op(0xf2, OpcodeInfo{Name: "bkptline", Operand: OperandU30, Debug: true})
}

// PopCount computes an opcode's stack effect, resolving the opcode-specific
// formulas for instructions whose pop count depends on a runtime argument
// count (the call/construct family) or on the shape of a multiname operand
// (the property-access family, whose runtime namespace and/or runtime
// local name each consume one additional stack slot).
//
// multinameKind and argCount are ignored by opcodes whose Pop is fixed;
// pass KindInvalid and 0 when the caller has no multiname operand to
// offer. argCount must be >= 0. For the property-access family an invalid
// multinameKind is rejected with ArgumentOutOfRange.
func PopCount(opcodeByte byte, multinameKind MultinameKind, argCount int) (int, error) {
	if argCount < 0 {
		return 0, newErrorf(ArgumentOutOfRange, "argCount", argCount)
	}
	info := Opcodes[opcodeByte]
	if !info.Valid {
		return -1, nil
	}
	if info.Pop != varArgs {
		return info.Pop, nil
	}

	multinameArgs := 0
	switch info.Name {
	case "newarray", "newobject", "call", "construct", "constructsuper", "applytype", "callmethod", "callstatic":
		// No multiname operand; multinameKind is not consulted.
	default:
		n, err := (&Multiname{Kind: multinameKind}).RuntimeArgCount()
		if err != nil {
			return 0, err
		}
		multinameArgs = n
	}

	switch info.Name {
	case "newarray":
		return argCount, nil
	case "newobject":
		// Each of argCount properties contributes a name and a value.
		return 2 * argCount, nil
	case "call":
		// receiver, function, argCount arguments.
		return 2 + argCount, nil
	case "construct", "constructsuper", "applytype":
		return 1 + argCount, nil
	case "callmethod", "callstatic":
		return 1 + argCount, nil
	case "callproperty", "callproplex", "callpropvoid", "callsuper", "callsupervoid", "constructprop":
		return 1 + multinameArgs + argCount, nil
	case "finddef", "findproperty", "findpropstrict":
		return multinameArgs, nil
	case "deleteproperty", "getdescendants", "getproperty", "getsuper", "in":
		return 1 + multinameArgs, nil
	case "initproperty", "setproperty", "setsuper":
		return 2 + multinameArgs, nil
	default:
		return 0, newErrorf(ArgumentOutOfRange, "opcode", opcodeByte)
	}
}
