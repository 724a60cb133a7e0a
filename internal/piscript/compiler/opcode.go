// Package compiler implements a recursive-descent parser and bytecode
// emitter: one compilation context per function scope, each producing a
// Proto (bytecode, constant pool, name table, and upvalue/local
// bookkeeping).
package compiler

// Op is a single bytecode opcode. The set is closed and deliberately small
// enough that a disassembly reads like the source it came from.
type Op byte

const (
	OpLoadConst Op = iota
	OpLoadGlobal
	OpStoreGlobal
	OpLoadLocal
	OpStoreLocal
	OpLoadUpvalue
	OpStoreUpvalue
	OpPushNil
	OpDupTop
	OpPop
	OpPopN
	OpJump
	OpJumpIfTrue
	OpJumpIfFalse
	OpCall
	OpReturn
	OpHalt
	OpBinary
	OpCompare
	OpUnary
	OpPushList
	OpPushMap
	OpPushRange
	OpPushSlice
	OpGetItem
	OpSetItem
	OpPushIter
	OpPopIter
	OpLoop
	OpPushFunction
	OpPushClosure
	OpCloseUpvalue
	OpNoOp
	OpDebug
	OpPrint
)

var opNames = [...]string{
	OpLoadConst:    "LOAD_CONST",
	OpLoadGlobal:   "LOAD_GLOBAL",
	OpStoreGlobal:  "STORE_GLOBAL",
	OpLoadLocal:    "LOAD_LOCAL",
	OpStoreLocal:   "STORE_LOCAL",
	OpLoadUpvalue:  "LOAD_UPVALUE",
	OpStoreUpvalue: "STORE_UPVALUE",
	OpPushNil:      "PUSH_NIL",
	OpDupTop:       "DUP_TOP",
	OpPop:          "POP",
	OpPopN:         "POP_N",
	OpJump:         "JUMP",
	OpJumpIfTrue:   "JUMP_IF_TRUE",
	OpJumpIfFalse:  "JUMP_IF_FALSE",
	OpCall:         "CALL",
	OpReturn:       "RETURN",
	OpHalt:         "HALT",
	OpBinary:       "BINARY",
	OpCompare:      "COMPARE",
	OpUnary:        "UNARY",
	OpPushList:     "PUSH_LIST",
	OpPushMap:      "PUSH_MAP",
	OpPushRange:    "PUSH_RANGE",
	OpPushSlice:    "PUSH_SLICE",
	OpGetItem:      "GET_ITEM",
	OpSetItem:      "SET_ITEM",
	OpPushIter:     "PUSH_ITER",
	OpPopIter:      "POP_ITER",
	OpLoop:         "LOOP",
	OpPushFunction: "PUSH_FUNCTION",
	OpPushClosure:  "PUSH_CLOSURE",
	OpCloseUpvalue: "CLOSE_UPVALUE",
	OpNoOp:         "NO_OP",
	OpDebug:        "DEBUG",
	OpPrint:        "PRINT",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return "UNKNOWN_OP"
}

// BinOp is the sub-op index BINARY indexes into the fixed operator table.
type BinOp byte

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinUShr
	BinDot // @ dot-product
)

// CompareOp is the sub-op index COMPARE indexes into.
type CompareOp byte

const (
	CmpEq CompareOp = iota
	CmpNeq
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	CmpIs
	CmpIn
)

// UnaryOp is the sub-op index UNARY indexes into.
type UnaryOp byte

const (
	UnNeg UnaryOp = iota
	UnNot
	UnBitNot
	UnLen
	UnTypeof
	UnPos
)

// instrSize gives the total encoded size (opcode + operand bytes) for each
// opcode.
func instrSize(op Op) int {
	switch op {
	case OpPushNil, OpDupTop, OpPop, OpReturn, OpHalt, OpPushRange, OpPushSlice,
		OpGetItem, OpSetItem, OpPushIter, OpPopIter, OpNoOp, OpPrint:
		return 1
	case OpLoadGlobal, OpStoreGlobal, OpLoadLocal, OpStoreLocal, OpLoadUpvalue,
		OpStoreUpvalue, OpCall, OpPopN, OpBinary, OpCompare, OpUnary, OpPushFunction,
		OpDebug, OpCloseUpvalue:
		return 2
	case OpLoadConst, OpJump, OpJumpIfTrue, OpJumpIfFalse, OpPushList, OpPushMap, OpLoop, OpPushClosure:
		return 3
	default:
		return 1
	}
}
