package foreign

// Opcode identifies the operation of a foreign instruction.
type Opcode uint8

const (
	OpInvalid Opcode = iota

	// Terminators.
	OpRet
	OpBr
	OpSwitch
	OpIndirectBr
	OpInvoke
	OpResume
	OpUnreachable
	OpCleanupRet
	OpCatchRet
	OpCatchSwitch
	OpCallBr

	// Unary and binary operations.
	OpFNeg
	OpAdd
	OpFAdd
	OpSub
	OpFSub
	OpMul
	OpFMul
	OpUDiv
	OpSDiv
	OpFDiv
	OpURem
	OpSRem
	OpFRem
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor

	// Memory operations.
	OpAlloca
	OpLoad
	OpStore
	OpFence
	OpAtomicCmpXchg
	OpAtomicRMW
	OpGetElementPtr

	// Conversions.
	OpTrunc
	OpZExt
	OpSExt
	OpFPToUI
	OpFPToSI
	OpUIToFP
	OpSIToFP
	OpFPTrunc
	OpFPExt
	OpPtrToInt
	OpIntToPtr
	OpBitCast
	OpAddrSpaceCast

	// Everything else.
	OpICmp
	OpFCmp
	OpPhi
	OpCall
	OpSelect
	OpVAArg
	OpExtractElement
	OpInsertElement
	OpShuffleVector
	OpExtractValue
	OpInsertValue
	OpLandingPad
	OpCatchPad
	OpCleanupPad
	OpFreeze
)

var opcodeNames = map[Opcode]string{
	OpRet: "ret", OpBr: "br", OpSwitch: "switch", OpIndirectBr: "indirectbr",
	OpInvoke: "invoke", OpResume: "resume", OpUnreachable: "unreachable",
	OpCleanupRet: "cleanupret", OpCatchRet: "catchret", OpCatchSwitch: "catchswitch",
	OpCallBr: "callbr",
	OpFNeg:   "fneg", OpAdd: "add", OpFAdd: "fadd", OpSub: "sub", OpFSub: "fsub",
	OpMul: "mul", OpFMul: "fmul", OpUDiv: "udiv", OpSDiv: "sdiv", OpFDiv: "fdiv",
	OpURem: "urem", OpSRem: "srem", OpFRem: "frem", OpShl: "shl", OpLShr: "lshr",
	OpAShr: "ashr", OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpAlloca: "alloca", OpLoad: "load", OpStore: "store", OpFence: "fence",
	OpAtomicCmpXchg: "cmpxchg", OpAtomicRMW: "atomicrmw", OpGetElementPtr: "getelementptr",
	OpTrunc: "trunc", OpZExt: "zext", OpSExt: "sext", OpFPToUI: "fptoui",
	OpFPToSI: "fptosi", OpUIToFP: "uitofp", OpSIToFP: "sitofp", OpFPTrunc: "fptrunc",
	OpFPExt: "fpext", OpPtrToInt: "ptrtoint", OpIntToPtr: "inttoptr",
	OpBitCast: "bitcast", OpAddrSpaceCast: "addrspacecast",
	OpICmp: "icmp", OpFCmp: "fcmp", OpPhi: "phi", OpCall: "call", OpSelect: "select",
	OpVAArg: "va_arg", OpExtractElement: "extractelement", OpInsertElement: "insertelement",
	OpShuffleVector: "shufflevector", OpExtractValue: "extractvalue",
	OpInsertValue: "insertvalue", OpLandingPad: "landingpad", OpCatchPad: "catchpad",
	OpCleanupPad: "cleanuppad", OpFreeze: "freeze",
}

// String returns the textual mnemonic of the opcode.
func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "invalid"
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

// OpcodeByName resolves a textual mnemonic back to the opcode.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// IsTerminator reports whether the opcode ends a basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpRet, OpBr, OpSwitch, OpIndirectBr, OpInvoke, OpResume,
		OpUnreachable, OpCleanupRet, OpCatchRet, OpCatchSwitch, OpCallBr:
		return true
	default:
		return false
	}
}

// TypeKind classifies a foreign type handle.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeHalf
	TypeBFloat
	TypeFloat
	TypeDouble
	TypeX86FP80
	TypeFP128
	TypePPCFP128
	TypeInteger
	TypePointer
	TypeFunction
	TypeStruct
	TypeArray
	TypeVector
	TypeScalableVector
	TypeLabel
	TypeToken
	TypeMetadata
)

// ConstKind classifies a foreign constant handle.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstNull
	ConstAggregateZero
	ConstStruct
	ConstArray
	ConstVector
	ConstUndef
	ConstBlockAddress
	ConstGlobalRef
	ConstTokenNone
	ConstExpr
)

// Linkage mirrors the foreign library's linkage classes.
type Linkage uint8

const (
	LinkExternal Linkage = iota
	LinkAvailableExternally
	LinkLinkOnceAny
	LinkLinkOnceODR
	LinkWeakAny
	LinkWeakODR
	LinkAppending
	LinkInternal
	LinkPrivate
	LinkExternalWeak
	LinkCommon
)

// Visibility mirrors the foreign library's visibility styles.
type Visibility uint8

const (
	VisibilityDefault Visibility = iota
	VisibilityHidden
	VisibilityProtected
)

// DLLStorageClass mirrors the foreign library's storage classes.
type DLLStorageClass uint8

const (
	StorageDefault DLLStorageClass = iota
	StorageImport
	StorageExport
)

// ComdatKind mirrors the foreign library's comdat selection kinds.
type ComdatKind uint8

const (
	ComdatAny ComdatKind = iota
	ComdatExactMatch
	ComdatLargest
	ComdatNoDuplicates
	ComdatSameSize
)

// AtomicOrdering mirrors the foreign library's memory orderings.
type AtomicOrdering uint8

const (
	OrderingNotAtomic AtomicOrdering = iota
	OrderingUnordered
	OrderingMonotonic
	OrderingAcquire
	OrderingRelease
	OrderingAcquireRelease
	OrderingSequentiallyConsistent
)

// IntPredicate mirrors the foreign library's integer comparison predicates.
type IntPredicate uint8

const (
	IntEQ IntPredicate = iota
	IntNE
	IntUGT
	IntUGE
	IntULT
	IntULE
	IntSGT
	IntSGE
	IntSLT
	IntSLE
)

// FloatPredicate mirrors the foreign library's float comparison predicates.
type FloatPredicate uint8

const (
	FloatFalse FloatPredicate = iota
	FloatOEQ
	FloatOGT
	FloatOGE
	FloatOLT
	FloatOLE
	FloatONE
	FloatORD
	FloatUNO
	FloatUEQ
	FloatUGT
	FloatUGE
	FloatULT
	FloatULE
	FloatUNE
	FloatTrue
)

// RMWOp mirrors the foreign library's atomicrmw operations.
type RMWOp uint8

const (
	RMWXchg RMWOp = iota
	RMWAdd
	RMWSub
	RMWAnd
	RMWNand
	RMWOr
	RMWXor
	RMWMax
	RMWMin
	RMWUMax
	RMWUMin
	RMWFAdd
	RMWFSub
)

// DebugLoc is a source position recorded by the foreign library.
type DebugLoc struct {
	Line      uint32
	Col       uint32
	Filename  string
	Directory string
}

// AttrIndex selects an attribute namespace on a call site or function:
// FunctionAttrIndex for function-level attributes, ReturnAttrIndex for the
// return value, and 1-based indices for parameters.
type AttrIndex int32

const (
	FunctionAttrIndex AttrIndex = -1
	ReturnAttrIndex   AttrIndex = 0
)

// ParamAttrIndex returns the AttrIndex for the i-th (0-based) parameter.
func ParamAttrIndex(i int) AttrIndex {
	return AttrIndex(i) + 1
}
