package ir

// InstrKind enumerates the non-terminator instruction catalog. The set is
// closed: decoders fail fast on anything outside it.
type InstrKind uint8

const (
	InstrInvalid InstrKind = iota

	// Integer and float arithmetic / bitwise, all two-operand.
	InstrAdd
	InstrFAdd
	InstrSub
	InstrFSub
	InstrMul
	InstrFMul
	InstrUDiv
	InstrSDiv
	InstrFDiv
	InstrURem
	InstrSRem
	InstrFRem
	InstrShl
	InstrLShr
	InstrAShr
	InstrAnd
	InstrOr
	InstrXor

	InstrFNeg

	// Memory.
	InstrAlloca
	InstrLoad
	InstrStore
	InstrFence
	InstrCmpXchg
	InstrAtomicRMW
	InstrGetElementPtr

	// Conversions, all one-operand with a destination type.
	InstrTrunc
	InstrZExt
	InstrSExt
	InstrFPToUI
	InstrFPToSI
	InstrUIToFP
	InstrSIToFP
	InstrFPTrunc
	InstrFPExt
	InstrPtrToInt
	InstrIntToPtr
	InstrBitCast
	InstrAddrSpaceCast

	// Everything else.
	InstrICmp
	InstrFCmp
	InstrPhi
	InstrSelect
	InstrFreeze
	InstrCall
	InstrVAArg
	InstrExtractElement
	InstrInsertElement
	InstrShuffleVector
	InstrExtractValue
	InstrInsertValue
	InstrLandingPad
	InstrCatchPad
	InstrCleanupPad
)

// IsBinary reports whether the kind is a two-operand arithmetic or bitwise
// operation stored in the Binary variant.
func (k InstrKind) IsBinary() bool {
	return k >= InstrAdd && k <= InstrXor
}

// IsCast reports whether the kind is a conversion stored in the Cast variant.
func (k InstrKind) IsCast() bool {
	return k >= InstrTrunc && k <= InstrAddrSpaceCast
}

// Instruction is one non-terminator instruction. Variants share a struct
// where their shapes coincide (all binary operations, all casts); Kind always
// selects the exact catalog member.
//
// Result holds the value name assigned in the naming pass; HasResult is false
// for void-typed instructions (store, fence, void calls). Type is the result
// type when HasResult is set.
type Instruction struct {
	Kind      InstrKind
	Result    Name
	HasResult bool
	Type      *Type
	Loc       *DebugLoc

	Binary         BinaryInstr
	FNeg           UnaryInstr
	Alloca         AllocaInstr
	Load           LoadInstr
	Store          StoreInstr
	Fence          FenceInstr
	CmpXchg        CmpXchgInstr
	AtomicRMW      AtomicRMWInstr
	GEP            GEPInstr
	Cast           CastInstr
	ICmp           ICmpInstr
	FCmp           FCmpInstr
	Phi            PhiInstr
	Select         SelectInstr
	Freeze         UnaryInstr
	Call           CallInstr
	VAArg          VAArgInstr
	ExtractElement ExtractElementInstr
	InsertElement  InsertElementInstr
	ShuffleVector  ShuffleVectorInstr
	ExtractValue   ExtractValueInstr
	InsertValue    InsertValueInstr
	LandingPad     LandingPadInstr
	CatchPad       CatchPadInstr
	CleanupPad     CleanupPadInstr
}

// BinaryInstr covers all two-operand arithmetic and bitwise operations.
type BinaryInstr struct {
	X Operand
	Y Operand
}

// UnaryInstr covers fneg and freeze.
type UnaryInstr struct {
	X Operand
}

// AllocaInstr reserves stack space for one value of Allocated type.
type AllocaInstr struct {
	Allocated *Type
	NumElems  Operand
	Align     uint32
}

// LoadInstr reads through a pointer.
type LoadInstr struct {
	Address  Operand
	Volatile bool
	Atomic   MemoryOrdering
	Scope    SyncScope
	Align    uint32
}

// StoreInstr writes through a pointer.
type StoreInstr struct {
	Address  Operand
	Value    Operand
	Volatile bool
	Atomic   MemoryOrdering
	Scope    SyncScope
	Align    uint32
}

// FenceInstr is a memory fence.
type FenceInstr struct {
	Ordering MemoryOrdering
	Scope    SyncScope
}

// CmpXchgInstr is an atomic compare-and-exchange.
type CmpXchgInstr struct {
	Address         Operand
	Expected        Operand
	Replacement     Operand
	Volatile        bool
	SuccessOrdering MemoryOrdering
	FailureOrdering MemoryOrdering
	Scope           SyncScope
}

// AtomicRMWInstr is an atomic read-modify-write.
type AtomicRMWInstr struct {
	Op       RMWOp
	Address  Operand
	Value    Operand
	Volatile bool
	Ordering MemoryOrdering
	Scope    SyncScope
}

// GEPInstr computes an address from a base pointer and index list.
type GEPInstr struct {
	Address  Operand
	Indices  []Operand
	InBounds bool
}

// CastInstr covers all conversion operations; To is the destination type.
type CastInstr struct {
	X  Operand
	To *Type
}

// ICmpInstr is an integer comparison.
type ICmpInstr struct {
	Pred IntPredicate
	X    Operand
	Y    Operand
}

// FCmpInstr is a floating-point comparison.
type FCmpInstr struct {
	Pred FloatPredicate
	X    Operand
	Y    Operand
}

// PhiIncoming is one (value, predecessor block) pair of a phi.
type PhiIncoming struct {
	Value Operand
	Block Name
}

// PhiInstr merges values flowing in from predecessor blocks.
type PhiInstr struct {
	Incoming []PhiIncoming
}

// SelectInstr picks one of two values by condition.
type SelectInstr struct {
	Cond Operand
	True Operand
	Else Operand
}

// CallArg is one call argument with its attached parameter attributes.
type CallArg struct {
	Value Operand
	Attrs []ParamAttr
}

// CallInstr is a direct or indirect function call.
type CallInstr struct {
	Callee      Operand
	Args        []CallArg
	ReturnAttrs []ParamAttr
	FnAttrs     []FuncAttr
	CallConv    CallingConv
	Tail        bool
}

// VAArgInstr advances a va_list and produces the next variadic argument.
type VAArgInstr struct {
	ArgList Operand
	To      *Type
}

// ExtractElementInstr reads one vector lane.
type ExtractElementInstr struct {
	Vector Operand
	Index  Operand
}

// InsertElementInstr writes one vector lane.
type InsertElementInstr struct {
	Vector  Operand
	Element Operand
	Index   Operand
}

// ShuffleVectorInstr permutes two vectors by a constant mask.
type ShuffleVectorInstr struct {
	X    Operand
	Y    Operand
	Mask *Constant
}

// ExtractValueInstr reads a nested aggregate member.
type ExtractValueInstr struct {
	Aggregate Operand
	Indices   []uint32
}

// InsertValueInstr writes a nested aggregate member.
type InsertValueInstr struct {
	Aggregate Operand
	Element   Operand
	Indices   []uint32
}

// LandingPadClause is one catch or filter clause of a landingpad.
type LandingPadClause struct {
	Value   *Constant
	IsCatch bool // false = filter
}

// LandingPadInstr receives an in-flight exception.
type LandingPadInstr struct {
	Clauses []LandingPadClause
	Cleanup bool
}

// CatchPadInstr marks a catch handler scope.
type CatchPadInstr struct {
	CatchSwitch Operand
	Args        []Operand
}

// CleanupPadInstr marks a cleanup scope.
type CleanupPadInstr struct {
	ParentPad Operand
	Args      []Operand
}
