package foreign

// Module is the entry handle to a fully-parsed foreign module.
type Module interface {
	Name() string
	SourceFilename() string
	TargetTriple() string
	DataLayout() string
	Functions() []Function
	Globals() []Global

	// AttributeKindForName resolves a symbolic attribute name to the foreign
	// library's enumerated identifier. A false return means the library
	// version does not know the name at all.
	AttributeKindForName(name string) (uint32, bool)
}

// Global is a module-level global variable handle.
type Global interface {
	Name() string
	Type() Type
	Linkage() Linkage
	HasInitializer() bool
}

// Function is a foreign function handle.
type Function interface {
	Name() string
	Parameters() []Value
	Blocks() []Block
	ReturnType() Type
	IsVariadic() bool

	Linkage() Linkage
	Visibility() Visibility
	StorageClass() DLLStorageClass
	CallingConv() uint32
	Section() (string, bool)
	Comdat() (name string, kind ComdatKind, ok bool)
	Alignment() uint32
	GCName() (string, bool)
	Personality() (Value, bool)

	// Attributes returns the attribute handles attached at the given index.
	Attributes(idx AttrIndex) []Attribute

	DebugLoc() (DebugLoc, bool)
}

// Block is a foreign basic-block handle. Instructions are returned in
// declaration order; the provider guarantees the last one is a terminator.
type Block interface {
	Name() string
	Instructions() []Instruction
}

// Value is any foreign value handle: a parameter, an instruction result, a
// constant, or a metadata wrapper.
type Value interface {
	Name() string
	Type() Type
	IsConstant() bool
	IsMetadata() bool

	// AsConstant returns the constant view of this value, or nil if the
	// value is not a constant.
	AsConstant() Constant

	// AsBlock returns the basic block this value references, or nil if the
	// value is not a block reference. Branch operands are block references.
	AsBlock() Block
}

// Constant is the constant view of a foreign value handle.
type Constant interface {
	Value
	ConstKind() ConstKind
	IntValue() uint64
	FloatValue() float64

	// Elements returns aggregate members, or expression operands for
	// ConstExpr.
	Elements() []Constant

	ExprOpcode() Opcode

	// GlobalValueName is the referenced symbol for ConstGlobalRef, or the
	// enclosing function for ConstBlockAddress.
	GlobalValueName() string
	BlockAddressBlockName() string
}

// Instruction is a foreign instruction handle. The provider exposes one wide
// query surface for all opcodes; decoders only call the queries that apply to
// the opcode at hand.
type Instruction interface {
	Value
	Opcode() Opcode
	NumOperands() int
	Operand(i int) Value

	// Control-flow queries.
	NumSuccessors() int
	Successor(i int) Block
	NormalDest() (Block, bool)
	UnwindDest() (Block, bool)
	SwitchDefaultDest() Block
	Handlers() []Block

	// Phi queries.
	NumIncoming() int
	Incoming(i int) (Value, Block)

	// Comparison queries.
	IntPredicate() IntPredicate
	FloatPredicate() FloatPredicate

	// Memory queries.
	IsVolatile() bool
	Alignment() uint32
	Ordering() AtomicOrdering
	FailureOrdering() AtomicOrdering
	SingleThread() bool
	RMWOperation() RMWOp
	AllocatedType() Type
	IsInBounds() bool

	// Aggregate access queries.
	Indices() []uint32

	// Call-site queries.
	CalledValue() Value
	NumArgOperands() int
	ArgOperand(i int) Value
	IsTailCall() bool
	CallingConv() uint32
	CallAttributes(idx AttrIndex) []Attribute

	// Landingpad queries.
	IsCleanup() bool
	NumClauses() int
	Clause(i int) (value Constant, isCatch bool)

	DebugLoc() (DebugLoc, bool)
}

// Attribute is a foreign attribute handle: either an enumerated attribute
// (with an optional integer payload) or a string attribute.
type Attribute interface {
	IsEnum() bool
	IsString() bool
	EnumKind() uint32
	EnumValue() uint64
	StringKind() string
	StringValue() string
}

// Type is a foreign type handle.
type Type interface {
	Kind() TypeKind
	BitWidth() uint32
	Elem() Type
	AddrSpace() uint32
	Count() uint64
	Return() Type
	Params() []Type
	IsVariadic() bool
	StructName() string
	IsOpaqueStruct() bool
	IsPacked() bool
	Fields() []Type
}
