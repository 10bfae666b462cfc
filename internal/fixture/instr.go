package fixture

import "irlift/internal/foreign"

type incomingEdge struct {
	value foreign.Value
	block *Block
}

type clauseEntry struct {
	value   foreign.Constant
	isCatch bool
}

// Instr is an instruction handle. It is built with NewInstr plus the chained
// setters below; only the queries relevant to the opcode need configuring,
// matching the wide-surface contract where decoders only call what applies.
type Instr struct {
	op       foreign.Opcode
	name     string
	typ      *Type
	operands []foreign.Value

	succs       []*Block
	normal      *Block
	unwind      *Block
	defaultDest *Block
	handlers    []*Block
	incoming    []incomingEdge

	intPred   foreign.IntPredicate
	floatPred foreign.FloatPredicate

	volatile        bool
	align           uint32
	ordering        foreign.AtomicOrdering
	failureOrdering foreign.AtomicOrdering
	singleThread    bool
	rmwOp           foreign.RMWOp
	allocated       *Type
	inBounds        bool

	indices []uint32

	called   foreign.Value
	args     []foreign.Value
	tail     bool
	callConv uint32
	attrs    map[foreign.AttrIndex][]foreign.Attribute

	cleanup bool
	clauses []clauseEntry

	loc *foreign.DebugLoc
}

// NewInstr builds an instruction handle with the given opcode, result type,
// and operand list.
func NewInstr(op foreign.Opcode, typ *Type, operands ...foreign.Value) *Instr {
	return &Instr{op: op, typ: typ, operands: operands}
}

// Named sets the explicit result name; unset means the decoder numbers it.
func (in *Instr) Named(name string) *Instr { in.name = name; return in }

// Succs sets the successor block list.
func (in *Instr) Succs(blocks ...*Block) *Instr { in.succs = blocks; return in }

// Normal sets the non-exceptional destination (invoke, callbr).
func (in *Instr) Normal(b *Block) *Instr { in.normal = b; return in }

// Unwind sets the exceptional destination (invoke, cleanupret, catchswitch).
func (in *Instr) Unwind(b *Block) *Instr { in.unwind = b; return in }

// Default sets the switch default destination.
func (in *Instr) Default(b *Block) *Instr { in.defaultDest = b; return in }

// WithHandlers sets the catchswitch handler blocks.
func (in *Instr) WithHandlers(blocks ...*Block) *Instr { in.handlers = blocks; return in }

// In appends one phi incoming edge.
func (in *Instr) In(v foreign.Value, b *Block) *Instr {
	in.incoming = append(in.incoming, incomingEdge{value: v, block: b})
	return in
}

// Pred sets the icmp predicate.
func (in *Instr) Pred(p foreign.IntPredicate) *Instr { in.intPred = p; return in }

// FPred sets the fcmp predicate.
func (in *Instr) FPred(p foreign.FloatPredicate) *Instr { in.floatPred = p; return in }

// Volatile marks the memory access volatile.
func (in *Instr) Volatile() *Instr { in.volatile = true; return in }

// Aligned sets the access alignment.
func (in *Instr) Aligned(align uint32) *Instr { in.align = align; return in }

// Atomic sets the (success) memory ordering.
func (in *Instr) Atomic(o foreign.AtomicOrdering) *Instr { in.ordering = o; return in }

// Failure sets the cmpxchg failure ordering.
func (in *Instr) Failure(o foreign.AtomicOrdering) *Instr { in.failureOrdering = o; return in }

// SyncSingleThread restricts atomicity to the current thread.
func (in *Instr) SyncSingleThread() *Instr { in.singleThread = true; return in }

// RMW sets the atomicrmw operation.
func (in *Instr) RMW(op foreign.RMWOp) *Instr { in.rmwOp = op; return in }

// Allocates sets the alloca element type.
func (in *Instr) Allocates(t *Type) *Instr { in.allocated = t; return in }

// InBounds marks the gep inbounds.
func (in *Instr) InBounds() *Instr { in.inBounds = true; return in }

// Indexed sets the extractvalue/insertvalue index path.
func (in *Instr) Indexed(indices ...uint32) *Instr { in.indices = indices; return in }

// Calls sets the callee and argument list for call-like instructions.
func (in *Instr) Calls(callee foreign.Value, args ...foreign.Value) *Instr {
	in.called = callee
	in.args = args
	return in
}

// Tail marks the call a tail call.
func (in *Instr) Tail() *Instr { in.tail = true; return in }

// Conv sets the call-site calling convention code.
func (in *Instr) Conv(code uint32) *Instr { in.callConv = code; return in }

// WithAttrs attaches attribute handles at the given index.
func (in *Instr) WithAttrs(idx foreign.AttrIndex, attrs ...foreign.Attribute) *Instr {
	if in.attrs == nil {
		in.attrs = make(map[foreign.AttrIndex][]foreign.Attribute)
	}
	in.attrs[idx] = append(in.attrs[idx], attrs...)
	return in
}

// Cleanup marks the landingpad a cleanup pad.
func (in *Instr) Cleanup() *Instr { in.cleanup = true; return in }

// WithClause appends one landingpad clause.
func (in *Instr) WithClause(value *Const, isCatch bool) *Instr {
	in.clauses = append(in.clauses, clauseEntry{value: value, isCatch: isCatch})
	return in
}

// At attaches a source location.
func (in *Instr) At(loc foreign.DebugLoc) *Instr { in.loc = &loc; return in }

// Value interface.

func (in *Instr) Name() string { return in.name }
func (in *Instr) Type() foreign.Type { return in.typ }
func (in *Instr) IsConstant() bool { return false }
func (in *Instr) IsMetadata() bool { return false }
func (in *Instr) AsConstant() foreign.Constant { return nil }
func (in *Instr) AsBlock() foreign.Block { return nil }

// Instruction interface.

func (in *Instr) Opcode() foreign.Opcode { return in.op }
func (in *Instr) NumOperands() int { return len(in.operands) }
func (in *Instr) Operand(i int) foreign.Value { return in.operands[i] }
func (in *Instr) NumSuccessors() int { return len(in.succs) }
func (in *Instr) Successor(i int) foreign.Block { return in.succs[i] }

func (in *Instr) NormalDest() (foreign.Block, bool) {
	if in.normal == nil {
		return nil, false
	}
	return in.normal, true
}

func (in *Instr) UnwindDest() (foreign.Block, bool) {
	if in.unwind == nil {
		return nil, false
	}
	return in.unwind, true
}

func (in *Instr) SwitchDefaultDest() foreign.Block {
	if in.defaultDest == nil {
		return nil
	}
	return in.defaultDest
}

func (in *Instr) Handlers() []foreign.Block {
	if in.handlers == nil {
		return nil
	}
	out := make([]foreign.Block, len(in.handlers))
	for i, b := range in.handlers {
		out[i] = b
	}
	return out
}

func (in *Instr) NumIncoming() int { return len(in.incoming) }

func (in *Instr) Incoming(i int) (foreign.Value, foreign.Block) {
	edge := in.incoming[i]
	return edge.value, edge.block
}

func (in *Instr) IntPredicate() foreign.IntPredicate { return in.intPred }
func (in *Instr) FloatPredicate() foreign.FloatPredicate { return in.floatPred }

func (in *Instr) IsVolatile() bool { return in.volatile }
func (in *Instr) Alignment() uint32 { return in.align }
func (in *Instr) Ordering() foreign.AtomicOrdering { return in.ordering }
func (in *Instr) FailureOrdering() foreign.AtomicOrdering { return in.failureOrdering }
func (in *Instr) SingleThread() bool { return in.singleThread }
func (in *Instr) RMWOperation() foreign.RMWOp { return in.rmwOp }
func (in *Instr) IsInBounds() bool { return in.inBounds }

func (in *Instr) AllocatedType() foreign.Type {
	if in.allocated == nil {
		return nil
	}
	return in.allocated
}

func (in *Instr) Indices() []uint32 { return in.indices }

func (in *Instr) CalledValue() foreign.Value { return in.called }
func (in *Instr) NumArgOperands() int { return len(in.args) }
func (in *Instr) ArgOperand(i int) foreign.Value { return in.args[i] }
func (in *Instr) IsTailCall() bool { return in.tail }
func (in *Instr) CallingConv() uint32 { return in.callConv }

func (in *Instr) CallAttributes(idx foreign.AttrIndex) []foreign.Attribute {
	return in.attrs[idx]
}

func (in *Instr) IsCleanup() bool { return in.cleanup }
func (in *Instr) NumClauses() int { return len(in.clauses) }

func (in *Instr) Clause(i int) (foreign.Constant, bool) {
	entry := in.clauses[i]
	return entry.value, entry.isCatch
}

func (in *Instr) DebugLoc() (foreign.DebugLoc, bool) {
	if in.loc == nil {
		return foreign.DebugLoc{}, false
	}
	return *in.loc, true
}

// Block is a basic-block handle.
type Block struct {
	name   string
	instrs []*Instr
}

// NewBlock builds a block; an empty name makes it unnamed.
func NewBlock(name string) *Block { return &Block{name: name} }

// Add appends instructions to the block and returns it.
func (b *Block) Add(instrs ...*Instr) *Block {
	b.instrs = append(b.instrs, instrs...)
	return b
}

func (b *Block) Name() string { return b.name }

func (b *Block) Instructions() []foreign.Instruction {
	out := make([]foreign.Instruction, len(b.instrs))
	for i, in := range b.instrs {
		out[i] = in
	}
	return out
}
