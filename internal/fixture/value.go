package fixture

import "irlift/internal/foreign"

// Param is a function parameter handle.
type Param struct {
	name string
	typ  *Type
}

// NewParam builds a named parameter; an empty name makes it unnamed.
func NewParam(name string, typ *Type) *Param {
	return &Param{name: name, typ: typ}
}

func (p *Param) Name() string { return p.name }
func (p *Param) Type() foreign.Type { return p.typ }
func (p *Param) IsConstant() bool { return false }
func (p *Param) IsMetadata() bool { return false }
func (p *Param) AsConstant() foreign.Constant { return nil }
func (p *Param) AsBlock() foreign.Block { return nil }

// Const is a constant handle. One *Const reused across operand sites interns
// to one owned constant.
type Const struct {
	name      string
	typ       *Type
	kind      foreign.ConstKind
	intVal    uint64
	floatVal  float64
	elems     []*Const
	exprOp    foreign.Opcode
	global    string
	blockName string
}

func (c *Const) Name() string { return c.name }
func (c *Const) Type() foreign.Type { return c.typ }
func (c *Const) IsConstant() bool { return true }
func (c *Const) IsMetadata() bool { return false }
func (c *Const) AsConstant() foreign.Constant { return c }
func (c *Const) AsBlock() foreign.Block { return nil }

func (c *Const) ConstKind() foreign.ConstKind { return c.kind }
func (c *Const) IntValue() uint64 { return c.intVal }
func (c *Const) FloatValue() float64 { return c.floatVal }
func (c *Const) ExprOpcode() foreign.Opcode { return c.exprOp }
func (c *Const) GlobalValueName() string { return c.global }
func (c *Const) BlockAddressBlockName() string { return c.blockName }

func (c *Const) Elements() []foreign.Constant {
	if c.elems == nil {
		return nil
	}
	out := make([]foreign.Constant, len(c.elems))
	for i, e := range c.elems {
		out[i] = e
	}
	return out
}

// IntConst builds an integer constant.
func IntConst(typ *Type, v uint64) *Const {
	return &Const{typ: typ, kind: foreign.ConstInt, intVal: v}
}

// FloatConst builds a floating-point constant.
func FloatConst(typ *Type, v float64) *Const {
	return &Const{typ: typ, kind: foreign.ConstFloat, floatVal: v}
}

// Null builds a null pointer constant.
func Null(typ *Type) *Const { return &Const{typ: typ, kind: foreign.ConstNull} }

// Zero builds a zero-initializer aggregate constant.
func Zero(typ *Type) *Const { return &Const{typ: typ, kind: foreign.ConstAggregateZero} }

// Undef builds an undef constant.
func Undef(typ *Type) *Const { return &Const{typ: typ, kind: foreign.ConstUndef} }

// TokenNone builds the none token constant.
func TokenNone() *Const { return &Const{typ: Token(), kind: foreign.ConstTokenNone} }

// StructConst builds a constant struct from member constants.
func StructConst(typ *Type, elems ...*Const) *Const {
	return &Const{typ: typ, kind: foreign.ConstStruct, elems: elems}
}

// ArrayConst builds a constant array from element constants.
func ArrayConst(typ *Type, elems ...*Const) *Const {
	return &Const{typ: typ, kind: foreign.ConstArray, elems: elems}
}

// VectorConst builds a constant vector from lane constants.
func VectorConst(typ *Type, elems ...*Const) *Const {
	return &Const{typ: typ, kind: foreign.ConstVector, elems: elems}
}

// GlobalRef builds a reference to a global or function symbol.
func GlobalRef(name string, typ *Type) *Const {
	return &Const{name: name, typ: typ, kind: foreign.ConstGlobalRef, global: name}
}

// BlockAddress builds a blockaddress constant.
func BlockAddress(funcName, blockName string, typ *Type) *Const {
	return &Const{typ: typ, kind: foreign.ConstBlockAddress, global: funcName, blockName: blockName}
}

// Expr builds a constant expression over operand constants.
func Expr(op foreign.Opcode, typ *Type, operands ...*Const) *Const {
	return &Const{typ: typ, kind: foreign.ConstExpr, exprOp: op, elems: operands}
}

// blockRef wraps a block as a branch operand.
type blockRef struct {
	block *Block
	typ   *Type
}

// BlockRef returns a value handle referencing the given block, for use as a
// br operand.
func BlockRef(b *Block) foreign.Value {
	return &blockRef{block: b, typ: Label()}
}

func (r *blockRef) Name() string { return r.block.name }
func (r *blockRef) Type() foreign.Type { return r.typ }
func (r *blockRef) IsConstant() bool { return false }
func (r *blockRef) IsMetadata() bool { return false }
func (r *blockRef) AsConstant() foreign.Constant { return nil }
func (r *blockRef) AsBlock() foreign.Block { return r.block }

// metaValue is a metadata wrapper value.
type metaValue struct {
	name string
	typ  *Type
}

// MetadataValue returns a metadata operand handle.
func MetadataValue(name string) foreign.Value {
	return &metaValue{name: name, typ: Metadata()}
}

func (m *metaValue) Name() string { return m.name }
func (m *metaValue) Type() foreign.Type { return m.typ }
func (m *metaValue) IsConstant() bool { return false }
func (m *metaValue) IsMetadata() bool { return true }
func (m *metaValue) AsConstant() foreign.Constant { return nil }
func (m *metaValue) AsBlock() foreign.Block { return nil }

// enumAttr is an enumerated attribute handle.
type enumAttr struct {
	kind  uint32
	value uint64
}

func (a *enumAttr) IsEnum() bool { return true }
func (a *enumAttr) IsString() bool { return false }
func (a *enumAttr) EnumKind() uint32 { return a.kind }
func (a *enumAttr) EnumValue() uint64 { return a.value }
func (a *enumAttr) StringKind() string { return "" }
func (a *enumAttr) StringValue() string { return "" }

// stringAttr is a string attribute handle.
type stringAttr struct {
	kind  string
	value string
}

// StringAttr builds a string attribute like "frame-pointer"="all".
func StringAttr(kind, value string) foreign.Attribute {
	return &stringAttr{kind: kind, value: value}
}

func (a *stringAttr) IsEnum() bool { return false }
func (a *stringAttr) IsString() bool { return true }
func (a *stringAttr) EnumKind() uint32 { return 0 }
func (a *stringAttr) EnumValue() uint64 { return 0 }
func (a *stringAttr) StringKind() string { return a.kind }
func (a *stringAttr) StringValue() string { return a.value }
