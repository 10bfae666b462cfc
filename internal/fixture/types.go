package fixture

import "irlift/internal/foreign"

// Type is a pointer-backed type handle. Handle identity matters: the decoder
// memoizes by the interface value, so reusing one *Type across sites is how a
// fixture expresses "the same type".
type Type struct {
	kind      foreign.TypeKind
	bits      uint32
	elem      *Type
	addrSpace uint32
	count     uint64
	ret       *Type
	params    []*Type
	variadic  bool

	structName string
	opaque     bool
	packed     bool
	fields     []*Type
}

func (t *Type) Kind() foreign.TypeKind { return t.kind }
func (t *Type) BitWidth() uint32 { return t.bits }
func (t *Type) AddrSpace() uint32 { return t.addrSpace }
func (t *Type) Count() uint64 { return t.count }
func (t *Type) IsVariadic() bool { return t.variadic }
func (t *Type) StructName() string { return t.structName }
func (t *Type) IsOpaqueStruct() bool { return t.opaque }
func (t *Type) IsPacked() bool { return t.packed }

func (t *Type) Elem() foreign.Type {
	if t.elem == nil {
		return nil
	}
	return t.elem
}

func (t *Type) Return() foreign.Type {
	if t.ret == nil {
		return nil
	}
	return t.ret
}

func (t *Type) Params() []foreign.Type { return typeHandles(t.params) }
func (t *Type) Fields() []foreign.Type { return typeHandles(t.fields) }

func typeHandles(ts []*Type) []foreign.Type {
	if ts == nil {
		return nil
	}
	out := make([]foreign.Type, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

// Void returns a fresh void type handle.
func Void() *Type { return &Type{kind: foreign.TypeVoid} }

// Int returns an integer type of the given bit width.
func Int(bits uint32) *Type { return &Type{kind: foreign.TypeInteger, bits: bits} }

// Float returns a 32-bit float type.
func Float() *Type { return &Type{kind: foreign.TypeFloat} }

// Double returns a 64-bit float type.
func Double() *Type { return &Type{kind: foreign.TypeDouble} }

// Half returns a 16-bit float type.
func Half() *Type { return &Type{kind: foreign.TypeHalf} }

// Ptr returns a pointer to elem in address space 0.
func Ptr(elem *Type) *Type { return &Type{kind: foreign.TypePointer, elem: elem} }

// PtrIn returns a pointer to elem in the given address space.
func PtrIn(elem *Type, space uint32) *Type {
	return &Type{kind: foreign.TypePointer, elem: elem, addrSpace: space}
}

// Array returns an array of count elems.
func Array(elem *Type, count uint64) *Type {
	return &Type{kind: foreign.TypeArray, elem: elem, count: count}
}

// Vector returns a fixed-width vector of count elems.
func Vector(elem *Type, count uint64) *Type {
	return &Type{kind: foreign.TypeVector, elem: elem, count: count}
}

// ScalableVector returns a scalable vector of count base elems.
func ScalableVector(elem *Type, count uint64) *Type {
	return &Type{kind: foreign.TypeScalableVector, elem: elem, count: count}
}

// Struct returns a literal (unnamed) struct type.
func Struct(fields ...*Type) *Type {
	return &Type{kind: foreign.TypeStruct, fields: fields}
}

// NamedStruct returns a named struct type. Set its body with SetFields,
// which is also how a fixture builds a recursive type.
func NamedStruct(name string, fields ...*Type) *Type {
	return &Type{kind: foreign.TypeStruct, structName: name, fields: fields}
}

// OpaqueStruct returns a named struct with no visible body.
func OpaqueStruct(name string) *Type {
	return &Type{kind: foreign.TypeStruct, structName: name, opaque: true}
}

// Packed marks the struct as packed and returns it.
func (t *Type) Packed() *Type {
	t.packed = true
	return t
}

// SetFields replaces the struct body after construction; with a pointer back
// to t among the fields this builds a cyclic type graph.
func (t *Type) SetFields(fields ...*Type) *Type {
	t.fields = fields
	t.opaque = false
	return t
}

// FuncType returns a function type handle.
func FuncType(ret *Type, params ...*Type) *Type {
	return &Type{kind: foreign.TypeFunction, ret: ret, params: params}
}

// Variadic marks the function type variadic and returns it.
func (t *Type) Variadic() *Type {
	t.variadic = true
	return t
}

// Label returns a basic-block label type.
func Label() *Type { return &Type{kind: foreign.TypeLabel} }

// Token returns a token type.
func Token() *Type { return &Type{kind: foreign.TypeToken} }

// Metadata returns a metadata type.
func Metadata() *Type { return &Type{kind: foreign.TypeMetadata} }
