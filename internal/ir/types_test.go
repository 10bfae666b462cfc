package ir_test

import (
	"testing"

	"irlift/internal/ir"
)

func intType(bits uint32) *ir.Type {
	return &ir.Type{Kind: ir.TypeInt, Bits: bits}
}

func ptrTo(elem *ir.Type) *ir.Type {
	return &ir.Type{Kind: ir.TypePointer, Elem: elem}
}

func TestTypeEqual_Structural(t *testing.T) {
	tests := []struct {
		name string
		a, b *ir.Type
		want bool
	}{
		{"same width ints", intType(32), intType(32), true},
		{"different width ints", intType(32), intType(64), false},
		{"int vs float", intType(32), &ir.Type{Kind: ir.TypeFloat, Float: ir.FloatSingle}, false},
		{"float kinds", &ir.Type{Kind: ir.TypeFloat, Float: ir.FloatSingle},
			&ir.Type{Kind: ir.TypeFloat, Float: ir.FloatDouble}, false},
		{"pointers match by pointee", ptrTo(intType(8)), ptrTo(intType(8)), true},
		{"pointers differ by pointee", ptrTo(intType(8)), ptrTo(intType(16)), false},
		{"pointers differ by addrspace", ptrTo(intType(8)),
			&ir.Type{Kind: ir.TypePointer, Elem: intType(8), AddrSpace: 1}, false},
		{"arrays", &ir.Type{Kind: ir.TypeArray, Elem: intType(8), Count: 4},
			&ir.Type{Kind: ir.TypeArray, Elem: intType(8), Count: 4}, true},
		{"arrays differ by count", &ir.Type{Kind: ir.TypeArray, Elem: intType(8), Count: 4},
			&ir.Type{Kind: ir.TypeArray, Elem: intType(8), Count: 5}, false},
		{"scalable vs fixed vector",
			&ir.Type{Kind: ir.TypeVector, Elem: intType(32), Count: 4, Scalable: true},
			&ir.Type{Kind: ir.TypeVector, Elem: intType(32), Count: 4}, false},
		{"literal structs by fields",
			&ir.Type{Kind: ir.TypeStruct, Fields: []*ir.Type{intType(8), intType(16)}},
			&ir.Type{Kind: ir.TypeStruct, Fields: []*ir.Type{intType(8), intType(16)}}, true},
		{"packed vs unpacked",
			&ir.Type{Kind: ir.TypeStruct, Fields: []*ir.Type{intType(8)}, Packed: true},
			&ir.Type{Kind: ir.TypeStruct, Fields: []*ir.Type{intType(8)}}, false},
		{"functions",
			&ir.Type{Kind: ir.TypeFunc, Return: ir.VoidType(), Params: []*ir.Type{intType(32)}},
			&ir.Type{Kind: ir.TypeFunc, Return: ir.VoidType(), Params: []*ir.Type{intType(32)}}, true},
		{"variadic mismatch",
			&ir.Type{Kind: ir.TypeFunc, Return: ir.VoidType(), Variadic: true},
			&ir.Type{Kind: ir.TypeFunc, Return: ir.VoidType()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal is not symmetric for %s / %s", tt.a, tt.b)
			}
		})
	}
}

func TestTypeEqual_NamedStructsCompareByName(t *testing.T) {
	// Two distinct nodes with the same name are equal regardless of their
	// bodies; that rule keeps recursive comparison finite.
	a := &ir.Type{Kind: ir.TypeStruct, Name: "node"}
	a.Fields = []*ir.Type{intType(64), ptrTo(a)}
	b := &ir.Type{Kind: ir.TypeStruct, Name: "node", Opaque: true}

	if !a.Equal(b) {
		t.Errorf("same-named structs compare unequal")
	}

	c := &ir.Type{Kind: ir.TypeStruct, Name: "other"}
	if a.Equal(c) {
		t.Errorf("differently named structs compare equal")
	}
}

func TestTypeString(t *testing.T) {
	recursive := &ir.Type{Kind: ir.TypeStruct, Name: "node"}
	recursive.Fields = []*ir.Type{intType(64), ptrTo(recursive)}

	tests := []struct {
		typ  *ir.Type
		want string
	}{
		{ir.VoidType(), "void"},
		{intType(1), "i1"},
		{intType(32), "i32"},
		{&ir.Type{Kind: ir.TypeFloat, Float: ir.FloatDouble}, "double"},
		{ptrTo(intType(8)), "i8*"},
		{&ir.Type{Kind: ir.TypePointer, Elem: intType(8), AddrSpace: 3}, "i8 addrspace(3)*"},
		{&ir.Type{Kind: ir.TypeArray, Elem: intType(32), Count: 10}, "[10 x i32]"},
		{&ir.Type{Kind: ir.TypeVector, Elem: intType(32), Count: 4}, "<4 x i32>"},
		{&ir.Type{Kind: ir.TypeVector, Elem: intType(32), Count: 4, Scalable: true}, "<vscale x 4 x i32>"},
		{&ir.Type{Kind: ir.TypeStruct, Fields: []*ir.Type{intType(8), intType(32)}}, "{ i8, i32 }"},
		{&ir.Type{Kind: ir.TypeStruct, Fields: []*ir.Type{intType(8)}, Packed: true}, "<{ i8 }>"},
		{&ir.Type{Kind: ir.TypeStruct, Opaque: true}, "opaque"},
		{recursive, "%node"},
		{&ir.Type{Kind: ir.TypeFunc, Return: intType(32), Params: []*ir.Type{intType(32), ptrTo(intType(8))}}, "i32 (i32, i8*)"},
		{&ir.Type{Kind: ir.TypeFunc, Return: ir.VoidType(), Variadic: true}, "void (...)"},
		{ir.LabelType(), "label"},
		{ir.MetadataType(), "metadata"},
		{nil, "<nil type>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
