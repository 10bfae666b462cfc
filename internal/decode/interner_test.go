package decode_test

import (
	"testing"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// newSession builds a session over an empty module, for exercising the
// interner directly.
func newSession(t *testing.T) *decode.Session {
	t.Helper()
	s, err := decode.NewSession(fixture.NewModule("test"), decode.Options{})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestInterner_SameHandleSamePointer(t *testing.T) {
	s := newSession(t)
	i32 := fixture.Int(32)

	first, err := s.Interner().Type(i32)
	if err != nil {
		t.Fatalf("Type failed: %v", err)
	}
	second, err := s.Interner().Type(i32)
	if err != nil {
		t.Fatalf("Type failed: %v", err)
	}

	if first != second {
		t.Errorf("same handle interned to distinct instances")
	}
	if first.Kind != ir.TypeInt || first.Bits != 32 {
		t.Errorf("interned type = %+v, want i32", first)
	}
}

func TestInterner_SharedSubtree(t *testing.T) {
	// Two aggregate handles sharing an element handle decode to nodes
	// sharing the owned element.
	s := newSession(t)
	i8 := fixture.Int(8)
	arr := fixture.Array(i8, 16)
	vec := fixture.Vector(i8, 4)

	ownedArr, err := s.Interner().Type(arr)
	if err != nil {
		t.Fatalf("Type failed: %v", err)
	}
	ownedVec, err := s.Interner().Type(vec)
	if err != nil {
		t.Fatalf("Type failed: %v", err)
	}

	if ownedArr.Elem != ownedVec.Elem {
		t.Errorf("shared element handle interned to distinct instances")
	}
}

func TestInterner_RecursiveStructTerminates(t *testing.T) {
	// %node = type { i64, %node* } is a cycle in the foreign type graph;
	// the placeholder inserted before recursion breaks it.
	node := fixture.NamedStruct("node")
	node.SetFields(fixture.Int(64), fixture.Ptr(node))

	s := newSession(t)
	owned, err := s.Interner().Type(node)
	if err != nil {
		t.Fatalf("Type failed on recursive struct: %v", err)
	}

	if owned.Kind != ir.TypeStruct || owned.Name != "node" {
		t.Fatalf("interned = %+v, want struct %%node", owned)
	}
	if len(owned.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(owned.Fields))
	}
	if owned.Fields[1].Kind != ir.TypePointer || owned.Fields[1].Elem != owned {
		t.Errorf("self-referential field does not point back at the interned node")
	}
	if !owned.Equal(owned) {
		t.Errorf("Equal is not reflexive on a recursive struct")
	}
}

func TestInterner_ConstantsShared(t *testing.T) {
	s := newSession(t)
	i32 := fixture.Int(32)
	c := fixture.IntConst(i32, 42)

	first, err := s.Interner().Constant(c)
	if err != nil {
		t.Fatalf("Constant failed: %v", err)
	}
	second, err := s.Interner().Constant(c)
	if err != nil {
		t.Fatalf("Constant failed: %v", err)
	}

	if first != second {
		t.Errorf("same constant handle interned to distinct instances")
	}
	if first.Kind != ir.ConstInt || first.Int != 42 {
		t.Errorf("interned = %+v, want i32 42", first)
	}
}

func TestInterner_ConstantVariants(t *testing.T) {
	i32 := fixture.Int(32)
	i8ptr := fixture.Ptr(fixture.Int(8))
	tests := []struct {
		name string
		in   *fixture.Const
		want ir.ConstKind
	}{
		{"int", fixture.IntConst(i32, 7), ir.ConstInt},
		{"float", fixture.FloatConst(fixture.Double(), 2.5), ir.ConstFloat},
		{"null", fixture.Null(i8ptr), ir.ConstNull},
		{"zeroinitializer", fixture.Zero(fixture.Array(i32, 8)), ir.ConstAggregateZero},
		{"undef", fixture.Undef(i32), ir.ConstUndef},
		{"token none", fixture.TokenNone(), ir.ConstTokenNone},
		{"global ref", fixture.GlobalRef("g", i8ptr), ir.ConstGlobalRef},
		{"block address", fixture.BlockAddress("f", "entry", i8ptr), ir.ConstBlockAddress},
		{"struct", fixture.StructConst(fixture.Struct(i32, i32),
			fixture.IntConst(i32, 1), fixture.IntConst(i32, 2)), ir.ConstStruct},
		{"expr", fixture.Expr(foreign.OpGetElementPtr, i8ptr,
			fixture.GlobalRef("g", i8ptr), fixture.IntConst(i32, 0)), ir.ConstExpr},
	}

	s := newSession(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owned, err := s.Interner().Constant(tt.in)
			if err != nil {
				t.Fatalf("Constant failed: %v", err)
			}
			if owned.Kind != tt.want {
				t.Errorf("kind = %v, want %v", owned.Kind, tt.want)
			}
			if owned.Type == nil {
				t.Errorf("interned constant has no type")
			}
		})
	}
}

func TestInterner_AggregateElementsInterned(t *testing.T) {
	s := newSession(t)
	i32 := fixture.Int(32)
	shared := fixture.IntConst(i32, 5)
	agg := fixture.ArrayConst(fixture.Array(i32, 2), shared, shared)

	owned, err := s.Interner().Constant(agg)
	if err != nil {
		t.Fatalf("Constant failed: %v", err)
	}

	if len(owned.Elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(owned.Elems))
	}
	if owned.Elems[0] != owned.Elems[1] {
		t.Errorf("shared element handle interned to distinct instances")
	}
}
