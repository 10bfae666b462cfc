package fixture

import (
	"testing"

	"irlift/internal/foreign"
)

func parseType(t *testing.T, tt *typeTable, s string) *Type {
	t.Helper()
	typ, err := tt.get(s)
	if err != nil {
		t.Fatalf("get(%q) failed: %v", s, err)
	}
	return typ
}

func TestTypeTable_Scalars(t *testing.T) {
	tests := []struct {
		in   string
		kind foreign.TypeKind
	}{
		{"void", foreign.TypeVoid},
		{"i1", foreign.TypeInteger},
		{"i32", foreign.TypeInteger},
		{"i128", foreign.TypeInteger},
		{"half", foreign.TypeHalf},
		{"float", foreign.TypeFloat},
		{"double", foreign.TypeDouble},
		{"label", foreign.TypeLabel},
		{"token", foreign.TypeToken},
		{"metadata", foreign.TypeMetadata},
	}

	tt := newTypeTable()
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			typ := parseType(t, tt, tc.in)
			if typ.Kind() != tc.kind {
				t.Errorf("kind = %v, want %v", typ.Kind(), tc.kind)
			}
		})
	}
}

func TestTypeTable_IntWidth(t *testing.T) {
	tt := newTypeTable()
	typ := parseType(t, tt, "i48")
	if typ.BitWidth() != 48 {
		t.Errorf("BitWidth = %d, want 48", typ.BitWidth())
	}
}

func TestTypeTable_Pointers(t *testing.T) {
	tt := newTypeTable()

	p := parseType(t, tt, "i8*")
	if p.Kind() != foreign.TypePointer || p.Elem().Kind() != foreign.TypeInteger {
		t.Errorf("i8* parsed as %v", p.Kind())
	}

	pp := parseType(t, tt, "i8**")
	if pp.Kind() != foreign.TypePointer || pp.Elem().Kind() != foreign.TypePointer {
		t.Errorf("i8** does not stack pointers")
	}
}

func TestTypeTable_Composites(t *testing.T) {
	tt := newTypeTable()

	arr := parseType(t, tt, "[4 x i32]")
	if arr.Kind() != foreign.TypeArray || arr.Count() != 4 {
		t.Errorf("array = kind %v count %d", arr.Kind(), arr.Count())
	}

	vec := parseType(t, tt, "<8 x float>")
	if vec.Kind() != foreign.TypeVector || vec.Count() != 8 {
		t.Errorf("vector = kind %v count %d", vec.Kind(), vec.Count())
	}

	svec := parseType(t, tt, "<vscale x 2 x i64>")
	if svec.Kind() != foreign.TypeScalableVector || svec.Count() != 2 {
		t.Errorf("scalable vector = kind %v count %d", svec.Kind(), svec.Count())
	}

	st := parseType(t, tt, "{ i32, i64 }")
	if st.Kind() != foreign.TypeStruct || len(st.Fields()) != 2 {
		t.Errorf("struct = kind %v fields %d", st.Kind(), len(st.Fields()))
	}
	if st.IsPacked() {
		t.Errorf("literal struct parsed packed")
	}

	packed := parseType(t, tt, "<{ i8, i32 }>")
	if packed.Kind() != foreign.TypeStruct || !packed.IsPacked() {
		t.Errorf("packed struct = kind %v packed %v", packed.Kind(), packed.IsPacked())
	}

	nested := parseType(t, tt, "[2 x [3 x i8]]")
	if nested.Elem().Kind() != foreign.TypeArray || nested.Elem().Count() != 3 {
		t.Errorf("nested array element = %v", nested.Elem().Kind())
	}
}

func TestTypeTable_SameSpellingSameHandle(t *testing.T) {
	tt := newTypeTable()

	a := parseType(t, tt, "[4 x i32]")
	b := parseType(t, tt, "[4 x i32]")
	if a != b {
		t.Errorf("same spelling produced distinct handles")
	}
}

func TestTypeTable_NamedStructs(t *testing.T) {
	tt := newTypeTable()
	node := tt.declareNamed("node")

	// Referencing %node before its body is filled yields the placeholder.
	ref := parseType(t, tt, "%node*")
	if ref.Elem() != foreign.Type(node) {
		t.Fatalf("%%node* does not point at the declared struct")
	}

	node.SetFields(parseType(t, tt, "i64"), ref)
	if node.IsOpaqueStruct() {
		t.Errorf("struct still opaque after SetFields")
	}
	if len(node.Fields()) != 2 || node.Fields()[1].Elem() != foreign.Type(node) {
		t.Errorf("recursive body not wired through the shared handle")
	}
}

func TestTypeTable_Errors(t *testing.T) {
	tests := []string{
		"",
		"i",
		"i0x",
		"[x i32]",
		"[4 x i32",
		"{ i32 i64 }",
		"<4 x >",
		"wat",
		"i32 garbage",
	}

	tt := newTypeTable()
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := tt.get(in); err == nil {
				t.Errorf("get(%q) succeeded, want error", in)
			}
		})
	}
}
