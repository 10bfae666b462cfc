package decode_test

import (
	"testing"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/foreign"
	"irlift/internal/ir"
)

func TestCatalog_BuildFailureIsFatal(t *testing.T) {
	// A provider that does not recognize a tracked attribute name is a
	// version mismatch; nothing decodes.
	mod := fixture.NewModule("test").ForgetAttr("nounwind")

	wantDecodeError(t, mod, decode.ErrCatalogBuild)
}

func TestCatalog_ForgottenParamAttrAlsoFatal(t *testing.T) {
	mod := fixture.NewModule("test").ForgetAttr("byval")

	wantDecodeError(t, mod, decode.ErrCatalogBuild)
}

func TestAttrs_FunctionEnum(t *testing.T) {
	mod := fixture.NewModule("test")
	f := fixture.NewFunction("f", fixture.Void()).
		WithAttrs(foreign.FunctionAttrIndex,
			mod.Enum("nounwind", 0),
			mod.Enum("cold", 0),
			mod.Enum("alignstack", 16))
	mod.AddFunction(f)

	m := decodeModule(t, mod)
	attrs := m.Funcs[0].Attrs

	if len(attrs) != 3 {
		t.Fatalf("got %d attrs, want 3", len(attrs))
	}
	if attrs[0].Kind != ir.FuncAttrNoUnwind || attrs[1].Kind != ir.FuncAttrCold {
		t.Errorf("attrs = %v, %v, want nounwind, cold", attrs[0], attrs[1])
	}
	if attrs[2].Kind != ir.FuncAttrAlignStack || attrs[2].Value != 16 {
		t.Errorf("alignstack = %+v, want value 16", attrs[2])
	}
}

func TestAttrs_AllocSizePayload(t *testing.T) {
	// The packed payload keeps the element size in the upper half and the
	// element count in the lower half; all-ones below means no count.
	tests := []struct {
		name    string
		payload uint64
		elt     uint32
		num     uint32
		hasNum  bool
	}{
		{"size only", 8<<32 | 0xFFFF_FFFF, 8, 0, false},
		{"size and count", 8<<32 | 2, 8, 2, true},
		{"zero count", 16 << 32, 16, 0, true},
		{"max size", 0xFFFF_FFFE<<32 | 1, 0xFFFF_FFFE, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := fixture.NewModule("test")
			f := fixture.NewFunction("f", fixture.Void()).
				WithAttrs(foreign.FunctionAttrIndex, mod.Enum("allocsize", tt.payload))
			mod.AddFunction(f)

			m := decodeModule(t, mod)
			attrs := m.Funcs[0].Attrs

			if len(attrs) != 1 || attrs[0].Kind != ir.FuncAttrAllocSize {
				t.Fatalf("attrs = %+v, want one allocsize", attrs)
			}
			a := attrs[0]
			if a.AllocSizeElt != tt.elt || a.AllocSizeNum != tt.num || a.HasAllocSizeNum != tt.hasNum {
				t.Errorf("allocsize = (%d, %d, %v), want (%d, %d, %v)",
					a.AllocSizeElt, a.AllocSizeNum, a.HasAllocSizeNum,
					tt.elt, tt.num, tt.hasNum)
			}
		})
	}
}

func TestAttrs_UnknownEnumDegrades(t *testing.T) {
	// An enumerated attribute outside the tracked catalog decodes to the
	// Unknown variant; the module still decodes.
	mod := fixture.NewModule("test")
	f := fixture.NewFunction("f", fixture.Void()).
		WithAttrs(foreign.FunctionAttrIndex,
			mod.Enum("some_future_attribute", 0),
			mod.Enum("noreturn", 0))
	mod.AddFunction(f)

	m := decodeModule(t, mod)
	attrs := m.Funcs[0].Attrs

	if len(attrs) != 2 {
		t.Fatalf("got %d attrs, want 2", len(attrs))
	}
	if attrs[0].Kind != ir.FuncAttrUnknown {
		t.Errorf("attrs[0] = %+v, want the Unknown degradation", attrs[0])
	}
	if attrs[1].Kind != ir.FuncAttrNoReturn {
		t.Errorf("attrs[1] = %+v, want noreturn alongside the unknown one", attrs[1])
	}
}

func TestAttrs_StringAttribute(t *testing.T) {
	mod := fixture.NewModule("test")
	f := fixture.NewFunction("f", fixture.Void()).
		WithAttrs(foreign.FunctionAttrIndex,
			fixture.StringAttr("frame-pointer", "all"))
	mod.AddFunction(f)

	m := decodeModule(t, mod)
	attrs := m.Funcs[0].Attrs

	if len(attrs) != 1 || attrs[0].Kind != ir.FuncAttrString {
		t.Fatalf("attrs = %+v, want one string attr", attrs)
	}
	if attrs[0].StrKind != "frame-pointer" || attrs[0].StrValue != "all" {
		t.Errorf("string attr = %q=%q", attrs[0].StrKind, attrs[0].StrValue)
	}
}

func TestAttrs_ParamAndReturn(t *testing.T) {
	i32 := fixture.Int(32)
	mod := fixture.NewModule("test")
	f := fixture.NewFunction("f", i32,
		fixture.NewParam("a", fixture.Ptr(i32)),
		fixture.NewParam("b", i32)).
		WithAttrs(foreign.ParamAttrIndex(0),
			mod.Enum("byval", 4),
			mod.Enum("dereferenceable", 16)).
		WithAttrs(foreign.ParamAttrIndex(1), mod.Enum("zeroext", 0)).
		WithAttrs(foreign.ReturnAttrIndex, mod.Enum("signext", 0))
	mod.AddFunction(f)

	m := decodeModule(t, mod)
	fn := m.Funcs[0]

	a := fn.Params[0].Attrs
	if len(a) != 2 {
		t.Fatalf("param 0 has %d attrs, want 2", len(a))
	}
	if a[0].Kind != ir.ParamAttrByVal || a[0].Value != 4 {
		t.Errorf("byval = %+v, want value 4", a[0])
	}
	if a[1].Kind != ir.ParamAttrDereferenceable || a[1].Value != 16 {
		t.Errorf("dereferenceable = %+v, want value 16", a[1])
	}
	if len(fn.Params[1].Attrs) != 1 || fn.Params[1].Attrs[0].Kind != ir.ParamAttrZeroExt {
		t.Errorf("param 1 attrs = %+v, want [zeroext]", fn.Params[1].Attrs)
	}
	if len(fn.ReturnAttrs) != 1 || fn.ReturnAttrs[0].Kind != ir.ParamAttrSignExt {
		t.Errorf("return attrs = %+v, want [signext]", fn.ReturnAttrs)
	}
}

func TestAttrs_UnknownParamEnumDegrades(t *testing.T) {
	i32 := fixture.Int(32)
	mod := fixture.NewModule("test")
	f := fixture.NewFunction("f", fixture.Void(), fixture.NewParam("x", i32)).
		WithAttrs(foreign.ParamAttrIndex(0), mod.Enum("mystery_param_attr", 0))
	mod.AddFunction(f)

	m := decodeModule(t, mod)
	attrs := m.Funcs[0].Params[0].Attrs

	if len(attrs) != 1 || attrs[0].Kind != ir.ParamAttrUnknown {
		t.Errorf("attrs = %+v, want the Unknown degradation", attrs)
	}
}
