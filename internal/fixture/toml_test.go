package fixture_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/ir"
	"irlift/internal/testkit"
)

const maxModule = `
name = "demo"
source = "demo.ll"
triple = "x86_64-unknown-linux-gnu"

[[types]]
name = "node"
fields = ["i64", "%node*"]

[[globals]]
name = "head"
type = "%node*"
linkage = "internal"
initialized = true

[[functions]]
name = "max"
return = "i32"
params = [{ id = "a", name = "a", type = "i32" }, { id = "b", name = "b", type = "i32" }]

[[functions.blocks]]
id = "entry"
name = "entry"

[[functions.blocks.instrs]]
id = "cmp"
name = "cmp"
op = "icmp"
type = "i1"
pred = "sgt"
operands = ["%a", "%b"]

[[functions.blocks.instrs]]
op = "br"
operands = ["%cmp", "label else", "label then"]
succs = ["then", "else"]

[[functions.blocks]]
id = "then"
name = "then"

[[functions.blocks.instrs]]
op = "br"
operands = ["label merge"]
succs = ["merge"]

[[functions.blocks]]
id = "else"
name = "else"

[[functions.blocks.instrs]]
op = "br"
operands = ["label merge"]
succs = ["merge"]

[[functions.blocks]]
id = "merge"
name = "merge"

[[functions.blocks.instrs]]
id = "out"
name = "out"
op = "phi"
type = "i32"
incoming = [["%a", "then"], ["%b", "else"]]

[[functions.blocks.instrs]]
op = "ret"
operands = ["%out"]
`

func TestLoad_FullModuleDecodes(t *testing.T) {
	mod, err := fixture.Load(maxModule)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m, err := decode.Decode(mod, decode.Options{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if err := testkit.CheckModuleInvariants(m); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}

	if m.Name != "demo" || m.SourceFilename != "demo.ll" {
		t.Errorf("header = %q / %q", m.Name, m.SourceFilename)
	}
	if len(m.Globals) != 1 || m.Globals[0].Name != "head" {
		t.Fatalf("globals = %+v", m.Globals)
	}
	if m.Globals[0].Type.Elem.Name != "node" {
		t.Errorf("global type = %s, want %%node*", m.Globals[0].Type)
	}

	fn := m.FuncByName("max")
	if fn == nil {
		t.Fatalf("function max missing")
	}
	if len(fn.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(fn.Blocks))
	}
	entry := fn.Blocks[0]
	if entry.Term.Kind != ir.TermCondBr {
		t.Fatalf("entry terminator = %v, want condbr", entry.Term.Kind)
	}
	if entry.Term.CondBr.True != ir.StringName("then") ||
		entry.Term.CondBr.False != ir.StringName("else") {
		t.Errorf("condbr dests = %v / %v", entry.Term.CondBr.True, entry.Term.CondBr.False)
	}
	merge := fn.Blocks[3]
	phi := merge.Instrs[0]
	if phi.Kind != ir.InstrPhi || len(phi.Phi.Incoming) != 2 {
		t.Fatalf("phi = %+v", phi)
	}
	if phi.Result != ir.StringName("out") {
		t.Errorf("phi result = %v, want %%out", phi.Result)
	}
	if !merge.Term.Ret.HasValue || merge.Term.Ret.Value.Local != ir.StringName("out") {
		t.Errorf("ret = %+v, want %%out", merge.Term.Ret)
	}
}

func TestLoad_RecursiveTypeShared(t *testing.T) {
	mod, err := fixture.Load(maxModule)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m, err := decode.Decode(mod, decode.Options{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	node := m.Globals[0].Type.Elem
	if node.Kind != ir.TypeStruct || node.Name != "node" {
		t.Fatalf("node = %+v", node)
	}
	if len(node.Fields) != 2 || node.Fields[1].Elem != node {
		t.Errorf("recursive field does not share the interned node")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.toml")
	if err := os.WriteFile(path, []byte(maxModule), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	mod, err := fixture.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if mod.Name() != "demo" {
		t.Errorf("Name = %q, want demo", mod.Name())
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := fixture.LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Errorf("LoadFile succeeded on a missing file")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing module name", `triple = "x"`},
		{"unknown op", `
name = "m"
[[functions]]
name = "f"
return = "void"
[[functions.blocks]]
id = "entry"
[[functions.blocks.instrs]]
op = "frobnicate"
`},
		{"duplicate value id", `
name = "m"
[[functions]]
name = "f"
return = "void"
params = [{ id = "a", type = "i32" }, { id = "a", type = "i32" }]
`},
		{"unknown operand id", `
name = "m"
[[functions]]
name = "f"
return = "void"
[[functions.blocks]]
id = "entry"
[[functions.blocks.instrs]]
op = "ret"
operands = ["%ghost"]
`},
		{"bad linkage", `
name = "m"
[[globals]]
name = "g"
type = "i32*"
linkage = "sideways"
`},
		{"bad type", `
name = "m"
[[globals]]
name = "g"
type = "wat"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.Load(tt.text)
			if err == nil {
				t.Fatalf("Load succeeded, want error")
			}
			if tt.name == "unknown op" && !errors.Is(err, fixture.ErrBadFixture) {
				t.Errorf("error = %v, want ErrBadFixture", err)
			}
		})
	}
}
