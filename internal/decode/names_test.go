package decode_test

import (
	"testing"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/foreign"
	"irlift/internal/ir"
)

func TestNames_SingleCounterOrder(t *testing.T) {
	// Two unnamed parameters, an unnamed entry block, and two unnamed
	// results share one counter: %0 %1 (params), %2 (block), %3 %4.
	i32 := fixture.Int(32)
	p0 := fixture.NewParam("", i32)
	p1 := fixture.NewParam("", i32)
	add := fixture.NewInstr(foreign.OpAdd, i32, p0, p1)
	mul := fixture.NewInstr(foreign.OpMul, i32, add, p0)
	f := fixture.NewFunction("f", i32, p0, p1).
		AddBlock(fixture.NewBlock("").Add(add, mul,
			fixture.NewInstr(foreign.OpRet, fixture.Void(), mul)))

	fn := decodeFunc(t, f)

	if fn.Params[0].Name != ir.NumberName(0) || fn.Params[1].Name != ir.NumberName(1) {
		t.Errorf("param names = %v, %v, want %%0, %%1",
			fn.Params[0].Name, fn.Params[1].Name)
	}
	bb := onlyBlock(t, fn)
	if bb.Name != ir.NumberName(2) {
		t.Errorf("block name = %v, want %%2", bb.Name)
	}
	if bb.Instrs[0].Result != ir.NumberName(3) {
		t.Errorf("first result = %v, want %%3", bb.Instrs[0].Result)
	}
	if bb.Instrs[1].Result != ir.NumberName(4) {
		t.Errorf("second result = %v, want %%4", bb.Instrs[1].Result)
	}
}

func TestNames_ExplicitNamesSkipCounter(t *testing.T) {
	// A named entity keeps its name and does not consume a number.
	i32 := fixture.Int(32)
	p0 := fixture.NewParam("x", i32)
	p1 := fixture.NewParam("", i32)
	add := fixture.NewInstr(foreign.OpAdd, i32, p0, p1).Named("sum")
	neg := fixture.NewInstr(foreign.OpSub, i32, fixture.IntConst(i32, 0), add)
	f := fixture.NewFunction("f", i32, p0, p1).
		AddBlock(fixture.NewBlock("entry").Add(add, neg,
			fixture.NewInstr(foreign.OpRet, fixture.Void(), neg)))

	fn := decodeFunc(t, f)

	if fn.Params[0].Name != ir.StringName("x") {
		t.Errorf("param 0 = %v, want %%x", fn.Params[0].Name)
	}
	if fn.Params[1].Name != ir.NumberName(0) {
		t.Errorf("param 1 = %v, want %%0", fn.Params[1].Name)
	}
	bb := onlyBlock(t, fn)
	if bb.Name != ir.StringName("entry") {
		t.Errorf("block = %v, want %%entry", bb.Name)
	}
	if bb.Instrs[0].Result != ir.StringName("sum") {
		t.Errorf("named result = %v, want %%sum", bb.Instrs[0].Result)
	}
	if bb.Instrs[1].Result != ir.NumberName(1) {
		t.Errorf("unnamed result = %v, want %%1", bb.Instrs[1].Result)
	}
}

func TestNames_VoidInstructionsTakeNoName(t *testing.T) {
	i32 := fixture.Int(32)
	ptr := fixture.Ptr(i32)
	p := fixture.NewParam("", ptr)
	store := fixture.NewInstr(foreign.OpStore, fixture.Void(),
		fixture.IntConst(i32, 1), p)
	load := fixture.NewInstr(foreign.OpLoad, i32, p)
	f := fixture.NewFunction("f", i32, p).
		AddBlock(fixture.NewBlock("entry").Add(store, load,
			fixture.NewInstr(foreign.OpRet, fixture.Void(), load)))

	fn := decodeFunc(t, f)
	bb := onlyBlock(t, fn)

	if bb.Instrs[0].HasResult {
		t.Errorf("store carries a result name: %v", bb.Instrs[0].Result)
	}
	// The load is the first numbered entity after %0 (the parameter).
	if bb.Instrs[1].Result != ir.NumberName(1) {
		t.Errorf("load result = %v, want %%1", bb.Instrs[1].Result)
	}
}

func TestNames_ForwardBlockReference(t *testing.T) {
	// entry branches to a block declared after it; the naming pass covers
	// the whole function before any operand is resolved.
	later := fixture.NewBlock("later").Add(retVoid())
	entry := fixture.NewBlock("entry").Add(
		fixture.NewInstr(foreign.OpBr, fixture.Void(), fixture.BlockRef(later)).Succs(later))
	f := fixture.NewFunction("f", fixture.Void()).AddBlock(entry, later)

	fn := decodeFunc(t, f)

	term := fn.Blocks[0].Term
	if term.Kind != ir.TermBr {
		t.Fatalf("terminator kind = %v, want br", term.Kind)
	}
	if term.Br.Dest != ir.StringName("later") {
		t.Errorf("br dest = %v, want %%later", term.Br.Dest)
	}
}

func TestNames_ForeignValueMissFatal(t *testing.T) {
	// An operand referencing a value from another function has no entry in
	// the naming pass's map; that inconsistency is fatal.
	alien := fixture.NewParam("alien", fixture.Int(32))
	f := fixture.NewFunction("f", fixture.Int(32)).
		AddBlock(fixture.NewBlock("entry").Add(
			fixture.NewInstr(foreign.OpRet, fixture.Void(), alien)))
	mod := fixture.NewModule("test").AddFunction(f)

	wantDecodeError(t, mod, decode.ErrUnresolvedName)
}
