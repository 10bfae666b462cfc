package decode_test

import (
	"testing"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// decodeTerm builds a function around the given blocks and returns the first
// block's terminator.
func decodeTerm(t *testing.T, blocks ...*fixture.Block) ir.Terminator {
	t.Helper()
	f := fixture.NewFunction("f", fixture.Void()).AddBlock(blocks...)
	fn := decodeFunc(t, f)
	return fn.Blocks[0].Term
}

func TestTerminator_RetVoid(t *testing.T) {
	term := decodeTerm(t, fixture.NewBlock("entry").Add(retVoid()))

	if term.Kind != ir.TermRet {
		t.Fatalf("kind = %v, want ret", term.Kind)
	}
	if term.Ret.HasValue {
		t.Errorf("ret void carries a value: %v", term.Ret.Value)
	}
}

func TestTerminator_RetValue(t *testing.T) {
	i32 := fixture.Int(32)
	p := fixture.NewParam("x", i32)
	f := fixture.NewFunction("f", i32, p).
		AddBlock(fixture.NewBlock("entry").Add(
			fixture.NewInstr(foreign.OpRet, fixture.Void(), p)))

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermRet || !term.Ret.HasValue {
		t.Fatalf("term = %+v, want ret with value", term)
	}
	if term.Ret.Value.Kind != ir.OperandLocal || term.Ret.Value.Local != ir.StringName("x") {
		t.Errorf("ret value = %v, want %%x", term.Ret.Value)
	}
}

func TestTerminator_CondBrDestinationSlots(t *testing.T) {
	// The conditional branch stores its destinations reversed: slot 2 is
	// the taken edge, slot 1 the fallthrough.
	i1 := fixture.Int(1)
	yes := fixture.NewBlock("yes").Add(retVoid())
	no := fixture.NewBlock("no").Add(retVoid())
	cond := fixture.NewParam("c", i1)
	entry := fixture.NewBlock("entry").Add(
		fixture.NewInstr(foreign.OpBr, fixture.Void(),
			cond, fixture.BlockRef(no), fixture.BlockRef(yes)).
			Succs(yes, no))
	f := fixture.NewFunction("f", fixture.Void(), cond).
		AddBlock(entry, yes, no)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermCondBr {
		t.Fatalf("kind = %v, want condbr", term.Kind)
	}
	if term.CondBr.True != ir.StringName("yes") {
		t.Errorf("true dest = %v, want %%yes", term.CondBr.True)
	}
	if term.CondBr.False != ir.StringName("no") {
		t.Errorf("false dest = %v, want %%no", term.CondBr.False)
	}
	if term.CondBr.Cond.Local != ir.StringName("c") {
		t.Errorf("cond = %v, want %%c", term.CondBr.Cond)
	}
}

func TestTerminator_BrOperandCount(t *testing.T) {
	dest := fixture.NewBlock("dest").Add(retVoid())
	entry := fixture.NewBlock("entry").Add(
		fixture.NewInstr(foreign.OpBr, fixture.Void(),
			fixture.BlockRef(dest), fixture.BlockRef(dest)).Succs(dest))
	mod := fixture.NewModule("test").
		AddFunction(fixture.NewFunction("f", fixture.Void()).AddBlock(entry, dest))

	wantDecodeError(t, mod, decode.ErrOperandCount)
}

func TestTerminator_Switch(t *testing.T) {
	i32 := fixture.Int(32)
	val := fixture.NewParam("v", i32)
	def := fixture.NewBlock("default").Add(retVoid())
	one := fixture.NewBlock("one").Add(retVoid())
	two := fixture.NewBlock("two").Add(retVoid())
	// Successor 0 is the default; case values sit at operand slots 2 and 4.
	sw := fixture.NewInstr(foreign.OpSwitch, fixture.Void(),
		val,
		fixture.BlockRef(def), fixture.IntConst(i32, 1),
		fixture.BlockRef(one), fixture.IntConst(i32, 2)).
		Succs(def, one, two).
		Default(def)
	f := fixture.NewFunction("f", fixture.Void(), val).
		AddBlock(fixture.NewBlock("entry").Add(sw), def, one, two)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermSwitch {
		t.Fatalf("kind = %v, want switch", term.Kind)
	}
	if term.Switch.Default != ir.StringName("default") {
		t.Errorf("default = %v", term.Switch.Default)
	}
	if len(term.Switch.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(term.Switch.Cases))
	}
	if term.Switch.Cases[0].Value.Int != 1 || term.Switch.Cases[0].Dest != ir.StringName("one") {
		t.Errorf("case 0 = %+v, want (1, %%one)", term.Switch.Cases[0])
	}
	if term.Switch.Cases[1].Value.Int != 2 || term.Switch.Cases[1].Dest != ir.StringName("two") {
		t.Errorf("case 1 = %+v, want (2, %%two)", term.Switch.Cases[1])
	}
}

func TestTerminator_IndirectBr(t *testing.T) {
	i8 := fixture.Int(8)
	a := fixture.NewBlock("a").Add(retVoid())
	b := fixture.NewBlock("b").Add(retVoid())
	addr := fixture.NewParam("addr", fixture.Ptr(i8))
	entry := fixture.NewBlock("entry").Add(
		fixture.NewInstr(foreign.OpIndirectBr, fixture.Void(), addr).Succs(a, b))
	f := fixture.NewFunction("f", fixture.Void(), addr).
		AddBlock(entry, a, b)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermIndirectBr {
		t.Fatalf("kind = %v, want indirectbr", term.Kind)
	}
	want := []ir.Name{ir.StringName("a"), ir.StringName("b")}
	if len(term.IndirectBr.PossibleDests) != len(want) {
		t.Fatalf("dests = %v, want %v", term.IndirectBr.PossibleDests, want)
	}
	for i, d := range term.IndirectBr.PossibleDests {
		if d != want[i] {
			t.Errorf("dest %d = %v, want %v", i, d, want[i])
		}
	}
}

func TestTerminator_InvokeAlwaysNamed(t *testing.T) {
	// An invoke of a void function still gets a result name.
	cont := fixture.NewBlock("cont").Add(retVoid())
	lpadBlock := fixture.NewBlock("lpad").Add(
		fixture.NewInstr(foreign.OpLandingPad, fixture.Token()).Cleanup(),
		fixture.NewInstr(foreign.OpResume, fixture.Void(), fixture.TokenNone()))
	callee := fixture.GlobalRef("may_throw", fixture.Ptr(fixture.FuncType(fixture.Void())))
	inv := fixture.NewInstr(foreign.OpInvoke, fixture.Void()).
		Calls(callee).
		Normal(cont).
		Unwind(lpadBlock)
	f := fixture.NewFunction("f", fixture.Void()).
		AddBlock(fixture.NewBlock("entry").Add(inv), cont, lpadBlock)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermInvoke {
		t.Fatalf("kind = %v, want invoke", term.Kind)
	}
	if !term.Invoke.Result.IsNumber() {
		t.Errorf("invoke result = %v, want a synthetic number", term.Invoke.Result)
	}
	if term.Invoke.Return != ir.StringName("cont") {
		t.Errorf("normal dest = %v, want %%cont", term.Invoke.Return)
	}
	if term.Invoke.Exception != ir.StringName("lpad") {
		t.Errorf("unwind dest = %v, want %%lpad", term.Invoke.Exception)
	}
}

func TestTerminator_CleanupRetToCaller(t *testing.T) {
	pad := fixture.NewInstr(foreign.OpCleanupPad, fixture.Token(), fixture.TokenNone())
	cleanup := fixture.NewBlock("cleanup").Add(pad,
		fixture.NewInstr(foreign.OpCleanupRet, fixture.Void(), pad))
	f := fixture.NewFunction("f", fixture.Void()).AddBlock(cleanup)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermCleanupRet {
		t.Fatalf("kind = %v, want cleanupret", term.Kind)
	}
	if term.CleanupRet.HasUnwindDest {
		t.Errorf("unwind dest present, want unwind-to-caller")
	}
}

func TestTerminator_CleanupRetWithUnwindDest(t *testing.T) {
	next := fixture.NewBlock("next").Add(retVoid())
	pad := fixture.NewInstr(foreign.OpCleanupPad, fixture.Token(), fixture.TokenNone())
	cleanup := fixture.NewBlock("cleanup").Add(pad,
		fixture.NewInstr(foreign.OpCleanupRet, fixture.Void(), pad).Unwind(next))
	f := fixture.NewFunction("f", fixture.Void()).AddBlock(cleanup, next)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if !term.CleanupRet.HasUnwindDest || term.CleanupRet.UnwindDest != ir.StringName("next") {
		t.Errorf("unwind = (%v, %v), want %%next",
			term.CleanupRet.UnwindDest, term.CleanupRet.HasUnwindDest)
	}
}

func TestTerminator_CatchSwitch(t *testing.T) {
	handler := fixture.NewBlock("handler").Add(
		fixture.NewInstr(foreign.OpCatchPad, fixture.Token(), fixture.TokenNone()),
		retVoid())
	cs := fixture.NewInstr(foreign.OpCatchSwitch, fixture.Token(), fixture.TokenNone()).
		WithHandlers(handler)
	dispatch := fixture.NewBlock("dispatch").Add(cs)
	f := fixture.NewFunction("f", fixture.Void()).AddBlock(dispatch, handler)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermCatchSwitch {
		t.Fatalf("kind = %v, want catchswitch", term.Kind)
	}
	if len(term.CatchSwitch.Handlers) != 1 || term.CatchSwitch.Handlers[0] != ir.StringName("handler") {
		t.Errorf("handlers = %v, want [%%handler]", term.CatchSwitch.Handlers)
	}
	if term.CatchSwitch.HasUnwindDest {
		t.Errorf("unwind dest present, want unwind-to-caller")
	}
	if !term.CatchSwitch.Result.IsNumber() {
		t.Errorf("catchswitch result = %v, want a synthetic number", term.CatchSwitch.Result)
	}
}

func TestTerminator_CallBrOtherDestsEmpty(t *testing.T) {
	cont := fixture.NewBlock("cont").Add(retVoid())
	callee := fixture.GlobalRef("asm_target", fixture.Ptr(fixture.FuncType(fixture.Void())))
	cb := fixture.NewInstr(foreign.OpCallBr, fixture.Void()).
		Calls(callee).
		Normal(cont)
	f := fixture.NewFunction("f", fixture.Void()).
		AddBlock(fixture.NewBlock("entry").Add(cb), cont)

	fn := decodeFunc(t, f)
	term := fn.Blocks[0].Term

	if term.Kind != ir.TermCallBr {
		t.Fatalf("kind = %v, want callbr", term.Kind)
	}
	if term.CallBr.Return != ir.StringName("cont") {
		t.Errorf("return dest = %v, want %%cont", term.CallBr.Return)
	}
	if len(term.CallBr.OtherDests) != 0 {
		t.Errorf("OtherDests = %v, want empty", term.CallBr.OtherDests)
	}
}

func TestTerminator_UnknownOpcodeInTerminatorPosition(t *testing.T) {
	i32 := fixture.Int(32)
	entry := fixture.NewBlock("entry").Add(
		fixture.NewInstr(foreign.OpAdd, i32,
			fixture.IntConst(i32, 1), fixture.IntConst(i32, 2)))
	mod := fixture.NewModule("test").
		AddFunction(fixture.NewFunction("f", fixture.Void()).AddBlock(entry))

	wantDecodeError(t, mod, decode.ErrMalformed)
}
