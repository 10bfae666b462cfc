package ir

import (
	"fmt"
	"io"
	"strings"
)

// DumpOptions configures module dumping.
type DumpOptions struct {
	// Locs includes debug locations in the output when present.
	Locs bool
}

// DumpModule writes a human-readable representation of a decoded module.
func DumpModule(w io.Writer, m *Module, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}

	fmt.Fprintf(w, "module %s\n", m.Name)
	if m.TargetTriple != "" {
		fmt.Fprintf(w, "  triple = %s\n", m.TargetTriple)
	}
	if m.DataLayout != "" {
		fmt.Fprintf(w, "  layout = %s\n", m.DataLayout)
	}

	if len(m.Globals) > 0 {
		fmt.Fprintf(w, "globals=%d\n", len(m.Globals))
		for i := range m.Globals {
			g := &m.Globals[i]
			init := ""
			if g.HasInitializer {
				init = " init"
			}
			fmt.Fprintf(w, "  @%s: %s %s%s\n", g.Name, g.Type, g.Linkage, init)
		}
	}

	fmt.Fprintf(w, "funcs=%d\n", len(m.Funcs))
	for _, f := range m.Funcs {
		if err := dumpFunc(w, f, opts); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(w io.Writer, f *Function, opts DumpOptions) error {
	if w == nil || f == nil {
		return nil
	}

	params := make([]string, len(f.Params))
	for i := range f.Params {
		p := &f.Params[i]
		s := fmt.Sprintf("%s %s", p.Type, p.Name)
		if len(p.Attrs) > 0 {
			s = formatParamAttrs(p.Attrs) + " " + s
		}
		params[i] = s
	}
	variadic := ""
	if f.Variadic {
		variadic = ", ..."
		if len(params) == 0 {
			variadic = "..."
		}
	}
	fmt.Fprintf(w, "\nfn @%s(%s%s) -> %s\n", f.Name, strings.Join(params, ", "), variadic, f.Return)

	meta := []string{"linkage=" + f.Linkage.String()}
	if f.Visibility != VisibilityDefault {
		meta = append(meta, "visibility="+f.Visibility.String())
	}
	if f.StorageClass != StorageDefault {
		meta = append(meta, "storage="+f.StorageClass.String())
	}
	if f.CallConv.Kind != CCC {
		meta = append(meta, "callconv="+f.CallConv.String())
	}
	if f.HasSection {
		meta = append(meta, fmt.Sprintf("section=%q", f.Section))
	}
	if f.Alignment != 0 {
		meta = append(meta, fmt.Sprintf("align=%d", f.Alignment))
	}
	if f.HasGC {
		meta = append(meta, "gc="+f.GCName)
	}
	if f.Personality != nil {
		meta = append(meta, "personality="+f.Personality.String())
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(meta, " "))
	if len(f.Attrs) > 0 {
		attrs := make([]string, len(f.Attrs))
		for i, a := range f.Attrs {
			attrs[i] = a.String()
		}
		fmt.Fprintf(w, "  attrs: %s\n", strings.Join(attrs, " "))
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  %s:\n", bb.Name)
		for j := range bb.Instrs {
			fmt.Fprintf(w, "    %s%s\n", formatInstr(&bb.Instrs[j]), locSuffix(bb.Instrs[j].Loc, opts))
		}
		fmt.Fprintf(w, "    %s%s\n", formatTerm(&bb.Term), locSuffix(bb.Term.Loc, opts))
	}
	return nil
}

func locSuffix(loc *DebugLoc, opts DumpOptions) string {
	if !opts.Locs || loc == nil {
		return ""
	}
	if loc.HasCol {
		return fmt.Sprintf("  ; %s:%d:%d", loc.Filename, loc.Line, loc.Col)
	}
	return fmt.Sprintf("  ; %s:%d", loc.Filename, loc.Line)
}

func formatParamAttrs(attrs []ParamAttr) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func formatCallArgs(args []CallArg) string {
	parts := make([]string, len(args))
	for i := range args {
		parts[i] = args[i].Value.String()
	}
	return strings.Join(parts, ", ")
}

func formatInstr(ins *Instruction) string {
	if ins == nil {
		return "<instr?>"
	}
	res := ""
	if ins.HasResult {
		res = ins.Result.String() + " = "
	}
	switch {
	case ins.Kind.IsBinary():
		return fmt.Sprintf("%s%s %s, %s", res, instrMnemonic(ins.Kind), ins.Binary.X, ins.Binary.Y)
	case ins.Kind.IsCast():
		return fmt.Sprintf("%s%s %s to %s", res, instrMnemonic(ins.Kind), ins.Cast.X, ins.Cast.To)
	}
	switch ins.Kind {
	case InstrFNeg:
		return fmt.Sprintf("%sfneg %s", res, ins.FNeg.X)
	case InstrAlloca:
		return fmt.Sprintf("%salloca %s, %s, align %d", res, ins.Alloca.Allocated, ins.Alloca.NumElems, ins.Alloca.Align)
	case InstrLoad:
		return fmt.Sprintf("%sload %s, align %d", res, ins.Load.Address, ins.Load.Align)
	case InstrStore:
		return fmt.Sprintf("store %s, %s, align %d", ins.Store.Value, ins.Store.Address, ins.Store.Align)
	case InstrFence:
		return fmt.Sprintf("fence %s", ins.Fence.Ordering)
	case InstrCmpXchg:
		return fmt.Sprintf("%scmpxchg %s, %s, %s %s %s", res,
			ins.CmpXchg.Address, ins.CmpXchg.Expected, ins.CmpXchg.Replacement,
			ins.CmpXchg.SuccessOrdering, ins.CmpXchg.FailureOrdering)
	case InstrAtomicRMW:
		return fmt.Sprintf("%satomicrmw %s %s, %s %s", res,
			ins.AtomicRMW.Op, ins.AtomicRMW.Address, ins.AtomicRMW.Value, ins.AtomicRMW.Ordering)
	case InstrGetElementPtr:
		idx := make([]string, len(ins.GEP.Indices))
		for i, op := range ins.GEP.Indices {
			idx[i] = op.String()
		}
		inb := ""
		if ins.GEP.InBounds {
			inb = "inbounds "
		}
		return fmt.Sprintf("%sgetelementptr %s%s, %s", res, inb, ins.GEP.Address, strings.Join(idx, ", "))
	case InstrICmp:
		return fmt.Sprintf("%sicmp %s %s, %s", res, ins.ICmp.Pred, ins.ICmp.X, ins.ICmp.Y)
	case InstrFCmp:
		return fmt.Sprintf("%sfcmp %s %s, %s", res, ins.FCmp.Pred, ins.FCmp.X, ins.FCmp.Y)
	case InstrPhi:
		parts := make([]string, len(ins.Phi.Incoming))
		for i, in := range ins.Phi.Incoming {
			parts[i] = fmt.Sprintf("[ %s, %s ]", in.Value, in.Block)
		}
		return fmt.Sprintf("%sphi %s", res, strings.Join(parts, ", "))
	case InstrSelect:
		return fmt.Sprintf("%sselect %s, %s, %s", res, ins.Select.Cond, ins.Select.True, ins.Select.Else)
	case InstrFreeze:
		return fmt.Sprintf("%sfreeze %s", res, ins.Freeze.X)
	case InstrCall:
		tail := ""
		if ins.Call.Tail {
			tail = "tail "
		}
		return fmt.Sprintf("%s%scall %s(%s)", res, tail, ins.Call.Callee, formatCallArgs(ins.Call.Args))
	case InstrVAArg:
		return fmt.Sprintf("%sva_arg %s, %s", res, ins.VAArg.ArgList, ins.VAArg.To)
	case InstrExtractElement:
		return fmt.Sprintf("%sextractelement %s, %s", res, ins.ExtractElement.Vector, ins.ExtractElement.Index)
	case InstrInsertElement:
		return fmt.Sprintf("%sinsertelement %s, %s, %s", res,
			ins.InsertElement.Vector, ins.InsertElement.Element, ins.InsertElement.Index)
	case InstrShuffleVector:
		return fmt.Sprintf("%sshufflevector %s, %s, %s", res,
			ins.ShuffleVector.X, ins.ShuffleVector.Y, ins.ShuffleVector.Mask)
	case InstrExtractValue:
		return fmt.Sprintf("%sextractvalue %s, %v", res, ins.ExtractValue.Aggregate, ins.ExtractValue.Indices)
	case InstrInsertValue:
		return fmt.Sprintf("%sinsertvalue %s, %s, %v", res,
			ins.InsertValue.Aggregate, ins.InsertValue.Element, ins.InsertValue.Indices)
	case InstrLandingPad:
		cleanup := ""
		if ins.LandingPad.Cleanup {
			cleanup = " cleanup"
		}
		return fmt.Sprintf("%slandingpad%s (%d clauses)", res, cleanup, len(ins.LandingPad.Clauses))
	case InstrCatchPad:
		return fmt.Sprintf("%scatchpad within %s", res, ins.CatchPad.CatchSwitch)
	case InstrCleanupPad:
		return fmt.Sprintf("%scleanuppad within %s", res, ins.CleanupPad.ParentPad)
	default:
		return "<unknown instr>"
	}
}

var binaryMnemonics = map[InstrKind]string{
	InstrAdd: "add", InstrFAdd: "fadd", InstrSub: "sub", InstrFSub: "fsub",
	InstrMul: "mul", InstrFMul: "fmul", InstrUDiv: "udiv", InstrSDiv: "sdiv",
	InstrFDiv: "fdiv", InstrURem: "urem", InstrSRem: "srem", InstrFRem: "frem",
	InstrShl: "shl", InstrLShr: "lshr", InstrAShr: "ashr",
	InstrAnd: "and", InstrOr: "or", InstrXor: "xor",
	InstrTrunc: "trunc", InstrZExt: "zext", InstrSExt: "sext",
	InstrFPToUI: "fptoui", InstrFPToSI: "fptosi", InstrUIToFP: "uitofp",
	InstrSIToFP: "sitofp", InstrFPTrunc: "fptrunc", InstrFPExt: "fpext",
	InstrPtrToInt: "ptrtoint", InstrIntToPtr: "inttoptr",
	InstrBitCast: "bitcast", InstrAddrSpaceCast: "addrspacecast",
}

func instrMnemonic(k InstrKind) string {
	if s, ok := binaryMnemonics[k]; ok {
		return s
	}
	return "<op?>"
}

func formatTerm(t *Terminator) string {
	if t == nil {
		return "<term?>"
	}
	switch t.Kind {
	case TermRet:
		if t.Ret.HasValue {
			return fmt.Sprintf("ret %s", t.Ret.Value)
		}
		return "ret void"
	case TermBr:
		return fmt.Sprintf("br %s", t.Br.Dest)
	case TermCondBr:
		return fmt.Sprintf("br %s, %s, %s", t.CondBr.Cond, t.CondBr.True, t.CondBr.False)
	case TermSwitch:
		parts := make([]string, len(t.Switch.Cases))
		for i, c := range t.Switch.Cases {
			parts[i] = fmt.Sprintf("%s -> %s", c.Value, c.Dest)
		}
		return fmt.Sprintf("switch %s, default %s [%s]", t.Switch.Operand, t.Switch.Default, strings.Join(parts, ", "))
	case TermIndirectBr:
		dests := make([]string, len(t.IndirectBr.PossibleDests))
		for i, d := range t.IndirectBr.PossibleDests {
			dests[i] = d.String()
		}
		return fmt.Sprintf("indirectbr %s, [%s]", t.IndirectBr.Operand, strings.Join(dests, ", "))
	case TermInvoke:
		return fmt.Sprintf("%s = invoke %s(%s) to %s unwind %s",
			t.Invoke.Result, t.Invoke.Callee, formatCallArgs(t.Invoke.Args),
			t.Invoke.Return, t.Invoke.Exception)
	case TermResume:
		return fmt.Sprintf("resume %s", t.Resume.Operand)
	case TermUnreachable:
		return "unreachable"
	case TermCleanupRet:
		if t.CleanupRet.HasUnwindDest {
			return fmt.Sprintf("cleanupret from %s unwind %s", t.CleanupRet.CleanupPad, t.CleanupRet.UnwindDest)
		}
		return fmt.Sprintf("cleanupret from %s unwind to caller", t.CleanupRet.CleanupPad)
	case TermCatchRet:
		return fmt.Sprintf("catchret from %s to %s", t.CatchRet.CatchPad, t.CatchRet.Successor)
	case TermCatchSwitch:
		handlers := make([]string, len(t.CatchSwitch.Handlers))
		for i, h := range t.CatchSwitch.Handlers {
			handlers[i] = h.String()
		}
		unwind := "to caller"
		if t.CatchSwitch.HasUnwindDest {
			unwind = t.CatchSwitch.UnwindDest.String()
		}
		return fmt.Sprintf("%s = catchswitch within %s [%s] unwind %s",
			t.CatchSwitch.Result, t.CatchSwitch.ParentPad, strings.Join(handlers, ", "), unwind)
	case TermCallBr:
		return fmt.Sprintf("%s = callbr %s(%s) to %s",
			t.CallBr.Result, t.CallBr.Callee, formatCallArgs(t.CallBr.Args), t.CallBr.Return)
	default:
		return "<unknown term>"
	}
}
