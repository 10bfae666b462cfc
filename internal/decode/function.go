package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
	"irlift/internal/trace"
)

// decodeFunction converts one foreign function. The body is walked twice:
// the naming pass first fixes an identifier for every parameter, block, and
// result-producing instruction, then the detailed pass decodes bodies against
// the now-complete maps. Parameters are numbered before anything in the body,
// so an unnamed entry block of a two-parameter function comes out as %2.
func (s *Session) decodeFunction(f foreign.Function) (*ir.Function, error) {
	fc := newFuncContext()

	foreignParams := f.Parameters()
	params := make([]ir.Parameter, len(foreignParams))
	for i, p := range foreignParams {
		name := nameOrNum(p.Name(), &fc.ctr)
		fc.valueNames[p] = name
		ty, err := s.interner.Type(p.Type())
		if err != nil {
			return nil, err
		}
		params[i] = ir.Parameter{
			Name:  name,
			Type:  ty,
			Attrs: s.decodeParamAttrs(f.Attributes(foreign.ParamAttrIndex(i))),
		}
	}

	fc.assignNames(f)

	ret, err := s.interner.Type(f.ReturnType())
	if err != nil {
		return nil, err
	}

	out := &ir.Function{
		Name:     f.Name(),
		Params:   params,
		Variadic: f.IsVariadic(),
		Return:   ret,

		Attrs:       s.decodeFuncAttrs(f.Attributes(foreign.FunctionAttrIndex)),
		ReturnAttrs: s.decodeParamAttrs(f.Attributes(foreign.ReturnAttrIndex)),

		Linkage:      ir.Linkage(f.Linkage()),
		Visibility:   ir.Visibility(f.Visibility()),
		StorageClass: ir.DLLStorageClass(f.StorageClass()),
		CallConv:     ir.CallConvFromCode(f.CallingConv()),
		Alignment:    f.Alignment(),
		Loc:          s.funcLoc(f),
	}
	if section, ok := f.Section(); ok {
		out.Section = section
		out.HasSection = true
	}
	if name, kind, ok := f.Comdat(); ok {
		out.Comdat = &ir.Comdat{Name: name, Kind: ir.ComdatKind(kind)}
	}
	if gc, ok := f.GCName(); ok {
		out.GCName = gc
		out.HasGC = true
	}
	if pers, ok := f.Personality(); ok {
		c, err := s.interner.Constant(pers)
		if err != nil {
			return nil, err
		}
		out.Personality = c
	}

	blocks := f.Blocks()
	out.Blocks = make([]ir.BasicBlock, len(blocks))
	for i, bb := range blocks {
		decoded, err := s.decodeBlock(bb, fc)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", bb.Name(), err)
		}
		out.Blocks[i] = decoded
	}
	return out, nil
}

// decodeBlock translates one basic block: every instruction but the last
// through the instruction decoder, the last through the terminator decoder.
func (s *Session) decodeBlock(bb foreign.Block, fc *funcContext) (ir.BasicBlock, error) {
	name, err := fc.blockName(bb)
	if err != nil {
		return ir.BasicBlock{}, err
	}
	out := ir.BasicBlock{Name: name}

	insts := bb.Instructions()
	if len(insts) == 0 {
		return out, fmt.Errorf("%w: block without terminator", ErrMalformed)
	}
	body, last := insts[:len(insts)-1], insts[len(insts)-1]
	if !last.Opcode().IsTerminator() {
		return out, fmt.Errorf("%w: block ends in %s, not a terminator", ErrMalformed, last.Opcode())
	}

	if len(body) > 0 {
		out.Instrs = make([]ir.Instruction, len(body))
		for i, inst := range body {
			if inst.Opcode().IsTerminator() {
				return out, fmt.Errorf("%w: %s before end of block", ErrMalformed, inst.Opcode())
			}
			decoded, err := s.decodeInstruction(inst, fc)
			if err != nil {
				return out, err
			}
			out.Instrs[i] = decoded
			trace.Emitf(s.tr, trace.LevelDebug, "instr", "%s[%d]: %s", name, i, inst.Opcode())
		}
	}

	trace.Emitf(s.tr, trace.LevelDebug, "instr", "%s[term]: %s", name, last.Opcode())
	term, err := s.decodeTerminator(last, fc)
	if err != nil {
		return out, err
	}
	out.Term = term
	return out, nil
}
