package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// decodeTerminator translates the block-final instruction. Dispatch is by
// opcode; br additionally needs the operand count to tell the unconditional
// and conditional variants apart.
func (s *Session) decodeTerminator(inst foreign.Instruction, fc *funcContext) (ir.Terminator, error) {
	term := ir.Terminator{Loc: s.instLoc(inst)}
	var err error
	switch inst.Opcode() {
	case foreign.OpRet:
		term.Kind = ir.TermRet
		term.Ret, err = s.decodeRet(inst, fc)
	case foreign.OpBr:
		switch n := inst.NumOperands(); n {
		case 1:
			term.Kind = ir.TermBr
			term.Br, err = s.decodeBr(inst, fc)
		case 3:
			term.Kind = ir.TermCondBr
			term.CondBr, err = s.decodeCondBr(inst, fc)
		default:
			return ir.Terminator{}, fmt.Errorf("%w: br with %d operands, expected 1 or 3", ErrOperandCount, n)
		}
	case foreign.OpSwitch:
		term.Kind = ir.TermSwitch
		term.Switch, err = s.decodeSwitch(inst, fc)
	case foreign.OpIndirectBr:
		term.Kind = ir.TermIndirectBr
		term.IndirectBr, err = s.decodeIndirectBr(inst, fc)
	case foreign.OpInvoke:
		term.Kind = ir.TermInvoke
		term.Invoke, err = s.decodeInvoke(inst, fc)
	case foreign.OpResume:
		term.Kind = ir.TermResume
		term.Resume, err = s.decodeResume(inst, fc)
	case foreign.OpUnreachable:
		if n := inst.NumOperands(); n != 0 {
			return ir.Terminator{}, fmt.Errorf("%w: unreachable with %d operands", ErrOperandCount, n)
		}
		term.Kind = ir.TermUnreachable
	case foreign.OpCleanupRet:
		term.Kind = ir.TermCleanupRet
		term.CleanupRet, err = s.decodeCleanupRet(inst, fc)
	case foreign.OpCatchRet:
		term.Kind = ir.TermCatchRet
		term.CatchRet, err = s.decodeCatchRet(inst, fc)
	case foreign.OpCatchSwitch:
		term.Kind = ir.TermCatchSwitch
		term.CatchSwitch, err = s.decodeCatchSwitch(inst, fc)
	case foreign.OpCallBr:
		term.Kind = ir.TermCallBr
		term.CallBr, err = s.decodeCallBr(inst, fc)
	default:
		return ir.Terminator{}, fmt.Errorf("%w: %s in terminator position", ErrUnknownOpcode, inst.Opcode())
	}
	if err != nil {
		return ir.Terminator{}, fmt.Errorf("%s: %w", inst.Opcode(), err)
	}
	return term, nil
}

func (s *Session) decodeRet(inst foreign.Instruction, fc *funcContext) (ir.RetTerm, error) {
	switch n := inst.NumOperands(); n {
	case 0:
		return ir.RetTerm{}, nil
	case 1:
		value, err := s.operandAt(inst, 0, fc)
		if err != nil {
			return ir.RetTerm{}, err
		}
		return ir.RetTerm{HasValue: true, Value: value}, nil
	default:
		return ir.RetTerm{}, fmt.Errorf("%w: ret with %d operands", ErrOperandCount, n)
	}
}

// operandBlock resolves operand i as a basic-block reference.
func (s *Session) operandBlock(inst foreign.Instruction, i int, fc *funcContext) (ir.Name, error) {
	if i < 0 || i >= inst.NumOperands() {
		return ir.Name{}, operandCountErr(inst, inst.NumOperands())
	}
	bb := inst.Operand(i).AsBlock()
	if bb == nil {
		return ir.Name{}, fmt.Errorf("%w: operand %d is not a block reference", ErrMalformed, i)
	}
	return fc.blockName(bb)
}

func (s *Session) decodeBr(inst foreign.Instruction, fc *funcContext) (ir.BrTerm, error) {
	dest, err := s.operandBlock(inst, 0, fc)
	if err != nil {
		return ir.BrTerm{}, err
	}
	return ir.BrTerm{Dest: dest}, nil
}

func (s *Session) decodeCondBr(inst foreign.Instruction, fc *funcContext) (ir.CondBrTerm, error) {
	cond, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.CondBrTerm{}, err
	}
	// Operand layout quirk: the true destination sits in slot 2 and the
	// false destination in slot 1.
	trueDest, err := s.operandBlock(inst, 2, fc)
	if err != nil {
		return ir.CondBrTerm{}, err
	}
	falseDest, err := s.operandBlock(inst, 1, fc)
	if err != nil {
		return ir.CondBrTerm{}, err
	}
	return ir.CondBrTerm{Cond: cond, True: trueDest, False: falseDest}, nil
}

func (s *Session) decodeSwitch(inst foreign.Instruction, fc *funcContext) (ir.SwitchTerm, error) {
	operand, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.SwitchTerm{}, err
	}
	defaultDest, err := fc.blockName(inst.SwitchDefaultDest())
	if err != nil {
		return ir.SwitchTerm{}, err
	}

	// Successor 0 is the default destination; cases occupy successors 1..n.
	// Case values sit at even operand slots starting at index 2. This layout
	// is observed rather than contractual; see the provider compatibility
	// notes in DESIGN.md.
	numSuccs := inst.NumSuccessors()
	var cases []ir.SwitchCase
	if numSuccs > 1 {
		cases = make([]ir.SwitchCase, 0, numSuccs-1)
		for i := 1; i < numSuccs; i++ {
			dest, err := fc.blockName(inst.Successor(i))
			if err != nil {
				return ir.SwitchTerm{}, err
			}
			slot := 2 * i
			if slot >= inst.NumOperands() {
				return ir.SwitchTerm{}, operandCountErr(inst, inst.NumOperands())
			}
			value, err := s.interner.Constant(inst.Operand(slot))
			if err != nil {
				return ir.SwitchTerm{}, err
			}
			cases = append(cases, ir.SwitchCase{Value: value, Dest: dest})
		}
	}
	return ir.SwitchTerm{Operand: operand, Cases: cases, Default: defaultDest}, nil
}

func (s *Session) decodeIndirectBr(inst foreign.Instruction, fc *funcContext) (ir.IndirectBrTerm, error) {
	operand, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.IndirectBrTerm{}, err
	}
	numSuccs := inst.NumSuccessors()
	dests := make([]ir.Name, numSuccs)
	for i := 0; i < numSuccs; i++ {
		dest, err := fc.blockName(inst.Successor(i))
		if err != nil {
			return ir.IndirectBrTerm{}, err
		}
		dests[i] = dest
	}
	return ir.IndirectBrTerm{Operand: operand, PossibleDests: dests}, nil
}

func (s *Session) decodeInvoke(inst foreign.Instruction, fc *funcContext) (ir.InvokeTerm, error) {
	info, err := s.decodeCallInfo(inst, fc)
	if err != nil {
		return ir.InvokeTerm{}, err
	}
	result, err := fc.valueName(inst)
	if err != nil {
		return ir.InvokeTerm{}, err
	}
	normal, ok := inst.NormalDest()
	if !ok {
		return ir.InvokeTerm{}, fmt.Errorf("%w: invoke without normal destination", ErrMalformed)
	}
	returnDest, err := fc.blockName(normal)
	if err != nil {
		return ir.InvokeTerm{}, err
	}
	unwind, ok := inst.UnwindDest()
	if !ok {
		return ir.InvokeTerm{}, fmt.Errorf("%w: invoke without unwind destination", ErrMalformed)
	}
	exception, err := fc.blockName(unwind)
	if err != nil {
		return ir.InvokeTerm{}, err
	}
	return ir.InvokeTerm{
		Callee:      info.callee,
		Args:        info.args,
		ReturnAttrs: info.returnAttrs,
		Result:      result,
		Return:      returnDest,
		Exception:   exception,
		FnAttrs:     info.fnAttrs,
		CallConv:    info.callConv,
	}, nil
}

func (s *Session) decodeResume(inst foreign.Instruction, fc *funcContext) (ir.ResumeTerm, error) {
	if n := inst.NumOperands(); n != 1 {
		return ir.ResumeTerm{}, fmt.Errorf("%w: resume with %d operands", ErrOperandCount, n)
	}
	operand, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.ResumeTerm{}, err
	}
	return ir.ResumeTerm{Operand: operand}, nil
}

func (s *Session) decodeCleanupRet(inst foreign.Instruction, fc *funcContext) (ir.CleanupRetTerm, error) {
	pad, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.CleanupRetTerm{}, err
	}
	term := ir.CleanupRetTerm{CleanupPad: pad}
	// No unwind destination means the exception unwinds to the caller; the
	// absence is represented explicitly, never defaulted.
	if unwind, ok := inst.UnwindDest(); ok {
		dest, err := fc.blockName(unwind)
		if err != nil {
			return ir.CleanupRetTerm{}, err
		}
		term.HasUnwindDest = true
		term.UnwindDest = dest
	}
	return term, nil
}

func (s *Session) decodeCatchRet(inst foreign.Instruction, fc *funcContext) (ir.CatchRetTerm, error) {
	pad, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.CatchRetTerm{}, err
	}
	if inst.NumSuccessors() < 1 {
		return ir.CatchRetTerm{}, fmt.Errorf("%w: catchret without successor", ErrMalformed)
	}
	successor, err := fc.blockName(inst.Successor(0))
	if err != nil {
		return ir.CatchRetTerm{}, err
	}
	return ir.CatchRetTerm{CatchPad: pad, Successor: successor}, nil
}

func (s *Session) decodeCatchSwitch(inst foreign.Instruction, fc *funcContext) (ir.CatchSwitchTerm, error) {
	parentPad, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.CatchSwitchTerm{}, err
	}
	handlerBlocks := inst.Handlers()
	handlers := make([]ir.Name, len(handlerBlocks))
	for i, h := range handlerBlocks {
		name, err := fc.blockName(h)
		if err != nil {
			return ir.CatchSwitchTerm{}, err
		}
		handlers[i] = name
	}
	result, err := fc.valueName(inst)
	if err != nil {
		return ir.CatchSwitchTerm{}, err
	}
	term := ir.CatchSwitchTerm{ParentPad: parentPad, Handlers: handlers, Result: result}
	if unwind, ok := inst.UnwindDest(); ok {
		dest, err := fc.blockName(unwind)
		if err != nil {
			return ir.CatchSwitchTerm{}, err
		}
		term.HasUnwindDest = true
		term.UnwindDest = dest
	}
	return term, nil
}

func (s *Session) decodeCallBr(inst foreign.Instruction, fc *funcContext) (ir.CallBrTerm, error) {
	info, err := s.decodeCallInfo(inst, fc)
	if err != nil {
		return ir.CallBrTerm{}, err
	}
	result, err := fc.valueName(inst)
	if err != nil {
		return ir.CallBrTerm{}, err
	}
	normal, ok := inst.NormalDest()
	if !ok {
		return ir.CallBrTerm{}, fmt.Errorf("%w: callbr without return destination", ErrMalformed)
	}
	returnDest, err := fc.blockName(normal)
	if err != nil {
		return ir.CallBrTerm{}, err
	}
	return ir.CallBrTerm{
		Callee:      info.callee,
		Args:        info.args,
		ReturnAttrs: info.returnAttrs,
		Result:      result,
		Return:      returnDest,
		// OtherDests stays empty: the indirect target list is not
		// recoverable through the provider surface.
		FnAttrs:  info.fnAttrs,
		CallConv: info.callConv,
	}, nil
}
