package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// binaryKinds maps the two-operand arithmetic and bitwise opcodes onto the
// owned catalog. Membership in this map is the binary-group test.
var binaryKinds = map[foreign.Opcode]ir.InstrKind{
	foreign.OpAdd:  ir.InstrAdd,
	foreign.OpFAdd: ir.InstrFAdd,
	foreign.OpSub:  ir.InstrSub,
	foreign.OpFSub: ir.InstrFSub,
	foreign.OpMul:  ir.InstrMul,
	foreign.OpFMul: ir.InstrFMul,
	foreign.OpUDiv: ir.InstrUDiv,
	foreign.OpSDiv: ir.InstrSDiv,
	foreign.OpFDiv: ir.InstrFDiv,
	foreign.OpURem: ir.InstrURem,
	foreign.OpSRem: ir.InstrSRem,
	foreign.OpFRem: ir.InstrFRem,
	foreign.OpShl:  ir.InstrShl,
	foreign.OpLShr: ir.InstrLShr,
	foreign.OpAShr: ir.InstrAShr,
	foreign.OpAnd:  ir.InstrAnd,
	foreign.OpOr:   ir.InstrOr,
	foreign.OpXor:  ir.InstrXor,
}

var castKinds = map[foreign.Opcode]ir.InstrKind{
	foreign.OpTrunc:         ir.InstrTrunc,
	foreign.OpZExt:          ir.InstrZExt,
	foreign.OpSExt:          ir.InstrSExt,
	foreign.OpFPToUI:        ir.InstrFPToUI,
	foreign.OpFPToSI:        ir.InstrFPToSI,
	foreign.OpUIToFP:        ir.InstrUIToFP,
	foreign.OpSIToFP:        ir.InstrSIToFP,
	foreign.OpFPTrunc:       ir.InstrFPTrunc,
	foreign.OpFPExt:         ir.InstrFPExt,
	foreign.OpPtrToInt:      ir.InstrPtrToInt,
	foreign.OpIntToPtr:      ir.InstrIntToPtr,
	foreign.OpBitCast:       ir.InstrBitCast,
	foreign.OpAddrSpaceCast: ir.InstrAddrSpaceCast,
}

// The foreign enums and the owned enums declare their members in the same
// order, so ordering, scope, predicate, and rmw conversions are direct.
func ordering(o foreign.AtomicOrdering) ir.MemoryOrdering { return ir.MemoryOrdering(o) }

func syncScope(inst foreign.Instruction) ir.SyncScope {
	if inst.SingleThread() {
		return ir.SyncScopeSingleThread
	}
	return ir.SyncScopeSystem
}

// decodeInstruction translates one non-terminator instruction. The result
// name comes out of the naming-pass map; the body is decoded per opcode.
func (s *Session) decodeInstruction(inst foreign.Instruction, fc *funcContext) (ir.Instruction, error) {
	out := ir.Instruction{Loc: s.instLoc(inst)}
	if needsName(inst) {
		result, err := fc.valueName(inst)
		if err != nil {
			return ir.Instruction{}, err
		}
		ty, err := s.interner.Type(inst.Type())
		if err != nil {
			return ir.Instruction{}, err
		}
		out.Result = result
		out.HasResult = true
		out.Type = ty
	}

	op := inst.Opcode()
	if kind, ok := binaryKinds[op]; ok {
		out.Kind = kind
		body, err := s.decodeBinary(inst, fc)
		if err != nil {
			return ir.Instruction{}, fmt.Errorf("%s: %w", op, err)
		}
		out.Binary = body
		return out, nil
	}
	if kind, ok := castKinds[op]; ok {
		out.Kind = kind
		body, err := s.decodeCast(inst, fc)
		if err != nil {
			return ir.Instruction{}, fmt.Errorf("%s: %w", op, err)
		}
		out.Cast = body
		return out, nil
	}

	var err error
	switch op {
	case foreign.OpFNeg:
		out.Kind = ir.InstrFNeg
		out.FNeg, err = s.decodeUnary(inst, fc)
	case foreign.OpAlloca:
		out.Kind = ir.InstrAlloca
		out.Alloca, err = s.decodeAlloca(inst, fc)
	case foreign.OpLoad:
		out.Kind = ir.InstrLoad
		out.Load, err = s.decodeLoad(inst, fc)
	case foreign.OpStore:
		out.Kind = ir.InstrStore
		out.Store, err = s.decodeStore(inst, fc)
	case foreign.OpFence:
		out.Kind = ir.InstrFence
		out.Fence = ir.FenceInstr{Ordering: ordering(inst.Ordering()), Scope: syncScope(inst)}
	case foreign.OpAtomicCmpXchg:
		out.Kind = ir.InstrCmpXchg
		out.CmpXchg, err = s.decodeCmpXchg(inst, fc)
	case foreign.OpAtomicRMW:
		out.Kind = ir.InstrAtomicRMW
		out.AtomicRMW, err = s.decodeAtomicRMW(inst, fc)
	case foreign.OpGetElementPtr:
		out.Kind = ir.InstrGetElementPtr
		out.GEP, err = s.decodeGEP(inst, fc)
	case foreign.OpICmp:
		out.Kind = ir.InstrICmp
		out.ICmp, err = s.decodeICmp(inst, fc)
	case foreign.OpFCmp:
		out.Kind = ir.InstrFCmp
		out.FCmp, err = s.decodeFCmp(inst, fc)
	case foreign.OpPhi:
		out.Kind = ir.InstrPhi
		out.Phi, err = s.decodePhi(inst, fc)
	case foreign.OpSelect:
		out.Kind = ir.InstrSelect
		out.Select, err = s.decodeSelect(inst, fc)
	case foreign.OpFreeze:
		out.Kind = ir.InstrFreeze
		out.Freeze, err = s.decodeUnary(inst, fc)
	case foreign.OpCall:
		out.Kind = ir.InstrCall
		out.Call, err = s.decodeCall(inst, fc)
	case foreign.OpVAArg:
		out.Kind = ir.InstrVAArg
		out.VAArg, err = s.decodeVAArg(inst, fc)
	case foreign.OpExtractElement:
		out.Kind = ir.InstrExtractElement
		out.ExtractElement, err = s.decodeExtractElement(inst, fc)
	case foreign.OpInsertElement:
		out.Kind = ir.InstrInsertElement
		out.InsertElement, err = s.decodeInsertElement(inst, fc)
	case foreign.OpShuffleVector:
		out.Kind = ir.InstrShuffleVector
		out.ShuffleVector, err = s.decodeShuffleVector(inst, fc)
	case foreign.OpExtractValue:
		out.Kind = ir.InstrExtractValue
		out.ExtractValue, err = s.decodeExtractValue(inst, fc)
	case foreign.OpInsertValue:
		out.Kind = ir.InstrInsertValue
		out.InsertValue, err = s.decodeInsertValue(inst, fc)
	case foreign.OpLandingPad:
		out.Kind = ir.InstrLandingPad
		out.LandingPad, err = s.decodeLandingPad(inst)
	case foreign.OpCatchPad:
		out.Kind = ir.InstrCatchPad
		out.CatchPad, err = s.decodeCatchPad(inst, fc)
	case foreign.OpCleanupPad:
		out.Kind = ir.InstrCleanupPad
		out.CleanupPad, err = s.decodeCleanupPad(inst, fc)
	default:
		return ir.Instruction{}, fmt.Errorf("%w: %s", ErrUnknownOpcode, op)
	}
	if err != nil {
		return ir.Instruction{}, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *Session) decodeBinary(inst foreign.Instruction, fc *funcContext) (ir.BinaryInstr, error) {
	if n := inst.NumOperands(); n != 2 {
		return ir.BinaryInstr{}, operandCountErr(inst, n)
	}
	x, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.BinaryInstr{}, err
	}
	y, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.BinaryInstr{}, err
	}
	return ir.BinaryInstr{X: x, Y: y}, nil
}

func (s *Session) decodeUnary(inst foreign.Instruction, fc *funcContext) (ir.UnaryInstr, error) {
	if n := inst.NumOperands(); n != 1 {
		return ir.UnaryInstr{}, operandCountErr(inst, n)
	}
	x, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.UnaryInstr{}, err
	}
	return ir.UnaryInstr{X: x}, nil
}

func (s *Session) decodeCast(inst foreign.Instruction, fc *funcContext) (ir.CastInstr, error) {
	x, err := s.decodeUnary(inst, fc)
	if err != nil {
		return ir.CastInstr{}, err
	}
	to, err := s.interner.Type(inst.Type())
	if err != nil {
		return ir.CastInstr{}, err
	}
	return ir.CastInstr{X: x.X, To: to}, nil
}

func (s *Session) decodeAlloca(inst foreign.Instruction, fc *funcContext) (ir.AllocaInstr, error) {
	allocated, err := s.interner.Type(inst.AllocatedType())
	if err != nil {
		return ir.AllocaInstr{}, err
	}
	numElems, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.AllocaInstr{}, err
	}
	return ir.AllocaInstr{Allocated: allocated, NumElems: numElems, Align: inst.Alignment()}, nil
}

func (s *Session) decodeLoad(inst foreign.Instruction, fc *funcContext) (ir.LoadInstr, error) {
	addr, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.LoadInstr{}, err
	}
	return ir.LoadInstr{
		Address:  addr,
		Volatile: inst.IsVolatile(),
		Atomic:   ordering(inst.Ordering()),
		Scope:    syncScope(inst),
		Align:    inst.Alignment(),
	}, nil
}

func (s *Session) decodeStore(inst foreign.Instruction, fc *funcContext) (ir.StoreInstr, error) {
	if n := inst.NumOperands(); n != 2 {
		return ir.StoreInstr{}, operandCountErr(inst, n)
	}
	value, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.StoreInstr{}, err
	}
	addr, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.StoreInstr{}, err
	}
	return ir.StoreInstr{
		Address:  addr,
		Value:    value,
		Volatile: inst.IsVolatile(),
		Atomic:   ordering(inst.Ordering()),
		Scope:    syncScope(inst),
		Align:    inst.Alignment(),
	}, nil
}

func (s *Session) decodeCmpXchg(inst foreign.Instruction, fc *funcContext) (ir.CmpXchgInstr, error) {
	if n := inst.NumOperands(); n != 3 {
		return ir.CmpXchgInstr{}, operandCountErr(inst, n)
	}
	addr, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.CmpXchgInstr{}, err
	}
	expected, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.CmpXchgInstr{}, err
	}
	replacement, err := s.operandAt(inst, 2, fc)
	if err != nil {
		return ir.CmpXchgInstr{}, err
	}
	return ir.CmpXchgInstr{
		Address:         addr,
		Expected:        expected,
		Replacement:     replacement,
		Volatile:        inst.IsVolatile(),
		SuccessOrdering: ordering(inst.Ordering()),
		FailureOrdering: ordering(inst.FailureOrdering()),
		Scope:           syncScope(inst),
	}, nil
}

func (s *Session) decodeAtomicRMW(inst foreign.Instruction, fc *funcContext) (ir.AtomicRMWInstr, error) {
	if n := inst.NumOperands(); n != 2 {
		return ir.AtomicRMWInstr{}, operandCountErr(inst, n)
	}
	addr, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.AtomicRMWInstr{}, err
	}
	value, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.AtomicRMWInstr{}, err
	}
	return ir.AtomicRMWInstr{
		Op:       ir.RMWOp(inst.RMWOperation()),
		Address:  addr,
		Value:    value,
		Volatile: inst.IsVolatile(),
		Ordering: ordering(inst.Ordering()),
		Scope:    syncScope(inst),
	}, nil
}

func (s *Session) decodeGEP(inst foreign.Instruction, fc *funcContext) (ir.GEPInstr, error) {
	n := inst.NumOperands()
	if n < 1 {
		return ir.GEPInstr{}, operandCountErr(inst, n)
	}
	addr, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.GEPInstr{}, err
	}
	indices := make([]ir.Operand, 0, n-1)
	for i := 1; i < n; i++ {
		idx, err := s.operandAt(inst, i, fc)
		if err != nil {
			return ir.GEPInstr{}, err
		}
		indices = append(indices, idx)
	}
	return ir.GEPInstr{Address: addr, Indices: indices, InBounds: inst.IsInBounds()}, nil
}

func (s *Session) decodeICmp(inst foreign.Instruction, fc *funcContext) (ir.ICmpInstr, error) {
	body, err := s.decodeBinary(inst, fc)
	if err != nil {
		return ir.ICmpInstr{}, err
	}
	return ir.ICmpInstr{Pred: ir.IntPredicate(inst.IntPredicate()), X: body.X, Y: body.Y}, nil
}

func (s *Session) decodeFCmp(inst foreign.Instruction, fc *funcContext) (ir.FCmpInstr, error) {
	body, err := s.decodeBinary(inst, fc)
	if err != nil {
		return ir.FCmpInstr{}, err
	}
	return ir.FCmpInstr{Pred: ir.FloatPredicate(inst.FloatPredicate()), X: body.X, Y: body.Y}, nil
}

func (s *Session) decodePhi(inst foreign.Instruction, fc *funcContext) (ir.PhiInstr, error) {
	n := inst.NumIncoming()
	incoming := make([]ir.PhiIncoming, 0, n)
	for i := 0; i < n; i++ {
		value, block := inst.Incoming(i)
		v, err := s.decodeOperand(value, fc)
		if err != nil {
			return ir.PhiInstr{}, err
		}
		bb, err := fc.blockName(block)
		if err != nil {
			return ir.PhiInstr{}, err
		}
		incoming = append(incoming, ir.PhiIncoming{Value: v, Block: bb})
	}
	return ir.PhiInstr{Incoming: incoming}, nil
}

func (s *Session) decodeSelect(inst foreign.Instruction, fc *funcContext) (ir.SelectInstr, error) {
	if n := inst.NumOperands(); n != 3 {
		return ir.SelectInstr{}, operandCountErr(inst, n)
	}
	cond, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.SelectInstr{}, err
	}
	trueVal, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.SelectInstr{}, err
	}
	elseVal, err := s.operandAt(inst, 2, fc)
	if err != nil {
		return ir.SelectInstr{}, err
	}
	return ir.SelectInstr{Cond: cond, True: trueVal, Else: elseVal}, nil
}

func (s *Session) decodeCall(inst foreign.Instruction, fc *funcContext) (ir.CallInstr, error) {
	info, err := s.decodeCallInfo(inst, fc)
	if err != nil {
		return ir.CallInstr{}, err
	}
	return ir.CallInstr{
		Callee:      info.callee,
		Args:        info.args,
		ReturnAttrs: info.returnAttrs,
		FnAttrs:     info.fnAttrs,
		CallConv:    info.callConv,
		Tail:        inst.IsTailCall(),
	}, nil
}

func (s *Session) decodeVAArg(inst foreign.Instruction, fc *funcContext) (ir.VAArgInstr, error) {
	argList, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.VAArgInstr{}, err
	}
	to, err := s.interner.Type(inst.Type())
	if err != nil {
		return ir.VAArgInstr{}, err
	}
	return ir.VAArgInstr{ArgList: argList, To: to}, nil
}

func (s *Session) decodeExtractElement(inst foreign.Instruction, fc *funcContext) (ir.ExtractElementInstr, error) {
	body, err := s.decodeBinary(inst, fc)
	if err != nil {
		return ir.ExtractElementInstr{}, err
	}
	return ir.ExtractElementInstr{Vector: body.X, Index: body.Y}, nil
}

func (s *Session) decodeInsertElement(inst foreign.Instruction, fc *funcContext) (ir.InsertElementInstr, error) {
	if n := inst.NumOperands(); n != 3 {
		return ir.InsertElementInstr{}, operandCountErr(inst, n)
	}
	vector, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.InsertElementInstr{}, err
	}
	element, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.InsertElementInstr{}, err
	}
	index, err := s.operandAt(inst, 2, fc)
	if err != nil {
		return ir.InsertElementInstr{}, err
	}
	return ir.InsertElementInstr{Vector: vector, Element: element, Index: index}, nil
}

func (s *Session) decodeShuffleVector(inst foreign.Instruction, fc *funcContext) (ir.ShuffleVectorInstr, error) {
	if n := inst.NumOperands(); n != 3 {
		return ir.ShuffleVectorInstr{}, operandCountErr(inst, n)
	}
	x, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.ShuffleVectorInstr{}, err
	}
	y, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.ShuffleVectorInstr{}, err
	}
	// The shuffle mask is always a constant; operand slot 2 holds it.
	mask, err := s.interner.Constant(inst.Operand(2))
	if err != nil {
		return ir.ShuffleVectorInstr{}, err
	}
	return ir.ShuffleVectorInstr{X: x, Y: y, Mask: mask}, nil
}

func (s *Session) decodeExtractValue(inst foreign.Instruction, fc *funcContext) (ir.ExtractValueInstr, error) {
	agg, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.ExtractValueInstr{}, err
	}
	return ir.ExtractValueInstr{Aggregate: agg, Indices: inst.Indices()}, nil
}

func (s *Session) decodeInsertValue(inst foreign.Instruction, fc *funcContext) (ir.InsertValueInstr, error) {
	if n := inst.NumOperands(); n != 2 {
		return ir.InsertValueInstr{}, operandCountErr(inst, n)
	}
	agg, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.InsertValueInstr{}, err
	}
	element, err := s.operandAt(inst, 1, fc)
	if err != nil {
		return ir.InsertValueInstr{}, err
	}
	return ir.InsertValueInstr{Aggregate: agg, Element: element, Indices: inst.Indices()}, nil
}

func (s *Session) decodeLandingPad(inst foreign.Instruction) (ir.LandingPadInstr, error) {
	n := inst.NumClauses()
	var clauses []ir.LandingPadClause
	if n > 0 {
		clauses = make([]ir.LandingPadClause, 0, n)
		for i := 0; i < n; i++ {
			value, isCatch := inst.Clause(i)
			c, err := s.interner.Constant(value)
			if err != nil {
				return ir.LandingPadInstr{}, err
			}
			clauses = append(clauses, ir.LandingPadClause{Value: c, IsCatch: isCatch})
		}
	}
	return ir.LandingPadInstr{Clauses: clauses, Cleanup: inst.IsCleanup()}, nil
}

// padArgs decodes operands 1..n, shared by catchpad and cleanuppad.
func (s *Session) padArgs(inst foreign.Instruction, fc *funcContext) (ir.Operand, []ir.Operand, error) {
	n := inst.NumOperands()
	if n < 1 {
		return ir.Operand{}, nil, operandCountErr(inst, n)
	}
	parent, err := s.operandAt(inst, 0, fc)
	if err != nil {
		return ir.Operand{}, nil, err
	}
	var args []ir.Operand
	if n > 1 {
		args = make([]ir.Operand, 0, n-1)
		for i := 1; i < n; i++ {
			arg, err := s.operandAt(inst, i, fc)
			if err != nil {
				return ir.Operand{}, nil, err
			}
			args = append(args, arg)
		}
	}
	return parent, args, nil
}

func (s *Session) decodeCatchPad(inst foreign.Instruction, fc *funcContext) (ir.CatchPadInstr, error) {
	catchSwitch, args, err := s.padArgs(inst, fc)
	if err != nil {
		return ir.CatchPadInstr{}, err
	}
	return ir.CatchPadInstr{CatchSwitch: catchSwitch, Args: args}, nil
}

func (s *Session) decodeCleanupPad(inst foreign.Instruction, fc *funcContext) (ir.CleanupPadInstr, error) {
	parentPad, args, err := s.padArgs(inst, fc)
	if err != nil {
		return ir.CleanupPadInstr{}, err
	}
	return ir.CleanupPadInstr{ParentPad: parentPad, Args: args}, nil
}
