package ir

// TermKind enumerates the terminator catalog.
type TermKind uint8

const (
	TermInvalid TermKind = iota
	TermRet
	TermBr
	TermCondBr
	TermSwitch
	TermIndirectBr
	TermInvoke
	TermResume
	TermUnreachable
	TermCleanupRet
	TermCatchRet
	TermCatchSwitch
	TermCallBr
)

// Terminator ends a basic block and determines successor control flow.
// Exactly one terminator occurs per block, always in final position; the
// decoders preserve this by construction.
type Terminator struct {
	Kind TermKind
	Loc  *DebugLoc

	Ret         RetTerm
	Br          BrTerm
	CondBr      CondBrTerm
	Switch      SwitchTerm
	IndirectBr  IndirectBrTerm
	Invoke      InvokeTerm
	Resume      ResumeTerm
	Unreachable struct{}
	CleanupRet  CleanupRetTerm
	CatchRet    CatchRetTerm
	CatchSwitch CatchSwitchTerm
	CallBr      CallBrTerm
}

// RetTerm returns from the function. An empty return is distinct from
// returning a value: HasValue is false and Value is the zero Operand.
type RetTerm struct {
	HasValue bool
	Value    Operand
}

// BrTerm is an unconditional branch.
type BrTerm struct {
	Dest Name
}

// CondBrTerm is a conditional branch.
type CondBrTerm struct {
	Cond  Operand
	True  Name
	False Name
}

// SwitchCase is one (comparison value, destination) pair of a switch.
type SwitchCase struct {
	Value *Constant
	Dest  Name
}

// SwitchTerm is a multi-way branch on an integer value.
type SwitchTerm struct {
	Operand Operand
	Cases   []SwitchCase
	Default Name
}

// IndirectBrTerm branches to a computed block address. PossibleDests is the
// full set of blocks the branch could reach.
type IndirectBrTerm struct {
	Operand       Operand
	PossibleDests []Name
}

// InvokeTerm calls a function with an exceptional edge. Result always names
// the call result, even when the callee returns void.
type InvokeTerm struct {
	Callee      Operand
	Args        []CallArg
	ReturnAttrs []ParamAttr
	Result      Name
	Return      Name
	Exception   Name
	FnAttrs     []FuncAttr
	CallConv    CallingConv
}

// ResumeTerm resumes propagation of an in-flight exception.
type ResumeTerm struct {
	Operand Operand
}

// CleanupRetTerm leaves a cleanup pad. HasUnwindDest false means the
// exception unwinds to the caller; that absence is explicit, not an error.
type CleanupRetTerm struct {
	CleanupPad    Operand
	HasUnwindDest bool
	UnwindDest    Name
}

// CatchRetTerm leaves a catch pad and continues at Successor.
type CatchRetTerm struct {
	CatchPad  Operand
	Successor Name
}

// CatchSwitchTerm dispatches an exception to one of its handlers.
// HasUnwindDest false means unwind-to-caller, same as CleanupRet.
type CatchSwitchTerm struct {
	ParentPad     Operand
	Handlers      []Name // never empty in well-formed input
	HasUnwindDest bool
	UnwindDest    Name
	Result        Name
}

// CallBrTerm is a call with additional inline-asm transfer targets.
// OtherDests is structurally present but always left empty: the chosen
// foreign query surface cannot recover the target list.
type CallBrTerm struct {
	Callee      Operand
	Args        []CallArg
	ReturnAttrs []ParamAttr
	Result      Name
	Return      Name
	OtherDests  []Name
	FnAttrs     []FuncAttr
	CallConv    CallingConv
}
