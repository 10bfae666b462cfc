package decode

import (
	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// callInfo is the decoded call-site data shared by call instructions and the
// invoke/callbr terminators.
type callInfo struct {
	callee      ir.Operand
	args        []ir.CallArg
	returnAttrs []ir.ParamAttr
	fnAttrs     []ir.FuncAttr
	callConv    ir.CallingConv
}

// decodeCallInfo extracts the callee, the argument list with per-argument
// attributes, the return/function attribute lists, and the calling
// convention of a call site.
func (s *Session) decodeCallInfo(inst foreign.Instruction, fc *funcContext) (callInfo, error) {
	callee, err := s.decodeOperand(inst.CalledValue(), fc)
	if err != nil {
		return callInfo{}, err
	}

	nargs := inst.NumArgOperands()
	var args []ir.CallArg
	if nargs > 0 {
		args = make([]ir.CallArg, nargs)
		for i := 0; i < nargs; i++ {
			op, err := s.decodeOperand(inst.ArgOperand(i), fc)
			if err != nil {
				return callInfo{}, err
			}
			args[i] = ir.CallArg{
				Value: op,
				Attrs: s.decodeParamAttrs(inst.CallAttributes(foreign.ParamAttrIndex(i))),
			}
		}
	}

	return callInfo{
		callee:      callee,
		args:        args,
		returnAttrs: s.decodeParamAttrs(inst.CallAttributes(foreign.ReturnAttrIndex)),
		fnAttrs:     s.decodeFuncAttrs(inst.CallAttributes(foreign.FunctionAttrIndex)),
		callConv:    ir.CallConvFromCode(inst.CallingConv()),
	}, nil
}
