package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
)

func operandCountErr(inst foreign.Instruction, n int) error {
	return fmt.Errorf("%w: %s with %d operands", ErrOperandCount, inst.Opcode(), n)
}

// decodeOperand classifies a foreign value handle into exactly one operand
// shape: constant (interned), metadata marker, or local reference resolved
// through the naming-pass map.
func (s *Session) decodeOperand(v foreign.Value, fc *funcContext) (ir.Operand, error) {
	switch {
	case v.IsConstant():
		c, err := s.interner.Constant(v)
		if err != nil {
			return ir.Operand{}, err
		}
		return ir.ConstantOperand(c), nil
	case v.IsMetadata():
		return ir.MetadataOperand(), nil
	default:
		name, err := fc.valueName(v)
		if err != nil {
			return ir.Operand{}, err
		}
		ty, err := s.interner.Type(v.Type())
		if err != nil {
			return ir.Operand{}, err
		}
		return ir.LocalOperand(name, ty), nil
	}
}

// operandAt bounds-checks and decodes the i-th operand.
func (s *Session) operandAt(inst foreign.Instruction, i int, fc *funcContext) (ir.Operand, error) {
	if i < 0 || i >= inst.NumOperands() {
		return ir.Operand{}, operandCountErr(inst, inst.NumOperands())
	}
	return s.decodeOperand(inst.Operand(i), fc)
}
