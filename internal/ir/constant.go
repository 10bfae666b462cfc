package ir

import (
	"fmt"
	"strings"
)

// ConstKind enumerates the constant catalog.
type ConstKind uint8

const (
	// ConstInt is an integer literal; Int holds the low 64 bits of the value.
	ConstInt ConstKind = iota
	// ConstFloat is a floating-point literal.
	ConstFloat
	// ConstNull is the null pointer value.
	ConstNull
	// ConstAggregateZero is the all-zero value of an aggregate type.
	ConstAggregateZero
	// ConstStruct is a struct literal.
	ConstStruct
	// ConstArray is an array literal.
	ConstArray
	// ConstVector is a vector literal.
	ConstVector
	// ConstUndef is the undefined value.
	ConstUndef
	// ConstBlockAddress is the address of a basic block.
	ConstBlockAddress
	// ConstGlobalRef references a global value (function or variable) by name.
	ConstGlobalRef
	// ConstTokenNone is the none token value.
	ConstTokenNone
	// ConstExpr is a constant expression; Expr holds the opcode mnemonic and
	// Elems holds the operand constants.
	ConstExpr
)

// Constant is a node in the constant value graph. Like types, constants are
// shared within one decode session (the same foreign constant handle maps to
// the same *Constant), and may be referenced from many operands.
type Constant struct {
	Kind ConstKind
	Type *Type

	Int   uint64  // ConstInt, bit pattern of the low 64 bits
	Float float64 // ConstFloat

	Elems []*Constant // ConstStruct/ConstArray/ConstVector members, ConstExpr operands

	Global string // ConstGlobalRef symbol, ConstBlockAddress function
	Block  string // ConstBlockAddress block name ("" if the block is unnamed)

	Expr string // ConstExpr opcode mnemonic
}

// String renders the constant compactly for dumps and error messages.
func (c *Constant) String() string {
	if c == nil {
		return "<nil constant>"
	}
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("%s %d", c.Type, c.Int)
	case ConstFloat:
		return fmt.Sprintf("%s %g", c.Type, c.Float)
	case ConstNull:
		return fmt.Sprintf("%s null", c.Type)
	case ConstAggregateZero:
		return fmt.Sprintf("%s zeroinitializer", c.Type)
	case ConstStruct, ConstArray, ConstVector:
		var sb strings.Builder
		sb.WriteString(c.Type.String())
		sb.WriteString(" [")
		for i, e := range c.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteString("]")
		return sb.String()
	case ConstUndef:
		return fmt.Sprintf("%s undef", c.Type)
	case ConstBlockAddress:
		return fmt.Sprintf("blockaddress(@%s, %%%s)", c.Global, c.Block)
	case ConstGlobalRef:
		return "@" + c.Global
	case ConstTokenNone:
		return "none"
	case ConstExpr:
		var sb strings.Builder
		sb.WriteString(c.Expr)
		sb.WriteString(" (")
		for i, e := range c.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteString(")")
		return sb.String()
	default:
		return "<unknown constant>"
	}
}
