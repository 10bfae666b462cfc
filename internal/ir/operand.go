package ir

// OperandKind separates the three operand shapes.
type OperandKind uint8

const (
	// OperandLocal references a value defined in the same function by Name.
	OperandLocal OperandKind = iota
	// OperandConstant references a shared Constant.
	OperandConstant
	// OperandMetadata marks a non-IR metadata argument.
	OperandMetadata
)

// Operand is one instruction argument. Operands never own a type node:
// locals carry the declared type of the referenced value, constants know
// their own intrinsic type, and metadata has the shared metadata type.
type Operand struct {
	Kind OperandKind

	Local     Name  // OperandLocal
	LocalType *Type // OperandLocal

	Constant *Constant // OperandConstant
}

// LocalOperand builds a reference to a function-local value.
func LocalOperand(name Name, ty *Type) Operand {
	return Operand{Kind: OperandLocal, Local: name, LocalType: ty}
}

// ConstantOperand builds a reference to a shared constant.
func ConstantOperand(c *Constant) Operand {
	return Operand{Kind: OperandConstant, Constant: c}
}

// MetadataOperand builds the metadata marker operand.
func MetadataOperand() Operand {
	return Operand{Kind: OperandMetadata}
}

// TypeOf computes the operand's semantic type from context.
func (o Operand) TypeOf() *Type {
	switch o.Kind {
	case OperandLocal:
		return o.LocalType
	case OperandConstant:
		return o.Constant.Type
	default:
		return MetadataType()
	}
}

// String renders the operand for dumps and error messages.
func (o Operand) String() string {
	switch o.Kind {
	case OperandLocal:
		return o.Local.String()
	case OperandConstant:
		return o.Constant.String()
	default:
		return "metadata"
	}
}
