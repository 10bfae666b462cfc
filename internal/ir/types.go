package ir

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the structural type catalog.
type TypeKind uint8

const (
	// TypeVoid is the empty type.
	TypeVoid TypeKind = iota
	// TypeInt is an integer type with an explicit bit width.
	TypeInt
	// TypeFloat is one of the floating-point types (see FloatKind).
	TypeFloat
	// TypePointer points to an element type in an address space.
	TypePointer
	// TypeFunc is a function signature.
	TypeFunc
	// TypeVector is a SIMD vector of a scalar element type.
	TypeVector
	// TypeArray is a fixed-length array.
	TypeArray
	// TypeStruct is a field aggregate, possibly named, possibly opaque.
	TypeStruct
	// TypeLabel is the type of basic-block references.
	TypeLabel
	// TypeToken is the type of exception-pad values.
	TypeToken
	// TypeMetadata is the type of non-IR metadata values.
	TypeMetadata
)

// FloatKind selects a floating-point representation.
type FloatKind uint8

const (
	FloatHalf FloatKind = iota
	FloatBFloat
	FloatSingle
	FloatDouble
	FloatFP128
	FloatX86FP80
	FloatPPCFP128
)

// String returns the textual type name of the float kind.
func (fk FloatKind) String() string {
	switch fk {
	case FloatHalf:
		return "half"
	case FloatBFloat:
		return "bfloat"
	case FloatSingle:
		return "float"
	case FloatDouble:
		return "double"
	case FloatFP128:
		return "fp128"
	case FloatX86FP80:
		return "x86_fp80"
	case FloatPPCFP128:
		return "ppc_fp128"
	default:
		return "unknown-float"
	}
}

// Type is a node in the structural type graph. Instances produced by one
// decode session are shared: the same foreign type handle always maps to the
// same *Type. Structural equality is independent of that sharing; see Equal.
//
// Only the fields relevant to Kind are populated.
type Type struct {
	Kind TypeKind

	Bits  uint32    // TypeInt
	Float FloatKind // TypeFloat

	Elem      *Type  // TypePointer pointee, TypeVector/TypeArray element
	AddrSpace uint32 // TypePointer
	Count     uint64 // TypeVector/TypeArray length
	Scalable  bool   // TypeVector

	Return   *Type   // TypeFunc
	Params   []*Type // TypeFunc
	Variadic bool    // TypeFunc

	Name   string  // TypeStruct: "" for literal structs
	Opaque bool    // TypeStruct
	Fields []*Type // TypeStruct
	Packed bool    // TypeStruct
}

// Equal reports structural equality. Named structs compare by name, which is
// also what keeps comparison of self-referential structs finite.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypeVoid, TypeLabel, TypeToken, TypeMetadata:
		return true
	case TypeInt:
		return t.Bits == o.Bits
	case TypeFloat:
		return t.Float == o.Float
	case TypePointer:
		return t.AddrSpace == o.AddrSpace && t.Elem.Equal(o.Elem)
	case TypeVector:
		return t.Scalable == o.Scalable && t.Count == o.Count && t.Elem.Equal(o.Elem)
	case TypeArray:
		return t.Count == o.Count && t.Elem.Equal(o.Elem)
	case TypeFunc:
		if t.Variadic != o.Variadic || len(t.Params) != len(o.Params) || !t.Return.Equal(o.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return true
	case TypeStruct:
		if t.Name != "" || o.Name != "" {
			return t.Name == o.Name
		}
		if t.Opaque != o.Opaque || t.Packed != o.Packed || len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if !t.Fields[i].Equal(o.Fields[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the type the way the textual IR would.
func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeInt:
		return fmt.Sprintf("i%d", t.Bits)
	case TypeFloat:
		return t.Float.String()
	case TypePointer:
		if t.AddrSpace != 0 {
			return fmt.Sprintf("%s addrspace(%d)*", t.Elem, t.AddrSpace)
		}
		return t.Elem.String() + "*"
	case TypeVector:
		if t.Scalable {
			return fmt.Sprintf("<vscale x %d x %s>", t.Count, t.Elem)
		}
		return fmt.Sprintf("<%d x %s>", t.Count, t.Elem)
	case TypeArray:
		return fmt.Sprintf("[%d x %s]", t.Count, t.Elem)
	case TypeStruct:
		if t.Name != "" {
			return "%" + t.Name
		}
		if t.Opaque {
			return "opaque"
		}
		var sb strings.Builder
		if t.Packed {
			sb.WriteString("<")
		}
		sb.WriteString("{ ")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.String())
		}
		sb.WriteString(" }")
		if t.Packed {
			sb.WriteString(">")
		}
		return sb.String()
	case TypeFunc:
		var sb strings.Builder
		sb.WriteString(t.Return.String())
		sb.WriteString(" (")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		if t.Variadic {
			if len(t.Params) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("...")
		}
		sb.WriteString(")")
		return sb.String()
	case TypeLabel:
		return "label"
	case TypeToken:
		return "token"
	case TypeMetadata:
		return "metadata"
	default:
		return "<unknown type>"
	}
}

// Shared leaf types for entities whose type never varies.
var (
	voidType     = &Type{Kind: TypeVoid}
	labelType    = &Type{Kind: TypeLabel}
	metadataType = &Type{Kind: TypeMetadata}
)

// VoidType returns the shared void type node.
func VoidType() *Type { return voidType }

// LabelType returns the shared label type node.
func LabelType() *Type { return labelType }

// MetadataType returns the shared metadata type node.
func MetadataType() *Type { return metadataType }
