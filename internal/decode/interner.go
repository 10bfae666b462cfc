package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// Interner maps foreign type and constant handles to shared owned instances,
// memoized by handle identity. The first request for a handle performs the
// full structural decode; later requests return the cached instance in
// constant time. The cache is session-scoped and never evicts.
type Interner struct {
	types  map[foreign.Type]*ir.Type
	consts map[foreign.Value]*ir.Constant
}

// NewInterner builds an empty session cache.
func NewInterner() *Interner {
	return &Interner{
		types:  make(map[foreign.Type]*ir.Type, 64),
		consts: make(map[foreign.Value]*ir.Constant, 64),
	}
}

// Type interns the foreign type handle. The owned node is cached before its
// components are decoded, which is what breaks cycles in the foreign type
// graph (a struct referencing itself through a pointer field).
func (in *Interner) Type(t foreign.Type) (*ir.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type handle", ErrMalformed)
	}
	if owned, ok := in.types[t]; ok {
		return owned, nil
	}

	owned := &ir.Type{}
	in.types[t] = owned

	switch t.Kind() {
	case foreign.TypeVoid:
		owned.Kind = ir.TypeVoid
	case foreign.TypeLabel:
		owned.Kind = ir.TypeLabel
	case foreign.TypeToken:
		owned.Kind = ir.TypeToken
	case foreign.TypeMetadata:
		owned.Kind = ir.TypeMetadata
	case foreign.TypeInteger:
		owned.Kind = ir.TypeInt
		owned.Bits = t.BitWidth()
	case foreign.TypeHalf:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatHalf
	case foreign.TypeBFloat:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatBFloat
	case foreign.TypeFloat:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatSingle
	case foreign.TypeDouble:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatDouble
	case foreign.TypeFP128:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatFP128
	case foreign.TypeX86FP80:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatX86FP80
	case foreign.TypePPCFP128:
		owned.Kind = ir.TypeFloat
		owned.Float = ir.FloatPPCFP128
	case foreign.TypePointer:
		owned.Kind = ir.TypePointer
		owned.AddrSpace = t.AddrSpace()
		elem, err := in.Type(t.Elem())
		if err != nil {
			return nil, err
		}
		owned.Elem = elem
	case foreign.TypeArray:
		owned.Kind = ir.TypeArray
		owned.Count = t.Count()
		elem, err := in.Type(t.Elem())
		if err != nil {
			return nil, err
		}
		owned.Elem = elem
	case foreign.TypeVector, foreign.TypeScalableVector:
		owned.Kind = ir.TypeVector
		owned.Count = t.Count()
		owned.Scalable = t.Kind() == foreign.TypeScalableVector
		elem, err := in.Type(t.Elem())
		if err != nil {
			return nil, err
		}
		owned.Elem = elem
	case foreign.TypeStruct:
		owned.Kind = ir.TypeStruct
		owned.Name = t.StructName()
		owned.Packed = t.IsPacked()
		if t.IsOpaqueStruct() {
			owned.Opaque = true
			break
		}
		fields := t.Fields()
		owned.Fields = make([]*ir.Type, len(fields))
		for i, f := range fields {
			ft, err := in.Type(f)
			if err != nil {
				return nil, err
			}
			owned.Fields[i] = ft
		}
	case foreign.TypeFunction:
		owned.Kind = ir.TypeFunc
		owned.Variadic = t.IsVariadic()
		ret, err := in.Type(t.Return())
		if err != nil {
			return nil, err
		}
		owned.Return = ret
		params := t.Params()
		owned.Params = make([]*ir.Type, len(params))
		for i, p := range params {
			pt, err := in.Type(p)
			if err != nil {
				return nil, err
			}
			owned.Params[i] = pt
		}
	default:
		return nil, fmt.Errorf("%w: unknown type kind %d", ErrMalformed, t.Kind())
	}
	return owned, nil
}

// Constant interns the foreign constant handle, recursively interning any
// referenced sub-constants and types. Constants can be very large (arrays of
// millions of elements) and referenced from many sites, so sharing matters.
func (in *Interner) Constant(v foreign.Value) (*ir.Constant, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil constant handle", ErrMalformed)
	}
	if owned, ok := in.consts[v]; ok {
		return owned, nil
	}
	c := v.AsConstant()
	if c == nil {
		return nil, fmt.Errorf("%w: value handle is not a constant", ErrMalformed)
	}

	ty, err := in.Type(c.Type())
	if err != nil {
		return nil, err
	}
	owned := &ir.Constant{Type: ty}
	in.consts[v] = owned

	switch c.ConstKind() {
	case foreign.ConstInt:
		owned.Kind = ir.ConstInt
		owned.Int = c.IntValue()
	case foreign.ConstFloat:
		owned.Kind = ir.ConstFloat
		owned.Float = c.FloatValue()
	case foreign.ConstNull:
		owned.Kind = ir.ConstNull
	case foreign.ConstAggregateZero:
		owned.Kind = ir.ConstAggregateZero
	case foreign.ConstUndef:
		owned.Kind = ir.ConstUndef
	case foreign.ConstTokenNone:
		owned.Kind = ir.ConstTokenNone
	case foreign.ConstGlobalRef:
		owned.Kind = ir.ConstGlobalRef
		owned.Global = c.GlobalValueName()
	case foreign.ConstBlockAddress:
		owned.Kind = ir.ConstBlockAddress
		owned.Global = c.GlobalValueName()
		owned.Block = c.BlockAddressBlockName()
	case foreign.ConstStruct, foreign.ConstArray, foreign.ConstVector:
		switch c.ConstKind() {
		case foreign.ConstStruct:
			owned.Kind = ir.ConstStruct
		case foreign.ConstArray:
			owned.Kind = ir.ConstArray
		default:
			owned.Kind = ir.ConstVector
		}
		elems := c.Elements()
		owned.Elems = make([]*ir.Constant, len(elems))
		for i, e := range elems {
			oe, err := in.Constant(e)
			if err != nil {
				return nil, err
			}
			owned.Elems[i] = oe
		}
	case foreign.ConstExpr:
		owned.Kind = ir.ConstExpr
		owned.Expr = c.ExprOpcode().String()
		elems := c.Elements()
		owned.Elems = make([]*ir.Constant, len(elems))
		for i, e := range elems {
			oe, err := in.Constant(e)
			if err != nil {
				return nil, err
			}
			owned.Elems[i] = oe
		}
	default:
		return nil, fmt.Errorf("%w: unknown constant kind %d", ErrMalformed, c.ConstKind())
	}
	return owned, nil
}
