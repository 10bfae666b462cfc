package ir

import "fmt"

// FuncAttrKind enumerates the function-attribute catalog.
type FuncAttrKind uint8

const (
	FuncAttrAlignStack FuncAttrKind = iota
	FuncAttrAllocSize
	FuncAttrAlwaysInline
	FuncAttrBuiltin
	FuncAttrCold
	FuncAttrConvergent
	FuncAttrInaccessibleMemOnly
	FuncAttrInaccessibleMemOrArgMemOnly
	FuncAttrInlineHint
	FuncAttrJumpTable
	FuncAttrMinimizeSize
	FuncAttrNaked
	FuncAttrNoBuiltin
	FuncAttrNoCFCheck
	FuncAttrNoDuplicate
	FuncAttrNoFree
	FuncAttrNoImplicitFloat
	FuncAttrNoInline
	FuncAttrNoMerge
	FuncAttrNonLazyBind
	FuncAttrNoRedZone
	FuncAttrNoReturn
	FuncAttrNoRecurse
	FuncAttrWillReturn
	FuncAttrReturnsTwice
	FuncAttrNoSync
	FuncAttrNoUnwind
	FuncAttrNullPointerIsValid
	FuncAttrOptForFuzzing
	FuncAttrOptNone
	FuncAttrOptSize
	FuncAttrReadNone
	FuncAttrReadOnly
	FuncAttrWriteOnly
	FuncAttrArgMemOnly
	FuncAttrSafeStack
	FuncAttrSanitizeAddress
	FuncAttrSanitizeMemory
	FuncAttrSanitizeThread
	FuncAttrSanitizeHWAddress
	FuncAttrSanitizeMemTag
	FuncAttrShadowCallStack
	FuncAttrSpeculativeLoadHardening
	FuncAttrSpeculatable
	FuncAttrStackProtect
	FuncAttrStackProtectReq
	FuncAttrStackProtectStrong
	FuncAttrStrictFP
	FuncAttrUWTable
	// FuncAttrString is a free-form (kind, value) string attribute.
	FuncAttrString
	// FuncAttrUnknown marks an enumerated attribute outside the catalog.
	// Decoding to it is the documented lossy-but-safe degradation; it is
	// never an error.
	FuncAttrUnknown
)

// FuncAttr is one function-level attribute.
type FuncAttr struct {
	Kind FuncAttrKind

	// Value carries the integer payload of alignstack.
	Value uint64

	// AllocSize payload: element size plus an optional element count.
	AllocSizeElt    uint32
	AllocSizeNum    uint32
	HasAllocSizeNum bool

	// String attribute payload.
	StrKind  string
	StrValue string
}

// StringFuncAttr builds a free-form string attribute.
func StringFuncAttr(kind, value string) FuncAttr {
	return FuncAttr{Kind: FuncAttrString, StrKind: kind, StrValue: value}
}

var funcAttrNames = map[FuncAttrKind]string{
	FuncAttrAlignStack: "alignstack", FuncAttrAllocSize: "allocsize",
	FuncAttrAlwaysInline: "alwaysinline", FuncAttrBuiltin: "builtin",
	FuncAttrCold: "cold", FuncAttrConvergent: "convergent",
	FuncAttrInaccessibleMemOnly:         "inaccessiblememonly",
	FuncAttrInaccessibleMemOrArgMemOnly: "inaccessiblemem_or_argmemonly",
	FuncAttrInlineHint:                  "inlinehint", FuncAttrJumpTable: "jumptable",
	FuncAttrMinimizeSize: "minsize", FuncAttrNaked: "naked",
	FuncAttrNoBuiltin: "nobuiltin", FuncAttrNoCFCheck: "nocf_check",
	FuncAttrNoDuplicate: "noduplicate", FuncAttrNoFree: "nofree",
	FuncAttrNoImplicitFloat: "noimplicitfloat", FuncAttrNoInline: "noinline",
	FuncAttrNoMerge: "nomerge", FuncAttrNonLazyBind: "nonlazybind",
	FuncAttrNoRedZone: "noredzone", FuncAttrNoReturn: "noreturn",
	FuncAttrNoRecurse: "norecurse", FuncAttrWillReturn: "willreturn",
	FuncAttrReturnsTwice: "returns_twice", FuncAttrNoSync: "nosync",
	FuncAttrNoUnwind: "nounwind", FuncAttrNullPointerIsValid: "null_pointer_is_valid",
	FuncAttrOptForFuzzing: "optforfuzzing", FuncAttrOptNone: "optnone",
	FuncAttrOptSize: "optsize", FuncAttrReadNone: "readnone",
	FuncAttrReadOnly: "readonly", FuncAttrWriteOnly: "writeonly",
	FuncAttrArgMemOnly: "argmemonly", FuncAttrSafeStack: "safestack",
	FuncAttrSanitizeAddress: "sanitize_address", FuncAttrSanitizeMemory: "sanitize_memory",
	FuncAttrSanitizeThread: "sanitize_thread", FuncAttrSanitizeHWAddress: "sanitize_hwaddress",
	FuncAttrSanitizeMemTag: "sanitize_memtag", FuncAttrShadowCallStack: "shadowcallstack",
	FuncAttrSpeculativeLoadHardening: "speculative_load_hardening",
	FuncAttrSpeculatable:             "speculatable", FuncAttrStackProtect: "ssp",
	FuncAttrStackProtectReq: "sspreq", FuncAttrStackProtectStrong: "sspstrong",
	FuncAttrStrictFP: "strictfp", FuncAttrUWTable: "uwtable",
}

// String renders the attribute the way the textual IR would.
func (a FuncAttr) String() string {
	switch a.Kind {
	case FuncAttrAlignStack:
		return fmt.Sprintf("alignstack(%d)", a.Value)
	case FuncAttrAllocSize:
		if a.HasAllocSizeNum {
			return fmt.Sprintf("allocsize(%d,%d)", a.AllocSizeElt, a.AllocSizeNum)
		}
		return fmt.Sprintf("allocsize(%d)", a.AllocSizeElt)
	case FuncAttrString:
		return fmt.Sprintf("%q=%q", a.StrKind, a.StrValue)
	case FuncAttrUnknown:
		return "<unknown attr>"
	default:
		if s, ok := funcAttrNames[a.Kind]; ok {
			return s
		}
		return "<unknown attr>"
	}
}

// ParamAttrKind enumerates the parameter-attribute catalog. Parameter
// attributes also apply to function return values.
type ParamAttrKind uint8

const (
	ParamAttrZeroExt ParamAttrKind = iota
	ParamAttrSignExt
	ParamAttrInReg
	ParamAttrByVal
	ParamAttrPreallocated
	ParamAttrInAlloca
	ParamAttrSRet
	ParamAttrAlignment
	ParamAttrNoAlias
	ParamAttrNoCapture
	ParamAttrNoFree
	ParamAttrNest
	ParamAttrReturned
	ParamAttrNonNull
	ParamAttrDereferenceable
	ParamAttrDereferenceableOrNull
	ParamAttrSwiftSelf
	ParamAttrSwiftError
	ParamAttrImmArg
	ParamAttrNoUndef
	// ParamAttrString is a free-form (kind, value) string attribute.
	ParamAttrString
	// ParamAttrUnknown marks an enumerated attribute outside the catalog.
	ParamAttrUnknown
)

// ParamAttr is one parameter-level (or return-value) attribute. Value carries
// the integer payload of byval, sret, align, dereferenceable, and
// dereferenceable_or_null.
type ParamAttr struct {
	Kind  ParamAttrKind
	Value uint64

	StrKind  string
	StrValue string
}

// StringParamAttr builds a free-form string attribute.
func StringParamAttr(kind, value string) ParamAttr {
	return ParamAttr{Kind: ParamAttrString, StrKind: kind, StrValue: value}
}

var paramAttrNames = map[ParamAttrKind]string{
	ParamAttrZeroExt: "zeroext", ParamAttrSignExt: "signext",
	ParamAttrInReg: "inreg", ParamAttrByVal: "byval",
	ParamAttrPreallocated: "preallocated", ParamAttrInAlloca: "inalloca",
	ParamAttrSRet: "sret", ParamAttrAlignment: "align",
	ParamAttrNoAlias: "noalias", ParamAttrNoCapture: "nocapture",
	ParamAttrNoFree: "nofree", ParamAttrNest: "nest",
	ParamAttrReturned: "returned", ParamAttrNonNull: "nonnull",
	ParamAttrDereferenceable:       "dereferenceable",
	ParamAttrDereferenceableOrNull: "dereferenceable_or_null",
	ParamAttrSwiftSelf:             "swiftself", ParamAttrSwiftError: "swifterror",
	ParamAttrImmArg: "immarg", ParamAttrNoUndef: "noundef",
}

// String renders the attribute the way the textual IR would.
func (a ParamAttr) String() string {
	switch a.Kind {
	case ParamAttrByVal, ParamAttrSRet, ParamAttrAlignment,
		ParamAttrDereferenceable, ParamAttrDereferenceableOrNull:
		return fmt.Sprintf("%s(%d)", paramAttrNames[a.Kind], a.Value)
	case ParamAttrString:
		return fmt.Sprintf("%q=%q", a.StrKind, a.StrValue)
	case ParamAttrUnknown:
		return "<unknown attr>"
	default:
		if s, ok := paramAttrNames[a.Kind]; ok {
			return s
		}
		return "<unknown attr>"
	}
}
