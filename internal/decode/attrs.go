package decode

import (
	"fortio.org/safecast"

	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// allocsizeNone is the sentinel the foreign library stores in the low half of
// the allocsize payload when no element-count argument was given.
const allocsizeNone = 0xFFFF_FFFF

var funcAttrBySymbol = map[string]ir.FuncAttrKind{
	"alwaysinline": ir.FuncAttrAlwaysInline, "builtin": ir.FuncAttrBuiltin,
	"cold": ir.FuncAttrCold, "convergent": ir.FuncAttrConvergent,
	"inaccessiblememonly":           ir.FuncAttrInaccessibleMemOnly,
	"inaccessiblemem_or_argmemonly": ir.FuncAttrInaccessibleMemOrArgMemOnly,
	"inlinehint":                    ir.FuncAttrInlineHint, "jumptable": ir.FuncAttrJumpTable,
	"minsize": ir.FuncAttrMinimizeSize, "naked": ir.FuncAttrNaked,
	"nobuiltin": ir.FuncAttrNoBuiltin, "nocf_check": ir.FuncAttrNoCFCheck,
	"noduplicate": ir.FuncAttrNoDuplicate, "nofree": ir.FuncAttrNoFree,
	"noimplicitfloat": ir.FuncAttrNoImplicitFloat, "noinline": ir.FuncAttrNoInline,
	"nomerge": ir.FuncAttrNoMerge, "nonlazybind": ir.FuncAttrNonLazyBind,
	"noredzone": ir.FuncAttrNoRedZone, "noreturn": ir.FuncAttrNoReturn,
	"norecurse": ir.FuncAttrNoRecurse, "willreturn": ir.FuncAttrWillReturn,
	"returns_twice": ir.FuncAttrReturnsTwice, "nosync": ir.FuncAttrNoSync,
	"nounwind": ir.FuncAttrNoUnwind, "null_pointer_is_valid": ir.FuncAttrNullPointerIsValid,
	"optforfuzzing": ir.FuncAttrOptForFuzzing, "optnone": ir.FuncAttrOptNone,
	"optsize": ir.FuncAttrOptSize, "readnone": ir.FuncAttrReadNone,
	"readonly": ir.FuncAttrReadOnly, "writeonly": ir.FuncAttrWriteOnly,
	"argmemonly": ir.FuncAttrArgMemOnly, "safestack": ir.FuncAttrSafeStack,
	"sanitize_address": ir.FuncAttrSanitizeAddress, "sanitize_memory": ir.FuncAttrSanitizeMemory,
	"sanitize_thread": ir.FuncAttrSanitizeThread, "sanitize_hwaddress": ir.FuncAttrSanitizeHWAddress,
	"sanitize_memtag": ir.FuncAttrSanitizeMemTag, "shadowcallstack": ir.FuncAttrShadowCallStack,
	"speculative_load_hardening": ir.FuncAttrSpeculativeLoadHardening,
	"speculatable":               ir.FuncAttrSpeculatable, "ssp": ir.FuncAttrStackProtect,
	"sspreq": ir.FuncAttrStackProtectReq, "sspstrong": ir.FuncAttrStackProtectStrong,
	"strictfp": ir.FuncAttrStrictFP, "uwtable": ir.FuncAttrUWTable,
}

// decodeFuncAttr translates one foreign attribute handle in the function
// namespace. An enumerated attribute outside the catalog degrades to
// FuncAttrUnknown.
func (s *Session) decodeFuncAttr(a foreign.Attribute) ir.FuncAttr {
	switch {
	case a.IsEnum():
		symbol, ok := s.catalog.LookupFunctionAttr(a.EnumKind())
		if !ok {
			return ir.FuncAttr{Kind: ir.FuncAttrUnknown}
		}
		switch symbol {
		case "alignstack":
			return ir.FuncAttr{Kind: ir.FuncAttrAlignStack, Value: a.EnumValue()}
		case "allocsize":
			// The element size is the upper 32 bits of the payload; the
			// element count is the lower 32 bits, with all-ones meaning no
			// count argument.
			value := a.EnumValue()
			elt := safecast.MustConv[uint32](value >> 32)
			attr := ir.FuncAttr{Kind: ir.FuncAttrAllocSize, AllocSizeElt: elt}
			if num := safecast.MustConv[uint32](value & allocsizeNone); num != allocsizeNone {
				attr.AllocSizeNum = num
				attr.HasAllocSizeNum = true
			}
			return attr
		default:
			if kind, ok := funcAttrBySymbol[symbol]; ok {
				return ir.FuncAttr{Kind: kind}
			}
			// Catalog and decode table are maintained together; a symbol
			// in one but not the other is still only a lossy degradation.
			return ir.FuncAttr{Kind: ir.FuncAttrUnknown}
		}
	case a.IsString():
		return ir.StringFuncAttr(a.StringKind(), a.StringValue())
	default:
		return ir.FuncAttr{Kind: ir.FuncAttrUnknown}
	}
}

var paramAttrBySymbol = map[string]ir.ParamAttrKind{
	"zeroext": ir.ParamAttrZeroExt, "signext": ir.ParamAttrSignExt,
	"inreg": ir.ParamAttrInReg, "preallocated": ir.ParamAttrPreallocated,
	"inalloca": ir.ParamAttrInAlloca, "noalias": ir.ParamAttrNoAlias,
	"nocapture": ir.ParamAttrNoCapture, "nofree": ir.ParamAttrNoFree,
	"nest": ir.ParamAttrNest, "returned": ir.ParamAttrReturned,
	"nonnull": ir.ParamAttrNonNull, "swiftself": ir.ParamAttrSwiftSelf,
	"swifterror": ir.ParamAttrSwiftError, "immarg": ir.ParamAttrImmArg,
	"noundef": ir.ParamAttrNoUndef,
}

// decodeParamAttr translates one foreign attribute handle in the parameter
// (or return-value) namespace.
func (s *Session) decodeParamAttr(a foreign.Attribute) ir.ParamAttr {
	switch {
	case a.IsEnum():
		symbol, ok := s.catalog.LookupParamAttr(a.EnumKind())
		if !ok {
			return ir.ParamAttr{Kind: ir.ParamAttrUnknown}
		}
		switch symbol {
		case "byval":
			return ir.ParamAttr{Kind: ir.ParamAttrByVal, Value: a.EnumValue()}
		case "sret":
			return ir.ParamAttr{Kind: ir.ParamAttrSRet, Value: a.EnumValue()}
		case "align":
			return ir.ParamAttr{Kind: ir.ParamAttrAlignment, Value: a.EnumValue()}
		case "dereferenceable":
			return ir.ParamAttr{Kind: ir.ParamAttrDereferenceable, Value: a.EnumValue()}
		case "dereferenceable_or_null":
			return ir.ParamAttr{Kind: ir.ParamAttrDereferenceableOrNull, Value: a.EnumValue()}
		default:
			if kind, ok := paramAttrBySymbol[symbol]; ok {
				return ir.ParamAttr{Kind: kind}
			}
			return ir.ParamAttr{Kind: ir.ParamAttrUnknown}
		}
	case a.IsString():
		return ir.StringParamAttr(a.StringKind(), a.StringValue())
	default:
		return ir.ParamAttr{Kind: ir.ParamAttrUnknown}
	}
}

// decodeFuncAttrs translates an attribute list in the function namespace.
func (s *Session) decodeFuncAttrs(attrs []foreign.Attribute) []ir.FuncAttr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]ir.FuncAttr, len(attrs))
	for i, a := range attrs {
		out[i] = s.decodeFuncAttr(a)
	}
	return out
}

// decodeParamAttrs translates an attribute list in the parameter namespace.
func (s *Session) decodeParamAttrs(attrs []foreign.Attribute) []ir.ParamAttr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]ir.ParamAttr, len(attrs))
	for i, a := range attrs {
		out[i] = s.decodeParamAttr(a)
	}
	return out
}
