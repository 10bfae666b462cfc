package decode

import (
	"fmt"

	"irlift/internal/foreign"
)

// Symbolic attribute names the catalog tracks, per namespace. The lists are
// version-gated as a whole: a provider that fails to resolve any of them is
// incompatible with this decoder, which is a build-time mismatch rather than
// a data error.
var functionAttrNames = []string{
	"alignstack",
	"allocsize",
	"alwaysinline",
	"builtin",
	"cold",
	"convergent",
	"inaccessiblememonly",
	"inaccessiblemem_or_argmemonly",
	"inlinehint",
	"jumptable",
	"minsize",
	"naked",
	"nobuiltin",
	"nocf_check",
	"noduplicate",
	"nofree",
	"noimplicitfloat",
	"noinline",
	"nomerge",
	"nonlazybind",
	"noredzone",
	"noreturn",
	"norecurse",
	"willreturn",
	"returns_twice",
	"nosync",
	"nounwind",
	"null_pointer_is_valid",
	"optforfuzzing",
	"optnone",
	"optsize",
	"readnone",
	"readonly",
	"writeonly",
	"argmemonly",
	"safestack",
	"sanitize_address",
	"sanitize_memory",
	"sanitize_thread",
	"sanitize_hwaddress",
	"sanitize_memtag",
	"shadowcallstack",
	"speculative_load_hardening",
	"speculatable",
	"ssp",
	"sspreq",
	"sspstrong",
	"strictfp",
	"uwtable",
}

var paramAttrNames = []string{
	"zeroext",
	"signext",
	"inreg",
	"byval",
	"preallocated",
	"inalloca",
	"sret",
	"align",
	"noalias",
	"nocapture",
	"nofree",
	"nest",
	"returned",
	"nonnull",
	"dereferenceable",
	"dereferenceable_or_null",
	"swiftself",
	"swifterror",
	"immarg",
	"noundef",
}

// Catalog maps the foreign library's enumerated attribute identifiers to
// symbolic names, one table per namespace. Built once per session.
type Catalog struct {
	functionAttrs map[uint32]string
	paramAttrs    map[uint32]string
}

// BuildCatalog queries the provider for the enumerated identifier of every
// tracked symbolic name. A name the provider does not recognize aborts the
// build with ErrCatalogBuild.
func BuildCatalog(src foreign.Module) (*Catalog, error) {
	c := &Catalog{
		functionAttrs: make(map[uint32]string, len(functionAttrNames)),
		paramAttrs:    make(map[uint32]string, len(paramAttrNames)),
	}
	for _, name := range functionAttrNames {
		kind, ok := src.AttributeKindForName(name)
		if !ok {
			return nil, fmt.Errorf("%w: function attribute %q not known to provider", ErrCatalogBuild, name)
		}
		c.functionAttrs[kind] = name
	}
	for _, name := range paramAttrNames {
		kind, ok := src.AttributeKindForName(name)
		if !ok {
			return nil, fmt.Errorf("%w: parameter attribute %q not known to provider", ErrCatalogBuild, name)
		}
		c.paramAttrs[kind] = name
	}
	return c, nil
}

// LookupFunctionAttr returns the symbolic name for an enumerated function
// attribute. A false return is a normal outcome for attributes outside the
// catalog and maps to the Unknown variant, never a failure.
func (c *Catalog) LookupFunctionAttr(kind uint32) (string, bool) {
	name, ok := c.functionAttrs[kind]
	return name, ok
}

// LookupParamAttr returns the symbolic name for an enumerated parameter
// attribute; false means "not tracked", which degrades to Unknown.
func (c *Catalog) LookupParamAttr(kind uint32) (string, bool) {
	name, ok := c.paramAttrs[kind]
	return name, ok
}
