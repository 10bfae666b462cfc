// Package fixture is an in-memory provider of the foreign module surface.
//
// Handles are plain pointers, so the identity semantics the decoder relies on
// (same handle, same interned result) hold by construction. Fixtures are
// built either programmatically, with the constructors and chained setters in
// this package, or from TOML files via LoadFile.
package fixture

import "irlift/internal/foreign"

// Global is a module-level variable handle.
type Global struct {
	name    string
	typ     *Type
	linkage foreign.Linkage
	hasInit bool
}

// NewGlobal builds a global variable handle with external linkage.
func NewGlobal(name string, typ *Type) *Global {
	return &Global{name: name, typ: typ, linkage: foreign.LinkExternal}
}

// WithLinkage sets the linkage class.
func (g *Global) WithLinkage(l foreign.Linkage) *Global { g.linkage = l; return g }

// Initialized marks the global as carrying an initializer.
func (g *Global) Initialized() *Global { g.hasInit = true; return g }

func (g *Global) Name() string { return g.name }
func (g *Global) Type() foreign.Type { return g.typ }
func (g *Global) Linkage() foreign.Linkage { return g.linkage }
func (g *Global) HasInitializer() bool { return g.hasInit }

// Function is a function handle.
type Function struct {
	name     string
	params   []*Param
	blocks   []*Block
	ret      *Type
	variadic bool

	linkage      foreign.Linkage
	visibility   foreign.Visibility
	storageClass foreign.DLLStorageClass
	callConv     uint32
	section      string
	hasSection   bool
	comdatName   string
	comdatKind   foreign.ComdatKind
	hasComdat    bool
	alignment    uint32
	gcName       string
	hasGC        bool
	personality  foreign.Value
	attrs        map[foreign.AttrIndex][]foreign.Attribute
	loc          *foreign.DebugLoc
}

// NewFunction builds a function handle with external linkage and the default
// calling convention.
func NewFunction(name string, ret *Type, params ...*Param) *Function {
	return &Function{name: name, ret: ret, params: params, linkage: foreign.LinkExternal}
}

// AddBlock appends basic blocks in declaration order.
func (f *Function) AddBlock(blocks ...*Block) *Function {
	f.blocks = append(f.blocks, blocks...)
	return f
}

// Variadic marks the function variadic.
func (f *Function) Variadic() *Function { f.variadic = true; return f }

// WithLinkage sets the linkage class.
func (f *Function) WithLinkage(l foreign.Linkage) *Function { f.linkage = l; return f }

// WithVisibility sets the symbol visibility.
func (f *Function) WithVisibility(v foreign.Visibility) *Function { f.visibility = v; return f }

// WithStorageClass sets the DLL storage class.
func (f *Function) WithStorageClass(c foreign.DLLStorageClass) *Function {
	f.storageClass = c
	return f
}

// WithCallConv sets the calling convention code.
func (f *Function) WithCallConv(code uint32) *Function { f.callConv = code; return f }

// InSection places the function in a named object-file section.
func (f *Function) InSection(s string) *Function {
	f.section = s
	f.hasSection = true
	return f
}

// WithComdat attaches a comdat group.
func (f *Function) WithComdat(name string, kind foreign.ComdatKind) *Function {
	f.comdatName = name
	f.comdatKind = kind
	f.hasComdat = true
	return f
}

// WithAlignment sets the function alignment.
func (f *Function) WithAlignment(a uint32) *Function { f.alignment = a; return f }

// WithGC sets the garbage-collector strategy name.
func (f *Function) WithGC(name string) *Function {
	f.gcName = name
	f.hasGC = true
	return f
}

// WithPersonality attaches an exception personality value.
func (f *Function) WithPersonality(v foreign.Value) *Function { f.personality = v; return f }

// WithAttrs attaches attribute handles at the given index.
func (f *Function) WithAttrs(idx foreign.AttrIndex, attrs ...foreign.Attribute) *Function {
	if f.attrs == nil {
		f.attrs = make(map[foreign.AttrIndex][]foreign.Attribute)
	}
	f.attrs[idx] = append(f.attrs[idx], attrs...)
	return f
}

// At attaches a source location.
func (f *Function) At(loc foreign.DebugLoc) *Function { f.loc = &loc; return f }

func (f *Function) Name() string { return f.name }

func (f *Function) Parameters() []foreign.Value {
	out := make([]foreign.Value, len(f.params))
	for i, p := range f.params {
		out[i] = p
	}
	return out
}

func (f *Function) Blocks() []foreign.Block {
	out := make([]foreign.Block, len(f.blocks))
	for i, b := range f.blocks {
		out[i] = b
	}
	return out
}

func (f *Function) ReturnType() foreign.Type { return f.ret }
func (f *Function) IsVariadic() bool { return f.variadic }

func (f *Function) Linkage() foreign.Linkage { return f.linkage }
func (f *Function) Visibility() foreign.Visibility { return f.visibility }
func (f *Function) StorageClass() foreign.DLLStorageClass { return f.storageClass }
func (f *Function) CallingConv() uint32 { return f.callConv }
func (f *Function) Section() (string, bool) { return f.section, f.hasSection }
func (f *Function) Alignment() uint32 { return f.alignment }
func (f *Function) GCName() (string, bool) { return f.gcName, f.hasGC }

func (f *Function) Comdat() (string, foreign.ComdatKind, bool) {
	return f.comdatName, f.comdatKind, f.hasComdat
}

func (f *Function) Personality() (foreign.Value, bool) {
	if f.personality == nil {
		return nil, false
	}
	return f.personality, true
}

func (f *Function) Attributes(idx foreign.AttrIndex) []foreign.Attribute {
	return f.attrs[idx]
}

func (f *Function) DebugLoc() (foreign.DebugLoc, bool) {
	if f.loc == nil {
		return foreign.DebugLoc{}, false
	}
	return *f.loc, true
}

// Module is the root fixture handle.
type Module struct {
	name    string
	source  string
	triple  string
	layout  string
	funcs   []*Function
	globals []*Global

	attrKinds map[string]uint32
	nextKind  uint32
	unknown   map[string]bool
}

// NewModule builds an empty fixture module.
func NewModule(name string) *Module {
	return &Module{
		name:      name,
		source:    name,
		attrKinds: make(map[string]uint32),
		nextKind:  1,
	}
}

// WithSource sets the source filename.
func (m *Module) WithSource(s string) *Module { m.source = s; return m }

// WithTriple sets the target triple.
func (m *Module) WithTriple(t string) *Module { m.triple = t; return m }

// WithLayout sets the data layout string.
func (m *Module) WithLayout(l string) *Module { m.layout = l; return m }

// AddFunction appends function handles.
func (m *Module) AddFunction(funcs ...*Function) *Module {
	m.funcs = append(m.funcs, funcs...)
	return m
}

// AddGlobal appends global handles.
func (m *Module) AddGlobal(globals ...*Global) *Module {
	m.globals = append(m.globals, globals...)
	return m
}

// ForgetAttr makes the module deny knowing the given attribute names, which
// simulates an older provider version.
func (m *Module) ForgetAttr(names ...string) *Module {
	if m.unknown == nil {
		m.unknown = make(map[string]bool, len(names))
	}
	for _, n := range names {
		m.unknown[n] = true
	}
	return m
}

// Enum builds an enumerated attribute handle whose kind identifier is
// consistent with this module's AttributeKindForName answers.
func (m *Module) Enum(name string, value uint64) foreign.Attribute {
	return &enumAttr{kind: m.kindFor(name), value: value}
}

func (m *Module) kindFor(name string) uint32 {
	if kind, ok := m.attrKinds[name]; ok {
		return kind
	}
	kind := m.nextKind
	m.nextKind++
	m.attrKinds[name] = kind
	return kind
}

func (m *Module) Name() string { return m.name }
func (m *Module) SourceFilename() string { return m.source }
func (m *Module) TargetTriple() string { return m.triple }
func (m *Module) DataLayout() string { return m.layout }

func (m *Module) Functions() []foreign.Function {
	out := make([]foreign.Function, len(m.funcs))
	for i, f := range m.funcs {
		out[i] = f
	}
	return out
}

func (m *Module) Globals() []foreign.Global {
	out := make([]foreign.Global, len(m.globals))
	for i, g := range m.globals {
		out[i] = g
	}
	return out
}

// AttributeKindForName assigns identifiers on first request, so any name the
// module has not been told to forget resolves. The identifiers are stable
// within one module and shared with Enum.
func (m *Module) AttributeKindForName(name string) (uint32, bool) {
	if m.unknown[name] {
		return 0, false
	}
	return m.kindFor(name), true
}
