package fixture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"irlift/internal/foreign"
)

// ErrBadFixture reports a structurally invalid fixture file.
var ErrBadFixture = errors.New("invalid fixture")

// fileSpec is the TOML document root.
//
//	name = "demo"
//	triple = "x86_64-unknown-linux-gnu"
//
//	[[types]]
//	name = "node"
//	fields = ["i64", "%node*"]
//
//	[[functions]]
//	name = "add"
//	return = "i32"
//	params = [{ id = "a", type = "i32" }, { id = "b", type = "i32" }]
//
//	[[functions.blocks]]
//	id = "entry"
//
//	[[functions.blocks.instrs]]
//	id = "sum"
//	op = "add"
//	type = "i32"
//	operands = ["%a", "%b"]
//
//	[[functions.blocks.instrs]]
//	op = "ret"
//	operands = ["%sum"]
//
// Instruction operands reference parameters and earlier (or later) results by
// fixture id with "%id", blocks with "label id", and spell constants as
// "<type> <literal>".
type fileSpec struct {
	Name      string       `toml:"name"`
	Source    string       `toml:"source"`
	Triple    string       `toml:"triple"`
	Layout    string       `toml:"layout"`
	Types     []typeSpec   `toml:"types"`
	Globals   []globalSpec `toml:"globals"`
	Functions []funcSpec   `toml:"functions"`
}

type typeSpec struct {
	Name   string   `toml:"name"`
	Fields []string `toml:"fields"`
	Packed bool     `toml:"packed"`
}

type globalSpec struct {
	Name        string `toml:"name"`
	Type        string `toml:"type"`
	Linkage     string `toml:"linkage"`
	Initialized bool   `toml:"initialized"`
}

type funcSpec struct {
	Name     string      `toml:"name"`
	Return   string      `toml:"return"`
	Params   []paramSpec `toml:"params"`
	Variadic bool        `toml:"variadic"`
	Linkage  string      `toml:"linkage"`
	CallConv uint32      `toml:"callconv"`
	Blocks   []blockSpec `toml:"blocks"`
}

type paramSpec struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type blockSpec struct {
	ID     string      `toml:"id"`
	Name   string      `toml:"name"`
	Instrs []instrSpec `toml:"instrs"`
}

type instrSpec struct {
	ID       string   `toml:"id"`
	Op       string   `toml:"op"`
	Name     string   `toml:"name"`
	Type     string   `toml:"type"`
	Operands []string `toml:"operands"`

	Succs    []string   `toml:"succs"`
	Normal   string     `toml:"normal"`
	Unwind   string     `toml:"unwind"`
	Default  string     `toml:"default"`
	Handlers []string   `toml:"handlers"`
	Incoming [][]string `toml:"incoming"`

	Pred      string   `toml:"pred"`
	Volatile  bool     `toml:"volatile"`
	Align     uint32   `toml:"align"`
	Ordering  string   `toml:"ordering"`
	RMW       string   `toml:"rmw"`
	Allocated string   `toml:"allocated"`
	InBounds  bool     `toml:"inbounds"`
	Indices   []uint32 `toml:"indices"`

	Callee   string   `toml:"callee"`
	Args     []string `toml:"args"`
	Tail     bool     `toml:"tail"`
	CallConv uint32   `toml:"callconv"`
}

var linkageByName = map[string]foreign.Linkage{
	"": foreign.LinkExternal, "external": foreign.LinkExternal,
	"available_externally": foreign.LinkAvailableExternally,
	"linkonce":             foreign.LinkLinkOnceAny,
	"linkonce_odr":         foreign.LinkLinkOnceODR,
	"weak":                 foreign.LinkWeakAny,
	"weak_odr":             foreign.LinkWeakODR,
	"appending":            foreign.LinkAppending,
	"internal":             foreign.LinkInternal,
	"private":              foreign.LinkPrivate,
	"extern_weak":          foreign.LinkExternalWeak,
	"common":               foreign.LinkCommon,
}

var orderingByName = map[string]foreign.AtomicOrdering{
	"":          foreign.OrderingNotAtomic,
	"unordered": foreign.OrderingUnordered,
	"monotonic": foreign.OrderingMonotonic,
	"acquire":   foreign.OrderingAcquire,
	"release":   foreign.OrderingRelease,
	"acq_rel":   foreign.OrderingAcquireRelease,
	"seq_cst":   foreign.OrderingSequentiallyConsistent,
}

var intPredByName = map[string]foreign.IntPredicate{
	"eq": foreign.IntEQ, "ne": foreign.IntNE,
	"ugt": foreign.IntUGT, "uge": foreign.IntUGE,
	"ult": foreign.IntULT, "ule": foreign.IntULE,
	"sgt": foreign.IntSGT, "sge": foreign.IntSGE,
	"slt": foreign.IntSLT, "sle": foreign.IntSLE,
}

var rmwByName = map[string]foreign.RMWOp{
	"xchg": foreign.RMWXchg, "add": foreign.RMWAdd, "sub": foreign.RMWSub,
	"and": foreign.RMWAnd, "nand": foreign.RMWNand, "or": foreign.RMWOr,
	"xor": foreign.RMWXor, "max": foreign.RMWMax, "min": foreign.RMWMin,
	"umax": foreign.RMWUMax, "umin": foreign.RMWUMin,
	"fadd": foreign.RMWFAdd, "fsub": foreign.RMWFSub,
}

// LoadFile reads a fixture module from a TOML file.
func LoadFile(path string) (*Module, error) {
	var spec fileSpec
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m, err := buildModule(&spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load reads a fixture module from inline TOML text, mainly for tests.
func Load(text string) (*Module, error) {
	var spec fileSpec
	if _, err := toml.Decode(text, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return buildModule(&spec)
}

type loader struct {
	types  *typeTable
	module *Module

	// values maps fixture ids to handles; blocks maps block ids.
	values map[string]foreign.Value
	blocks map[string]*Block
}

func buildModule(spec *fileSpec) (*Module, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: module name missing", ErrBadFixture)
	}
	ld := &loader{
		types:  newTypeTable(),
		module: NewModule(spec.Name),
	}
	if spec.Source != "" {
		ld.module.WithSource(spec.Source)
	}
	ld.module.WithTriple(spec.Triple).WithLayout(spec.Layout)

	// Named struct bodies may refer to each other, so declare them all
	// before parsing any field list.
	for _, ts := range spec.Types {
		ld.types.declareNamed(ts.Name)
	}
	for _, ts := range spec.Types {
		t := ld.types.named[ts.Name]
		fields := make([]*Type, len(ts.Fields))
		for i, fs := range ts.Fields {
			ft, err := ld.types.get(fs)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", ts.Name, err)
			}
			fields[i] = ft
		}
		t.SetFields(fields...)
		if ts.Packed {
			t.Packed()
		}
	}

	for _, gs := range spec.Globals {
		typ, err := ld.types.get(gs.Type)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", gs.Name, err)
		}
		linkage, ok := linkageByName[gs.Linkage]
		if !ok {
			return nil, fmt.Errorf("%w: global %q: linkage %q", ErrBadFixture, gs.Name, gs.Linkage)
		}
		g := NewGlobal(gs.Name, typ).WithLinkage(linkage)
		if gs.Initialized {
			g.Initialized()
		}
		ld.module.AddGlobal(g)
	}

	for i := range spec.Functions {
		f, err := ld.buildFunction(&spec.Functions[i])
		if err != nil {
			return nil, err
		}
		ld.module.AddFunction(f)
	}
	return ld.module, nil
}

func (ld *loader) buildFunction(fs *funcSpec) (*Function, error) {
	// Ids are function-scoped.
	ld.values = make(map[string]foreign.Value, 32)
	ld.blocks = make(map[string]*Block, 8)

	ret, err := ld.types.get(fs.Return)
	if err != nil {
		return nil, fmt.Errorf("function %q: return: %w", fs.Name, err)
	}
	params := make([]*Param, len(fs.Params))
	for i, ps := range fs.Params {
		typ, err := ld.types.get(ps.Type)
		if err != nil {
			return nil, fmt.Errorf("function %q: param %q: %w", fs.Name, ps.ID, err)
		}
		p := NewParam(ps.Name, typ)
		params[i] = p
		if err := ld.register(ps.ID, p); err != nil {
			return nil, fmt.Errorf("function %q: %w", fs.Name, err)
		}
	}

	f := NewFunction(fs.Name, ret, params...).WithCallConv(fs.CallConv)
	if fs.Variadic {
		f.Variadic()
	}
	linkage, ok := linkageByName[fs.Linkage]
	if !ok {
		return nil, fmt.Errorf("%w: function %q: linkage %q", ErrBadFixture, fs.Name, fs.Linkage)
	}
	f.WithLinkage(linkage)

	// Pass one: create every block and instruction handle so operand
	// references can point forward.
	instrs := make(map[*instrSpec]*Instr)
	for bi := range fs.Blocks {
		bs := &fs.Blocks[bi]
		b := NewBlock(bs.Name)
		if err := ld.registerBlock(bs.ID, b); err != nil {
			return nil, fmt.Errorf("function %q: %w", fs.Name, err)
		}
		for ii := range bs.Instrs {
			is := &bs.Instrs[ii]
			in, err := ld.newInstr(is)
			if err != nil {
				return nil, fmt.Errorf("function %q: block %q: %w", fs.Name, bs.ID, err)
			}
			instrs[is] = in
			b.Add(in)
			if is.ID != "" {
				if err := ld.register(is.ID, in); err != nil {
					return nil, fmt.Errorf("function %q: %w", fs.Name, err)
				}
			}
		}
		f.AddBlock(b)
	}

	// Pass two: resolve operands and destinations.
	for bi := range fs.Blocks {
		bs := &fs.Blocks[bi]
		for ii := range bs.Instrs {
			is := &bs.Instrs[ii]
			if err := ld.wireInstr(is, instrs[is]); err != nil {
				return nil, fmt.Errorf("function %q: block %q: %w", fs.Name, bs.ID, err)
			}
		}
	}
	return f, nil
}

func (ld *loader) register(id string, v foreign.Value) error {
	if id == "" {
		return fmt.Errorf("%w: value id missing", ErrBadFixture)
	}
	if _, dup := ld.values[id]; dup {
		return fmt.Errorf("%w: duplicate id %q", ErrBadFixture, id)
	}
	ld.values[id] = v
	return nil
}

func (ld *loader) registerBlock(id string, b *Block) error {
	if id == "" {
		return fmt.Errorf("%w: block id missing", ErrBadFixture)
	}
	if _, dup := ld.blocks[id]; dup {
		return fmt.Errorf("%w: duplicate block id %q", ErrBadFixture, id)
	}
	ld.blocks[id] = b
	return nil
}

// newInstr creates the handle with everything that does not reference other
// fixture entities.
func (ld *loader) newInstr(is *instrSpec) (*Instr, error) {
	op, ok := foreign.OpcodeByName(is.Op)
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", ErrBadFixture, is.Op)
	}
	typ := Void()
	if is.Type != "" {
		var err error
		typ, err = ld.types.get(is.Type)
		if err != nil {
			return nil, err
		}
	}
	in := NewInstr(op, typ).Named(is.Name).Aligned(is.Align).Conv(is.CallConv)
	if is.Volatile {
		in.Volatile()
	}
	if is.InBounds {
		in.InBounds()
	}
	if is.Tail {
		in.Tail()
	}
	if len(is.Indices) > 0 {
		in.Indexed(is.Indices...)
	}
	ordering, ok := orderingByName[is.Ordering]
	if !ok {
		return nil, fmt.Errorf("%w: ordering %q", ErrBadFixture, is.Ordering)
	}
	in.Atomic(ordering)
	if is.RMW != "" {
		rmw, ok := rmwByName[is.RMW]
		if !ok {
			return nil, fmt.Errorf("%w: rmw op %q", ErrBadFixture, is.RMW)
		}
		in.RMW(rmw)
	}
	if is.Pred != "" {
		pred, ok := intPredByName[is.Pred]
		if !ok {
			return nil, fmt.Errorf("%w: predicate %q", ErrBadFixture, is.Pred)
		}
		in.Pred(pred)
	}
	if is.Allocated != "" {
		allocated, err := ld.types.get(is.Allocated)
		if err != nil {
			return nil, err
		}
		in.Allocates(allocated)
	}
	return in, nil
}

// wireInstr resolves the reference-carrying pieces against the pass-one maps.
func (ld *loader) wireInstr(is *instrSpec, in *Instr) error {
	for _, ref := range is.Operands {
		v, err := ld.operand(ref)
		if err != nil {
			return err
		}
		in.operands = append(in.operands, v)
	}
	for _, id := range is.Succs {
		b, err := ld.block(id)
		if err != nil {
			return err
		}
		in.succs = append(in.succs, b)
	}
	for _, id := range is.Handlers {
		b, err := ld.block(id)
		if err != nil {
			return err
		}
		in.handlers = append(in.handlers, b)
	}
	if is.Normal != "" {
		b, err := ld.block(is.Normal)
		if err != nil {
			return err
		}
		in.Normal(b)
	}
	if is.Unwind != "" {
		b, err := ld.block(is.Unwind)
		if err != nil {
			return err
		}
		in.Unwind(b)
	}
	if is.Default != "" {
		b, err := ld.block(is.Default)
		if err != nil {
			return err
		}
		in.Default(b)
	}
	for _, edge := range is.Incoming {
		if len(edge) != 2 {
			return fmt.Errorf("%w: incoming entry needs [value, block]", ErrBadFixture)
		}
		v, err := ld.operand(edge[0])
		if err != nil {
			return err
		}
		b, err := ld.block(edge[1])
		if err != nil {
			return err
		}
		in.In(v, b)
	}
	if is.Callee != "" {
		callee, err := ld.operand(is.Callee)
		if err != nil {
			return err
		}
		args := make([]foreign.Value, len(is.Args))
		for i, ref := range is.Args {
			arg, err := ld.operand(ref)
			if err != nil {
				return err
			}
			args[i] = arg
		}
		in.Calls(callee, args...)
	}
	return nil
}

func (ld *loader) block(id string) (*Block, error) {
	if b, ok := ld.blocks[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: unknown block id %q", ErrBadFixture, id)
}

// operand resolves one textual operand reference.
func (ld *loader) operand(ref string) (foreign.Value, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, "%"):
		if v, ok := ld.values[ref[1:]]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: unknown value id %q", ErrBadFixture, ref)
	case strings.HasPrefix(ref, "label "):
		b, err := ld.block(strings.TrimSpace(ref[len("label "):]))
		if err != nil {
			return nil, err
		}
		return BlockRef(b), nil
	case strings.HasPrefix(ref, "meta "):
		return MetadataValue(strings.TrimSpace(ref[len("meta "):])), nil
	case strings.HasPrefix(ref, "@"):
		// "@name <type>"
		name, rest, found := strings.Cut(ref[1:], " ")
		if !found {
			return nil, fmt.Errorf("%w: global ref %q needs a type", ErrBadFixture, ref)
		}
		typ, err := ld.types.get(rest)
		if err != nil {
			return nil, err
		}
		return GlobalRef(name, typ), nil
	default:
		return ld.constant(ref)
	}
}

// constant parses "<type> <literal>".
func (ld *loader) constant(ref string) (foreign.Value, error) {
	typ, rest, err := ld.types.parsePrefix(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: operand %q: %v", ErrBadFixture, ref, err)
	}
	lit := strings.TrimSpace(rest)
	switch lit {
	case "null":
		return Null(typ), nil
	case "undef":
		return Undef(typ), nil
	case "zeroinitializer":
		return Zero(typ), nil
	case "none":
		return TokenNone(), nil
	}
	if typ.Kind() == foreign.TypeInteger {
		v, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: integer literal %q", ErrBadFixture, lit)
		}
		return IntConst(typ, v), nil
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: literal %q for type %q", ErrBadFixture, lit, ref)
	}
	return FloatConst(typ, v), nil
}
