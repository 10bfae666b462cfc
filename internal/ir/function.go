package ir

// Parameter is one formal parameter of a function.
type Parameter struct {
	Name  Name
	Type  *Type
	Attrs []ParamAttr
}

// BasicBlock is a straight-line instruction sequence ending in exactly one
// terminator. Its Name is unique within the owning function.
type BasicBlock struct {
	Name   Name
	Instrs []Instruction
	Term   Terminator
}

// Function owns its parameters, attribute lists, and basic blocks. Nothing
// here is shared between functions except interned types and constants.
type Function struct {
	Name     string
	Params   []Parameter
	Variadic bool
	Return   *Type
	Blocks   []BasicBlock

	Attrs       []FuncAttr
	ReturnAttrs []ParamAttr

	Linkage      Linkage
	Visibility   Visibility
	StorageClass DLLStorageClass
	CallConv     CallingConv
	Section      string
	HasSection   bool
	Comdat       *Comdat
	Alignment    uint32
	GCName       string
	HasGC        bool
	Personality  *Constant
	Loc          *DebugLoc
}

// BlockByName returns the basic block with the given name, or nil.
func (f *Function) BlockByName(n Name) *BasicBlock {
	for i := range f.Blocks {
		if f.Blocks[i].Name == n {
			return &f.Blocks[i]
		}
	}
	return nil
}

// TypeOf returns the function's signature type. The node is built fresh;
// structural equality makes it interchangeable with interned instances.
func (f *Function) TypeOf() *Type {
	params := make([]*Type, len(f.Params))
	for i := range f.Params {
		params[i] = f.Params[i].Type
	}
	return &Type{Kind: TypeFunc, Return: f.Return, Params: params, Variadic: f.Variadic}
}
