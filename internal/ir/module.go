package ir

// Global is a module-level global variable summary.
type Global struct {
	Name           string
	Type           *Type
	Linkage        Linkage
	HasInitializer bool
}

// Module is the owned result of one decode session. It is immutable after
// construction and safe to traverse without the foreign module.
type Module struct {
	Name           string
	SourceFilename string
	TargetTriple   string
	DataLayout     string

	Funcs   []*Function
	Globals []Global
}

// FuncByName returns the function with the given name, or nil.
func (m *Module) FuncByName(name string) *Function {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
