package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
	"irlift/internal/trace"
)

// decodeModule assembles the owned module: identity strings, the global
// summary, and every function. Any failure below aborts the whole decode.
func (s *Session) decodeModule(src foreign.Module) (*ir.Module, error) {
	trace.Emitf(s.tr, trace.LevelPhase, "module", "decode %q", src.Name())

	out := &ir.Module{
		Name:           src.Name(),
		SourceFilename: src.SourceFilename(),
		TargetTriple:   src.TargetTriple(),
		DataLayout:     src.DataLayout(),
	}

	globals := src.Globals()
	if len(globals) > 0 {
		out.Globals = make([]ir.Global, len(globals))
		for i, g := range globals {
			ty, err := s.interner.Type(g.Type())
			if err != nil {
				return nil, fmt.Errorf("global %q: %w", g.Name(), err)
			}
			out.Globals[i] = ir.Global{
				Name:           g.Name(),
				Type:           ty,
				Linkage:        ir.Linkage(g.Linkage()),
				HasInitializer: g.HasInitializer(),
			}
		}
	}

	funcs := src.Functions()
	out.Funcs = make([]*ir.Function, 0, len(funcs))
	for _, f := range funcs {
		trace.Emitf(s.tr, trace.LevelDetail, "function", "decode %q", f.Name())
		decoded, err := s.decodeFunction(f)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", f.Name(), err)
		}
		out.Funcs = append(out.Funcs, decoded)
	}

	trace.Emitf(s.tr, trace.LevelPhase, "module", "decoded %q: %d functions, %d globals",
		out.Name, len(out.Funcs), len(out.Globals))
	return out, nil
}
