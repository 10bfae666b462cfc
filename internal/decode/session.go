// Package decode converts a foreign in-memory IR module into the owned model.
//
// One Session covers one module conversion. The session walks the foreign
// graph exactly once, with a two-pass sub-walk per function body: the naming
// pass assigns stable identifiers to every block and value, then the detailed
// pass builds owned instructions resolving references through the pass-one
// maps. Types and constants are interned per session so structurally
// identical entities decoded from different sites collapse to one instance.
//
// Decoding is single-threaded and deterministic. Failures are all-or-nothing:
// either the whole module decodes, or an error describing the first structural
// inconsistency is returned and no partial module escapes.
package decode

import (
	"irlift/internal/foreign"
	"irlift/internal/ir"
	"irlift/internal/trace"
)

// Options configures a decode session.
type Options struct {
	// TrackDebugLocs attaches source locations to functions, instructions,
	// and terminators when the provider has them.
	TrackDebugLocs bool

	// Tracer receives decode progress events; nil means no tracing.
	Tracer trace.Tracer
}

// Session holds the state of one module conversion: the attribute catalog
// and the type/constant interner, both scoped to this session and dropped
// with it. A Session must not be shared across goroutines.
type Session struct {
	catalog  *Catalog
	interner *Interner
	opts     Options
	tr       trace.Tracer
}

// NewSession builds the per-session caches. Building the attribute catalog
// can fail if the provider does not recognize a tracked attribute name; that
// is a version mismatch and fatal.
func NewSession(src foreign.Module, opts Options) (*Session, error) {
	catalog, err := BuildCatalog(src)
	if err != nil {
		return nil, err
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop()
	}
	return &Session{
		catalog:  catalog,
		interner: NewInterner(),
		opts:     opts,
		tr:       tr,
	}, nil
}

// Decode converts the foreign module into an owned one, all-or-nothing.
func Decode(src foreign.Module, opts Options) (*ir.Module, error) {
	s, err := NewSession(src, opts)
	if err != nil {
		return nil, err
	}
	return s.decodeModule(src)
}

// Interner exposes the session's type/constant cache, mainly for tests and
// for downstream consumers that want to intern additional handles against
// the same session.
func (s *Session) Interner() *Interner { return s.interner }

// Catalog exposes the session's attribute catalog.
func (s *Session) Catalog() *Catalog { return s.catalog }

// instLoc fetches an instruction-level debug location, which carries a
// column, if the session tracks locations.
func (s *Session) instLoc(inst foreign.Instruction) *ir.DebugLoc {
	if !s.opts.TrackDebugLocs {
		return nil
	}
	loc, ok := inst.DebugLoc()
	if !ok {
		return nil
	}
	return &ir.DebugLoc{
		Line:      loc.Line,
		Col:       loc.Col,
		HasCol:    true,
		Filename:  loc.Filename,
		Directory: loc.Directory,
	}
}

// funcLoc fetches a function-level debug location; functions carry no column.
func (s *Session) funcLoc(f foreign.Function) *ir.DebugLoc {
	if !s.opts.TrackDebugLocs {
		return nil
	}
	loc, ok := f.DebugLoc()
	if !ok {
		return nil
	}
	return &ir.DebugLoc{
		Line:      loc.Line,
		Filename:  loc.Filename,
		Directory: loc.Directory,
	}
}
