package decode

import (
	"fmt"

	"irlift/internal/foreign"
	"irlift/internal/ir"
)

// funcContext carries the per-function naming state. The maps are filled by
// the naming pass over the whole body before any instruction is translated,
// so forward references (branches to later blocks, uses before defs) always
// resolve.
type funcContext struct {
	blockNames map[foreign.Block]ir.Name
	valueNames map[foreign.Value]ir.Name

	// ctr numbers parameters, blocks, and instruction results that carry no
	// explicit name, in first-encounter order. One counter per function.
	ctr uint64
}

func newFuncContext() *funcContext {
	return &funcContext{
		blockNames: make(map[foreign.Block]ir.Name, 16),
		valueNames: make(map[foreign.Value]ir.Name, 64),
	}
}

// nameOrNum returns the explicit name as-is, or consumes the next counter
// value for unnamed entities.
func nameOrNum(explicit string, ctr *uint64) ir.Name {
	if explicit != "" {
		return ir.StringName(explicit)
	}
	n := ir.NumberName(*ctr)
	*ctr++
	return n
}

// needsName reports whether the instruction produces a named result. The
// invoke, callbr, and catchswitch terminators always carry a result name in
// the owned model; every other instruction produces a result exactly when
// its type is non-void.
func needsName(inst foreign.Instruction) bool {
	switch inst.Opcode() {
	case foreign.OpInvoke, foreign.OpCallBr, foreign.OpCatchSwitch:
		return true
	}
	if inst.Opcode().IsTerminator() {
		return false
	}
	return inst.Type().Kind() != foreign.TypeVoid
}

// assignNames is the naming pass: it walks blocks and instructions in
// declaration order and records a Name for every block and result-producing
// instruction. Parameters must already be registered so the counter starts
// at the count of unnamed parameters.
func (fc *funcContext) assignNames(f foreign.Function) {
	for _, bb := range f.Blocks() {
		fc.blockNames[bb] = nameOrNum(bb.Name(), &fc.ctr)
		for _, inst := range bb.Instructions() {
			if needsName(inst) {
				fc.valueNames[inst] = nameOrNum(inst.Name(), &fc.ctr)
			}
		}
	}
}

// blockName resolves a block handle against the naming-pass map. Absence is
// a resolver invariant violation and fatal.
func (fc *funcContext) blockName(bb foreign.Block) (ir.Name, error) {
	if name, ok := fc.blockNames[bb]; ok {
		return name, nil
	}
	return ir.Name{}, fmt.Errorf("%w: block %q", ErrUnresolvedName, bb.Name())
}

// valueName resolves a value handle against the naming-pass map; absence is
// fatal, same as blockName.
func (fc *funcContext) valueName(v foreign.Value) (ir.Name, error) {
	if name, ok := fc.valueNames[v]; ok {
		return name, nil
	}
	return ir.Name{}, fmt.Errorf("%w: value %q", ErrUnresolvedName, v.Name())
}
