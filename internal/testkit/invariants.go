// Package testkit holds invariant checkers shared by decoder tests.
package testkit

import (
	"fmt"

	"irlift/internal/ir"
)

// CheckModuleInvariants runs CheckFunctionInvariants over every function.
func CheckModuleInvariants(m *ir.Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	for _, f := range m.Funcs {
		if err := CheckFunctionInvariants(f); err != nil {
			return fmt.Errorf("function %q: %w", f.Name, err)
		}
	}
	return nil
}

// CheckFunctionInvariants runs a minimal set of structural invariants on a
// decoded function:
// 1) every block carries a valid terminator and no body instruction is of a
// terminator kind
// 2) parameter, block, and result names are unique within the function
// 3) numeric names increase in declaration order: parameters first, then
// blocks and instruction results as they appear
func CheckFunctionInvariants(f *ir.Function) error {
	if f == nil {
		return fmt.Errorf("nil function")
	}

	seen := make(map[ir.Name]bool)
	lastNum := int64(-1)
	record := func(n ir.Name, what string) error {
		if seen[n] {
			return fmt.Errorf("duplicate name %s (%s)", n, what)
		}
		seen[n] = true
		if n.IsNumber() {
			num := int64(n.Num())
			if num <= lastNum {
				return fmt.Errorf("numeric name %s (%s) out of order, previous %%%d", n, what, lastNum)
			}
			lastNum = num
		}
		return nil
	}

	for _, p := range f.Params {
		if p.Type == nil {
			return fmt.Errorf("parameter %s has nil type", p.Name)
		}
		if err := record(p.Name, "parameter"); err != nil {
			return err
		}
	}

	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		if err := record(bb.Name, "block"); err != nil {
			return err
		}
		for ii := range bb.Instrs {
			inst := &bb.Instrs[ii]
			if inst.Kind == ir.InstrInvalid {
				return fmt.Errorf("block %s: invalid instruction at %d", bb.Name, ii)
			}
			if inst.HasResult {
				if inst.Type == nil {
					return fmt.Errorf("block %s: result %s has nil type", bb.Name, inst.Result)
				}
				if err := record(inst.Result, "result"); err != nil {
					return err
				}
			}
		}
		if bb.Term.Kind == ir.TermInvalid {
			return fmt.Errorf("block %s: missing terminator", bb.Name)
		}
		if err := checkTermResult(bb, record); err != nil {
			return err
		}
	}
	return nil
}

// checkTermResult records the result names the invoke, callbr, and
// catchswitch terminators always carry.
func checkTermResult(bb *ir.BasicBlock, record func(ir.Name, string) error) error {
	switch bb.Term.Kind {
	case ir.TermInvoke:
		return record(bb.Term.Invoke.Result, "invoke result")
	case ir.TermCallBr:
		return record(bb.Term.CallBr.Result, "callbr result")
	case ir.TermCatchSwitch:
		return record(bb.Term.CatchSwitch.Result, "catchswitch result")
	default:
		return nil
	}
}
