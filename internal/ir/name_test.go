package ir_test

import (
	"testing"

	"irlift/internal/ir"
)

func TestName_StringForms(t *testing.T) {
	if got := ir.StringName("entry").String(); got != "%entry" {
		t.Errorf("String() = %q, want %%entry", got)
	}
	if got := ir.NumberName(7).String(); got != "%7" {
		t.Errorf("String() = %q, want %%7", got)
	}
}

func TestName_StringAndNumberDistinct(t *testing.T) {
	// "%5" the explicit name and %5 the sequence number are different
	// identifiers even though they render identically.
	s := ir.StringName("5")
	n := ir.NumberName(5)

	if s == n {
		t.Errorf("string %q and number 5 compare equal", "5")
	}
	if s.String() != n.String() {
		t.Errorf("renderings differ: %q vs %q", s.String(), n.String())
	}
	if s.IsNumber() {
		t.Errorf("StringName reports IsNumber")
	}
	if !n.IsNumber() {
		t.Errorf("NumberName does not report IsNumber")
	}
}

func TestName_Comparable(t *testing.T) {
	seen := map[ir.Name]int{
		ir.StringName("a"): 1,
		ir.NumberName(0):   2,
	}
	if seen[ir.StringName("a")] != 1 || seen[ir.NumberName(0)] != 2 {
		t.Errorf("Name does not work as a map key")
	}
	if ir.NumberName(0) != ir.NumberName(0) {
		t.Errorf("equal numeric names compare unequal")
	}
}

func TestName_Accessors(t *testing.T) {
	if got := ir.StringName("x").Str(); got != "x" {
		t.Errorf("Str() = %q, want x", got)
	}
	if got := ir.NumberName(9).Num(); got != 9 {
		t.Errorf("Num() = %d, want 9", got)
	}
	if got := ir.NumberName(9).Str(); got != "" {
		t.Errorf("Str() on numeric name = %q, want empty", got)
	}
}
