package ir

import "fmt"

// nameKind separates explicit string names from synthetic sequence numbers.
type nameKind uint8

const (
	nameString nameKind = iota
	nameNumber
)

// Name identifies a parameter, basic block, or instruction result inside a
// function: either an explicit name carried over from the source module, or a
// synthetic sequence number assigned during decoding. Name is a comparable
// value type; a string name and a numeric name with the same textual form are
// distinct ("5" != #5).
type Name struct {
	kind nameKind
	str  string
	num  uint64
}

// StringName builds a Name from an explicit source-module name.
func StringName(s string) Name {
	return Name{kind: nameString, str: s}
}

// NumberName builds a synthetic sequence-number Name.
func NumberName(n uint64) Name {
	return Name{kind: nameNumber, num: n}
}

// IsNumber reports whether the name is a synthetic sequence number.
func (n Name) IsNumber() bool { return n.kind == nameNumber }

// Str returns the explicit name, or "" for synthetic names.
func (n Name) Str() string { return n.str }

// Num returns the sequence number, or 0 for explicit names.
func (n Name) Num() uint64 { return n.num }

// String renders the name the way the textual IR would: %foo or %3.
func (n Name) String() string {
	if n.kind == nameNumber {
		return fmt.Sprintf("%%%d", n.num)
	}
	return "%" + n.str
}
