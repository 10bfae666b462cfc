package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// typeTable resolves textual type forms to shared handles. Two occurrences of
// the same string within one fixture file resolve to the same *Type, so the
// decoder's identity memoization behaves the way it would against a real
// provider.
type typeTable struct {
	cache map[string]*Type
	named map[string]*Type
}

func newTypeTable() *typeTable {
	return &typeTable{
		cache: make(map[string]*Type, 16),
		named: make(map[string]*Type, 4),
	}
}

// declareNamed registers a named struct, creating a placeholder on first
// mention so bodies can refer to the type they are part of.
func (tt *typeTable) declareNamed(name string) *Type {
	if t, ok := tt.named[name]; ok {
		return t
	}
	t := OpaqueStruct(name)
	tt.named[name] = t
	return t
}

// get parses a whole type string, sharing handles per distinct spelling.
func (tt *typeTable) get(s string) (*Type, error) {
	s = strings.TrimSpace(s)
	if t, ok := tt.cache[s]; ok {
		return t, nil
	}
	t, rest, err := tt.parsePrefix(s)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("trailing %q after type %q", rest, s)
	}
	tt.cache[s] = t
	return t, nil
}

// parsePrefix parses one type at the head of s and returns the remainder.
func (tt *typeTable) parsePrefix(s string) (*Type, string, error) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return nil, "", fmt.Errorf("empty type")
	}

	var base *Type
	var rest string
	switch {
	case strings.HasPrefix(s, "["):
		count, elem, rem, err := tt.parseComposite(s[1:], "]")
		if err != nil {
			return nil, "", err
		}
		base, rest = Array(elem, count), rem
	case strings.HasPrefix(s, "<{"):
		fields, rem, err := tt.parseFields(s[2:], "}>")
		if err != nil {
			return nil, "", err
		}
		base, rest = Struct(fields...).Packed(), rem
	case strings.HasPrefix(s, "<vscale x "):
		count, elem, rem, err := tt.parseComposite(s[len("<vscale x "):], ">")
		if err != nil {
			return nil, "", err
		}
		base, rest = ScalableVector(elem, count), rem
	case strings.HasPrefix(s, "<"):
		count, elem, rem, err := tt.parseComposite(s[1:], ">")
		if err != nil {
			return nil, "", err
		}
		base, rest = Vector(elem, count), rem
	case strings.HasPrefix(s, "{"):
		fields, rem, err := tt.parseFields(s[1:], "}")
		if err != nil {
			return nil, "", err
		}
		base, rest = Struct(fields...), rem
	case strings.HasPrefix(s, "%"):
		name := leadingWord(s[1:])
		if name == "" {
			return nil, "", fmt.Errorf("struct name missing in %q", s)
		}
		base, rest = tt.declareNamed(name), s[1+len(name):]
	default:
		word := leadingWord(s)
		rest = s[len(word):]
		switch word {
		case "void":
			base = Void()
		case "half":
			base = Half()
		case "float":
			base = Float()
		case "double":
			base = Double()
		case "label":
			base = Label()
		case "token":
			base = Token()
		case "metadata":
			base = Metadata()
		default:
			if !strings.HasPrefix(word, "i") {
				return nil, "", fmt.Errorf("unknown type %q", word)
			}
			bits, err := strconv.ParseUint(word[1:], 10, 32)
			if err != nil {
				return nil, "", fmt.Errorf("bad integer type %q", word)
			}
			base = Int(safecast.MustConv[uint32](bits))
		}
	}

	// Trailing stars stack pointers around the base.
	for strings.HasPrefix(rest, "*") {
		base = Ptr(base)
		rest = rest[1:]
	}
	return base, rest, nil
}

// parseComposite parses the "N x T" interior shared by arrays and vectors,
// up to the closing delimiter.
func (tt *typeTable) parseComposite(s, closing string) (uint64, *Type, string, error) {
	s = strings.TrimLeft(s, " \t")
	numEnd := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if numEnd <= 0 {
		return 0, nil, "", fmt.Errorf("element count missing in %q", s)
	}
	count, err := strconv.ParseUint(s[:numEnd], 10, 64)
	if err != nil {
		return 0, nil, "", err
	}
	s = strings.TrimLeft(s[numEnd:], " \t")
	if !strings.HasPrefix(s, "x") {
		return 0, nil, "", fmt.Errorf("expected 'x' in %q", s)
	}
	elem, rest, err := tt.parsePrefix(s[1:])
	if err != nil {
		return 0, nil, "", err
	}
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, closing) {
		return 0, nil, "", fmt.Errorf("expected %q closing composite, got %q", closing, rest)
	}
	return count, elem, rest[len(closing):], nil
}

// parseFields parses a comma-separated field list up to the closing
// delimiter.
func (tt *typeTable) parseFields(s, closing string) ([]*Type, string, error) {
	var fields []*Type
	for {
		s = strings.TrimLeft(s, " \t")
		if strings.HasPrefix(s, closing) {
			return fields, s[len(closing):], nil
		}
		field, rest, err := tt.parsePrefix(s)
		if err != nil {
			return nil, "", err
		}
		fields = append(fields, field)
		rest = strings.TrimLeft(rest, " \t")
		switch {
		case strings.HasPrefix(rest, ","):
			s = rest[1:]
		case strings.HasPrefix(rest, closing):
			return fields, rest[len(closing):], nil
		default:
			return nil, "", fmt.Errorf("expected ',' or %q in field list, got %q", closing, rest)
		}
	}
}

func leadingWord(s string) string {
	for i, r := range s {
		alnum := r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			return s[:i]
		}
	}
	return s
}
