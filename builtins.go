package jqcore

import "strings"

// splitStr implements the `split` builtin (and the `/` string operator,
// which is the same operation spelled as arithmetic). An empty separator
// splits into individual characters rather than producing one huge
// leftover piece, matching the reference interpreter's treatment of
// str::split on an empty pattern.
func splitStr(s, sep string) (Val, error) {
	if sep == "" {
		rs := []rune(s)
		out := make([]Val, len(rs))
		for i, r := range rs {
			out[i] = Str(string(r))
		}
		return Arr(out), nil
	}
	parts := strings.Split(s, sep)
	out := make([]Val, len(parts))
	for i, p := range parts {
		out[i] = Str(p)
	}
	return Arr(out), nil
}

// explodeVal converts a string to its array of Unicode codepoints.
func explodeVal(v Val) (Val, error) {
	s, err := v.AsStr()
	if err != nil {
		return Val{}, err
	}
	rs := []rune(s)
	out := make([]Val, len(rs))
	for i, r := range rs {
		out[i] = Int(int64(r))
	}
	return Arr(out), nil
}

// implodeVal is explode's inverse: an array of codepoints to a string.
func implodeVal(v Val) (Val, error) {
	arr, err := v.AsArr()
	if err != nil {
		return Val{}, err
	}
	rs := make([]rune, len(arr))
	for i, x := range arr {
		n, err := x.AsInt()
		if err != nil {
			return Val{}, err
		}
		rs[i] = rune(n)
	}
	return Str(string(rs)), nil
}

// asciiDowncaseVal/asciiUpcaseVal only fold ASCII letters, leaving any
// other codepoint untouched -- jq's ascii_downcase/ascii_upcase are
// explicitly not full Unicode case folding.
func asciiDowncaseVal(v Val) (Val, error) {
	s, err := v.AsStr()
	if err != nil {
		return Val{}, err
	}
	return Str(mapASCIICase(s, true)), nil
}

func asciiUpcaseVal(v Val) (Val, error) {
	s, err := v.AsStr()
	if err != nil {
		return Val{}, err
	}
	return Str(mapASCIICase(s, false)), nil
}

func mapASCIICase(s string, lower bool) string {
	b := []byte(s)
	for i, c := range b {
		if lower && c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		} else if !lower && c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// reverseVal reverses an array or a string's rune sequence.
func reverseVal(v Val) (Val, error) {
	switch v.kind {
	case KindArr:
		out := make([]Val, len(v.arr))
		for i, x := range v.arr {
			out[len(out)-1-i] = x
		}
		return Arr(out), nil
	case KindStr:
		rs := []rune(v.s)
		for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
		return Str(string(rs)), nil
	default:
		return Val{}, typeErr(KindArr, v)
	}
}

// sortVal sorts an array by the total value ordering, stably.
func sortVal(v Val) (Val, error) {
	arr, err := v.AsArr()
	if err != nil {
		return Val{}, err
	}
	out := append([]Val(nil), arr...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && Compare(out[j-1], out[j]) > 0; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return Arr(out), nil
}

// hasVal implements `has(k)`: an index-existence check against an array
// (k must be a number; true only for a non-negative index within bounds)
// or a key-existence check against an object (k must be a string).
func hasVal(v, k Val) (Val, error) {
	switch v.kind {
	case KindArr:
		i, err := k.AsInt()
		if err != nil {
			return Val{}, err
		}
		return Bool(i >= 0 && i < int64(len(v.arr))), nil
	case KindObj:
		key, err := k.AsStr()
		if err != nil {
			return Val{}, err
		}
		_, ok := v.Get(key)
		return Bool(ok), nil
	default:
		return Val{}, typeErr(KindObj, v)
	}
}

// Ctor builds a closed Filter node from already-substituted argument
// filters -- the shape a builtin's call site is elaborated into.
type Ctor func(args []*Filter) *Filter

type builtinKey struct {
	name  string
	arity int
}

// Table is a name+arity indexed registry of builtin constructors, the
// bridge between a builtin call like `sort_by(.x)` and the Filter node
// it expands to.
type Table struct {
	entries map[builtinKey]Ctor
}

func NewTable() *Table { return &Table{entries: map[builtinKey]Ctor{}} }

// Register adds (or replaces) the constructor for name/arity.
func (t *Table) Register(name string, arity int, ctor Ctor) {
	t.entries[builtinKey{name: name, arity: arity}] = ctor
}

// Lookup finds the constructor for a name/arity call, if any.
func (t *Table) Lookup(name string, arity int) (Ctor, bool) {
	c, ok := t.entries[builtinKey{name: name, arity: arity}]
	return c, ok
}

// NewCoreTable registers every builtin this package implements natively
// as an intrinsic filter kind, each as a thin Ctor around its Filter
// constructor.
func NewCoreTable() *Table {
	t := NewTable()
	t.Register("empty", 0, func(args []*Filter) *Filter { return EmptyF() })
	t.Register("error", 0, func(args []*Filter) *Filter { return ErrorF() })
	t.Register("length", 0, func(args []*Filter) *Filter { return LengthF() })
	t.Register("keys", 0, func(args []*Filter) *Filter { return KeysF() })
	t.Register("floor", 0, func(args []*Filter) *Filter { return FloorF() })
	t.Register("round", 0, func(args []*Filter) *Filter { return RoundF() })
	t.Register("ceil", 0, func(args []*Filter) *Filter { return CeilF() })
	t.Register("fromjson", 0, func(args []*Filter) *Filter { return FromJsonF() })
	t.Register("tojson", 0, func(args []*Filter) *Filter { return ToJsonF() })
	t.Register("explode", 0, func(args []*Filter) *Filter { return ExplodeF() })
	t.Register("implode", 0, func(args []*Filter) *Filter { return ImplodeF() })
	t.Register("ascii_downcase", 0, func(args []*Filter) *Filter { return AsciiDowncaseF() })
	t.Register("ascii_upcase", 0, func(args []*Filter) *Filter { return AsciiUpcaseF() })
	t.Register("reverse", 0, func(args []*Filter) *Filter { return ReverseF() })
	t.Register("sort", 0, func(args []*Filter) *Filter { return SortF() })
	t.Register("sort_by", 1, func(args []*Filter) *Filter { return SortByF(args[0]) })
	t.Register("has", 1, func(args []*Filter) *Filter { return HasF(args[0]) })
	t.Register("contains", 1, func(args []*Filter) *Filter { return ContainsF(args[0]) })
	t.Register("split", 1, func(args []*Filter) *Filter { return SplitF(args[0]) })
	t.Register("first", 1, func(args []*Filter) *Filter { return FirstF(args[0]) })
	t.Register("last", 1, func(args []*Filter) *Filter { return LastF(args[0]) })
	t.Register("recurse", 1, func(args []*Filter) *Filter { return RecurseF(args[0]) })
	t.Register("recurse", 0, func(args []*Filter) *Filter { return RecurseF(RecurseDot()) })
	t.Register("limit", 2, func(args []*Filter) *Filter { return LimitF(args[0], args[1]) })
	t.Register("range", 2, func(args []*Filter) *Filter { return RangeF(args[0], args[1]) })
	return t
}
