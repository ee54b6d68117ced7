package jqcore

// MathOp is the operator carried by a Math filter node.
type MathOp uint8

const (
	OpAdd MathOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op MathOp) String() string {
	return [...]string{"added", "subtracted", "multiplied", "divided", "divided (remainder)"}[op]
}

// OrdOp is the operator carried by an Ord filter node.
type OrdOp uint8

const (
	OpLt OrdOp = iota
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

func (op OrdOp) Run(a, b Val) bool {
	c := Compare(a, b)
	switch op {
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	}
	return false
}

// Run applies the arithmetic operator following jq's value-level
// semantics: numbers combine as numbers, null is the identity for +,
// strings/arrays/objects combine per-kind for +, arrays subtract with -,
// * repeats a string or deep-merges objects, / splits a string by a
// string, and everything else is an ErrArithK.
func (op MathOp) Run(a, b Val) (Val, error) {
	switch op {
	case OpAdd:
		return addVal(a, b)
	case OpSub:
		return subVal(a, b)
	case OpMul:
		return mulVal(a, b)
	case OpDiv:
		return divVal(a, b)
	case OpMod:
		return modVal(a, b)
	}
	return Val{}, arithErr(op.String(), a, b)
}

func bothNumeric(a, b Val) bool {
	return (a.kind == KindInt || a.kind == KindFloat) && (b.kind == KindInt || b.kind == KindFloat)
}

func addVal(a, b Val) (Val, error) {
	switch {
	case a.IsNull():
		return b, nil
	case b.IsNull():
		return a, nil
	case bothNumeric(a, b):
		return numOp(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }), nil
	case a.kind == KindStr && b.kind == KindStr:
		return Str(a.s + b.s), nil
	case a.kind == KindArr && b.kind == KindArr:
		out := make([]Val, 0, len(a.arr)+len(b.arr))
		out = append(out, a.arr...)
		out = append(out, b.arr...)
		return Arr(out), nil
	case a.kind == KindObj && b.kind == KindObj:
		return mergeObj(a, b, false), nil
	default:
		return Val{}, arithErr("added", a, b)
	}
}

func subVal(a, b Val) (Val, error) {
	switch {
	case bothNumeric(a, b):
		return numOp(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }), nil
	case a.kind == KindArr && b.kind == KindArr:
		out := make([]Val, 0, len(a.arr))
		for _, x := range a.arr {
			keep := true
			for _, y := range b.arr {
				if Equal(x, y) {
					keep = false
					break
				}
			}
			if keep {
				out = append(out, x)
			}
		}
		return Arr(out), nil
	default:
		return Val{}, arithErr("subtracted", a, b)
	}
}

func mulVal(a, b Val) (Val, error) {
	switch {
	case bothNumeric(a, b):
		return numOp(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }), nil
	case a.kind == KindStr && (b.kind == KindInt || b.kind == KindFloat):
		return repeatStr(a, b)
	case b.kind == KindStr && (a.kind == KindInt || a.kind == KindFloat):
		return repeatStr(b, a)
	case a.kind == KindObj && b.kind == KindObj:
		return mergeObj(a, b, true), nil
	default:
		return Val{}, arithErr("multiplied", a, b)
	}
}

func repeatStr(s, n Val) (Val, error) {
	times, _ := n.AsInt()
	if times <= 0 {
		return Null(), nil
	}
	out := make([]byte, 0, len(s.s)*int(times))
	for i := int64(0); i < times; i++ {
		out = append(out, s.s...)
	}
	return Str(string(out)), nil
}

func divVal(a, b Val) (Val, error) {
	switch {
	case bothNumeric(a, b):
		y, _ := b.AsFloat()
		if y == 0 {
			return Val{}, arithErr("divided", a, b)
		}
		x, _ := a.AsFloat()
		if a.kind == KindInt && b.kind == KindInt {
			bi, _ := b.AsInt()
			ai, _ := a.AsInt()
			if bi != 0 && ai%bi == 0 {
				return Int(ai / bi), nil
			}
		}
		return Float(x / y), nil
	case a.kind == KindStr && b.kind == KindStr:
		parts, err := splitStr(a.s, b.s)
		if err != nil {
			return Val{}, err
		}
		return parts, nil
	default:
		return Val{}, arithErr("divided", a, b)
	}
}

func modVal(a, b Val) (Val, error) {
	if !bothNumeric(a, b) {
		return Val{}, arithErr("divided (remainder)", a, b)
	}
	x, _ := a.AsInt()
	y, _ := b.AsInt()
	if y == 0 {
		return Val{}, arithErr("divided (remainder)", a, b)
	}
	r := x % y
	return Int(r), nil
}

func numOp(a, b Val, ii func(int64, int64) int64, ff func(float64, float64) float64) Val {
	if a.kind == KindInt && b.kind == KindInt {
		return Int(ii(a.i, b.i))
	}
	x, _ := a.AsFloat()
	y, _ := b.AsFloat()
	return Float(ff(x, y))
}

// mergeObj merges b into a; deep merges nested objects when deep is
// true (the `*` operator), otherwise replaces wholesale (the `+`
// operator). Existing key order is preserved; new keys append.
func mergeObj(a, b Val, deep bool) Val {
	out := a
	for _, e := range b.obj {
		if deep {
			if existing, ok := out.Get(e.Key); ok && existing.kind == KindObj && e.Val.kind == KindObj {
				out = out.Set(e.Key, mergeObj(existing, e.Val, true))
				continue
			}
		}
		out = out.Set(e.Key, e.Val)
	}
	return out
}

// Neg implements the unary minus filter node.
func Neg(v Val) (Val, error) {
	switch v.kind {
	case KindInt:
		return Int(-v.i), nil
	case KindFloat:
		return Float(-v.f), nil
	default:
		return Val{}, &Error{Kind: ErrTypeK, Msg: v.kind.String() + " cannot be negated", Got: v, Want: KindInt}
	}
}

// roundOp implements floor/round/ceil: identity on Int, the given
// math.Round-family function on Float.
func roundOp(v Val, f func(float64) float64) (Val, error) {
	switch v.kind {
	case KindInt:
		return v, nil
	case KindFloat:
		return Float(f(v.f)), nil
	default:
		return Val{}, typeErr(KindFloat, v)
	}
}
