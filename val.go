package jqcore

import (
	"fmt"
	"math"
)

// ValKind identifies the shape of a Val.
type ValKind uint8

const (
	KindNull ValKind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindArr
	KindObj
)

func (k ValKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt, KindFloat:
		return "number"
	case KindStr:
		return "string"
	case KindArr:
		return "array"
	case KindObj:
		return "object"
	default:
		return "unknown"
	}
}

// ObjEntry is one key/value pair of an Obj, in insertion order.
type ObjEntry struct {
	Key string
	Val Val
}

// Val is an immutable JSON value. Copying a Val is O(1): arrays and
// objects are backed by Go slices, whose headers are copied by value
// while the underlying storage is shared, and strings are already
// immutable and share their backing bytes. Mutation therefore always
// happens by building a new slice/string and never by writing through an
// existing one.
type Val struct {
	kind ValKind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Val
	obj  []ObjEntry
}

func Null() Val                { return Val{kind: KindNull} }
func Bool(b bool) Val          { return Val{kind: KindBool, b: b} }
func Int(i int64) Val          { return Val{kind: KindInt, i: i} }
func Float(f float64) Val      { return Val{kind: KindFloat, f: f} }
func Str(s string) Val         { return Val{kind: KindStr, s: s} }
func Arr(xs []Val) Val         { return Val{kind: KindArr, arr: xs} }
func Obj(kvs []ObjEntry) Val   { return Val{kind: KindObj, obj: kvs} }
func EmptyArr() Val            { return Val{kind: KindArr} }
func EmptyObj() Val            { return Val{kind: KindObj} }

func (v Val) Kind() ValKind { return v.kind }

func (v Val) IsNull() bool { return v.kind == KindNull }

// AsBool implements jq truthiness: everything except `false` and `null`
// is truthy.
func (v Val) AsBool() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// AsFloat promotes Int/Float to float64; any other kind is a type error.
func (v Val) AsFloat() (float64, error) {
	switch v.kind {
	case KindInt:
		return float64(v.i), nil
	case KindFloat:
		return v.f, nil
	default:
		return 0, typeErr(KindInt, v)
	}
}

// AsInt truncates a Float toward zero; Int passes through unchanged.
func (v Val) AsInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		return int64(v.f), nil
	default:
		return 0, typeErr(KindInt, v)
	}
}

func (v Val) AsStr() (string, error) {
	if v.kind != KindStr {
		return "", typeErr(KindStr, v)
	}
	return v.s, nil
}

func (v Val) AsArr() ([]Val, error) {
	if v.kind != KindArr {
		return nil, typeErr(KindArr, v)
	}
	return v.arr, nil
}

func (v Val) AsObj() ([]ObjEntry, error) {
	if v.kind != KindObj {
		return nil, typeErr(KindObj, v)
	}
	return v.obj, nil
}

// Len implements the `length` builtin: absolute value for numbers, rune
// count for strings, element count for arrays, key count for objects,
// zero for null.
func (v Val) Len() (Val, error) {
	switch v.kind {
	case KindNull:
		return Int(0), nil
	case KindBool:
		return Val{}, &Error{Kind: ErrTypeK, Msg: "boolean (" + v.String() + ") has no length"}
	case KindInt:
		if v.i < 0 {
			return Int(-v.i), nil
		}
		return Int(v.i), nil
	case KindFloat:
		return Float(math.Abs(v.f)), nil
	case KindStr:
		return Int(int64(len([]rune(v.s)))), nil
	case KindArr:
		return Int(int64(len(v.arr))), nil
	case KindObj:
		return Int(int64(len(v.obj))), nil
	}
	return Val{}, fmt.Errorf("unreachable kind %v", v.kind)
}

// Keys implements the `keys` builtin: sorted string keys for an object,
// 0..len-1 for an array.
func (v Val) Keys() (Val, error) {
	switch v.kind {
	case KindObj:
		ks := make([]string, len(v.obj))
		for i, e := range v.obj {
			ks[i] = e.Key
		}
		sortStrings(ks)
		out := make([]Val, len(ks))
		for i, k := range ks {
			out[i] = Str(k)
		}
		return Arr(out), nil
	case KindArr:
		out := make([]Val, len(v.arr))
		for i := range v.arr {
			out[i] = Int(int64(i))
		}
		return Arr(out), nil
	default:
		return Val{}, typeErr(KindObj, v)
	}
}

func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
}

// Get looks up a key in an object, a Null value if absent (never an
// error) -- matching jq's `.foo` semantics on objects.
func (v Val) Get(key string) (Val, bool) {
	for _, e := range v.obj {
		if e.Key == key {
			return e.Val, true
		}
	}
	return Null(), false
}

// Set returns a new object with key bound to val, preserving the
// position of an existing key or appending a new one.
func (v Val) Set(key string, val Val) Val {
	out := make([]ObjEntry, len(v.obj))
	copy(out, v.obj)
	for i, e := range out {
		if e.Key == key {
			out[i].Val = val
			return Obj(out)
		}
	}
	return Obj(append(out, ObjEntry{Key: key, Val: val}))
}

// Index reads an array element, negative indices counting from the end;
// out-of-range yields Null, never an error (matches jq's `.[i]`).
func (v Val) Index(i int64) Val {
	n := int64(len(v.arr))
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Null()
	}
	return v.arr[i]
}

// Slice implements array/string ranges `.[from:until]`, clamping out of
// range bounds instead of erroring.
func (v Val) Slice(from, until *int64) (Val, error) {
	switch v.kind {
	case KindArr:
		n := int64(len(v.arr))
		f, u := clampRange(from, until, n)
		return Arr(append([]Val(nil), v.arr[f:u]...)), nil
	case KindStr:
		rs := []rune(v.s)
		n := int64(len(rs))
		f, u := clampRange(from, until, n)
		return Str(string(rs[f:u])), nil
	case KindNull:
		return Null(), nil
	default:
		return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with object"}
	}
}

func clampRange(from, until *int64, n int64) (int64, int64) {
	f, u := int64(0), n
	if from != nil {
		f = *from
		if f < 0 {
			f += n
		}
	}
	if until != nil {
		u = *until
		if u < 0 {
			u += n
		}
	}
	if f < 0 {
		f = 0
	}
	if f > n {
		f = n
	}
	if u < f {
		u = f
	}
	if u > n {
		u = n
	}
	return f, u
}

func typeErr(want ValKind, got Val) error {
	return &Error{Kind: ErrTypeK, Want: want, Got: got}
}

// compareKindRank is the total-order rank used before any in-kind
// comparison: Null < Bool < numeric < Str < Arr < Obj.
func compareKindRank(v Val) int {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindStr:
		return 3
	case KindArr:
		return 4
	case KindObj:
		return 5
	}
	return 6
}

// Compare implements jq's total value ordering. NaN compares equal to
// itself (so it sorts into one run) but, since IEEE NaN is unordered
// against every float including itself under <, we special-case it to
// sort after every other number -- an arbitrary but deterministic choice.
func Compare(a, b Val) int {
	ra, rb := compareKindRank(a), compareKindRank(b)
	if ra != rb {
		return ra - rb
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindBool:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case KindInt, KindFloat:
		x, _ := a.AsFloat()
		y, _ := b.AsFloat()
		return compareFloat(x, y)
	case KindStr:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		default:
			return 0
		}
	case KindArr:
		for i := 0; i < len(a.arr) && i < len(b.arr); i++ {
			if c := Compare(a.arr[i], b.arr[i]); c != 0 {
				return c
			}
		}
		return len(a.arr) - len(b.arr)
	case KindObj:
		ak, _ := a.Keys()
		bk, _ := b.Keys()
		if c := Compare(ak, bk); c != 0 {
			return c
		}
		for _, e := range ak.arr {
			k, _ := e.AsStr()
			av, _ := a.Get(k)
			bv, _ := b.Get(k)
			if c := Compare(av, bv); c != 0 {
				return c
			}
		}
		return 0
	}
	return 0
}

func compareFloat(x, y float64) int {
	xNaN, yNaN := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return 1
	case yNaN:
		return -1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Equal follows the same numeric unification as Compare.
func Equal(a, b Val) bool { return Compare(a, b) == 0 }

// Contains implements jq's recursive structural containment: strings
// contain substrings, arrays contain an element matching each needle
// (in any position), objects contain a needle key with a containing
// value, and everything else falls back to equality.
func Contains(v, needle Val) bool {
	if v.kind != needle.kind {
		if v.kind == KindInt || v.kind == KindFloat {
			if needle.kind == KindInt || needle.kind == KindFloat {
				return Equal(v, needle)
			}
		}
		return false
	}
	switch v.kind {
	case KindStr:
		return containsSubstring(v.s, needle.s)
	case KindArr:
		for _, n := range needle.arr {
			found := false
			for _, x := range v.arr {
				if Contains(x, n) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case KindObj:
		for _, e := range needle.obj {
			x, ok := v.Get(e.Key)
			if !ok || !Contains(x, e.Val) {
				return false
			}
		}
		return true
	default:
		return Equal(v, needle)
	}
}

func containsSubstring(hay, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if hay[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// String renders v as its canonical JSON text (the same text ToJSON
// produces), or a placeholder naming the kind if v cannot be serialized.
func (v Val) String() string {
	s, err := v.ToJSON()
	if err != nil {
		return fmt.Sprintf("<invalid %s>", v.kind)
	}
	return s
}
