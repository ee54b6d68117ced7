package jqcore

// PartKind tags a path part: an index expression, a range expression, or
// bare iteration.
type PartKind uint8

const (
	PartIndex PartKind = iota
	PartRange
	// PartIter is bare `.[]`: iterate every element of an array or every
	// value of an object, fanning out one result per element/value. It is
	// distinct from PartRange (`.[from:until]`), which always yields a
	// single sliced array.
	PartIter
)

// Opt marks whether a path part swallows indexing errors (Optional,
// `?`) or surfaces them (Strict, the default).
type Opt uint8

const (
	Strict Opt = iota
	Optional
)

// PathPart is one segment of a Path, still carrying filter expressions
// for its index/bounds (these are evaluated and materialized into
// concrete values before the part is applied -- see materializePath below).
type PathPart struct {
	Kind  PartKind
	Opt   Opt
	Index *Filter // PartIndex
	From  *Filter // PartRange, nil means unbounded
	Until *Filter // PartRange, nil means unbounded
}

// Path is an ordered sequence of parts, e.g. `.a[0]["b","c"][1:]`.
type Path []PathPart

// concretePart is a PathPart with its index/bounds expressions already
// evaluated to concrete values, the first step of applying a Path to a
// value.
type concretePart struct {
	kind  PartKind
	opt   Opt
	index []Val
	from  []Val
	until []Val
}

func (e *Evaluator) materializePath(path Path, ctx Ctx, val Val) ([]concretePart, error) {
	out := make([]concretePart, len(path))
	for i, part := range path {
		cp := concretePart{kind: part.Kind, opt: part.Opt}
		switch part.Kind {
		case PartIndex:
			vs, err := Collect(e.Run(part.Index, ctx, val))
			if err != nil {
				return nil, err
			}
			cp.index = vs
		case PartRange:
			if part.From != nil {
				vs, err := Collect(e.Run(part.From, ctx, val))
				if err != nil {
					return nil, err
				}
				cp.from = vs
			}
			if part.Until != nil {
				vs, err := Collect(e.Run(part.Until, ctx, val))
				if err != nil {
					return nil, err
				}
				cp.until = vs
			}
		case PartIter:
			// no sub-expressions to materialize
		}
		out[i] = cp
	}
	return out, nil
}

// indexGet applies one concrete part to one value for path *reading*,
// producing every value it addresses (a part with several materialized
// indices, e.g. `.["a","b"]`, fans out).
func indexGet(v Val, p concretePart) ([]Val, error) {
	switch p.kind {
	case PartIndex:
		out := make([]Val, 0, len(p.index))
		for _, idx := range p.index {
			r, err := getOneIndex(v, idx)
			if err != nil {
				if p.opt == Optional {
					continue
				}
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	case PartRange:
		from, until, err := rangeBounds(p)
		if err != nil {
			return nil, err
		}
		results := make([]Val, 0, len(from))
		for i := range from {
			r, err := v.Slice(from[i], until[i])
			if err != nil {
				if p.opt == Optional {
					continue
				}
				return nil, err
			}
			results = append(results, r)
		}
		return results, nil
	case PartIter:
		return iterValues(v, p.opt)
	}
	return nil, strErr("invalid path part")
}

// iterValues fans bare `.[]` out into every array element or every
// object value; Optional (`.[]?`) swallows a type mismatch by yielding
// nothing instead of erroring.
func iterValues(v Val, opt Opt) ([]Val, error) {
	switch v.kind {
	case KindArr:
		return append([]Val(nil), v.arr...), nil
	case KindObj:
		out := make([]Val, len(v.obj))
		for i, e := range v.obj {
			out[i] = e.Val
		}
		return out, nil
	default:
		if opt == Optional {
			return nil, nil
		}
		return nil, &Error{Kind: ErrTypeK, Msg: "cannot iterate over " + v.kind.String()}
	}
}

func getOneIndex(v Val, idx Val) (Val, error) {
	switch idx.kind {
	case KindStr:
		if v.kind == KindNull {
			return Null(), nil
		}
		if v.kind != KindObj {
			return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with " + "\"" + idx.s + "\""}
		}
		r, _ := v.Get(idx.s)
		return r, nil
	case KindInt, KindFloat:
		if v.kind == KindNull {
			return Null(), nil
		}
		if v.kind != KindArr {
			return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with number"}
		}
		i, _ := idx.AsInt()
		return v.Index(i), nil
	default:
		return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with " + idx.kind.String()}
	}
}

// rangeBounds expands a Range part's (possibly multi-valued) from/until
// expressions into the cartesian set of (from, until) bound pairs, each
// expressed as *int64 (nil = unbounded).
func rangeBounds(p concretePart) ([]*int64, []*int64, error) {
	froms := []*int64{nil}
	if p.from != nil {
		froms = make([]*int64, len(p.from))
		for i, f := range p.from {
			n, err := f.AsInt()
			if err != nil {
				return nil, nil, err
			}
			froms[i] = &n
		}
	}
	untils := []*int64{nil}
	if p.until != nil {
		untils = make([]*int64, len(p.until))
		for i, u := range p.until {
			n, err := u.AsInt()
			if err != nil {
				return nil, nil, err
			}
			untils[i] = &n
		}
	}
	var outFrom, outUntil []*int64
	for _, f := range froms {
		for _, u := range untils {
			outFrom = append(outFrom, f)
			outUntil = append(outUntil, u)
		}
	}
	return outFrom, outUntil, nil
}

// runPath applies a Path to a value for reading: materialize every part,
// then collect left-to-right over the accumulated working set.
func (e *Evaluator) runPath(path Path, ctx Ctx, val Val, acc []Val) ([]Val, error) {
	parts, err := e.materializePath(path, ctx, val)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		var next []Val
		for _, x := range acc {
			got, err := indexGet(x, p)
			if err != nil {
				return nil, err
			}
			next = append(next, got...)
		}
		acc = next
	}
	return acc, nil
}

// setAt implements path *update*: replace every value a concrete part
// addresses in v with the result of applying rest+replace, building a
// new value by structural copy-on-write.
func setAt(v Val, p concretePart, rest func(Val) (Val, error)) (Val, error) {
	switch p.kind {
	case PartIndex:
		out := v
		for _, idx := range p.index {
			nv, err := setOneIndex(out, idx, rest)
			if err != nil {
				if p.opt == Optional {
					continue
				}
				return Val{}, err
			}
			out = nv
		}
		return out, nil
	case PartRange:
		from, until, err := rangeBounds(p)
		if err != nil {
			return Val{}, err
		}
		out := v
		for i := range from {
			nv, err := setRange(out, from[i], until[i], rest)
			if err != nil {
				if p.opt == Optional {
					continue
				}
				return Val{}, err
			}
			out = nv
		}
		return out, nil
	case PartIter:
		return setIter(v, p.opt, rest)
	}
	return Val{}, strErr("invalid path part")
}

// setIter replaces every array element, or every object value, with the
// result of rest applied to it.
func setIter(v Val, opt Opt, rest func(Val) (Val, error)) (Val, error) {
	switch v.kind {
	case KindArr:
		out := make([]Val, len(v.arr))
		for i, x := range v.arr {
			nv, err := rest(x)
			if err != nil {
				return Val{}, err
			}
			out[i] = nv
		}
		return Arr(out), nil
	case KindObj:
		out := make([]ObjEntry, len(v.obj))
		for i, e := range v.obj {
			nv, err := rest(e.Val)
			if err != nil {
				return Val{}, err
			}
			out[i] = ObjEntry{Key: e.Key, Val: nv}
		}
		return Obj(out), nil
	default:
		if opt == Optional {
			return v, nil
		}
		return Val{}, &Error{Kind: ErrTypeK, Msg: "cannot iterate over " + v.kind.String()}
	}
}

func setOneIndex(v Val, idx Val, rest func(Val) (Val, error)) (Val, error) {
	switch idx.kind {
	case KindStr:
		if v.kind != KindObj && v.kind != KindNull {
			return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with \"" + idx.s + "\""}
		}
		old, _ := v.Get(idx.s)
		nv, err := rest(old)
		if err != nil {
			return Val{}, err
		}
		if v.kind == KindNull {
			v = EmptyObj()
		}
		return v.Set(idx.s, nv), nil
	case KindInt, KindFloat:
		if v.kind != KindArr && v.kind != KindNull {
			return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with number"}
		}
		i, _ := idx.AsInt()
		if v.kind == KindNull {
			v = EmptyArr()
		}
		return setArrIndex(v, i, rest)
	default:
		return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot index " + v.kind.String() + " with " + idx.kind.String()}
	}
}

func setArrIndex(v Val, i int64, rest func(Val) (Val, error)) (Val, error) {
	n := int64(len(v.arr))
	if i < 0 {
		i += n
	}
	if i < 0 {
		return Val{}, &Error{Kind: ErrIndexK, Msg: "out of bounds negative array index"}
	}
	old := Null()
	if i < n {
		old = v.arr[i]
	}
	nv, err := rest(old)
	if err != nil {
		return Val{}, err
	}
	out := make([]Val, max64(n, i+1))
	copy(out, v.arr)
	for j := n; j < i; j++ {
		out[j] = Null()
	}
	out[i] = nv
	return Arr(out), nil
}

func setRange(v Val, from, until *int64, rest func(Val) (Val, error)) (Val, error) {
	if v.kind == KindNull {
		v = EmptyArr()
	}
	if v.kind != KindArr {
		return Val{}, &Error{Kind: ErrIndexK, Msg: "cannot update slice of " + v.kind.String()}
	}
	n := int64(len(v.arr))
	f, u := clampRange(from, until, n)
	old := Arr(append([]Val(nil), v.arr[f:u]...))
	nv, err := rest(old)
	if err != nil {
		return Val{}, err
	}
	replacement, err := nv.AsArr()
	if err != nil {
		return Val{}, err
	}
	out := make([]Val, 0, f+int64(len(replacement))+(n-u))
	out = append(out, v.arr[:f]...)
	out = append(out, replacement...)
	out = append(out, v.arr[u:]...)
	return Arr(out), nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
